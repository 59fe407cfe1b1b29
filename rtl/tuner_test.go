package rtl

import (
	"errors"
	"testing"

	"github.com/ardnew/rtl2832/pkg"
	"github.com/ardnew/rtl2832/tuner"
)

func TestTunerTypeString(t *testing.T) {
	tests := []struct {
		tt   TunerType
		want string
	}{
		{TunerUnknown, "Unknown"},
		{TunerE4000, "E4000"},
		{TunerFC0012, "FC0012"},
		{TunerFC0013, "FC0013"},
		{TunerFC2580, "FC2580"},
		{TunerType(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.tt.String(); got != tt.want {
			t.Errorf("TunerType(%d).String() = %q, want %q", tt.tt, got, tt.want)
		}
	}
}

// tunedKHz decodes the frequency word from the most recent Fitipower
// divider payload written to the given I2C address.
func tunedKHz(t *testing.T, mt *mockTransport, addr uint8) uint32 {
	t.Helper()
	var last []byte
	for _, w := range mt.i2cRaw {
		if w.addr == addr {
			last = w.data
		}
	}
	if len(last) != 5 || last[0] != 0x05 {
		t.Fatalf("no divider payload written to %#x (last = %v)", addr, last)
	}
	return uint32(last[1])<<16 | uint32(last[2])<<8 | uint32(last[3])
}

func TestSetCenterFreqAppliesCorrection(t *testing.T) {
	d, mt := openWith(t, withFC0013)
	defer d.Close()

	if err := d.SetCenterFreq(100000000); err != nil {
		t.Fatalf("SetCenterFreq: %v", err)
	}
	if got := tunedKHz(t, mt, tuner.FC0013I2CAddr); got != 100000 {
		t.Errorf("tuned %d kHz, want 100000", got)
	}

	// +1000 ppm stretches the programmed frequency by 0.1%; the cached
	// frequency stays the uncorrected request.
	if err := d.SetFreqCorrection(1000); err != nil {
		t.Fatalf("SetFreqCorrection: %v", err)
	}
	if got := tunedKHz(t, mt, tuner.FC0013I2CAddr); got != 100100 {
		t.Errorf("tuned %d kHz after correction, want 100100", got)
	}
	if freq, _ := d.CenterFreq(); freq != 100000000 {
		t.Errorf("CenterFreq = %d, want 100000000", freq)
	}
	if ppm, _ := d.FreqCorrection(); ppm != 1000 {
		t.Errorf("FreqCorrection = %d, want 1000", ppm)
	}
}

func TestSetFreqCorrectionUnchanged(t *testing.T) {
	d, _ := openWith(t, withFC0013)
	defer d.Close()

	if err := d.SetFreqCorrection(50); err != nil {
		t.Fatalf("SetFreqCorrection: %v", err)
	}
	if err := d.SetFreqCorrection(50); !errors.Is(err, pkg.ErrUnchangedValue) {
		t.Errorf("repeated SetFreqCorrection: got %v, want ErrUnchangedValue", err)
	}
	if ppm, _ := d.FreqCorrection(); ppm != 50 {
		t.Errorf("FreqCorrection = %d, want 50", ppm)
	}
}

func TestSetTunerGainCaches(t *testing.T) {
	d, mt := openWith(t, withFC0013)
	defer d.Close()

	if err := d.SetTunerGain(42); err != nil {
		t.Fatalf("SetTunerGain: %v", err)
	}
	if gain, err := d.TunerGain(); err != nil || gain != 42 {
		t.Errorf("TunerGain = %d, %v, want 42, nil", gain, err)
	}
	if got := mt.demodValue(1, 0x01); got != 0x10 {
		t.Errorf("repeater register after SetTunerGain = %#x, want 0x10 (closed)", got)
	}
}

func TestTunerOpsOnNilDevice(t *testing.T) {
	var d *Device
	if err := d.SetCenterFreq(100000000); !errors.Is(err, pkg.ErrInvalidArgument) {
		t.Errorf("SetCenterFreq: got %v, want ErrInvalidArgument", err)
	}
	if _, err := d.CenterFreq(); !errors.Is(err, pkg.ErrInvalidArgument) {
		t.Errorf("CenterFreq: got %v, want ErrInvalidArgument", err)
	}
	if d.TunerType() != TunerUnknown {
		t.Error("TunerType on nil device: want TunerUnknown")
	}
}
