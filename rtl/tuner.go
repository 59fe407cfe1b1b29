package rtl

import (
	"github.com/ardnew/rtl2832/pkg"
)

// TunerType identifies the tuner chip bound to a device.
type TunerType int

// Known tuner types.
const (
	TunerUnknown TunerType = iota
	TunerE4000
	TunerFC0012
	TunerFC0013
	TunerFC2580
)

// String returns a human-readable tuner name.
func (t TunerType) String() string {
	switch t {
	case TunerE4000:
		return "E4000"
	case TunerFC0012:
		return "FC0012"
	case TunerFC0013:
		return "FC0013"
	case TunerFC2580:
		return "FC2580"
	default:
		return "Unknown"
	}
}

// TunerType returns the type of the bound tuner, or TunerUnknown if
// probing found none.
func (d *Device) TunerType() TunerType {
	if d == nil {
		return TunerUnknown
	}
	return d.tunerType
}

// SetCenterFreq tunes to the given center frequency in Hz. The cached
// frequency correction is applied multiplicatively before the tuner is
// programmed; the cached frequency is the uncorrected request.
func (d *Device) SetCenterFreq(freqHz uint32) error {
	if d == nil {
		return pkg.ErrInvalidArgument
	}
	if d.tuner == nil {
		return pkg.ErrNoTuner
	}

	corrected := uint32(float64(freqHz) * (1 + float64(d.corrPPM)/1e6))

	d.setI2CRepeater(true)
	err := d.tuner.Tune(d, corrected)
	d.setI2CRepeater(false)

	if err != nil {
		return err
	}
	d.freqHz = freqHz
	return nil
}

// CenterFreq returns the cached center frequency in Hz. It is zero
// until the first successful SetCenterFreq.
func (d *Device) CenterFreq() (uint32, error) {
	if d == nil {
		return 0, pkg.ErrInvalidArgument
	}
	if d.tuner == nil {
		return 0, pkg.ErrNoTuner
	}
	return d.freqHz, nil
}

// SetFreqCorrection sets the frequency correction in parts per million
// and retunes to apply it. Setting the current value again returns
// ErrUnchangedValue; callers should treat that as "unchanged", not as a
// hard failure.
func (d *Device) SetFreqCorrection(ppm int) error {
	if d == nil {
		return pkg.ErrInvalidArgument
	}
	if d.tuner == nil {
		return pkg.ErrNoTuner
	}
	if d.corrPPM == ppm {
		return pkg.ErrUnchangedValue
	}
	d.corrPPM = ppm
	return d.SetCenterFreq(d.freqHz)
}

// FreqCorrection returns the cached frequency correction in ppm.
func (d *Device) FreqCorrection() (int, error) {
	if d == nil {
		return 0, pkg.ErrInvalidArgument
	}
	if d.tuner == nil {
		return 0, pkg.ErrNoTuner
	}
	return d.corrPPM, nil
}

// SetTunerGain sets the tuner gain in dB.
func (d *Device) SetTunerGain(gainDB int) error {
	if d == nil {
		return pkg.ErrInvalidArgument
	}
	if d.tuner == nil {
		return pkg.ErrNoTuner
	}

	d.setI2CRepeater(true)
	err := d.tuner.SetGain(d, gainDB)
	d.setI2CRepeater(false)

	if err != nil {
		return err
	}
	d.gainDB = gainDB
	return nil
}

// TunerGain returns the cached tuner gain in dB.
func (d *Device) TunerGain() (int, error) {
	if d == nil {
		return 0, pkg.ErrInvalidArgument
	}
	if d.tuner == nil {
		return 0, pkg.ErrNoTuner
	}
	return d.gainDB, nil
}
