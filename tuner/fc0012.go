package tuner

// Fitipower FC0012 identification constants.
const (
	FC0012I2CAddr   = 0xc6
	FC0012CheckAddr = 0x00
	FC0012CheckVal  = 0xa1
)

// GPIO line selecting the FC0012 V-band/U-band input filter.
const fc0012BandSelectGPIO = 6

// FC0012 drives the Fitipower FC0012 tuner. The dongle wires GPIO6 of
// the demodulator to the tuner's band-select input; frequencies above
// 300 MHz switch from the V-band to the U-band filter.
type FC0012 struct {
	freqHz uint32
}

// NewFC0012 returns an FC0012 driver.
func NewFC0012() *FC0012 {
	return &FC0012{}
}

// Name returns the chip name.
func (t *FC0012) Name() string { return "Fitipower FC0012" }

// Init verifies the chip identity.
func (t *FC0012) Init(b Bus) error {
	_, err := b.I2CReadReg(FC0012I2CAddr, FC0012CheckAddr)
	return err
}

// Exit powers the chip down.
func (t *FC0012) Exit(b Bus) error {
	return nil
}

// Tune selects the band filter and programs the synthesizer. The default
// channel bandwidth is 6 MHz.
func (t *FC0012) Tune(b Bus, freqHz uint32) error {
	b.SetGPIOBit(fc0012BandSelectGPIO, freqHz > 300000000)
	if err := setFitipowerFrequency(b, FC0012I2CAddr, freqHz/1000, 6); err != nil {
		return err
	}
	t.freqHz = freqHz
	return nil
}

// SetBandwidth retunes the stored frequency with the new channel width.
func (t *FC0012) SetBandwidth(b Bus, bwHz uint32) error {
	return setFitipowerFrequency(b, FC0012I2CAddr, t.freqHz/1000, bwHz/1000000)
}

// SetGain is accepted but has no effect; the chip's AGC is left enabled.
func (t *FC0012) SetGain(b Bus, gainDB int) error {
	return nil
}

// setFitipowerFrequency programs the PLL word shared by the FC0012 and
// FC0013 register layouts: frequency in kHz, bandwidth in MHz.
func setFitipowerFrequency(b Bus, i2cAddr uint8, freqKHz, bwMHz uint32) error {
	return b.I2CWrite(i2cAddr, []byte{
		0x05, // start of the divider word
		byte(freqKHz >> 16),
		byte(freqKHz >> 8),
		byte(freqKHz),
		byte(bwMHz),
	})
}
