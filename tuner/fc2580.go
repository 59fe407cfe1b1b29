package tuner

// FCI FC2580 identification constants. The chip ID register carries a
// revision bit in its MSB, so probing masks the value to 7 bits.
const (
	FC2580I2CAddr   = 0xac
	FC2580CheckAddr = 0x01
	FC2580CheckVal  = 0x56
	FC2580CheckMask = 0x7f
)

// FC2580 register addresses used by this driver.
const (
	fc2580RegSynthFreq = 0x18 // start of the synthesizer frequency word
	fc2580RegFilter    = 0x36 // baseband filter mode
)

// FC2580 drives the FCI 2580 tuner.
type FC2580 struct {
	freqHz uint32
}

// NewFC2580 returns an FC2580 driver.
func NewFC2580() *FC2580 {
	return &FC2580{}
}

// Name returns the chip name.
func (t *FC2580) Name() string { return "FCI FC2580" }

// Init verifies the chip identity.
func (t *FC2580) Init(b Bus) error {
	_, err := b.I2CReadReg(FC2580I2CAddr, FC2580CheckAddr)
	return err
}

// Exit powers the chip down.
func (t *FC2580) Exit(b Bus) error {
	return nil
}

// Tune programs the synthesizer for the given RF frequency.
func (t *FC2580) Tune(b Bus, freqHz uint32) error {
	khz := freqHz / 1000
	err := b.I2CWrite(FC2580I2CAddr, []byte{
		fc2580RegSynthFreq,
		byte(khz >> 16),
		byte(khz >> 8),
		byte(khz),
	})
	if err != nil {
		return err
	}
	t.freqHz = freqHz
	return nil
}

// SetBandwidth selects the single filter mode this driver uses,
// regardless of the requested width.
func (t *FC2580) SetBandwidth(b Bus, bwHz uint32) error {
	return b.I2CWriteReg(FC2580I2CAddr, fc2580RegFilter, 0x01)
}

// SetGain is accepted but has no effect; the chip's AGC is left enabled.
func (t *FC2580) SetGain(b Bus, gainDB int) error {
	return nil
}
