package tuner

// Fitipower FC0013 identification constants.
const (
	FC0013I2CAddr   = 0xc6
	FC0013CheckAddr = 0x00
	FC0013CheckVal  = 0xa3
)

// FC0013 drives the Fitipower FC0013 tuner, the FC0012's successor with
// an integrated band switch. Same divider word layout as the FC0012.
type FC0013 struct {
	freqHz uint32
}

// NewFC0013 returns an FC0013 driver.
func NewFC0013() *FC0013 {
	return &FC0013{}
}

// Name returns the chip name.
func (t *FC0013) Name() string { return "Fitipower FC0013" }

// Init verifies the chip identity.
func (t *FC0013) Init(b Bus) error {
	_, err := b.I2CReadReg(FC0013I2CAddr, FC0013CheckAddr)
	return err
}

// Exit powers the chip down.
func (t *FC0013) Exit(b Bus) error {
	return nil
}

// Tune programs the synthesizer. The default channel bandwidth is 6 MHz.
func (t *FC0013) Tune(b Bus, freqHz uint32) error {
	if err := setFitipowerFrequency(b, FC0013I2CAddr, freqHz/1000, 6); err != nil {
		return err
	}
	t.freqHz = freqHz
	return nil
}

// SetBandwidth retunes the stored frequency with the new channel width.
func (t *FC0013) SetBandwidth(b Bus, bwHz uint32) error {
	return setFitipowerFrequency(b, FC0013I2CAddr, t.freqHz/1000, bwHz/1000000)
}

// SetGain is accepted but has no effect; the chip's AGC is left enabled.
func (t *FC0013) SetGain(b Bus, gainDB int) error {
	return nil
}
