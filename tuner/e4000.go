package tuner

// Elonics E4000 identification constants.
const (
	E4000I2CAddr   = 0xc8
	E4000CheckAddr = 0x02
	E4000CheckVal  = 0x40
)

// E4000 register addresses used by this driver.
const (
	e4000RegMaster1   = 0x00 // master reset and enables
	e4000RegSynthFreq = 0x09 // start of the synthesizer frequency word
)

// E4000 drives the Elonics E4000 zero-IF tuner.
type E4000 struct {
	freqHz uint32
}

// NewE4000 returns an E4000 driver.
func NewE4000() *E4000 {
	return &E4000{}
}

// Name returns the chip name.
func (t *E4000) Name() string { return "Elonics E4000" }

// Init resets the chip and verifies its identity.
func (t *E4000) Init(b Bus) error {
	if err := b.I2CWriteReg(E4000I2CAddr, e4000RegMaster1, 0x01); err != nil {
		return err
	}
	if _, err := b.I2CReadReg(E4000I2CAddr, E4000CheckAddr); err != nil {
		return err
	}
	return nil
}

// Exit powers the chip down.
func (t *E4000) Exit(b Bus) error {
	return b.I2CWriteReg(E4000I2CAddr, e4000RegMaster1, 0x00)
}

// Tune programs the synthesizer for the given RF frequency.
func (t *E4000) Tune(b Bus, freqHz uint32) error {
	if err := t.setFrequency(b, freqHz); err != nil {
		return err
	}
	t.freqHz = freqHz
	return nil
}

// SetBandwidth configures the channel filter. The E4000 runs with a
// fixed 8 MHz filter here regardless of the requested width.
func (t *E4000) SetBandwidth(b Bus, bwHz uint32) error {
	return t.setFilter(b, 8000000)
}

// SetGain is accepted but has no effect; gain staging is left at the
// chip's power-on defaults.
func (t *E4000) SetGain(b Bus, gainDB int) error {
	return nil
}

func (t *E4000) setFrequency(b Bus, freqHz uint32) error {
	khz := freqHz / 1000
	return b.I2CWrite(E4000I2CAddr, []byte{
		e4000RegSynthFreq,
		byte(khz >> 16),
		byte(khz >> 8),
		byte(khz),
	})
}

func (t *E4000) setFilter(b Bus, bwHz uint32) error {
	return b.I2CWriteReg(E4000I2CAddr, 0x11, byte(bwHz/1000000))
}
