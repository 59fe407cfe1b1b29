// Package tuner defines the capability interface RF tuner drivers must
// satisfy, the narrow bus they use to reach their chip, and the drivers
// for the four tuners found behind the RTL2832 demodulator.
package tuner

// Bus is the device access a tuner driver needs: I2C register traffic
// (forwarded through the demodulator's I2C repeater, which the caller
// must hold open for the duration of any Tuner method) and the GPIO
// lines that select or reset tuner hardware.
type Bus interface {
	// I2CReadReg reads one register from the chip at the given I2C address.
	I2CReadReg(i2cAddr, reg uint8) (uint8, error)

	// I2CWriteReg writes one register on the chip at the given I2C address.
	I2CWriteReg(i2cAddr, reg, value uint8) error

	// I2CRead reads a raw payload from the given I2C address.
	I2CRead(i2cAddr uint8, buf []byte) (int, error)

	// I2CWrite writes a raw payload to the given I2C address.
	I2CWrite(i2cAddr uint8, buf []byte) error

	// SetGPIOBit drives one demodulator GPIO line.
	SetGPIOBit(gpio uint8, on bool)
}

// Tuner is the capability contract every tuner driver satisfies. All
// methods must be called with the I2C repeater open; the driver core
// takes care of the gate.
type Tuner interface {
	// Name returns the human-readable chip name.
	Name() string

	// Init brings the chip out of reset and into a usable state.
	Init(b Bus) error

	// Exit powers the chip down.
	Exit(b Bus) error

	// Tune sets the RF center frequency in Hz.
	Tune(b Bus, freqHz uint32) error

	// SetBandwidth configures the channel filter for the given width in Hz.
	SetBandwidth(b Bus, bwHz uint32) error

	// SetGain sets the RF gain in dB.
	SetGain(b Bus, gainDB int) error
}
