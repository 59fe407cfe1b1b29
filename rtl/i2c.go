package rtl

import (
	"github.com/ardnew/rtl2832/pkg"
)

// I2C bridge over the register protocol's I2C block. Traffic destined
// for the tuner chip additionally requires the I2C repeater to be open;
// the tuner control paths in this package take care of the gate, and
// these methods assume the caller has.

// I2CWriteReg writes one register on the chip at the given I2C address.
func (d *Device) I2CWriteReg(i2cAddr, reg, value uint8) error {
	if d == nil || d.t == nil {
		return pkg.ErrInvalidArgument
	}
	if _, err := d.writeArray(blockI2C, uint16(i2cAddr), []byte{reg, value}); err != nil {
		pkg.LogWarn(pkg.ComponentI2C, "i2c register write failed",
			"i2c_addr", i2cAddr, "reg", reg, "error", err)
		return err
	}
	return nil
}

// I2CReadReg reads one register from the chip at the given I2C address.
// The register cursor write and the data read are two separate bus
// transactions; the caller must serialize against other I2C users.
func (d *Device) I2CReadReg(i2cAddr, reg uint8) (uint8, error) {
	if d == nil || d.t == nil {
		return 0, pkg.ErrInvalidArgument
	}
	if _, err := d.writeArray(blockI2C, uint16(i2cAddr), []byte{reg}); err != nil {
		return 0, err
	}
	var data [1]byte
	if _, err := d.readArray(blockI2C, uint16(i2cAddr), data[:]); err != nil {
		return 0, err
	}
	return data[0], nil
}

// I2CWrite writes a raw payload to the given I2C address.
func (d *Device) I2CWrite(i2cAddr uint8, buf []byte) error {
	if d == nil || d.t == nil {
		return pkg.ErrInvalidArgument
	}
	_, err := d.writeArray(blockI2C, uint16(i2cAddr), buf)
	return err
}

// I2CRead reads a raw payload from the given I2C address.
func (d *Device) I2CRead(i2cAddr uint8, buf []byte) (int, error) {
	if d == nil || d.t == nil {
		return 0, pkg.ErrInvalidArgument
	}
	return d.readArray(blockI2C, uint16(i2cAddr), buf)
}
