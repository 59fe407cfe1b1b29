package rtl

import (
	"github.com/ardnew/rtl2832/pkg"
)

// Register protocol layer. All demodulator and system state is reached
// through vendor control transfers: the block id rides in the high byte
// of the index field, bit 4 of the index marks a write. Demodulator
// registers are paged; the page replaces the block id and the address
// carries a fixed 0x20 trailer byte.
//
// Failures at this layer are logged and surfaced as zero values; callers
// decide whether to escalate.

// readArray reads len(buf) bytes from a register block.
func (d *Device) readArray(block uint8, addr uint16, buf []byte) (int, error) {
	return d.t.ControlIn(0, addr, uint16(block)<<8, buf, ctrlTimeout)
}

// writeArray writes buf to a register block.
func (d *Device) writeArray(block uint8, addr uint16, buf []byte) (int, error) {
	return d.t.ControlOut(0, addr, uint16(block)<<8|0x10, buf, ctrlTimeout)
}

// readReg reads a 1- or 2-byte register from the USB core or system
// block. Reads always decode little-endian from the two-byte response.
func (d *Device) readReg(block uint8, addr uint16, length int) uint16 {
	var data [2]byte
	if _, err := d.t.ControlIn(0, addr, uint16(block)<<8, data[:length], ctrlTimeout); err != nil {
		pkg.LogWarn(pkg.ComponentRegisters, "register read failed",
			"block", block, "addr", addr, "error", err)
		return 0
	}
	return uint16(data[1])<<8 | uint16(data[0])
}

// writeReg writes a 1- or 2-byte register in the USB core or system
// block. A 1-byte write sends only the low byte; a 2-byte write sends
// high byte first.
func (d *Device) writeReg(block uint8, addr uint16, value uint16, length int) {
	var data [2]byte
	if length == 1 {
		data[0] = byte(value)
	} else {
		data[0] = byte(value >> 8)
	}
	data[1] = byte(value)
	if _, err := d.t.ControlOut(0, addr, uint16(block)<<8|0x10, data[:length], ctrlTimeout); err != nil {
		pkg.LogWarn(pkg.ComponentRegisters, "register write failed",
			"block", block, "addr", addr, "error", err)
	}
}

// demodReadReg reads a paged demodulator register.
func (d *Device) demodReadReg(page uint8, addr uint8, length int) uint16 {
	var data [2]byte
	a := uint16(addr)<<8 | 0x20
	if _, err := d.t.ControlIn(0, a, uint16(page), data[:length], ctrlTimeout); err != nil {
		pkg.LogWarn(pkg.ComponentRegisters, "demod register read failed",
			"page", page, "addr", addr, "error", err)
		return 0
	}
	return uint16(data[1])<<8 | uint16(data[0])
}

// demodWriteReg writes a paged demodulator register. Every write is
// followed by one fixed status read as a completion acknowledgement;
// the chip misbehaves without it. The read result is discarded.
func (d *Device) demodWriteReg(page uint8, addr uint16, value uint16, length int) {
	var data [2]byte
	a := addr<<8 | 0x20
	if length == 1 {
		data[0] = byte(value)
	} else {
		data[0] = byte(value >> 8)
	}
	data[1] = byte(value)
	if _, err := d.t.ControlOut(0, a, uint16(page)|0x10, data[:length], ctrlTimeout); err != nil {
		pkg.LogWarn(pkg.ComponentRegisters, "demod register write failed",
			"page", page, "addr", addr, "error", err)
	}
	d.demodReadReg(0x0a, 0x01, 1)
}

// SetGPIOBit drives one demodulator GPIO line.
func (d *Device) SetGPIOBit(gpio uint8, on bool) {
	mask := uint16(1) << gpio
	r := d.readReg(blockSys, regGPO, 1)
	if on {
		r |= mask
	} else {
		r &^= mask
	}
	d.writeReg(blockSys, regGPO, r, 1)
}

// setGPIOOutput configures one demodulator GPIO line as an output.
func (d *Device) setGPIOOutput(gpio uint8) {
	mask := uint16(1) << gpio
	r := d.readReg(blockSys, regGPD, 1)
	d.writeReg(blockSys, regGPO, r&^mask, 1)
	r = d.readReg(blockSys, regGPOE, 1)
	d.writeReg(blockSys, regGPOE, r|mask, 1)
}

// setI2CRepeater opens or closes the gate that forwards I2C traffic
// through the demodulator to the tuner chip.
func (d *Device) setI2CRepeater(on bool) {
	v := uint16(0x10)
	if on {
		v = 0x18
	}
	d.demodWriteReg(1, 0x01, v, 1)
}
