package rtl

import (
	"github.com/ardnew/rtl2832/pkg"
)

// initBaseband brings the demodulator into zero-IF streaming mode. The
// sequence and its constants are order-dependent chip bring-up; do not
// reorder or adjust them.
func (d *Device) initBaseband() {
	// Initialize USB.
	d.writeReg(blockUSB, regUSBSysctl, 0x09, 1)
	d.writeReg(blockUSB, regUSBEpaMaxpkt, 0x0002, 2)
	d.writeReg(blockUSB, regUSBEpaCtl, 0x1002, 2)

	// Power on demod.
	d.writeReg(blockSys, regDemodCtl1, 0x22, 1)
	d.writeReg(blockSys, regDemodCtl, 0xe8, 1)

	// Reset demod (bit 3, soft_rst).
	d.demodWriteReg(1, 0x01, 0x14, 1)
	d.demodWriteReg(1, 0x01, 0x10, 1)

	// Disable spectrum inversion and adjacent channel rejection.
	d.demodWriteReg(1, 0x15, 0x00, 1)
	d.demodWriteReg(1, 0x16, 0x0000, 2)

	// Set IF-frequency to 0 Hz.
	d.demodWriteReg(1, 0x19, 0x0000, 2)

	// Set FIR coefficients.
	for i, c := range firCoeff {
		d.demodWriteReg(1, 0x1c+uint16(i), uint16(c), 1)
	}

	d.demodWriteReg(0, 0x19, 0x25, 1)

	// Init FSM state-holding register.
	d.demodWriteReg(1, 0x93, 0xf0, 1)

	// Disable AGC (en_dagc, bit 0).
	d.demodWriteReg(1, 0x11, 0x00, 1)

	// Disable PID filter (enable_PID = 0).
	d.demodWriteReg(0, 0x61, 0x60, 1)

	// opt_adc_iq = 0, default ADC_I/ADC_Q datapath.
	d.demodWriteReg(0, 0x06, 0x80, 1)

	// Enable zero-IF mode (en_bbin bit), DC cancellation (en_dc_est),
	// IQ estimation/compensation (en_iq_comp, en_iq_est).
	d.demodWriteReg(1, 0xb1, 0x1b, 1)
}

// deinitBaseband shuts the bound tuner down behind the repeater gate,
// then powers off the demodulator and ADCs.
func (d *Device) deinitBaseband() {
	if d.tuner != nil {
		d.setI2CRepeater(true)
		if err := d.tuner.Exit(d); err != nil {
			pkg.LogWarn(pkg.ComponentTuner, "tuner exit failed",
				"tuner", d.tuner.Name(), "error", err)
		}
		d.setI2CRepeater(false)
	}

	// Power off demodulator and ADCs.
	d.writeReg(blockSys, regDemodCtl, 0x20, 1)
}

// resampleRatio computes the 22-bit fixed-point resampling ratio for
// the requested rate, masked to a multiple of 4, and the real rate the
// chip will achieve with it.
func resampleRatio(rateHz uint32) (uint32, float64) {
	ratio := uint32(uint64(CrystalFreq) << 22 / uint64(rateHz))
	ratio &^= 3
	real := float64(uint64(CrystalFreq)<<22) / float64(ratio)
	return ratio, real
}

// SetSampleRate configures the resampler for the requested rate in Hz.
// Rates above MaxSampleRate are clamped. The achieved rate differs from
// the request by at most one part in 2^20 and is forwarded to the bound
// tuner as its channel bandwidth.
func (d *Device) SetSampleRate(rateHz uint32) error {
	if d == nil || rateHz == 0 {
		return pkg.ErrInvalidArgument
	}

	// Check for the maximum rate the resampler supports.
	if rateHz > MaxSampleRate {
		rateHz = MaxSampleRate
	}

	ratio, realRate := resampleRatio(rateHz)
	pkg.LogInfo(pkg.ComponentBaseband, "setting sample rate", "hz", realRate)

	if d.tuner != nil {
		d.setI2CRepeater(true)
		if err := d.tuner.SetBandwidth(d, uint32(realRate)); err != nil {
			pkg.LogWarn(pkg.ComponentTuner, "set bandwidth failed",
				"tuner", d.tuner.Name(), "error", err)
		}
		d.setI2CRepeater(false)
	}

	d.rateHz = rateHz

	d.demodWriteReg(1, 0x9f, uint16(ratio>>16), 2)
	d.demodWriteReg(1, 0xa1, uint16(ratio), 2)
	return nil
}

// SampleRate returns the most recently requested sample rate in Hz.
func (d *Device) SampleRate() (uint32, error) {
	if d == nil {
		return 0, pkg.ErrInvalidArgument
	}
	return d.rateHz, nil
}
