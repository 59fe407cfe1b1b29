package rtl

import (
	"sync/atomic"

	"github.com/ardnew/rtl2832/pkg"
	"github.com/ardnew/rtl2832/tuner"
	"github.com/ardnew/rtl2832/usb"
)

// Device is one opened dongle. It owns the USB transport, the bound
// tuner (if probing found one), the cached front-end state, and the
// streaming engine's buffer and descriptor pools.
//
// A Device is exclusively owned by its caller. All mutating operations
// must be invoked from a single logical owner at a time; the driver
// provides no internal locking for interleaved tuner access.
type Device struct {
	t usb.Transport

	tuner     tuner.Tuner
	tunerType TunerType

	// Cached front-end state, updated on successful operations.
	freqHz  uint32
	corrPPM int
	gainDB  int
	rateHz  uint32

	// Streaming engine pools, allocated on first ReadAsync and retained
	// until Close.
	xfers     []*usb.Transfer
	streaming atomic.Bool

	closed bool
}

// knownDevice returns the catalog entry matching the given device, or
// nil if it is not a supported dongle.
func knownDevice(info usb.DeviceInfo) *SupportedDevice {
	for i := range supportedDevices {
		if supportedDevices[i].VendorID == info.VendorID &&
			supportedDevices[i].ProductID == info.ProductID {
			return &supportedDevices[i]
		}
	}
	return nil
}

// Count returns the number of supported devices attached to the bus.
func Count(bus usb.Bus) int {
	infos, err := bus.List()
	if err != nil {
		pkg.LogWarn(pkg.ComponentDevice, "bus enumeration failed", "error", err)
		return 0
	}
	n := 0
	for _, info := range infos {
		if knownDevice(info) != nil {
			n++
		}
	}
	return n
}

// Name returns the catalog name of the nth supported device on the bus,
// in bus enumeration order, or the empty string if the index is out of
// range.
func Name(bus usb.Bus, index int) string {
	infos, err := bus.List()
	if err != nil || index < 0 {
		return ""
	}
	n := 0
	for _, info := range infos {
		if dev := knownDevice(info); dev != nil {
			if n == index {
				return dev.Name
			}
			n++
		}
	}
	return ""
}

// Open opens the nth supported device on the bus, initializes the
// baseband into zero-IF streaming mode, and probes for the tuner chip.
// Probing finding no tuner is not fatal: the handle is returned in a
// degraded mode where tuner-dependent operations fail with ErrNoTuner.
//
// Every resource acquired before a failure is released before the error
// is returned.
func Open(bus usb.Bus, index int) (*Device, error) {
	if bus == nil || index < 0 {
		return nil, pkg.ErrInvalidArgument
	}

	infos, err := bus.List()
	if err != nil {
		return nil, err
	}
	raw := -1
	n := 0
	for i, info := range infos {
		if knownDevice(info) != nil {
			if n == index {
				raw = i
				break
			}
			n++
		}
	}
	if raw < 0 {
		return nil, pkg.ErrNoDevice
	}

	t, err := bus.Open(raw)
	if err != nil {
		return nil, err
	}

	d := &Device{t: t}
	d.initBaseband()
	d.probeTuner()

	pkg.LogInfo(pkg.ComponentDevice, "device opened",
		"index", index, "tuner", d.tunerType.String())
	return d, nil
}

// probeTuner identifies the tuner chip behind the I2C repeater and
// binds its driver. The probe order is a fixed priority chain: some
// chips' identification registers alias under others' read protocol,
// so the order must not change.
func (d *Device) probeTuner() {
	d.setI2CRepeater(true)
	defer d.setI2CRepeater(false)

	if v, err := d.I2CReadReg(tuner.E4000I2CAddr, tuner.E4000CheckAddr); err == nil && v == tuner.E4000CheckVal {
		d.bindTuner(TunerE4000, tuner.NewE4000())
	} else if v, err := d.I2CReadReg(tuner.FC0013I2CAddr, tuner.FC0013CheckAddr); err == nil && v == tuner.FC0013CheckVal {
		d.bindTuner(TunerFC0013, tuner.NewFC0013())
	} else {
		// The remaining candidates need a hardware reset pulse before
		// they respond.
		d.setGPIOOutput(5)
		d.SetGPIOBit(5, true)
		d.SetGPIOBit(5, false)

		if v, err := d.I2CReadReg(tuner.FC2580I2CAddr, tuner.FC2580CheckAddr); err == nil && v&tuner.FC2580CheckMask == tuner.FC2580CheckVal {
			d.bindTuner(TunerFC2580, tuner.NewFC2580())
		} else if v, err := d.I2CReadReg(tuner.FC0012I2CAddr, tuner.FC0012CheckAddr); err == nil && v == tuner.FC0012CheckVal {
			// Tuner select line.
			d.setGPIOOutput(6)
			d.bindTuner(TunerFC0012, tuner.NewFC0012())
		}
	}

	if d.tuner == nil {
		pkg.LogWarn(pkg.ComponentDevice, "no supported tuner found")
		return
	}
	if err := d.tuner.Init(d); err != nil {
		pkg.LogWarn(pkg.ComponentTuner, "tuner init failed",
			"tuner", d.tuner.Name(), "error", err)
	}
}

func (d *Device) bindTuner(tt TunerType, t tuner.Tuner) {
	d.tunerType = tt
	d.tuner = t
	pkg.LogInfo(pkg.ComponentDevice, "found tuner", "name", t.Name())
}

// Close deinitializes the baseband (which also shuts the bound tuner
// down), releases the streaming pools, and closes the USB session.
// Closing an already-closed or nil handle returns ErrClosed and has no
// other effect.
func (d *Device) Close() error {
	if d == nil || d.t == nil || d.closed {
		return pkg.ErrClosed
	}

	d.streaming.Store(false)
	d.deinitBaseband()

	d.xfers = nil
	d.tuner = nil
	d.tunerType = TunerUnknown
	d.closed = true

	err := d.t.Close()
	pkg.LogInfo(pkg.ComponentDevice, "device closed")
	return err
}
