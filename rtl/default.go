package rtl

import (
	"github.com/ardnew/rtl2832/usb/libusb"
)

// Convenience entry points over the default libusb-backed bus. Library
// consumers that inject their own usb.Bus (tests, alternative
// transports) use Count, Name, and Open directly.

// DeviceCount returns the number of supported devices attached.
func DeviceCount() int {
	return Count(libusb.Bus{})
}

// DeviceName returns the catalog name of the nth supported device, or
// the empty string if the index is out of range.
func DeviceName(index int) string {
	return Name(libusb.Bus{}, index)
}

// OpenDevice opens the nth supported device.
func OpenDevice(index int) (*Device, error) {
	return Open(libusb.Bus{}, index)
}
