// Package usb defines the transport abstraction the driver uses to reach
// a dongle: vendor control transfers, synchronous bulk reads, and an
// asynchronous transfer API with a blocking event-processing call.
//
// The production implementation lives in the libusb subpackage and is
// backed by github.com/google/gousb. Tests substitute mock implementations
// of Bus and Transport.
package usb
