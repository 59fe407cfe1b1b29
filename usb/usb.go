package usb

import (
	"time"

	"github.com/ardnew/rtl2832/pkg"
)

// DeviceInfo describes one device on the bus.
type DeviceInfo struct {
	VendorID  uint16
	ProductID uint16
}

// Bus enumerates and opens raw USB devices.
//
// List returns all attached devices in bus enumeration order. Open opens
// the device at the given position in that order, claims its primary
// interface, and returns a Transport scoped to it.
type Bus interface {
	List() ([]DeviceInfo, error)
	Open(index int) (Transport, error)
}

// Transfer is a reusable asynchronous bulk IN transfer descriptor.
//
// The buffer is owned by the submitter; while the transfer is outstanding
// it must not be touched. On completion the transport fills Actual and
// Status and delivers the transfer to HandleEvents, which invokes Callback
// on the calling goroutine. Callback may resubmit the same descriptor.
type Transfer struct {
	// Endpoint is the bulk IN endpoint address (direction bit set).
	Endpoint uint8

	// Buf is the transfer buffer, reused across submissions.
	Buf []byte

	// Actual is the number of bytes transferred, set on completion.
	Actual int

	// Status is the completion status, set on completion.
	Status pkg.TransferStatus

	// Callback is invoked from HandleEvents when the transfer completes.
	Callback func(*Transfer)

	// Slot identifies the descriptor within its owner's pool.
	Slot int
}

// Transport performs transfers against one opened device.
//
// Submit starts an asynchronous bulk IN transfer. Completions are queued
// until HandleEvents drains them; HandleEvents blocks for at most the
// given timeout waiting for the first completion, runs the callbacks of
// every queued completion on its own goroutine, and returns. Transfers
// on one endpoint complete in submission order, and HandleEvents
// delivers their callbacks in that order; consumers of a contiguous
// data stream depend on this. Close
// releases the claimed interface and the underlying session; outstanding
// transfers complete with a cancelled status and are discarded.
type Transport interface {
	// ControlIn performs a vendor control transfer, device to host.
	ControlIn(request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error)

	// ControlOut performs a vendor control transfer, host to device.
	ControlOut(request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error)

	// BulkIn performs a synchronous bulk read from the given endpoint.
	BulkIn(endpoint uint8, data []byte, timeout time.Duration) (int, error)

	// Submit starts an asynchronous bulk IN transfer.
	Submit(t *Transfer) error

	// HandleEvents processes pending transfer completions for up to the
	// given timeout.
	HandleEvents(timeout time.Duration) error

	// Close releases the interface and closes the device session.
	Close() error
}
