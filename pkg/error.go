package pkg

import "errors"

// Driver errors.
var (
	// ErrTransport indicates a USB session or transfer failure.
	ErrTransport = errors.New("transport failure")

	// ErrNoDevice indicates that no matching device was found, or the
	// requested device index is out of range.
	ErrNoDevice = errors.New("no matching device")

	// ErrNoTuner indicates an operation that requires a tuner, but tuner
	// probing found none.
	ErrNoTuner = errors.New("no tuner bound")

	// ErrUnchangedValue indicates a setting identical to the current value.
	// Recoverable: the device state is unchanged and remains valid.
	ErrUnchangedValue = errors.New("value unchanged")

	// ErrInvalidArgument indicates a nil handle or invalid parameter.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTimeout indicates a transfer timeout.
	ErrTimeout = errors.New("transfer timeout")

	// ErrCancelled indicates a cancelled transfer.
	ErrCancelled = errors.New("transfer cancelled")

	// ErrStall indicates an endpoint stall condition.
	ErrStall = errors.New("endpoint stalled")

	// ErrOverflow indicates the device delivered more data than requested.
	ErrOverflow = errors.New("data overflow")

	// ErrNotStreaming indicates the streaming engine is not running.
	ErrNotStreaming = errors.New("not streaming")

	// ErrAlreadyStreaming indicates the streaming engine is already running.
	ErrAlreadyStreaming = errors.New("already streaming")

	// ErrClosed indicates the device handle has been closed.
	ErrClosed = errors.New("device closed")
)

// TransferStatus represents the completion status of an asynchronous
// bulk transfer.
type TransferStatus int

// Transfer status values.
const (
	TransferStatusCompleted TransferStatus = iota // Transfer completed successfully
	TransferStatusError                           // Transfer failed with error
	TransferStatusStall                           // Endpoint stalled
	TransferStatusTimeout                         // Transfer timed out
	TransferStatusCancelled                       // Transfer was cancelled
	TransferStatusOverflow                        // Device delivered excess data
	TransferStatusNoDevice                        // Device disconnected
)

// String returns a string representation of the transfer status.
func (s TransferStatus) String() string {
	switch s {
	case TransferStatusCompleted:
		return "completed"
	case TransferStatusError:
		return "error"
	case TransferStatusStall:
		return "stall"
	case TransferStatusTimeout:
		return "timeout"
	case TransferStatusCancelled:
		return "cancelled"
	case TransferStatusOverflow:
		return "overflow"
	case TransferStatusNoDevice:
		return "no device"
	default:
		return "unknown"
	}
}

// Error returns the corresponding error for the transfer status.
func (s TransferStatus) Error() error {
	switch s {
	case TransferStatusCompleted:
		return nil
	case TransferStatusStall:
		return ErrStall
	case TransferStatusTimeout:
		return ErrTimeout
	case TransferStatusCancelled:
		return ErrCancelled
	case TransferStatusOverflow:
		return ErrOverflow
	case TransferStatusNoDevice:
		return ErrNoDevice
	default:
		return ErrTransport
	}
}
