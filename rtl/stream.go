package rtl

import (
	"github.com/ardnew/rtl2832/pkg"
	"github.com/ardnew/rtl2832/usb"
)

// ReadAsyncCallback receives one filled sample buffer per completed
// transfer. The buffer is owned by the streaming engine and is valid
// only for the duration of the call; it is resubmitted as soon as the
// callback returns. Callbacks run synchronously on the goroutine that
// called ReadAsync, so a blocked callback stalls the stream.
type ReadAsyncCallback func(buf []byte)

// ReadSync performs one synchronous bulk read from the sample endpoint.
func (d *Device) ReadSync(buf []byte) (int, error) {
	if d == nil || d.t == nil {
		return 0, pkg.ErrInvalidArgument
	}
	return d.t.BulkIn(bulkInEndpoint, buf, syncReadTimeout)
}

// ResetBuffer clears the endpoint FIFO by toggling the endpoint control
// register off and on.
func (d *Device) ResetBuffer() error {
	if d == nil || d.t == nil {
		return pkg.ErrInvalidArgument
	}
	d.writeReg(blockUSB, regUSBEpaCtl, 0x1002, 2)
	d.writeReg(blockUSB, regUSBEpaCtl, 0x0000, 2)
	return nil
}

// ReadAsync streams samples continuously, invoking cb once per filled
// buffer, until CancelAsync is observed or event processing fails. It
// blocks its caller for the duration of the stream.
//
// The engine owns a pool of 32 transfer descriptors with 16x16384-byte
// buffers, allocated on the first call and reused for the lifetime of
// the handle; streaming never allocates or swaps buffers. A transfer
// completing with any status other than "completed" is logged and not
// resubmitted, quietly shrinking the active pool for the rest of the
// session.
//
// Cancellation is cooperative: CancelAsync stops the next polling
// iteration, so ReadAsync returns within one polling interval and
// already-completed transfers may fire one more callback first.
func (d *Device) ReadAsync(cb ReadAsyncCallback) error {
	if d == nil || d.t == nil || cb == nil {
		return pkg.ErrInvalidArgument
	}
	if !d.streaming.CompareAndSwap(false, true) {
		return pkg.ErrAlreadyStreaming
	}

	if d.xfers == nil {
		arena := make([]byte, transferBufferCount*transferBufferLength)
		d.xfers = make([]*usb.Transfer, transferBufferCount)
		for i := range d.xfers {
			off := i * transferBufferLength
			d.xfers[i] = &usb.Transfer{
				Endpoint: bulkInEndpoint,
				Buf:      arena[off : off+transferBufferLength : off+transferBufferLength],
				Slot:     i,
			}
		}
	}

	complete := func(x *usb.Transfer) {
		if x.Status != pkg.TransferStatusCompleted {
			pkg.LogWarn(pkg.ComponentStream, "transfer dropped",
				"slot", x.Slot, "status", x.Status.String())
			return
		}
		cb(x.Buf[:x.Actual])
		if err := d.t.Submit(x); err != nil {
			pkg.LogWarn(pkg.ComponentStream, "resubmit failed",
				"slot", x.Slot, "error", err)
		}
	}

	for _, x := range d.xfers {
		x.Callback = complete
	}
	for _, x := range d.xfers {
		if err := d.t.Submit(x); err != nil {
			pkg.LogWarn(pkg.ComponentStream, "submit failed",
				"slot", x.Slot, "error", err)
			// Quiesce the descriptors already in flight: without a
			// callback their completions are discarded, not resubmitted.
			for _, y := range d.xfers {
				y.Callback = nil
			}
			d.t.HandleEvents(0)
			d.streaming.Store(false)
			return err
		}
	}

	var err error
	for d.streaming.Load() {
		if err = d.t.HandleEvents(pollInterval); err != nil {
			pkg.LogWarn(pkg.ComponentStream, "event processing failed", "error", err)
			break
		}
	}
	d.streaming.Store(false)
	return err
}

// CancelAsync requests that a running ReadAsync stop. Safe to call from
// a goroutine other than the one blocked in ReadAsync. In-flight
// transfers are not aborted; they are reclaimed at Close.
func (d *Device) CancelAsync() error {
	if d == nil {
		return pkg.ErrInvalidArgument
	}
	if !d.streaming.CompareAndSwap(true, false) {
		return pkg.ErrNotStreaming
	}
	return nil
}
