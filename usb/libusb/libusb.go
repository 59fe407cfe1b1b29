// Package libusb implements the usb.Bus and usb.Transport interfaces on
// top of github.com/google/gousb.
//
// Asynchronous transfers are serviced by a single reader goroutine that
// consumes submitted descriptors strictly in submission order and fills
// them from an endpoint read stream. The stream keeps several transfers
// in flight and yields their data in the order the device produced it,
// so completions reach HandleEvents in submission order; HandleEvents
// runs completion callbacks on its caller's goroutine, matching
// libusb_handle_events_timeout semantics.
package libusb

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/gousb"

	"github.com/ardnew/rtl2832/pkg"
	"github.com/ardnew/rtl2832/usb"
)

// Transfers the endpoint read stream keeps in flight.
const streamDepth = 8

// Bus enumerates devices through a transient gousb context per call,
// mirroring how the List/Open pair is used: enumeration sessions are
// short-lived, and an opened device owns its own context.
type Bus struct{}

// List returns all attached devices in bus enumeration order.
func (Bus) List() ([]usb.DeviceInfo, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	var infos []usb.DeviceInfo
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		infos = append(infos, usb.DeviceInfo{
			VendorID:  uint16(desc.Vendor),
			ProductID: uint16(desc.Product),
		})
		return false
	})
	for _, d := range devs {
		d.Close()
	}
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// Open opens the device at the given bus enumeration position, claims
// interface 0, and returns a Transport scoped to it.
func (Bus) Open(index int) (usb.Transport, error) {
	ctx := gousb.NewContext()

	pos := -1
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		pos++
		return pos == index
	})
	if err != nil {
		for _, d := range devs {
			d.Close()
		}
		ctx.Close()
		return nil, err
	}
	if len(devs) == 0 {
		ctx.Close()
		return nil, pkg.ErrNoDevice
	}
	dev := devs[0]

	if err := dev.SetAutoDetach(true); err != nil {
		pkg.LogWarn(pkg.ComponentUSB, "auto-detach not available", "error", err)
	}

	cfg, err := dev.Config(1)
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, err
	}

	intf, err := cfg.Interface(0, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, err
	}

	bg, stop := context.WithCancel(context.Background())
	return &Transport{
		ctx:         ctx,
		dev:         dev,
		cfg:         cfg,
		intf:        intf,
		endpoints:   make(map[uint8]*gousb.InEndpoint),
		pending:     make(chan *usb.Transfer, 64),
		completions: make(chan *usb.Transfer, 64),
		bg:          bg,
		stop:        stop,
	}, nil
}

// Transport is a gousb-backed usb.Transport bound to one opened device.
type Transport struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface

	endpoints map[uint8]*gousb.InEndpoint
	epMutex   sync.Mutex

	// Submitted descriptors awaiting service, in submission order.
	pending     chan *usb.Transfer
	completions chan *usb.Transfer

	stream   *gousb.ReadStream
	streamEP uint8
	streamMu sync.Mutex

	readerOnce sync.Once
	readers    sync.WaitGroup

	bg   context.Context
	stop context.CancelFunc

	closed   bool
	closedMu sync.Mutex
}

const (
	ctrlIn  = gousb.ControlIn | gousb.ControlVendor | gousb.ControlDevice
	ctrlOut = gousb.ControlOut | gousb.ControlVendor | gousb.ControlDevice
)

// ControlIn performs a vendor control transfer, device to host.
func (t *Transport) ControlIn(request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error) {
	t.dev.ControlTimeout = timeout
	return t.dev.Control(ctrlIn, request, value, index, data)
}

// ControlOut performs a vendor control transfer, host to device.
func (t *Transport) ControlOut(request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error) {
	t.dev.ControlTimeout = timeout
	return t.dev.Control(ctrlOut, request, value, index, data)
}

// BulkIn performs a synchronous bulk read from the given endpoint.
func (t *Transport) BulkIn(endpoint uint8, data []byte, timeout time.Duration) (int, error) {
	ep, err := t.inEndpoint(endpoint)
	if err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(t.bg, timeout)
	defer cancel()
	return ep.ReadContext(ctx, data)
}

// Submit queues an asynchronous bulk IN transfer. Descriptors are
// serviced strictly in the order submitted, so their completions reach
// HandleEvents in submission order.
func (t *Transport) Submit(x *usb.Transfer) error {
	t.readerOnce.Do(func() {
		t.readers.Add(1)
		go t.readLoop()
	})
	select {
	case t.pending <- x:
		return nil
	case <-t.bg.Done():
		return pkg.ErrClosed
	}
}

// readLoop services submitted descriptors one at a time in FIFO order
// and publishes their completions sequentially. Pipelining lives inside
// the endpoint read stream, which completes its in-flight transfers in
// the order they were issued.
func (t *Transport) readLoop() {
	defer t.readers.Done()
	for {
		select {
		case <-t.bg.Done():
			return
		case x := <-t.pending:
			n, err := t.streamRead(x)
			x.Actual = n
			x.Status = transferStatus(err)
			select {
			case t.completions <- x:
			case <-t.bg.Done():
				return
			}
		}
	}
}

// streamRead fills the transfer buffer from the descriptor's endpoint
// stream, opening the stream on first use.
func (t *Transport) streamRead(x *usb.Transfer) (int, error) {
	s, err := t.readStream(x)
	if err != nil {
		return 0, err
	}
	return s.Read(x.Buf)
}

func (t *Transport) readStream(x *usb.Transfer) (*gousb.ReadStream, error) {
	t.streamMu.Lock()
	defer t.streamMu.Unlock()

	if t.stream != nil && t.streamEP == x.Endpoint {
		return t.stream, nil
	}
	if t.stream != nil {
		t.stream.Close()
		t.stream = nil
	}
	ep, err := t.inEndpoint(x.Endpoint)
	if err != nil {
		return nil, err
	}
	s, err := ep.NewStream(len(x.Buf), streamDepth)
	if err != nil {
		return nil, err
	}
	t.stream = s
	t.streamEP = x.Endpoint
	return s, nil
}

// HandleEvents blocks for up to the given timeout waiting for a transfer
// completion, then runs the callbacks of every queued completion on the
// calling goroutine, in completion order.
func (t *Transport) HandleEvents(timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case x := <-t.completions:
		t.dispatch(x)
	case <-timer.C:
		return nil
	case <-t.bg.Done():
		return pkg.ErrClosed
	}

	// Drain whatever else completed in the meantime.
	for {
		select {
		case x := <-t.completions:
			t.dispatch(x)
		default:
			return nil
		}
	}
}

func (t *Transport) dispatch(x *usb.Transfer) {
	if x.Callback != nil {
		x.Callback(x)
	}
}

// Close releases the claimed interface and closes the device session.
// Outstanding transfers complete with a cancelled status and are dropped.
func (t *Transport) Close() error {
	t.closedMu.Lock()
	if t.closed {
		t.closedMu.Unlock()
		return pkg.ErrClosed
	}
	t.closed = true
	t.closedMu.Unlock()

	t.stop()

	// Unblock a reader parked in a stream read.
	t.streamMu.Lock()
	if t.stream != nil {
		t.stream.Close()
		t.stream = nil
	}
	t.streamMu.Unlock()

	t.readers.Wait()

	t.intf.Close()
	var err error
	if cerr := t.cfg.Close(); cerr != nil {
		err = cerr
	}
	if cerr := t.dev.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if cerr := t.ctx.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// inEndpoint returns the cached IN endpoint for the given address.
func (t *Transport) inEndpoint(endpoint uint8) (*gousb.InEndpoint, error) {
	t.epMutex.Lock()
	defer t.epMutex.Unlock()

	if ep, ok := t.endpoints[endpoint]; ok {
		return ep, nil
	}
	ep, err := t.intf.InEndpoint(int(endpoint & 0x0f))
	if err != nil {
		return nil, err
	}
	t.endpoints[endpoint] = ep
	return ep, nil
}

// transferStatus maps a gousb read error to a transfer status.
func transferStatus(err error) pkg.TransferStatus {
	switch {
	case err == nil:
		return pkg.TransferStatusCompleted
	case errors.Is(err, gousb.ErrorTimeout):
		return pkg.TransferStatusTimeout
	case errors.Is(err, gousb.ErrorPipe):
		return pkg.TransferStatusStall
	case errors.Is(err, gousb.ErrorOverflow):
		return pkg.TransferStatusOverflow
	case errors.Is(err, gousb.ErrorNoDevice):
		return pkg.TransferStatusNoDevice
	case errors.Is(err, context.Canceled),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, io.EOF):
		return pkg.TransferStatusCancelled
	default:
		return pkg.TransferStatusError
	}
}
