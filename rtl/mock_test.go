package rtl

import (
	"sync"
	"time"

	"github.com/ardnew/rtl2832/pkg"
	"github.com/ardnew/rtl2832/usb"
)

// =============================================================================
// Mock Transport for Testing
// =============================================================================

type demodAccess struct {
	page  uint8
	reg   uint8
	value uint16
	size  int
}

type i2cPayload struct {
	addr uint8
	data []byte
}

// mockTransport implements usb.Transport with a register-level model of
// the dongle: writes are stored, reads echo them back, and the I2C block
// forwards to scripted chip responders.
type mockTransport struct {
	mu sync.Mutex

	// Register backing stores.
	regs  map[uint32]uint16 // block<<16 | addr
	demod map[uint16]uint16 // page<<8 | reg

	// Scripted I2C responders: per-address register files.
	i2cChips  map[uint8]map[uint8]uint8
	i2cCursor map[uint8]uint8
	i2cRaw    []i2cPayload // raw payload writes (3+ bytes)

	// Traces.
	demodWrites []demodAccess
	demodReads  []demodAccess

	// Async engine model. Submitted transfers queue in submission order
	// until HandleEvents, which completes a snapshot of the queue per
	// call, preserving that order.
	queue          []*usb.Transfer
	fillLen        int
	statusOnce     map[int]pkg.TransferStatus // one-shot status override per slot
	submits        map[int]int
	submitErr      error // returned when the failing slot is submitted
	failSubmitSlot int
	handleErr      error
	idleSleep      time.Duration
	handleCalls    int

	// Synchronous bulk reads.
	bulkData []byte
	bulkErr  error

	closed bool
}

func newMockTransport() *mockTransport {
	return &mockTransport{
		regs:           make(map[uint32]uint16),
		demod:          make(map[uint16]uint16),
		i2cChips:       make(map[uint8]map[uint8]uint8),
		i2cCursor:      make(map[uint8]uint8),
		statusOnce:     make(map[int]pkg.TransferStatus),
		submits:        make(map[int]int),
		failSubmitSlot: -1,
		fillLen:        transferBufferLength,
		idleSleep:      5 * time.Millisecond,
	}
}

// addI2CChip scripts a chip responder at the given I2C address.
func (m *mockTransport) addI2CChip(addr uint8, regs map[uint8]uint8) {
	file := make(map[uint8]uint8, len(regs))
	for r, v := range regs {
		file[r] = v
	}
	m.i2cChips[addr] = file
}

func packValue(data []byte) uint16 {
	if len(data) == 1 {
		return uint16(data[0])
	}
	return uint16(data[0])<<8 | uint16(data[1])
}

func unpackValue(value uint16, data []byte) {
	data[0] = byte(value)
	if len(data) > 1 {
		data[1] = byte(value >> 8)
	}
}

func (m *mockTransport) ControlOut(request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	block := uint8(index >> 8)
	switch {
	case block == blockI2C:
		addr := uint8(value)
		chip, ok := m.i2cChips[addr]
		if !ok {
			return 0, pkg.ErrTransport
		}
		switch len(data) {
		case 1:
			m.i2cCursor[addr] = data[0]
		case 2:
			chip[data[0]] = data[1]
		default:
			m.i2cRaw = append(m.i2cRaw, i2cPayload{addr: addr, data: append([]byte(nil), data...)})
		}

	case index < 0x100:
		// Demodulator paged write: page in the low index byte, 0x20
		// trailer in the low address byte.
		page := uint8(index &^ 0x10)
		reg := uint8(value >> 8)
		v := packValue(data)
		m.demod[uint16(page)<<8|uint16(reg)] = v
		m.demodWrites = append(m.demodWrites, demodAccess{page: page, reg: reg, value: v, size: len(data)})

	default:
		m.regs[uint32(block)<<16|uint32(value)] = packValue(data)
	}
	return len(data), nil
}

func (m *mockTransport) ControlIn(request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	block := uint8(index >> 8)
	switch {
	case block == blockI2C:
		addr := uint8(value)
		chip, ok := m.i2cChips[addr]
		if !ok {
			return 0, pkg.ErrTransport
		}
		cursor := m.i2cCursor[addr]
		for i := range data {
			data[i] = chip[cursor+uint8(i)]
		}

	case index < 0x100:
		page := uint8(index)
		reg := uint8(value >> 8)
		v := m.demod[uint16(page)<<8|uint16(reg)]
		unpackValue(v, data)
		m.demodReads = append(m.demodReads, demodAccess{page: page, reg: reg, value: v, size: len(data)})

	default:
		unpackValue(m.regs[uint32(block)<<16|uint32(value)], data)
	}
	return len(data), nil
}

func (m *mockTransport) BulkIn(endpoint uint8, data []byte, timeout time.Duration) (int, error) {
	if m.bulkErr != nil {
		return 0, m.bulkErr
	}
	return copy(data, m.bulkData), nil
}

func (m *mockTransport) Submit(x *usb.Transfer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitErr != nil && x.Slot == m.failSubmitSlot {
		return m.submitErr
	}
	m.submits[x.Slot]++
	m.queue = append(m.queue, x)
	return nil
}

func (m *mockTransport) HandleEvents(timeout time.Duration) error {
	m.mu.Lock()
	m.handleCalls++
	if m.handleErr != nil {
		err := m.handleErr
		m.mu.Unlock()
		return err
	}
	batch := m.queue
	m.queue = nil
	m.mu.Unlock()

	if len(batch) == 0 {
		time.Sleep(m.idleSleep)
		return nil
	}
	for _, x := range batch {
		m.mu.Lock()
		status, ok := m.statusOnce[x.Slot]
		if ok {
			delete(m.statusOnce, x.Slot)
		} else {
			status = pkg.TransferStatusCompleted
		}
		m.mu.Unlock()

		x.Status = status
		x.Actual = m.fillLen
		if x.Callback != nil {
			x.Callback(x)
		}
	}
	return nil
}

func (m *mockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return pkg.ErrClosed
	}
	m.closed = true
	return nil
}

// demodValue returns the stored value of a paged demodulator register.
func (m *mockTransport) demodValue(page, reg uint8) uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.demod[uint16(page)<<8|uint16(reg)]
}

// sysValue returns the stored value of a system block register.
func (m *mockTransport) sysValue(addr uint16) uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regs[uint32(blockSys)<<16|uint32(addr)]
}

// =============================================================================
// Mock Bus for Testing
// =============================================================================

// mockBus implements usb.Bus over a fixed device list, handing out one
// fresh or scripted transport per raw index.
type mockBus struct {
	devices    []usb.DeviceInfo
	transports map[int]*mockTransport
	listErr    error
	openErr    error
	opened     []int
}

func newMockBus(devices ...usb.DeviceInfo) *mockBus {
	return &mockBus{
		devices:    devices,
		transports: make(map[int]*mockTransport),
	}
}

func (b *mockBus) List() ([]usb.DeviceInfo, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.devices, nil
}

func (b *mockBus) Open(index int) (usb.Transport, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	if index < 0 || index >= len(b.devices) {
		return nil, pkg.ErrNoDevice
	}
	b.opened = append(b.opened, index)
	mt, ok := b.transports[index]
	if !ok || mt.closed {
		mt = newMockTransport()
		b.transports[index] = mt
	}
	return mt, nil
}
