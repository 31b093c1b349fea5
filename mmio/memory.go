package mmio

import (
	"fmt"
	"sync"
)

type Op uint8

const (
	OpLoad32 Op = iota
	OpStore32
	OpLoad8
	OpStore8
)

func (op Op) String() string {
	switch op {
	case OpLoad32:
		return "load32"
	case OpStore32:
		return "store32"
	case OpLoad8:
		return "load8"
	case OpStore8:
		return "store8"
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Access is one recorded bus transaction. For loads Value is what the
// device returned, for stores what the driver wrote.
type Access struct {
	Op    Op
	Addr  uintptr
	Value uint32
}

func (a Access) String() string {
	return fmt.Sprintf("%s 0x%08X 0x%08X", a.Op, a.Addr, a.Value)
}

// Handler attaches device behaviour to one 32-bit word. Read returns the
// value seen by the driver and may update the stored word. Write receives
// the written value and the byte-lane mask of the access.
type Handler struct {
	Read  func(word *uint32) uint32
	Write func(word *uint32, value, mask uint32)
}

// Memory is a sparse, little-endian register file implementing Bus. Words
// without a Handler behave like plain RAM. Every access is traced.
type Memory struct {
	mu       sync.Mutex
	words    map[uintptr]uint32
	handlers map[uintptr]Handler
	trace    []Access
}

func NewMemory() *Memory {
	return &Memory{
		words:    make(map[uintptr]uint32),
		handlers: make(map[uintptr]Handler),
	}
}

// Map installs a handler for the word containing addr.
func (m *Memory) Map(addr uintptr, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[addr&^3] = h
}

// Poke stores a word without running handlers or tracing.
func (m *Memory) Poke(addr uintptr, value uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.words[addr&^3] = value
}

// Peek loads a word without running handlers or tracing.
func (m *Memory) Peek(addr uintptr) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.words[addr&^3]
}

// Trace returns a copy of the recorded accesses.
func (m *Memory) Trace() []Access {
	m.mu.Lock()
	defer m.mu.Unlock()
	trace := make([]Access, len(m.trace))
	copy(trace, m.trace)
	return trace
}

func (m *Memory) ResetTrace() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trace = nil
}

func (m *Memory) Load32(addr uintptr) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.load(addr &^ 3)
	m.trace = append(m.trace, Access{Op: OpLoad32, Addr: addr, Value: v})
	return v
}

func (m *Memory) Store32(addr uintptr, value uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(addr&^3, value, 0xFFFFFFFF)
	m.trace = append(m.trace, Access{Op: OpStore32, Addr: addr, Value: value})
}

func (m *Memory) Load8(addr uintptr) uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	shift := (addr & 3) * 8
	v := uint8(m.load(addr&^3) >> shift)
	m.trace = append(m.trace, Access{Op: OpLoad8, Addr: addr, Value: uint32(v)})
	return v
}

func (m *Memory) Store8(addr uintptr, value uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	shift := (addr & 3) * 8
	m.store(addr&^3, uint32(value)<<shift, 0xFF<<shift)
	m.trace = append(m.trace, Access{Op: OpStore8, Addr: addr, Value: uint32(value)})
}

func (m *Memory) load(addr uintptr) uint32 {
	word := m.words[addr]
	if h, ok := m.handlers[addr]; ok && h.Read != nil {
		v := h.Read(&word)
		m.words[addr] = word
		return v
	}
	return word
}

func (m *Memory) store(addr uintptr, value, mask uint32) {
	word := m.words[addr]
	if h, ok := m.handlers[addr]; ok && h.Write != nil {
		h.Write(&word, value, mask)
	} else {
		word = (word &^ mask) | (value & mask)
	}
	m.words[addr] = word
}
