// Package mmio is the device register view shared by every peripheral
// driver. Drivers never hold register values of their own; each accessor
// goes straight to the Bus so the device sees every load and store, in
// program order.
package mmio

// Bus performs single, unbuffered accesses to memory-mapped registers.
// Implementations must not cache, merge or reorder accesses.
type Bus interface {
	Load32(addr uintptr) uint32
	Store32(addr uintptr, value uint32)
	Load8(addr uintptr) uint8
	Store8(addr uintptr, value uint8)
}

// Register32 is a 32-bit register at a fixed address on a Bus.
type Register32 struct {
	Bus  Bus
	Addr uintptr
}

// Reg returns the 32-bit register at addr.
func Reg(bus Bus, addr uintptr) Register32 {
	return Register32{Bus: bus, Addr: addr}
}

func (r Register32) Get() uint32 {
	return r.Bus.Load32(r.Addr)
}

func (r Register32) Set(value uint32) {
	r.Bus.Store32(r.Addr, value)
}

// SetBits performs a read-modify-write that sets the given bits.
func (r Register32) SetBits(bits uint32) {
	r.Set(r.Get() | bits)
}

// ClearBits performs a read-modify-write that clears the given bits.
func (r Register32) ClearBits(bits uint32) {
	r.Set(r.Get() &^ bits)
}

// HasBits reports whether all of the given bits are set.
func (r Register32) HasBits(bits uint32) bool {
	return r.Get()&bits == bits
}

// ReplaceBits replaces the field mask<<pos with value in one load and one
// store. Bits of value outside mask are dropped.
func (r Register32) ReplaceBits(value, mask uint32, pos uint8) {
	v := r.Get()
	v &^= mask << pos
	v |= (value & mask) << pos
	r.Set(v)
}

// Field is a named bit field inside a shared register word.
type Field struct {
	Reg  Register32
	Pos  uint8
	Mask uint32
}

// Get returns the field right-aligned.
func (f Field) Get() uint32 {
	return (f.Reg.Get() >> f.Pos) & f.Mask
}

// Set rewrites only this field and preserves every other bit of the word.
func (f Field) Set(value uint32) {
	f.Reg.ReplaceBits(value, f.Mask, f.Pos)
}

// Bits returns the in-place mask of the field.
func (f Field) Bits() uint32 {
	return f.Mask << f.Pos
}

// Value returns value truncated to the field and shifted into position, for
// composing a single write out of several fields.
func (f Field) Value(value uint32) uint32 {
	return (value & f.Mask) << f.Pos
}
