package cortexm

import (
	"fmt"

	"omibyte.io/cm3hal/mmio"
)

// System control block register map.
const (
	SCBBase uintptr = 0xE000ED00

	AIRCRAddr uintptr = SCBBase + 0x0C
	SHPR1Addr uintptr = SCBBase + 0x18
	SHPR2Addr uintptr = SCBBase + 0x1C
	SHPR3Addr uintptr = SCBBase + 0x20

	AIRCRVectKey         uint32 = 0x05FA
	AIRCRVectKeyStat     uint32 = 0xFA05
	AIRCRVectKeyPos      uint32 = 16
	AIRCRVectKeyMask     uint32 = 0xFFFF << AIRCRVectKeyPos
	AIRCRPriGroupPos     uint32 = 8
	AIRCRPriGroupMask    uint32 = 0x7 << AIRCRPriGroupPos
	aircrKeyPriGroupKeep uint32 = 0xF8FF
)

// PriorityGroup is the AIRCR.PRIGROUP encoding that splits a priority byte
// into pre-emption priority and sub-priority.
type PriorityGroup uint32

const (
	PriorityGroup0 PriorityGroup = 7 // 0 bits pre-emption, 4 bits sub
	PriorityGroup1 PriorityGroup = 6 // 1 bit pre-emption, 3 bits sub
	PriorityGroup2 PriorityGroup = 5 // 2 bits pre-emption, 2 bits sub
	PriorityGroup3 PriorityGroup = 4 // 3 bits pre-emption, 1 bit sub
	PriorityGroup4 PriorityGroup = 3 // 4 bits pre-emption, 0 bits sub
)

// PriorityGroups lists the encodings meaningful with four implemented
// priority bits, from no pre-emption bits to all pre-emption bits.
var PriorityGroups = []PriorityGroup{
	PriorityGroup0,
	PriorityGroup1,
	PriorityGroup2,
	PriorityGroup3,
	PriorityGroup4,
}

// PriorityGroupFor returns the encoding that gives preemptBits pre-emption
// bits out of DefaultPriorityBits.
func PriorityGroupFor(preemptBits uint8) (PriorityGroup, bool) {
	if preemptBits > DefaultPriorityBits {
		return 0, false
	}
	return PriorityGroup(7 - uint32(preemptBits)), true
}

// Split returns the number of pre-emption and sub-priority bits this
// encoding yields for the given number of implemented priority bits.
func (g PriorityGroup) Split(priorityBits uint8) (preempt, sub uint8) {
	group := uint8(g & 7)
	preempt = 7 - group
	if preempt > priorityBits {
		preempt = priorityBits
	}
	if group+priorityBits >= 7 {
		sub = group + priorityBits - 7
	}
	return preempt, sub
}

func (g PriorityGroup) String() string {
	preempt, sub := g.Split(DefaultPriorityBits)
	return fmt.Sprintf("PRIGROUP=%d (%d group/%d sub)", uint32(g&7), preempt, sub)
}

// EncodePriority composes a logical priority for NVIC.SetPriority out of a
// pre-emption priority and a sub-priority. Out of range parts are truncated.
func EncodePriority(g PriorityGroup, priorityBits, preempt, sub uint8) uint8 {
	preemptBits, subBits := g.Split(priorityBits)
	preempt &= uint8(1<<preemptBits) - 1
	sub &= uint8(1<<subBits) - 1
	return preempt<<subBits | sub
}

// DecodePriority is the inverse of EncodePriority.
func DecodePriority(g PriorityGroup, priorityBits, priority uint8) (preempt, sub uint8) {
	preemptBits, subBits := g.Split(priorityBits)
	preempt = (priority >> subBits) & (uint8(1<<preemptBits) - 1)
	sub = priority & (uint8(1<<subBits) - 1)
	return preempt, sub
}

// SCB is the part of the system control block that configures priorities.
type SCB struct {
	aircr mmio.Register32
	bus   mmio.Bus
	shift uint8
}

// NewSCB returns a controller for the SCB on bus. priorityBits has the same
// meaning as for NewNVIC.
func NewSCB(bus mmio.Bus, priorityBits uint8) *SCB {
	if priorityBits == 0 || priorityBits > 8 {
		priorityBits = DefaultPriorityBits
	}
	return &SCB{
		aircr: mmio.Reg(bus, AIRCRAddr),
		bus:   bus,
		shift: 8 - priorityBits,
	}
}

// SetPriorityGrouping writes PRIGROUP. The key must be part of the same
// store that changes the field or the core drops the write, so the new
// value is composed first and written once. The remaining AIRCR bits are
// preserved.
func (s *SCB) SetPriorityGrouping(g PriorityGroup) {
	group := uint32(g) & 0x7
	v := s.aircr.Get()
	v &= aircrKeyPriGroupKeep
	v |= AIRCRVectKey<<AIRCRVectKeyPos | group<<AIRCRPriGroupPos
	s.aircr.Set(v)
}

// PriorityGrouping reads PRIGROUP back. No key is needed for reads.
func (s *SCB) PriorityGrouping() PriorityGroup {
	return PriorityGroup((s.aircr.Get() & AIRCRPriGroupMask) >> AIRCRPriGroupPos)
}

// shprAddr returns the SHPR byte of a configurable core exception.
func shprAddr(exc Interrupt) (uintptr, bool) {
	switch exc {
	case MemoryManagement, BusFault, UsageFault, SVCall, DebugMonitor, PendSV, SysTick:
		// SHPR1 byte 0 holds exception 4, MemoryManagement is -12.
		return SHPR1Addr + uintptr(exc+12), true
	}
	return 0, false
}

// SetSystemHandlerPriority sets the priority of a configurable core
// exception, left-aligned like device priorities. Other numbers are
// ignored.
func (s *SCB) SetSystemHandlerPriority(exc Interrupt, priority uint8) {
	if addr, ok := shprAddr(exc); ok {
		s.bus.Store8(addr, priority<<s.shift)
	}
}

// SystemHandlerPriority returns the priority of a configurable core
// exception, or 0.
func (s *SCB) SystemHandlerPriority(exc Interrupt) uint8 {
	addr, ok := shprAddr(exc)
	if !ok {
		return 0
	}
	return s.bus.Load8(addr) >> s.shift
}
