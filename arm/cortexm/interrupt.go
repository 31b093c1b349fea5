package cortexm

import (
	"strconv"

	"omibyte.io/cm3hal/mmio"
)

// Interrupt is an exception number relative to the first device interrupt.
// Negative values are core exceptions, non-negative values are device
// interrupt lines.
type Interrupt int16

const (
	NonMaskableInt   Interrupt = -14
	HardFault        Interrupt = -13
	MemoryManagement Interrupt = -12
	BusFault         Interrupt = -11
	UsageFault       Interrupt = -10
	SVCall           Interrupt = -5
	DebugMonitor     Interrupt = -4
	PendSV           Interrupt = -2
	SysTick          Interrupt = -1
)

var coreNames = map[Interrupt]string{
	NonMaskableInt:   "NonMaskableInt",
	HardFault:        "HardFault",
	MemoryManagement: "MemoryManagement",
	BusFault:         "BusFault",
	UsageFault:       "UsageFault",
	SVCall:           "SVCall",
	DebugMonitor:     "DebugMonitor",
	PendSV:           "PendSV",
	SysTick:          "SysTick",
}

// deviceNames is filled in by the chip package for its device lines.
var deviceNames = map[Interrupt]string{}

// RegisterNames attaches names to device interrupt lines. Chip packages call
// it from init.
func RegisterNames(names map[Interrupt]string) {
	for irq, name := range names {
		deviceNames[irq] = name
	}
}

// LookupName returns the interrupt with the given name.
func LookupName(name string) (Interrupt, bool) {
	for irq, n := range coreNames {
		if n == name {
			return irq, true
		}
	}
	for irq, n := range deviceNames {
		if n == name {
			return irq, true
		}
	}
	return 0, false
}

// Names returns every named exception and interrupt line.
func Names() map[Interrupt]string {
	names := make(map[Interrupt]string, len(coreNames)+len(deviceNames))
	for irq, name := range coreNames {
		names[irq] = name
	}
	for irq, name := range deviceNames {
		names[irq] = name
	}
	return names
}

// IsDevice reports whether i addresses a device interrupt line.
func (i Interrupt) IsDevice() bool {
	return i >= 0
}

func (i Interrupt) String() string {
	if name, ok := coreNames[i]; ok {
		return name
	}
	if name, ok := deviceNames[i]; ok {
		return name
	}
	return "IRQ" + strconv.Itoa(int(i))
}

// NVIC register map.
const (
	NVICBase uintptr = 0xE000E100

	nvicISER uintptr = NVICBase + 0x000
	nvicICER uintptr = NVICBase + 0x080
	nvicISPR uintptr = NVICBase + 0x100
	nvicICPR uintptr = NVICBase + 0x180
	nvicIABR uintptr = NVICBase + 0x200
	nvicIP   uintptr = NVICBase + 0x300
	nvicSTIR uintptr = 0xE000EF00

	// NVICWords is the number of 32-bit words in each bitmap register array.
	NVICWords = 8
	// NVICLines is the size of the priority byte array.
	NVICLines = 240

	// DefaultPriorityBits is the number of implemented priority bits on
	// STM32F1 parts.
	DefaultPriorityBits = 4
)

// ISERAddr etc. return the address of the bitmap word holding line i.
func ISERAddr(i Interrupt) uintptr { return nvicISER + bitmapOffset(i) }
func ICERAddr(i Interrupt) uintptr { return nvicICER + bitmapOffset(i) }
func ISPRAddr(i Interrupt) uintptr { return nvicISPR + bitmapOffset(i) }
func ICPRAddr(i Interrupt) uintptr { return nvicICPR + bitmapOffset(i) }
func IABRAddr(i Interrupt) uintptr { return nvicIABR + bitmapOffset(i) }

// IPAddr returns the address of the priority byte of line i.
func IPAddr(i Interrupt) uintptr { return nvicIP + uintptr(i) }

// STIRAddr is the software trigger interrupt register.
const STIRAddr = nvicSTIR

func bitmapOffset(i Interrupt) uintptr {
	return uintptr(i>>5) * 4
}

func bitmapBit(i Interrupt) uint32 {
	return 1 << (uint32(i) & 0x1F)
}

// NVIC is the nested vectored interrupt controller. It keeps no state of its
// own; every call is a direct register access. Calls with a core exception
// number are ignored, reads return the zero value.
type NVIC struct {
	bus   mmio.Bus
	shift uint8
}

// NewNVIC returns a controller for the NVIC on bus. priorityBits is the
// number of implemented priority bits, 0 selects DefaultPriorityBits.
func NewNVIC(bus mmio.Bus, priorityBits uint8) *NVIC {
	if priorityBits == 0 || priorityBits > 8 {
		priorityBits = DefaultPriorityBits
	}
	return &NVIC{
		bus:   bus,
		shift: 8 - priorityBits,
	}
}

// PriorityBits returns the number of implemented priority bits.
func (n *NVIC) PriorityBits() uint8 {
	return 8 - n.shift
}

func (n *NVIC) valid(i Interrupt) bool {
	return i >= 0 && int(i) < NVICLines
}

func (n *NVIC) EnableIRQ(i Interrupt) {
	if n.valid(i) {
		n.bus.Store32(ISERAddr(i), bitmapBit(i))
	}
}

// DisableIRQ writes a single one to ICER. ICER reads back the enable state
// of the whole word, so a read-modify-write here would disable every
// enabled line sharing the word.
func (n *NVIC) DisableIRQ(i Interrupt) {
	if n.valid(i) {
		n.bus.Store32(ICERAddr(i), bitmapBit(i))
	}
}

func (n *NVIC) IsEnabled(i Interrupt) bool {
	if !n.valid(i) {
		return false
	}
	return n.bus.Load32(ISERAddr(i))&bitmapBit(i) != 0
}

// SetPendingIRQ marks line i pending whether or not it is enabled.
func (n *NVIC) SetPendingIRQ(i Interrupt) {
	if n.valid(i) {
		n.bus.Store32(ISPRAddr(i), bitmapBit(i))
	}
}

func (n *NVIC) ClearPendingIRQ(i Interrupt) {
	if n.valid(i) {
		n.bus.Store32(ICPRAddr(i), bitmapBit(i))
	}
}

func (n *NVIC) IsPending(i Interrupt) bool {
	if !n.valid(i) {
		return false
	}
	return n.bus.Load32(ISPRAddr(i))&bitmapBit(i) != 0
}

// IsActive reports whether the handler for line i is running or has been
// pre-empted.
func (n *NVIC) IsActive(i Interrupt) bool {
	if !n.valid(i) {
		return false
	}
	return n.bus.Load32(IABRAddr(i))&bitmapBit(i) != 0
}

// SetPriority stores priority left-aligned in the line's priority byte so
// that it lines up with the PRIGROUP split. The whole byte is written, the
// unimplemented low bits end up zero.
func (n *NVIC) SetPriority(i Interrupt, priority uint8) {
	if n.valid(i) {
		n.bus.Store8(IPAddr(i), priority<<n.shift)
	}
}

// GetPriority returns the value passed to SetPriority, or 0 for a core
// exception.
func (n *NVIC) GetPriority(i Interrupt) uint8 {
	if !n.valid(i) {
		return 0
	}
	return n.bus.Load8(IPAddr(i)) >> n.shift
}

// TriggerIRQ pends line i through the software trigger register.
func (n *NVIC) TriggerIRQ(i Interrupt) {
	if n.valid(i) {
		n.bus.Store32(STIRAddr, uint32(i)&0x1FF)
	}
}
