package stm32f1

import (
	"context"
	"fmt"
	"log"

	"omibyte.io/cm3hal/mmio"
)

// RCC register map.
const (
	RCCBase uintptr = 0x40021000

	CRAddr      uintptr = RCCBase + 0x00
	CFGRAddr    uintptr = RCCBase + 0x04
	AHBENRAddr  uintptr = RCCBase + 0x14
	APB2ENRAddr uintptr = RCCBase + 0x18
	APB1ENRAddr uintptr = RCCBase + 0x1C
)

// RCC_CR bits.
const (
	CR_HSION  uint32 = 1 << 0
	CR_HSIRDY uint32 = 1 << 1
	CR_HSEON  uint32 = 1 << 16
	CR_HSERDY uint32 = 1 << 17
	CR_CSSON  uint32 = 1 << 19
	CR_PLLON  uint32 = 1 << 24
	CR_PLLRDY uint32 = 1 << 25
)

// RCC_CFGR fields.
const (
	CFGR_SW_Pos    = 0
	CFGR_SW_Msk    = 0x3
	CFGR_SWS_Pos   = 2
	CFGR_SWS_Msk   = 0x3
	CFGR_HPRE_Pos  = 4
	CFGR_HPRE_Msk  = 0xF
	CFGR_PPRE1_Pos = 8
	CFGR_PPRE1_Msk = 0x7
	CFGR_PPRE2_Pos = 11
	CFGR_PPRE2_Msk = 0x7
)

// DefaultReadyBudget is the number of polls of an oscillator ready flag
// before SelectSystemClock gives up.
const DefaultReadyBudget = 0x0500

// ClockSource is the value of the CFGR.SW system clock mux.
type ClockSource uint8

const (
	ClockHSI ClockSource = 0
	ClockHSE ClockSource = 1
	ClockPLL ClockSource = 2
)

func (s ClockSource) String() string {
	switch s {
	case ClockHSI:
		return "HSI"
	case ClockHSE:
		return "HSE"
	case ClockPLL:
		return "PLL"
	}
	return fmt.Sprintf("ClockSource(%d)", uint8(s))
}

// bits returns the enable and ready flags in RCC_CR for the source.
func (s ClockSource) bits() (on, rdy uint32, ok bool) {
	switch s {
	case ClockHSI:
		return CR_HSION, CR_HSIRDY, true
	case ClockHSE:
		return CR_HSEON, CR_HSERDY, true
	case ClockPLL:
		return CR_PLLON, CR_PLLRDY, true
	}
	return 0, 0, false
}

// AHB prescaler encodings for Prescalers.AHB.
const (
	AHBDiv1   uint32 = 0b0000
	AHBDiv2   uint32 = 0b1000
	AHBDiv4   uint32 = 0b1001
	AHBDiv8   uint32 = 0b1010
	AHBDiv16  uint32 = 0b1011
	AHBDiv64  uint32 = 0b1100
	AHBDiv128 uint32 = 0b1101
	AHBDiv256 uint32 = 0b1110
	AHBDiv512 uint32 = 0b1111
)

// APB1 and APB2 prescaler encodings.
const (
	APBDiv1  uint32 = 0b000
	APBDiv2  uint32 = 0b100
	APBDiv4  uint32 = 0b101
	APBDiv8  uint32 = 0b110
	APBDiv16 uint32 = 0b111
)

// Prescalers holds raw CFGR field encodings. They are written as given,
// without checking that the pattern is a legal divider.
type Prescalers struct {
	AHB  uint32
	APB1 uint32
	APB2 uint32
}

type RCCOption func(*RCC)

// WithReadyBudget sets how many times SelectSystemClock polls a ready flag.
func WithReadyBudget(polls int) RCCOption {
	return func(r *RCC) {
		if polls > 0 {
			r.readyBudget = polls
		}
	}
}

func WithLogger(logger *log.Logger) RCCOption {
	return func(r *RCC) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// RCC is the reset and clock control block.
type RCC struct {
	cr   mmio.Register32
	cfgr mmio.Register32
	enr  [3]mmio.Register32

	sw    mmio.Field
	sws   mmio.Field
	hpre  mmio.Field
	ppre1 mmio.Field
	ppre2 mmio.Field

	readyBudget int
	logger      *log.Logger
}

func NewRCC(bus mmio.Bus, opts ...RCCOption) *RCC {
	cfgr := mmio.Reg(bus, CFGRAddr)
	r := &RCC{
		cr:   mmio.Reg(bus, CRAddr),
		cfgr: cfgr,
		enr: [3]mmio.Register32{
			BusAHB:  mmio.Reg(bus, AHBENRAddr),
			BusAPB1: mmio.Reg(bus, APB1ENRAddr),
			BusAPB2: mmio.Reg(bus, APB2ENRAddr),
		},
		sw:          mmio.Field{Reg: cfgr, Pos: CFGR_SW_Pos, Mask: CFGR_SW_Msk},
		sws:         mmio.Field{Reg: cfgr, Pos: CFGR_SWS_Pos, Mask: CFGR_SWS_Msk},
		hpre:        mmio.Field{Reg: cfgr, Pos: CFGR_HPRE_Pos, Mask: CFGR_HPRE_Msk},
		ppre1:       mmio.Field{Reg: cfgr, Pos: CFGR_PPRE1_Pos, Mask: CFGR_PPRE1_Msk},
		ppre2:       mmio.Field{Reg: cfgr, Pos: CFGR_PPRE2_Pos, Mask: CFGR_PPRE2_Msk},
		readyBudget: DefaultReadyBudget,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SelectSystemClock switches the system clock mux to src. The source's
// oscillator is enabled first and the mux is only written once its ready
// flag has been observed. The clock security system is enabled on every
// call with a known source, including one that times out.
//
// The wait is bounded by the ready budget and by ctx. On timeout the mux is
// left untouched and an error wrapping ErrClockNotReady is returned.
func (r *RCC) SelectSystemClock(ctx context.Context, src ClockSource) error {
	on, rdy, ok := src.bits()
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidClockSource, uint8(src))
	}

	r.cr.SetBits(on)
	err := r.waitReady(ctx, src, rdy)
	if err == nil {
		r.sw.Set(uint32(src))
	}
	r.cr.SetBits(CR_CSSON)
	return err
}

func (r *RCC) waitReady(ctx context.Context, src ClockSource, rdy uint32) error {
	for i := 0; i < r.readyBudget; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("waiting for %s: %w", src, err)
		}
		if r.cr.HasBits(rdy) {
			return nil
		}
	}
	r.logger.Printf("rcc: %s not ready after %d polls, system clock unchanged", src, r.readyBudget)
	return fmt.Errorf("%w: %s after %d polls", ErrClockNotReady, src, r.readyBudget)
}

// SystemClock returns the source the mux reports as in use.
func (r *RCC) SystemClock() ClockSource {
	return ClockSource(r.sws.Get())
}

// ConfigurePrescalers rewrites the three bus divider fields one at a time.
// Every other CFGR bit, including the mux, is preserved.
func (r *RCC) ConfigurePrescalers(p Prescalers) {
	r.ppre1.Set(p.APB1)
	r.ppre2.Set(p.APB2)
	r.hpre.Set(p.AHB)
}

// Prescalers reads the divider fields back.
func (r *RCC) Prescalers() Prescalers {
	return Prescalers{
		AHB:  r.hpre.Get(),
		APB1: r.ppre1.Get(),
		APB2: r.ppre2.Get(),
	}
}

// EnablePeripheralClock gates on the clock of one peripheral. Unknown buses
// are ignored.
func (r *RCC) EnablePeripheralClock(bus Bus, bit uint8) {
	if reg, ok := r.enableRegister(bus); ok {
		reg.SetBits(1 << (bit & 0x1F))
	}
}

// DisablePeripheralClock gates off the clock of one peripheral. Unknown
// buses are ignored.
func (r *RCC) DisablePeripheralClock(bus Bus, bit uint8) {
	if reg, ok := r.enableRegister(bus); ok {
		reg.ClearBits(1 << (bit & 0x1F))
	}
}

func (r *RCC) IsPeripheralClockEnabled(bus Bus, bit uint8) bool {
	reg, ok := r.enableRegister(bus)
	if !ok {
		return false
	}
	return reg.HasBits(1 << (bit & 0x1F))
}

func (r *RCC) enableRegister(bus Bus) (mmio.Register32, bool) {
	if int(bus) >= len(r.enr) {
		return mmio.Register32{}, false
	}
	return r.enr[bus], true
}
