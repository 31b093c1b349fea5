package cortexm_test

import (
	"testing"

	"omibyte.io/cm3hal/arm/cortexm"
	"omibyte.io/cm3hal/arm/cortexm/stm32/stm32f1"
	"omibyte.io/cm3hal/mmio"
	"omibyte.io/cm3hal/sim"
)

func TestPriorityGrouping(t *testing.T) {
	dev := sim.New()
	scb := cortexm.NewSCB(dev, 0)

	for _, g := range cortexm.PriorityGroups {
		t.Run(g.String(), func(t *testing.T) {
			scb.SetPriorityGrouping(g)
			if got := scb.PriorityGrouping(); got != g {
				t.Fatalf("PriorityGrouping = %d, want %d", got, g)
			}
		})
	}
}

func TestPriorityGroupingSingleKeyedStore(t *testing.T) {
	dev := sim.New()
	scb := cortexm.NewSCB(dev, 0)

	// Bits outside PRIGROUP survive the write.
	dev.Poke(cortexm.AIRCRAddr, 0x00008000)
	dev.ResetTrace()
	scb.SetPriorityGrouping(cortexm.PriorityGroup2)

	var stores []mmio.Access
	for _, a := range dev.Trace() {
		if a.Op == mmio.OpStore32 {
			stores = append(stores, a)
		}
	}
	if len(stores) != 1 {
		t.Fatalf("got %d stores, want 1: %v", len(stores), stores)
	}
	if want := uint32(0x05FA8500); stores[0].Value != want {
		t.Errorf("AIRCR store = 0x%08X, want 0x%08X", stores[0].Value, want)
	}
}

func TestPriorityGroupingNeedsKey(t *testing.T) {
	dev := sim.New()
	scb := cortexm.NewSCB(dev, 0)

	scb.SetPriorityGrouping(cortexm.PriorityGroup1)
	dev.Store32(cortexm.AIRCRAddr, uint32(cortexm.PriorityGroup3)<<cortexm.AIRCRPriGroupPos)
	if got := scb.PriorityGrouping(); got != cortexm.PriorityGroup1 {
		t.Errorf("unkeyed write changed grouping to %d", got)
	}
}

func TestSplit(t *testing.T) {
	for _, tc := range []struct {
		g            cortexm.PriorityGroup
		bits         uint8
		preempt, sub uint8
	}{
		{cortexm.PriorityGroup0, 4, 0, 4},
		{cortexm.PriorityGroup1, 4, 1, 3},
		{cortexm.PriorityGroup2, 4, 2, 2},
		{cortexm.PriorityGroup3, 4, 3, 1},
		{cortexm.PriorityGroup4, 4, 4, 0},
		{0, 4, 4, 0},
		{cortexm.PriorityGroup2, 3, 2, 1},
		{cortexm.PriorityGroup2, 8, 2, 6},
	} {
		preempt, sub := tc.g.Split(tc.bits)
		if preempt != tc.preempt || sub != tc.sub {
			t.Errorf("PRIGROUP %d with %d bits: got %d/%d, want %d/%d", tc.g, tc.bits, preempt, sub, tc.preempt, tc.sub)
		}
	}
}

func TestEncodeDecodePriority(t *testing.T) {
	for _, g := range cortexm.PriorityGroups {
		preemptBits, subBits := g.Split(4)
		for preempt := uint8(0); preempt < 1<<preemptBits; preempt++ {
			for sub := uint8(0); sub < 1<<subBits; sub++ {
				p := cortexm.EncodePriority(g, 4, preempt, sub)
				if p > 15 {
					t.Fatalf("%s: EncodePriority(%d, %d) = %d", g, preempt, sub, p)
				}
				gotPreempt, gotSub := cortexm.DecodePriority(g, 4, p)
				if gotPreempt != preempt || gotSub != sub {
					t.Errorf("%s: %d/%d round-tripped to %d/%d", g, preempt, sub, gotPreempt, gotSub)
				}
			}
		}
	}

	if got := cortexm.EncodePriority(cortexm.PriorityGroup3, 4, 9, 3); got != 0x3 {
		t.Errorf("out of range parts not truncated: got %d", got)
	}
}

func TestPriorityGroupFor(t *testing.T) {
	for bits := uint8(0); bits <= 4; bits++ {
		g, ok := cortexm.PriorityGroupFor(bits)
		if !ok {
			t.Fatalf("PriorityGroupFor(%d) failed", bits)
		}
		if preempt, _ := g.Split(4); preempt != bits {
			t.Errorf("PriorityGroupFor(%d) gives %d pre-emption bits", bits, preempt)
		}
	}
	if _, ok := cortexm.PriorityGroupFor(5); ok {
		t.Error("PriorityGroupFor(5) succeeded")
	}
}

func TestSystemHandlerPriority(t *testing.T) {
	dev := sim.New()
	scb := cortexm.NewSCB(dev, 0)

	for _, tc := range []struct {
		exc  cortexm.Interrupt
		addr uintptr
	}{
		{cortexm.MemoryManagement, cortexm.SHPR1Addr},
		{cortexm.BusFault, cortexm.SHPR1Addr + 1},
		{cortexm.UsageFault, cortexm.SHPR1Addr + 2},
		{cortexm.SVCall, cortexm.SHPR2Addr + 3},
		{cortexm.DebugMonitor, cortexm.SHPR3Addr},
		{cortexm.PendSV, cortexm.SHPR3Addr + 2},
		{cortexm.SysTick, cortexm.SHPR3Addr + 3},
	} {
		t.Run(tc.exc.String(), func(t *testing.T) {
			scb.SetSystemHandlerPriority(tc.exc, 0xC)
			if got := scb.SystemHandlerPriority(tc.exc); got != 0xC {
				t.Errorf("priority = %d, want 12", got)
			}
			if raw := dev.Load8(tc.addr); raw != 0xC0 {
				t.Errorf("byte at 0x%08X = 0x%02X, want 0xC0", tc.addr, raw)
			}
		})
	}

	dev.ResetTrace()
	scb.SetSystemHandlerPriority(cortexm.HardFault, 1)
	scb.SetSystemHandlerPriority(stm32f1.IRQ_USART1, 1)
	if n := len(dev.Trace()); n != 0 {
		t.Errorf("fixed or device exceptions made %d accesses", n)
	}
}

// TestUSART1Scenario is the bring-up sequence of a serial driver: three
// bits of pre-emption priority, USART1 in the middle of the range and
// enabled.
func TestUSART1Scenario(t *testing.T) {
	dev := sim.New()
	nvic := cortexm.NewNVIC(dev, stm32f1.PriorityBits)
	scb := cortexm.NewSCB(dev, stm32f1.PriorityBits)

	g, _ := cortexm.PriorityGroupFor(3)
	scb.SetPriorityGrouping(g)
	priority := cortexm.EncodePriority(g, stm32f1.PriorityBits, 4, 0)
	nvic.SetPriority(stm32f1.IRQ_USART1, priority)
	nvic.EnableIRQ(stm32f1.IRQ_USART1)

	if got := scb.PriorityGrouping(); got != cortexm.PriorityGroup3 {
		t.Errorf("grouping = %s", got)
	}
	if got := nvic.GetPriority(stm32f1.IRQ_USART1); got != 8 {
		t.Errorf("priority = %d, want 8", got)
	}
	if preempt, sub := cortexm.DecodePriority(g, stm32f1.PriorityBits, nvic.GetPriority(stm32f1.IRQ_USART1)); preempt != 4 || sub != 0 {
		t.Errorf("decoded %d/%d, want 4/0", preempt, sub)
	}
	if !nvic.IsEnabled(stm32f1.IRQ_USART1) {
		t.Error("USART1 not enabled")
	}
	if raw := dev.Peek(cortexm.ISERAddr(stm32f1.IRQ_USART1)); raw != 1<<5 {
		t.Errorf("ISER1 = 0x%08X, want 0x20", raw)
	}
}
