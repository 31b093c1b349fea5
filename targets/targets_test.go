package targets

import (
	"errors"
	"testing"
)

func TestCatalogue(t *testing.T) {
	tests := []struct {
		name         string
		series       string
		priorityBits uint8
		irqCount     int
	}{
		{"stm32f103xb", "stm32f1", 4, 60},
		{"STM32F103X8", "stm32f1", 4, 60},
		{"stm32f107xc", "stm32f1cl", 4, 68},
		{"stm32f1", "stm32f1", 4, 60},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target, err := All().Find(tc.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if target.Series != tc.series {
				t.Errorf("series = %q, want %q", target.Series, tc.series)
			}
			if target.PriorityBits != tc.priorityBits {
				t.Errorf("priorityBits = %d, want %d", target.PriorityBits, tc.priorityBits)
			}
			if target.IRQCount != tc.irqCount {
				t.Errorf("irqCount = %d, want %d", target.IRQCount, tc.irqCount)
			}
			if target.NVICBase != 0xE000E100 || target.SCBBase != 0xE000ED00 || target.RCCBase != 0x40021000 {
				t.Errorf("unexpected base addresses: %+v", target)
			}
		})
	}
}

func TestUnknownTarget(t *testing.T) {
	if _, err := All().Find("atsamd21g18a"); !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("expected ErrTargetNotFound, got %v", err)
	}
}

func TestHasIRQ(t *testing.T) {
	target, err := All().FindBySeries("stm32f1")
	if err != nil {
		t.Fatal(err)
	}
	if !target.HasIRQ(59) || target.HasIRQ(60) || target.HasIRQ(-1) {
		t.Errorf("HasIRQ disagrees with irqCount %d", target.IRQCount)
	}
}
