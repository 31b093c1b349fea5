package boot_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"omibyte.io/cm3hal/arm/cortexm"
	"omibyte.io/cm3hal/arm/cortexm/stm32/stm32f1"
	"omibyte.io/cm3hal/boot"
	"omibyte.io/cm3hal/sim"
)

const usartConfig = `
chip: stm32f103xb
clock:
  source: hse
prescalers:
  ahb: 1
  apb1: 2
  apb2: 1
priorityGrouping: 3
peripherals: [GPIOA]
interrupts:
  - line: USART1
    preempt: 2
    sub: 1
    enabled: true
    peripheral: USART1
  - line: "6"
    priority: 15
systemHandlers:
  - exception: SysTick
    priority: 14
`

func loadConfig(t *testing.T, src string) *boot.Config {
	t.Helper()
	cfg, err := boot.LoadConfig(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	return cfg
}

func stepIndex(t *testing.T, plan *boot.Plan, prefix string) int {
	t.Helper()
	for i, step := range plan.Steps {
		if strings.HasPrefix(step.Name, prefix) {
			return i
		}
	}
	t.Fatalf("no step starting with %q in %v", prefix, plan.Steps)
	return -1
}

func TestPlanOrder(t *testing.T) {
	plan, err := boot.NewPlan(loadConfig(t, usartConfig))
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if len(plan.Steps) != 9 {
		t.Fatalf("got %d steps, want 9: %v", len(plan.Steps), plan.Steps)
	}

	clock := stepIndex(t, plan, "select system clock")
	prescalers := stepIndex(t, plan, "configure prescalers")
	grouping := stepIndex(t, plan, "set priority grouping")
	usartGate := stepIndex(t, plan, "enable USART1 clock")
	gpioGate := stepIndex(t, plan, "enable GPIOA clock")
	usartPriority := stepIndex(t, plan, "set USART1 priority")
	usartEnable := stepIndex(t, plan, "enable interrupt USART1")
	sysTick := stepIndex(t, plan, "set SysTick priority")

	for _, tc := range []struct {
		name          string
		before, after int
	}{
		{"clock before prescalers", clock, prescalers},
		{"prescalers before grouping", prescalers, grouping},
		{"clock before gates", clock, gpioGate},
		{"gate before interrupt", usartGate, usartPriority},
		{"grouping before interrupt", grouping, usartPriority},
		{"priority before enable", usartPriority, usartEnable},
		{"grouping before system handlers", grouping, sysTick},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if tc.before >= tc.after {
				t.Errorf("step %d (%s) runs after step %d (%s)", tc.before, plan.Steps[tc.before], tc.after, plan.Steps[tc.after])
			}
		})
	}
}

func TestPlanRun(t *testing.T) {
	plan, err := boot.NewPlan(loadConfig(t, usartConfig))
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}

	dev := sim.New(sim.WithReadyDelay(stm32f1.ClockHSE, 3))
	hal := boot.NewHAL(dev, plan.Target, plan.RCCOptions()...)
	var logs bytes.Buffer
	if err := plan.Run(context.Background(), hal, log.New(&logs, "", 0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := hal.RCC.SystemClock(); got != stm32f1.ClockHSE {
		t.Errorf("system clock = %s, want HSE", got)
	}
	want := stm32f1.Prescalers{AHB: stm32f1.AHBDiv1, APB1: stm32f1.APBDiv2, APB2: stm32f1.APBDiv1}
	if got := hal.RCC.Prescalers(); got != want {
		t.Errorf("prescalers = %+v, want %+v", got, want)
	}
	if got := hal.SCB.PriorityGrouping(); got != cortexm.PriorityGroup3 {
		t.Errorf("grouping = %s, want %s", got, cortexm.PriorityGroup3)
	}
	for _, name := range []string{"USART1", "GPIOA"} {
		p := stm32f1.Peripherals[name]
		if !hal.RCC.IsPeripheralClockEnabled(p.Bus, p.Bit) {
			t.Errorf("%s clock not enabled", name)
		}
	}
	if !hal.NVIC.IsEnabled(stm32f1.IRQ_USART1) {
		t.Error("USART1 not enabled")
	}
	if got := hal.NVIC.GetPriority(stm32f1.IRQ_USART1); got != 5 {
		t.Errorf("USART1 priority = %d, want 5", got)
	}
	if hal.NVIC.IsEnabled(stm32f1.IRQ_EXTI0) {
		t.Error("EXTI0 enabled without asking")
	}
	if got := hal.NVIC.GetPriority(stm32f1.IRQ_EXTI0); got != 15 {
		t.Errorf("EXTI0 priority = %d, want 15", got)
	}
	if got := hal.SCB.SystemHandlerPriority(cortexm.SysTick); got != 14 {
		t.Errorf("SysTick priority = %d, want 14", got)
	}
	if n := strings.Count(logs.String(), "boot: ["); n != len(plan.Steps) {
		t.Errorf("logged %d steps, want %d", n, len(plan.Steps))
	}
}

func TestPlanClockFailure(t *testing.T) {
	cfg := loadConfig(t, `
clock:
  source: hse
  readyBudget: 16
interrupts:
  - line: USART1
    priority: 3
    enabled: true
`)
	plan, err := boot.NewPlan(cfg)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}

	dev := sim.New(sim.WithFaultyOscillator(stm32f1.ClockHSE))
	logger := log.New(io.Discard, "", 0)
	hal := boot.NewHAL(dev, plan.Target, append(plan.RCCOptions(), stm32f1.WithLogger(logger))...)
	err = plan.Run(context.Background(), hal, logger)
	if !errors.Is(err, stm32f1.ErrClockNotReady) {
		t.Fatalf("Run error = %v, want ErrClockNotReady", err)
	}
	if got := dev.Polls(stm32f1.ClockHSE); got < 16 {
		t.Errorf("HSE polled %d times, want at least 16", got)
	}
	if hal.NVIC.IsEnabled(stm32f1.IRQ_USART1) {
		t.Error("steps after the failed clock switch ran")
	}
}

func TestPlanCanceled(t *testing.T) {
	plan, err := boot.NewPlan(loadConfig(t, usartConfig))
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dev := sim.New()
	hal := boot.NewHAL(dev, plan.Target)
	if err := plan.Run(ctx, hal, log.New(io.Discard, "", 0)); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if len(dev.Trace()) != 0 {
		t.Errorf("canceled run touched %d registers", len(dev.Trace()))
	}
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		config string
		want   []string
	}{
		{
			name:   "unknown chip",
			config: "chip: stm32f407vg\n",
			want:   []string{"stm32f407vg"},
		},
		{
			name:   "bad clock and dividers",
			config: "clock:\n  source: lse\nprescalers:\n  ahb: 3\n  apb2: 32\n",
			want:   []string{`clock source "lse"`, "ahb divider 3", "apb2 divider 32"},
		},
		{
			name:   "grouping out of range",
			config: "priorityGrouping: 5\n",
			want:   []string{"priorityGrouping 5"},
		},
		{
			name:   "interrupt problems",
			config: "interrupts:\n  - line: SysTick\n  - line: NOPE\n  - line: USART1\n    priority: 16\n  - line: \"60\"\n",
			want:   []string{"systemHandlers", `unknown interrupt "NOPE"`, "priority 16 exceeds 15", "has 60 lines"},
		},
		{
			name:   "preempt without grouping",
			config: "interrupts:\n  - line: USART1\n    preempt: 1\n",
			want:   []string{"needs priorityGrouping"},
		},
		{
			name:   "preempt too wide",
			config: "priorityGrouping: 1\ninterrupts:\n  - line: USART1\n    preempt: 2\n",
			want:   []string{"preempt 2 needs more than 1 bits"},
		},
		{
			name:   "both priority forms",
			config: "priorityGrouping: 2\ninterrupts:\n  - line: USART1\n    priority: 1\n    sub: 1\n",
			want:   []string{"not both"},
		},
		{
			name:   "unknown peripheral",
			config: "peripherals: [UART9]\n",
			want:   []string{`unknown peripheral "UART9"`},
		},
		{
			name:   "fixed priority handler",
			config: "systemHandlers:\n  - exception: HardFault\n    priority: 1\n",
			want:   []string{`"HardFault" is not a configurable`},
		},
		{
			name:   "line out of range",
			config: "interrupts:\n  - line: \"65573\"\n    priority: 3\n    enabled: true\n",
			want:   []string{`interrupt "65573" is out of range`},
		},
		{
			name:   "handler priority too wide",
			config: "systemHandlers:\n  - exception: SysTick\n    priority: 200\n",
			want:   []string{"SysTick priority 200 exceeds 15"},
		},
		{
			name:   "unknown field",
			config: "chip: stm32f103xb\nspeed: fast\n",
			want:   []string{"speed"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := boot.LoadConfig(strings.NewReader(tc.config))
			if !errors.Is(err, boot.ErrInvalidConfig) {
				t.Fatalf("error = %v, want ErrInvalidConfig", err)
			}
			for _, want := range tc.want {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not mention %q", err, want)
				}
			}
		})
	}
}

func TestEmptyConfig(t *testing.T) {
	cfg := loadConfig(t, "")
	plan, err := boot.NewPlan(cfg)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if len(plan.Steps) != 0 {
		t.Errorf("empty config produced steps %v", plan.Steps)
	}
	if plan.Target.Series != "stm32f1" {
		t.Errorf("default target series = %q", plan.Target.Series)
	}
}
