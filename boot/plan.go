// Package boot turns a board configuration into an ordered sequence of HAL
// calls and runs it.
package boot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/graph/topo"

	"omibyte.io/cm3hal/arm/cortexm"
	"omibyte.io/cm3hal/arm/cortexm/stm32/stm32f1"
	"omibyte.io/cm3hal/mmio"
	"omibyte.io/cm3hal/targets"
)

// HAL bundles the controllers a plan drives.
type HAL struct {
	NVIC *cortexm.NVIC
	SCB  *cortexm.SCB
	RCC  *stm32f1.RCC
}

// NewHAL builds the controllers for target on bus.
func NewHAL(bus mmio.Bus, target targets.TargetInfo, opts ...stm32f1.RCCOption) *HAL {
	return &HAL{
		NVIC: cortexm.NewNVIC(bus, target.PriorityBits),
		SCB:  cortexm.NewSCB(bus, target.PriorityBits),
		RCC:  stm32f1.NewRCC(bus, opts...),
	}
}

// Step is one HAL call of a plan.
type Step struct {
	id   int64
	Name string
	run  func(ctx context.Context, hal *HAL) error
}

func (s *Step) ID() int64 {
	return s.id
}

func (s *Step) String() string {
	return s.Name
}

// Plan is a dependency ordered list of steps.
type Plan struct {
	Target targets.TargetInfo
	Steps  []*Step

	readyBudget int
}

type planBuilder struct {
	graph *multi.DirectedGraph
	steps []*Step
	gates map[string]*Step
}

func (b *planBuilder) add(name string, run func(ctx context.Context, hal *HAL) error, after ...*Step) *Step {
	s := &Step{id: int64(len(b.steps)), Name: name, run: run}
	b.steps = append(b.steps, s)
	b.graph.AddNode(s)
	for _, dep := range after {
		if dep != nil {
			b.graph.SetLine(b.graph.NewLine(dep, s))
		}
	}
	return s
}

// NewPlan derives the steps of cfg. The clock is switched first, then the
// bus prescalers and the priority grouping. Peripheral clock gates follow
// the clock, and every interrupt is configured after the grouping and the
// gate of the peripheral that raises it.
func NewPlan(cfg *Config) (*Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	target, err := cfg.Target()
	if err != nil {
		return nil, err
	}

	b := &planBuilder{
		graph: multi.NewDirectedGraph(),
		gates: map[string]*Step{},
	}

	var clock *Step
	if cfg.Clock != nil {
		src, _ := cfg.clockSource()
		clock = b.add("select system clock "+src.String(), func(ctx context.Context, hal *HAL) error {
			return hal.RCC.SelectSystemClock(ctx, src)
		})
	}

	var prescalers *Step
	if cfg.Prescalers != nil {
		p, _ := cfg.prescalers()
		prescalers = b.add(fmt.Sprintf("configure prescalers AHB=%d APB1=%d APB2=%d", orOne(cfg.Prescalers.AHB), orOne(cfg.Prescalers.APB1), orOne(cfg.Prescalers.APB2)),
			func(ctx context.Context, hal *HAL) error {
				hal.RCC.ConfigurePrescalers(p)
				return nil
			}, clock)
	}

	var grouping *Step
	if g, ok := cfg.grouping(); ok {
		grouping = b.add("set priority grouping "+g.String(), func(ctx context.Context, hal *HAL) error {
			hal.SCB.SetPriorityGrouping(g)
			return nil
		}, clock, prescalers)
	}

	gate := func(name string) *Step {
		name = strings.ToUpper(name)
		if s, ok := b.gates[name]; ok {
			return s
		}
		p, _ := lookupPeripheral(name)
		s := b.add(fmt.Sprintf("enable %s clock (%s bit %d)", name, p.Bus, p.Bit), func(ctx context.Context, hal *HAL) error {
			hal.RCC.EnablePeripheralClock(p.Bus, p.Bit)
			return nil
		}, clock, prescalers)
		b.gates[name] = s
		return s
	}
	for _, name := range cfg.Peripherals {
		gate(name)
	}

	for _, hc := range cfg.SystemHandlers {
		exc, _ := cortexm.LookupName(hc.Exception)
		priority := hc.Priority
		b.add(fmt.Sprintf("set %s priority %d", exc, priority), func(ctx context.Context, hal *HAL) error {
			hal.SCB.SetSystemHandlerPriority(exc, priority)
			return nil
		}, grouping)
	}

	for _, ic := range cfg.Interrupts {
		irq, _ := parseInterrupt(ic.Line)
		priority, _ := cfg.priority(ic, target.PriorityBits)
		var dep *Step
		if ic.Peripheral != "" {
			dep = gate(ic.Peripheral)
		}
		prio := b.add(fmt.Sprintf("set %s priority %d", irq, priority), func(ctx context.Context, hal *HAL) error {
			hal.NVIC.SetPriority(irq, priority)
			return nil
		}, grouping, dep)
		if ic.Enabled {
			b.add("enable interrupt "+irq.String(), func(ctx context.Context, hal *HAL) error {
				hal.NVIC.EnableIRQ(irq)
				return nil
			}, prio)
		}
	}

	sorted, err := topo.SortStabilized(b.graph, func(nodes []graph.Node) {
		slices.SortFunc(nodes, func(x, y graph.Node) bool {
			return x.ID() < y.ID()
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanCycle, err)
	}

	plan := &Plan{
		Target: target,
		Steps:  make([]*Step, len(sorted)),
	}
	if cfg.Clock != nil {
		plan.readyBudget = cfg.Clock.ReadyBudget
	}
	for i, node := range sorted {
		plan.Steps[i] = node.(*Step)
	}
	return plan, nil
}

// RCCOptions returns the clock options the configuration asks for.
func (p *Plan) RCCOptions() []stm32f1.RCCOption {
	if p.readyBudget > 0 {
		return []stm32f1.RCCOption{stm32f1.WithReadyBudget(p.readyBudget)}
	}
	return nil
}

// Run executes every step in order and stops at the first failure.
func (p *Plan) Run(ctx context.Context, hal *HAL, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Printf("boot: [%d/%d] %s", i+1, len(p.Steps), step.Name)
		if err := step.run(ctx, hal); err != nil {
			return fmt.Errorf("boot step %q: %w", step.Name, err)
		}
	}
	return nil
}
