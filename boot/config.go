package boot

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/cm3hal/arm/cortexm"
	"omibyte.io/cm3hal/arm/cortexm/stm32/stm32f1"
	"omibyte.io/cm3hal/targets"
)

// DefaultChip is used when a configuration does not name one.
const DefaultChip = "stm32f103xb"

// Config describes how a board is brought up.
type Config struct {
	Chip             string            `yaml:"chip"`
	Clock            *ClockConfig      `yaml:"clock"`
	Prescalers       *PrescalerConfig  `yaml:"prescalers"`
	PriorityGrouping *uint8            `yaml:"priorityGrouping"`
	Peripherals      []string          `yaml:"peripherals"`
	Interrupts       []InterruptConfig `yaml:"interrupts"`
	SystemHandlers   []HandlerConfig   `yaml:"systemHandlers"`
}

type ClockConfig struct {
	Source      string `yaml:"source"`
	ReadyBudget int    `yaml:"readyBudget"`
}

// PrescalerConfig holds bus dividers as plain ratios, e.g. 1, 2 or 512.
type PrescalerConfig struct {
	AHB  uint32 `yaml:"ahb"`
	APB1 uint32 `yaml:"apb1"`
	APB2 uint32 `yaml:"apb2"`
}

// InterruptConfig configures one device interrupt line. The priority is
// either given directly or as a pre-emption/sub-priority pair.
type InterruptConfig struct {
	Line       string `yaml:"line"`
	Priority   *uint8 `yaml:"priority"`
	Preempt    *uint8 `yaml:"preempt"`
	Sub        *uint8 `yaml:"sub"`
	Enabled    bool   `yaml:"enabled"`
	Peripheral string `yaml:"peripheral"`
}

// HandlerConfig sets the priority of a configurable core exception.
type HandlerConfig struct {
	Exception string `yaml:"exception"`
	Priority  uint8  `yaml:"priority"`
}

var ahbDividers = map[uint32]uint32{
	1:   stm32f1.AHBDiv1,
	2:   stm32f1.AHBDiv2,
	4:   stm32f1.AHBDiv4,
	8:   stm32f1.AHBDiv8,
	16:  stm32f1.AHBDiv16,
	64:  stm32f1.AHBDiv64,
	128: stm32f1.AHBDiv128,
	256: stm32f1.AHBDiv256,
	512: stm32f1.AHBDiv512,
}

var apbDividers = map[uint32]uint32{
	1:  stm32f1.APBDiv1,
	2:  stm32f1.APBDiv2,
	4:  stm32f1.APBDiv4,
	8:  stm32f1.APBDiv8,
	16: stm32f1.APBDiv16,
}

var clockSources = map[string]stm32f1.ClockSource{
	"hsi": stm32f1.ClockHSI,
	"hse": stm32f1.ClockHSE,
	"pll": stm32f1.ClockPLL,
}

// LoadConfig decodes and validates a YAML board configuration.
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Target returns the catalogue entry of the configured chip.
func (c *Config) Target() (targets.TargetInfo, error) {
	chip := c.Chip
	if chip == "" {
		chip = DefaultChip
	}
	return targets.All().Find(chip)
}

// Validate checks every entry and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	target, err := c.Target()
	if err != nil {
		errs = append(errs, err)
	}

	if c.Clock != nil {
		if _, err := c.clockSource(); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Prescalers != nil {
		if _, err := c.prescalers(); err != nil {
			errs = append(errs, err)
		}
	}

	if c.PriorityGrouping != nil {
		if _, ok := cortexm.PriorityGroupFor(*c.PriorityGrouping); !ok {
			errs = append(errs, fmt.Errorf("priorityGrouping %d: must be 0 to %d pre-emption bits", *c.PriorityGrouping, cortexm.DefaultPriorityBits))
		}
	}

	for _, name := range c.Peripherals {
		if _, err := lookupPeripheral(name); err != nil {
			errs = append(errs, err)
		}
	}

	for _, ic := range c.Interrupts {
		irq, err := parseInterrupt(ic.Line)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !irq.IsDevice() {
			errs = append(errs, fmt.Errorf("interrupt %s: core exceptions belong in systemHandlers", irq))
			continue
		}
		if target.IRQCount > 0 && !target.HasIRQ(int(irq)) {
			errs = append(errs, fmt.Errorf("interrupt %s: %s has %d lines", irq, target.Series, target.IRQCount))
		}
		if _, err := c.priority(ic, target.PriorityBits); err != nil {
			errs = append(errs, fmt.Errorf("interrupt %s: %w", irq, err))
		}
		if ic.Peripheral != "" {
			if _, err := lookupPeripheral(ic.Peripheral); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, hc := range c.SystemHandlers {
		exc, ok := cortexm.LookupName(hc.Exception)
		if !ok || exc.IsDevice() || exc == cortexm.NonMaskableInt || exc == cortexm.HardFault {
			errs = append(errs, fmt.Errorf("systemHandlers: %q is not a configurable core exception", hc.Exception))
			continue
		}
		if limit := priorityLimit(target.PriorityBits); hc.Priority > limit {
			errs = append(errs, fmt.Errorf("systemHandlers: %s priority %d exceeds %d", exc, hc.Priority, limit))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

func (c *Config) clockSource() (stm32f1.ClockSource, error) {
	src, ok := clockSources[strings.ToLower(c.Clock.Source)]
	if !ok {
		return 0, fmt.Errorf("clock source %q: want one of %s", c.Clock.Source, strings.Join(sortedKeys(clockSources), ", "))
	}
	return src, nil
}

func (c *Config) prescalers() (stm32f1.Prescalers, error) {
	var errs []error
	ahb, ok := ahbDividers[orOne(c.Prescalers.AHB)]
	if !ok {
		errs = append(errs, fmt.Errorf("ahb divider %d is not supported", c.Prescalers.AHB))
	}
	apb1, ok := apbDividers[orOne(c.Prescalers.APB1)]
	if !ok {
		errs = append(errs, fmt.Errorf("apb1 divider %d is not supported", c.Prescalers.APB1))
	}
	apb2, ok := apbDividers[orOne(c.Prescalers.APB2)]
	if !ok {
		errs = append(errs, fmt.Errorf("apb2 divider %d is not supported", c.Prescalers.APB2))
	}
	if len(errs) > 0 {
		return stm32f1.Prescalers{}, errors.Join(errs...)
	}
	return stm32f1.Prescalers{AHB: ahb, APB1: apb1, APB2: apb2}, nil
}

func (c *Config) grouping() (cortexm.PriorityGroup, bool) {
	if c.PriorityGrouping == nil {
		return 0, false
	}
	return cortexm.PriorityGroupFor(*c.PriorityGrouping)
}

// priority resolves the logical priority of an interrupt entry.
func (c *Config) priority(ic InterruptConfig, priorityBits uint8) (uint8, error) {
	if priorityBits == 0 {
		priorityBits = cortexm.DefaultPriorityBits
	}
	limit := priorityLimit(priorityBits)

	switch {
	case ic.Priority != nil && (ic.Preempt != nil || ic.Sub != nil):
		return 0, errors.New("set either priority or preempt/sub, not both")
	case ic.Priority != nil:
		if *ic.Priority > limit {
			return 0, fmt.Errorf("priority %d exceeds %d", *ic.Priority, limit)
		}
		return *ic.Priority, nil
	case ic.Preempt != nil || ic.Sub != nil:
		g, ok := c.grouping()
		if !ok {
			return 0, errors.New("preempt/sub needs priorityGrouping")
		}
		var preempt, sub uint8
		if ic.Preempt != nil {
			preempt = *ic.Preempt
		}
		if ic.Sub != nil {
			sub = *ic.Sub
		}
		preemptBits, subBits := g.Split(priorityBits)
		if preempt >= 1<<preemptBits {
			return 0, fmt.Errorf("preempt %d needs more than %d bits", preempt, preemptBits)
		}
		if sub >= 1<<subBits {
			return 0, fmt.Errorf("sub %d needs more than %d bits", sub, subBits)
		}
		return cortexm.EncodePriority(g, priorityBits, preempt, sub), nil
	}
	return 0, nil
}

// priorityLimit is the largest priority priorityBits can hold.
func priorityLimit(priorityBits uint8) uint8 {
	if priorityBits == 0 || priorityBits > 8 {
		priorityBits = cortexm.DefaultPriorityBits
	}
	return uint8(1<<priorityBits - 1)
}

// parseInterrupt accepts a line name such as "USART1" or a number.
func parseInterrupt(s string) (cortexm.Interrupt, error) {
	if n, err := strconv.ParseInt(s, 10, 16); err == nil {
		return cortexm.Interrupt(n), nil
	} else if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("interrupt %q is out of range", s)
	}
	if irq, ok := cortexm.LookupName(s); ok {
		return irq, nil
	}
	return 0, fmt.Errorf("unknown interrupt %q", s)
}

func lookupPeripheral(name string) (stm32f1.Peripheral, error) {
	p, ok := stm32f1.Peripherals[strings.ToUpper(name)]
	if !ok {
		return stm32f1.Peripheral{}, fmt.Errorf("unknown peripheral %q, known: %s", name, strings.Join(sortedKeys(stm32f1.Peripherals), " "))
	}
	return p, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

func orOne(v uint32) uint32 {
	if v == 0 {
		return 1
	}
	return v
}
