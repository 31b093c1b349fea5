// Package sim models the STM32F1 core peripherals on top of mmio.Memory so
// drivers can be exercised without silicon. The model covers the register
// semantics the drivers depend on: set/clear register pairs, the read-only
// active bitmap, the AIRCR write key and oscillator ready timing.
package sim

import (
	"sync"

	"omibyte.io/cm3hal/arm/cortexm"
	"omibyte.io/cm3hal/arm/cortexm/stm32/stm32f1"
	"omibyte.io/cm3hal/mmio"
)

// HSION, HSIRDY and HSITRIM=16
const crResetValue uint32 = 0x00000083

const crReadOnlyBits = stm32f1.CR_HSIRDY | stm32f1.CR_HSERDY | stm32f1.CR_PLLRDY

type oscillator struct {
	on, rdy uint32
	delay   int
	faulty  bool
	polls   int
}

type Option func(*Device)

// WithReadyDelay makes the first polls reads of RCC_CR after src is
// enabled report it as not ready.
func WithReadyDelay(src stm32f1.ClockSource, polls int) Option {
	return func(d *Device) {
		if osc, ok := d.osc[src]; ok {
			osc.delay = polls
		}
	}
}

// WithFaultyOscillator makes src never report ready.
func WithFaultyOscillator(src stm32f1.ClockSource) Option {
	return func(d *Device) {
		if osc, ok := d.osc[src]; ok {
			osc.faulty = true
		}
	}
}

// Device is a simulated STM32F1 register space.
type Device struct {
	*mmio.Memory

	mu      sync.Mutex
	enable  [cortexm.NVICWords]uint32
	pending [cortexm.NVICWords]uint32
	active  [cortexm.NVICWords]uint32
	osc     map[stm32f1.ClockSource]*oscillator
}

func New(opts ...Option) *Device {
	d := &Device{
		Memory: mmio.NewMemory(),
		osc: map[stm32f1.ClockSource]*oscillator{
			stm32f1.ClockHSI: {on: stm32f1.CR_HSION, rdy: stm32f1.CR_HSIRDY},
			stm32f1.ClockHSE: {on: stm32f1.CR_HSEON, rdy: stm32f1.CR_HSERDY},
			stm32f1.ClockPLL: {on: stm32f1.CR_PLLON, rdy: stm32f1.CR_PLLRDY},
		},
	}
	for _, opt := range opts {
		opt(d)
	}

	d.mapNVIC()
	d.mapSCB()
	d.mapRCC()
	return d
}

// SetActive sets or clears the hardware-maintained active bit of line i.
func (d *Device) SetActive(i cortexm.Interrupt, active bool) {
	if i < 0 || int(i>>5) >= len(d.active) {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	bit := uint32(1) << (uint32(i) & 0x1F)
	if active {
		d.active[i>>5] |= bit
	} else {
		d.active[i>>5] &^= bit
	}
}

// Polls returns how many times the ready flag of src has been polled since
// it was last enabled.
func (d *Device) Polls(src stm32f1.ClockSource) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if osc, ok := d.osc[src]; ok {
		return osc.polls
	}
	return 0
}

func (d *Device) mapNVIC() {
	for w := 0; w < cortexm.NVICWords; w++ {
		line := cortexm.Interrupt(w * 32)
		d.Map(cortexm.ISERAddr(line), d.setClear(&d.enable[w], true))
		d.Map(cortexm.ICERAddr(line), d.setClear(&d.enable[w], false))
		d.Map(cortexm.ISPRAddr(line), d.setClear(&d.pending[w], true))
		d.Map(cortexm.ICPRAddr(line), d.setClear(&d.pending[w], false))

		state := &d.active[w]
		d.Map(cortexm.IABRAddr(line), mmio.Handler{
			Read: func(*uint32) uint32 {
				d.mu.Lock()
				defer d.mu.Unlock()
				return *state
			},
			Write: func(*uint32, uint32, uint32) {},
		})
	}

	d.Map(cortexm.STIRAddr, mmio.Handler{
		Read: func(*uint32) uint32 { return 0 },
		Write: func(_ *uint32, value, mask uint32) {
			id := value & mask & 0x1FF
			if id >= cortexm.NVICWords*32 {
				return
			}
			d.mu.Lock()
			defer d.mu.Unlock()
			d.pending[id>>5] |= 1 << (id & 0x1F)
		},
	})
}

// setClear models a write-one-to-set or write-one-to-clear register whose
// reads return the shared state.
func (d *Device) setClear(state *uint32, set bool) mmio.Handler {
	return mmio.Handler{
		Read: func(*uint32) uint32 {
			d.mu.Lock()
			defer d.mu.Unlock()
			return *state
		},
		Write: func(_ *uint32, value, mask uint32) {
			d.mu.Lock()
			defer d.mu.Unlock()
			if set {
				*state |= value & mask
			} else {
				*state &^= value & mask
			}
		},
	}
}

func (d *Device) mapSCB() {
	d.Map(cortexm.AIRCRAddr, mmio.Handler{
		Read: func(word *uint32) uint32 {
			return *word&^cortexm.AIRCRVectKeyMask | cortexm.AIRCRVectKeyStat<<cortexm.AIRCRVectKeyPos
		},
		Write: func(word *uint32, value, mask uint32) {
			// The core ignores AIRCR writes that are not full-word and
			// keyed.
			if mask != 0xFFFFFFFF || value>>cortexm.AIRCRVectKeyPos != cortexm.AIRCRVectKey {
				return
			}
			*word = value &^ cortexm.AIRCRVectKeyMask
		},
	})
}

func (d *Device) mapRCC() {
	d.Poke(stm32f1.CRAddr, crResetValue)
	d.Map(stm32f1.CRAddr, mmio.Handler{
		Read: func(word *uint32) uint32 {
			d.mu.Lock()
			defer d.mu.Unlock()
			for _, osc := range d.osc {
				if *word&osc.on == 0 || *word&osc.rdy != 0 {
					continue
				}
				osc.polls++
				if !osc.faulty && osc.polls > osc.delay {
					*word |= osc.rdy
				}
			}
			return *word
		},
		Write: func(word *uint32, value, mask uint32) {
			d.mu.Lock()
			defer d.mu.Unlock()
			writable := mask &^ crReadOnlyBits
			*word = *word&^writable | value&writable
			for _, osc := range d.osc {
				if *word&osc.on == 0 {
					*word &^= osc.rdy
					osc.polls = 0
				}
			}
		},
	})

	d.Map(stm32f1.CFGRAddr, mmio.Handler{
		Write: func(word *uint32, value, mask uint32) {
			swsBits := uint32(stm32f1.CFGR_SWS_Msk << stm32f1.CFGR_SWS_Pos)
			writable := mask &^ swsBits
			v := *word&^writable | value&writable
			// SWS follows SW immediately.
			sw := (v >> stm32f1.CFGR_SW_Pos) & stm32f1.CFGR_SW_Msk
			v = v&^swsBits | sw<<stm32f1.CFGR_SWS_Pos
			*word = v
		},
	})
}
