package main

import (
	"omibyte.io/cm3hal/mmio"
	"omibyte.io/cm3hal/mmio/devmem"
	"omibyte.io/cm3hal/targets"
)

// The private peripheral bus page holds the NVIC, the SCB and STIR.
const ppbPageSize = 0x1000

func openDevmem(target targets.TargetInfo) (mmio.Bus, func(), error) {
	bus, err := devmem.Open(
		devmem.Window{Base: uintptr(target.NVICBase) &^ (ppbPageSize - 1), Size: ppbPageSize},
		devmem.Window{Base: uintptr(target.RCCBase), Size: 0x400},
	)
	if err != nil {
		return nil, nil, err
	}
	return bus, func() {
		if err := bus.Close(); err != nil {
			logger.Println(err)
		}
	}, nil
}
