//go:build !linux

package main

import (
	"errors"

	"omibyte.io/cm3hal/mmio"
	"omibyte.io/cm3hal/targets"
)

func openDevmem(targets.TargetInfo) (mmio.Bus, func(), error) {
	return nil, nil, errors.New("the devmem backend needs linux")
}
