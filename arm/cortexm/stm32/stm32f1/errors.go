package stm32f1

import "errors"

var (
	ErrInvalidClockSource = errors.New("invalid clock source")
	ErrClockNotReady      = errors.New("oscillator not ready")
)
