package boot

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid board configuration")
	ErrPlanCycle     = errors.New("boot steps depend on each other")
)
