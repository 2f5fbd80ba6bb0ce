package leds

import "errors"

var (
	// ErrInvalidParameter covers caller mistakes: LED numbers outside
	// 1-24, subset positions off the end, zero blink periods.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrHardware covers GPIO failures, both at open and per write.
	ErrHardware = errors.New("hardware error")
	// ErrNotFound is returned when a valid LED number has no open line
	// behind it. A fully initialized registry never produces it.
	ErrNotFound = errors.New("not found")
)
