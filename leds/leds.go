// Package leds drives the 24 indicator LEDs on the train board
// through GPIO pins 4-27. LEDs are numbered 1-24 and grouped into
// three fixed color subsets (green 1-6, amber 7-12, red 13-24).
package leds

import "fmt"

// Count is the number of indicator LEDs on the board.
const Count = 24

// PinFor maps an LED number to its GPIO pin: LED 1 -> GPIO 4, LED 2
// -> GPIO 5, ..., LED 24 -> GPIO 27.
func PinFor(led int) (int, error) {
	if !IsValid(led) {
		return 0, fmt.Errorf("%w: LED number must be between 1 and %d, got %d", ErrInvalidParameter, Count, led)
	}
	return led + 3, nil
}

// IsValid reports whether led is a usable LED number (1-24).
func IsValid(led int) bool {
	return led >= 1 && led <= Count
}

// Subset is one of the fixed contiguous color groups of LED numbers.
// The three groups never overlap and never change.
type Subset struct {
	Name  string
	First int
	Last  int
}

var (
	Green = Subset{Name: "green", First: 1, Last: 6}
	Amber = Subset{Name: "amber", First: 7, Last: 12}
	Red   = Subset{Name: "red", First: 13, Last: 24}
)

// Size returns the number of LEDs in the subset.
func (s Subset) Size() int {
	return s.Last - s.First + 1
}

// Light resolves a 1-based position within the subset to an absolute
// LED number, e.g. the 2nd red LED is LED 14.
func (s Subset) Light(position int) (int, error) {
	if position < 1 || position > s.Size() {
		return 0, fmt.Errorf("%w: position %d is out of range for %s LEDs (1-%d)", ErrInvalidParameter, position, s.Name, s.Size())
	}
	return s.First + position - 1, nil
}
