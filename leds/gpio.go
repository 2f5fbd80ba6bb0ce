//go:build !nogpio

package leds

import "github.com/stianeikeland/go-rpio/v4"

// NewHardwareLines returns the Broadcom GPIO, driven through go-rpio.
func NewHardwareLines() Lines {
	return rpioLines{}
}

type rpioLines struct{}

func (rpioLines) Open() error {
	return rpio.Open()
}

func (rpioLines) Line(pin int) (Line, error) {
	p := rpio.Pin(pin)
	p.Output()
	p.Low()
	return rpioLine{pin: p}, nil
}

type rpioLine struct {
	pin rpio.Pin
}

func (l rpioLine) Write(high bool) error {
	if high {
		l.pin.High()
	} else {
		l.pin.Low()
	}
	return nil
}
