package leds

// Line is one open, output-configured GPIO line.
type Line interface {
	// Write drives the line high or low.
	Write(high bool) error
}

// Lines is the hardware behind the registry. Open is called exactly
// once, before any line is requested; every requested line starts
// driven low.
type Lines interface {
	Open() error
	Line(pin int) (Line, error)
}
