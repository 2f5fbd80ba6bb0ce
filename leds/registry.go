package leds

import (
	"context"
	"fmt"
	"sync"
)

// handle pairs an open line with the lock that serializes writes to
// it. A line is shared between direct On/Off calls and the LED's
// blink task; concurrent writes to the same line are unsafe.
type handle struct {
	mu   sync.Mutex
	line Line
}

// Registry owns one open GPIO line per LED. The map is filled once by
// OpenRegistry and never mutated afterwards, so lookups need no lock;
// only individual writes do.
type Registry struct {
	handles map[int]*handle
}

// OpenRegistry opens the GPIO and requests all 24 LED lines as
// outputs driven low. Initialization is all or nothing: if any single
// line cannot be requested the whole registry fails.
func OpenRegistry(lines Lines) (*Registry, error) {
	if err := lines.Open(); err != nil {
		return nil, fmt.Errorf("%w: opening GPIO chip: %v", ErrHardware, err)
	}

	handles := make(map[int]*handle, Count)
	for led := 1; led <= Count; led++ {
		pin, err := PinFor(led)
		if err != nil {
			return nil, err
		}

		line, err := lines.Line(pin)
		if err != nil {
			return nil, fmt.Errorf("%w: requesting GPIO %d for LED %d: %v", ErrHardware, pin, led, err)
		}
		handles[led] = &handle{line: line}
	}

	return &Registry{handles: handles}, nil
}

func (r *Registry) get(led int) (*handle, error) {
	if !IsValid(led) {
		return nil, fmt.Errorf("%w: LED number must be between 1 and %d, got %d", ErrInvalidParameter, Count, led)
	}

	h, ok := r.handles[led]
	if !ok {
		return nil, fmt.Errorf("%w: no open line for LED %d", ErrNotFound, led)
	}
	return h, nil
}

// Write drives the LED's line high or low. Writes to the same LED are
// serialized through its handle lock; writes to different LEDs never
// contend.
func (r *Registry) Write(led int, high bool) error {
	h, err := r.get(led)
	if err != nil {
		return err
	}

	h.mu.Lock()
	err = h.line.Write(high)
	h.mu.Unlock()

	pinWrites.Inc()
	if err != nil {
		pinWriteFailures.Inc()
		return fmt.Errorf("%w: writing LED %d: %v", ErrHardware, led, err)
	}
	return nil
}

// WriteContext is Write with a cancellation check taken under the
// handle lock. Blink tasks use it: once the task's context is
// cancelled it can never write again, so a direct On/Off issued after
// the cancellation is guaranteed to be the last write the LED sees.
func (r *Registry) WriteContext(ctx context.Context, led int, high bool) error {
	h, err := r.get(led)
	if err != nil {
		return err
	}

	h.mu.Lock()
	if err := ctx.Err(); err != nil {
		h.mu.Unlock()
		return err
	}
	err = h.line.Write(high)
	h.mu.Unlock()

	pinWrites.Inc()
	if err != nil {
		pinWriteFailures.Inc()
		return fmt.Errorf("%w: writing LED %d: %v", ErrHardware, led, err)
	}
	return nil
}
