package leds

import (
	"errors"
	"time"

	"trainlights/pubsub"
)

// Op identifies an operation on the controller's event feed.
type Op string

const (
	OpOn     Op = "on"
	OpOff    Op = "off"
	OpBlink  Op = "blink"
	OpAllOff Op = "all_off"
)

// Event is published after an operation completes successfully.
type Event struct {
	Op       Op    `json:"op"`
	Led      int   `json:"led,omitempty"`
	PeriodMs int64 `json:"period_ms,omitempty"`
}

// Options tune the two failure policies that have no single right
// answer. The zero value gives best-effort AllOff and blink tasks
// that log write failures and keep ticking.
type Options struct {
	// AllOffFailFast aborts AllOff on the first failed write instead
	// of attempting every pin and returning the failures joined.
	AllOffFailFast bool

	// StopBlinkOnWriteError cancels a blink task when one of its
	// writes fails instead of logging and continuing.
	StopBlinkOnWriteError bool
}

// Controller is the facade over the pin registry and the blink
// scheduler. It deliberately tracks no LED state: callers can command
// LEDs but never query them.
type Controller struct {
	registry  *Registry
	scheduler *Scheduler
	opts      Options
	events    *pubsub.Pubsub[Event]
}

// NewController opens every LED line and returns a ready controller
// with all LEDs off. Construction fails if the GPIO chip or any
// single line cannot be opened.
func NewController(lines Lines, opts Options) (*Controller, error) {
	registry, err := OpenRegistry(lines)
	if err != nil {
		return nil, err
	}

	return &Controller{
		registry:  registry,
		scheduler: NewScheduler(registry, opts.StopBlinkOnWriteError),
		opts:      opts,
		events:    pubsub.New[Event](),
	}, nil
}

// On turns an LED on. Any blink task for the LED is cancelled before
// the write, so the LED stays on until the next command.
func (c *Controller) On(led int) error {
	return c.set(led, true)
}

// Off turns an LED off, cancelling its blink task the same way.
func (c *Controller) Off(led int) error {
	return c.set(led, false)
}

func (c *Controller) set(led int, high bool) error {
	c.scheduler.Stop(led)

	if err := c.registry.Write(led, high); err != nil {
		return err
	}

	op := OpOff
	if high {
		op = OpOn
	}
	c.events.Publish(Event{Op: op, Led: led})
	return nil
}

// Blink toggles the LED every period until a later Blink, On, Off or
// AllOff cancels it. A zero or negative period is rejected and
// registers nothing.
func (c *Controller) Blink(led int, period time.Duration) error {
	if err := c.scheduler.Start(led, period); err != nil {
		return err
	}

	c.events.Publish(Event{Op: OpBlink, Led: led, PeriodMs: period.Milliseconds()})
	return nil
}

// AllOff cancels every blink task and drives all 24 LEDs low. By
// default every pin is attempted even when some fail, and the
// failures come back joined, so one faulty line cannot keep the other
// 23 lit; Options.AllOffFailFast aborts on the first failure instead.
func (c *Controller) AllOff() error {
	c.scheduler.StopAll()

	var errs []error
	for led := 1; led <= Count; led++ {
		if err := c.registry.Write(led, false); err != nil {
			if c.opts.AllOffFailFast {
				return err
			}
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	c.events.Publish(Event{Op: OpAllOff})
	return nil
}

// Count returns the number of LEDs, always 24.
func (c *Controller) Count() int {
	return Count
}

// IsValid reports whether led names one of the 24 LEDs.
func (c *Controller) IsValid(led int) bool {
	return IsValid(led)
}

// ActiveBlinkers returns the number of LEDs with a running blink
// task.
func (c *Controller) ActiveBlinkers() int {
	return c.scheduler.Active()
}

// Subscribe returns a feed of completed operations and a function to
// unsubscribe from it.
func (c *Controller) Subscribe() (func(), <-chan Event) {
	id, ch := c.events.Subscribe()
	return func() { c.events.Unsubscribe(id) }, ch
}

// SetByColor turns the LED at a 1-based position inside a color
// subset on or off, e.g. SetByColor(Red, 2, false) turns off LED 14.
func (c *Controller) SetByColor(subset Subset, position int, on bool) error {
	led, err := subset.Light(position)
	if err != nil {
		return err
	}
	if on {
		return c.On(led)
	}
	return c.Off(led)
}

// BlinkByColor blinks the LED at a 1-based position inside a color
// subset.
func (c *Controller) BlinkByColor(subset Subset, position int, period time.Duration) error {
	led, err := subset.Light(position)
	if err != nil {
		return err
	}
	return c.Blink(led, period)
}

func (c *Controller) GreenOn(position int) error  { return c.SetByColor(Green, position, true) }
func (c *Controller) GreenOff(position int) error { return c.SetByColor(Green, position, false) }
func (c *Controller) AmberOn(position int) error  { return c.SetByColor(Amber, position, true) }
func (c *Controller) AmberOff(position int) error { return c.SetByColor(Amber, position, false) }
func (c *Controller) RedOn(position int) error    { return c.SetByColor(Red, position, true) }
func (c *Controller) RedOff(position int) error   { return c.SetByColor(Red, position, false) }
