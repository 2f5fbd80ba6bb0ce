package leds

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var blog zerolog.Logger

func init() {
	blog = log.With().Str("component", "blinker").Logger()
}

type blinkTask struct {
	cancel context.CancelFunc
}

// Scheduler runs at most one background blink task per LED. A task
// toggles its LED through the registry on a fixed period until it is
// cancelled by a later Start, a Stop, or StopAll.
type Scheduler struct {
	registry         *Registry
	stopOnWriteError bool

	// Guards tasks only; never held across a timer wait or a write.
	mu    sync.Mutex
	tasks map[int]*blinkTask
}

func NewScheduler(registry *Registry, stopOnWriteError bool) *Scheduler {
	return &Scheduler{
		registry:         registry,
		stopOnWriteError: stopOnWriteError,
		tasks:            make(map[int]*blinkTask),
	}
}

// Start begins blinking the LED, toggling it every period. If a task
// is already running for this LED it is cancelled first; the newest
// request always wins and two tasks never run for the same LED.
func (s *Scheduler) Start(led int, period time.Duration) error {
	if period <= 0 {
		return fmt.Errorf("%w: blink period must be greater than 0", ErrInvalidParameter)
	}
	if _, err := s.registry.get(led); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &blinkTask{cancel: cancel}

	s.mu.Lock()
	prev := s.tasks[led]
	s.tasks[led] = t
	s.mu.Unlock()

	if prev != nil {
		prev.cancel()
	} else {
		activeBlinkers.Inc()
	}

	go s.run(ctx, t, led, period)

	return nil
}

// Stop cancels the LED's blink task if one is running; stopping an
// LED that is not blinking is a no-op. Stop does not wait for a write
// already in flight, but no further toggles happen once the
// cancellation is observed.
func (s *Scheduler) Stop(led int) {
	s.mu.Lock()
	t := s.tasks[led]
	delete(s.tasks, led)
	s.mu.Unlock()

	if t != nil {
		t.cancel()
		activeBlinkers.Dec()
	}
}

// StopAll cancels every running blink task.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	stopped := s.tasks
	s.tasks = make(map[int]*blinkTask)
	s.mu.Unlock()

	for _, t := range stopped {
		t.cancel()
	}
	activeBlinkers.Sub(float64(len(stopped)))
}

// Active returns the number of LEDs with a running blink task.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tasks)
}

// remove drops the task from the map only if it is still the current
// one for the LED, so a task that stops itself never evicts its
// replacement.
func (s *Scheduler) remove(led int, t *blinkTask) {
	s.mu.Lock()
	current := s.tasks[led] == t
	if current {
		delete(s.tasks, led)
	}
	s.mu.Unlock()

	if current {
		activeBlinkers.Dec()
	}
}

func (s *Scheduler) run(ctx context.Context, t *blinkTask, led int, period time.Duration) {
	// Ticker drops ticks when the receiver falls behind, which is
	// what we want: no catch-up toggle bursts after a stall.
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	on := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		on = !on
		err := s.registry.WriteContext(ctx, led, on)
		if errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			if s.stopOnWriteError {
				blog.Err(err).Int("led", led).Msg("Blink write failed, stopping task")
				s.remove(led, t)
				t.cancel()
				return
			}
			blog.Err(err).Int("led", led).Msg("Blink write failed")
		}
	}
}
