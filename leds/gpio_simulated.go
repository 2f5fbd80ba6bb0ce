//go:build nogpio

package leds

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// NewHardwareLines returns simulated lines so the server can run on a
// desktop machine. Every write logs the whole board as a bar of #
// characters, one per LED.
func NewHardwareLines() Lines {
	return &simLines{}
}

type simLines struct {
	mu     sync.Mutex
	states [Count]bool
}

func (s *simLines) Open() error {
	log.Debug().Msg("GPIO will be simulated")
	return nil
}

func (s *simLines) Line(pin int) (Line, error) {
	return &simLine{board: s, index: pin - 4}, nil
}

func (s *simLines) set(index int, high bool) {
	s.mu.Lock()
	s.states[index] = high
	var str string
	for _, state := range s.states {
		if state {
			str += "#"
		} else {
			str += " "
		}
	}
	s.mu.Unlock()

	log.Debug().Str("leds", str).Msg("GPIO")
}

type simLine struct {
	board *simLines
	index int
}

func (l *simLine) Write(high bool) error {
	l.board.set(l.index, high)
	return nil
}
