package tui

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	// progressTick is the heartbeat of the simulated progress bar
	progressTick = 500 * time.Millisecond
	// progressCap is the ceiling the simulation may reach on its own,
	// the last stretch belongs to the server's real completion signal
	progressCap = 90
)

// progressSim fakes upload progress while the server cleans records. The
// server reports nothing until it is done, so the bar advances by random
// increments, never regresses, and stalls at progressCap until the real
// response lands.
type progressSim struct {
	value int // 0..100
	done  bool
}

func (s *progressSim) advance(delta int) {
	if s.done || delta < 0 {
		return
	}
	s.value = min(progressCap, s.value+delta)
}

func (s *progressSim) complete() {
	s.value = 100
	s.done = true
}

func (s *progressSim) reset() {
	s.value = 0
	s.done = false
}

// phase maps the simulated value to the status line shown under the bar.
func (s progressSim) phase() string {
	switch {
	case s.done:
		return "Analysis complete"
	case s.value < 30:
		return "Validating records"
	case s.value < 60:
		return "Initializing analysis"
	default:
		return "Enriching data"
	}
}

func (s progressSim) percentText() string {
	return fmt.Sprintf("%d%% Complete", s.value)
}

func randIncrement() int {
	return 3 + rand.IntN(12)
}
