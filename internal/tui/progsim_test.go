package tui

import "testing"

func TestProgressSimMonotonicAndCapped(t *testing.T) {
	s := new(progressSim)
	prev := 0
	for range 200 {
		s.advance(randIncrement())
		if s.value < prev {
			t.Fatalf("progress regressed from %d to %d", prev, s.value)
		}
		if s.value > progressCap {
			t.Fatalf("progress %d exceeded cap %d before completion", s.value, progressCap)
		}
		prev = s.value
	}
	if s.value != progressCap {
		t.Errorf("expected progress to stall at %d after many ticks, got %d", progressCap, s.value)
	}
}

func TestProgressSimPhases(t *testing.T) {
	cases := map[int]string{
		0:  "Validating records",
		10: "Validating records",
		29: "Validating records",
		30: "Initializing analysis",
		59: "Initializing analysis",
		60: "Enriching data",
		90: "Enriching data",
	}
	for value, want := range cases {
		s := progressSim{value: value}
		if got := s.phase(); got != want {
			t.Errorf("phase at %d: expected %q, got %q", value, want, got)
		}
	}
}

func TestProgressSimComplete(t *testing.T) {
	s := new(progressSim)
	s.advance(50)
	s.complete()
	if s.value != 100 {
		t.Errorf("expected 100 after completion, got %d", s.value)
	}
	if s.phase() != "Analysis complete" {
		t.Errorf("expected completion phase, got %q", s.phase())
	}
	// a straggler tick after completion must not move the bar
	s.advance(randIncrement())
	if s.value != 100 {
		t.Errorf("expected progress to stay at 100, got %d", s.value)
	}
}

func TestProgressSimPercentText(t *testing.T) {
	s := progressSim{value: 42}
	if got := s.percentText(); got != "42% Complete" {
		t.Errorf(`expected "42%% Complete", got %q`, got)
	}
}

func TestProgressSimNegativeDelta(t *testing.T) {
	s := progressSim{value: 40}
	s.advance(-10)
	if s.value != 40 {
		t.Errorf("negative delta must be ignored, got %d", s.value)
	}
}
