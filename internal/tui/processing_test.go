package tui

import (
	"testing"

	"github.com/MuhamedUsman/provlens/internal/domain"
)

func TestProcessingIgnoresStaleTicks(t *testing.T) {
	m := initialProcessingModel()
	m.file = domain.SelectedFile{Name: "providers.csv", Path: "/tmp/providers.csv"}
	m.active = true
	m.runID = 2
	m.sim.advance(40)
	before := m.sim.value

	// a tick from the previous run's timer
	m, _ = m.Update(progressTickMsg{runID: 1})
	if m.sim.value != before {
		t.Errorf("stale tick advanced progress from %d to %d", before, m.sim.value)
	}

	m, _ = m.Update(progressTickMsg{runID: 2})
	if m.sim.value <= before {
		t.Errorf("live tick did not advance progress, still at %d", m.sim.value)
	}
}

func TestProcessingTicksStopAfterDone(t *testing.T) {
	m := initialProcessingModel()
	m.file = domain.SelectedFile{Name: "providers.csv", Path: "/tmp/providers.csv"}
	m.active = true
	m.runID = 1

	m, _ = m.Update(uploadDoneMsg{runID: 1, report: domain.CleanReport{Filename: "providers.csv"}})
	if m.active {
		t.Error("expected processing to deactivate on completion")
	}
	if m.sim.value != 100 {
		t.Errorf("expected progress to snap to 100, got %d", m.sim.value)
	}

	// the leaked timer fires once more, it must change nothing
	m, _ = m.Update(progressTickMsg{runID: 1})
	if m.sim.value != 100 {
		t.Errorf("tick after completion moved progress to %d", m.sim.value)
	}
}

func TestProcessingSubmitRequiresSelection(t *testing.T) {
	m := initialProcessingModel()
	m, _ = m.Update(submitMsg{})
	if m.active {
		t.Error("submit without a selection must not start an upload")
	}
}

func TestProcessingSubmitRejectsNonCSV(t *testing.T) {
	m := initialProcessingModel()
	m.file = domain.SelectedFile{Name: "providers.txt", Path: "/tmp/providers.txt"}
	m, _ = m.Update(submitMsg{})
	if m.active {
		t.Error("submit with a non-csv selection must not start an upload")
	}
}

func TestProcessingDoneFromOldRunIgnored(t *testing.T) {
	m := initialProcessingModel()
	m.file = domain.SelectedFile{Name: "providers.csv", Path: "/tmp/providers.csv"}
	m.active = true
	m.runID = 3

	m, _ = m.Update(uploadDoneMsg{runID: 2, report: domain.CleanReport{}})
	if !m.active {
		t.Error("a result from an earlier run must not complete the current one")
	}
}
