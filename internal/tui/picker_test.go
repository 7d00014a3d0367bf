package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MuhamedUsman/provlens/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestPickerSelectionReplacedWholesale(t *testing.T) {
	m := initialPickerModel()

	m, _ = m.Update(fileSelectedMsg{Name: "a.csv", Size: 1024, Path: "/tmp/a.csv"})
	if m.selection == nil || m.selection.Name != "a.csv" {
		t.Fatalf("expected a.csv selected, got %+v", m.selection)
	}

	// picking another file replaces the first, never accumulates
	m, _ = m.Update(fileSelectedMsg{Name: "b.csv", Size: 2048, Path: "/tmp/b.csv"})
	if m.selection.Name != "b.csv" || m.selection.Size != 2048 {
		t.Fatalf("expected b.csv to replace a.csv, got %+v", m.selection)
	}
}

func TestPickerRemoveSelectionFullReset(t *testing.T) {
	m := initialPickerModel()
	m, _ = m.Update(fileSelectedMsg{Name: "a.csv", Size: 1024, Path: "/tmp/a.csv"})

	cmd := m.removeSelection()
	if m.selection != nil {
		t.Fatal("expected selection cleared after removal")
	}
	if cmd == nil {
		t.Fatal("expected a selectionRemovedMsg command")
	}
	if _, ok := cmd().(selectionRemovedMsg); !ok {
		t.Fatalf("expected selectionRemovedMsg, got %T", cmd())
	}

	// a selection after removal behaves like the very first one
	m, _ = m.Update(fileSelectedMsg{Name: "c.csv", Size: 512, Path: "/tmp/c.csv"})
	if m.selection == nil || m.selection.Name != "c.csv" {
		t.Fatalf("expected c.csv selected after reset, got %+v", m.selection)
	}
}

func TestPickerRemoveKeyCapturedOnlyWithSelection(t *testing.T) {
	m := initialPickerModel()
	if m.capturesKeyEvent(keyMsg("x")) {
		t.Error("x must not be captured without a selection")
	}
	sel := domain.SelectedFile{Name: "a.csv", Size: 1024}
	m.selection = &sel
	if !m.capturesKeyEvent(keyMsg("x")) {
		t.Error("x must be captured while a selection exists")
	}
}

func TestPickerLoadSample(t *testing.T) {
	m := initialPickerModel()
	msg := m.loadSample()()
	loaded, ok := msg.(sampleLoadedMsg)
	if !ok {
		t.Fatalf("expected sampleLoadedMsg, got %T", msg)
	}
	defer os.Remove(loaded.Path)

	if filepath.Ext(loaded.Name) != ".csv" {
		t.Errorf("expected a CSV sample, got %q", loaded.Name)
	}
	if loaded.Size <= 0 {
		t.Errorf("expected a non-empty sample, got size %d", loaded.Size)
	}
	if _, err := os.Stat(loaded.Path); err != nil {
		t.Errorf("expected the sample on disk: %v", err)
	}
}

func TestOptionsResetOnSelectionRemoved(t *testing.T) {
	fresh := initialOptionsModel()
	m := initialOptionsModel()
	for i := range m.ques {
		m.ques[i].check = !fresh.ques[i].check
	}
	m.cursor = 2

	m, cmd := m.Update(selectionRemovedMsg{})
	for i, q := range m.ques {
		if q.check != fresh.ques[i].check {
			t.Errorf("expected option %d back at its default after removal", i)
		}
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor reset, got %d", m.cursor)
	}
	if cmd == nil {
		t.Fatal("expected an optionsChangedMsg command")
	}
	if _, ok := cmd().(optionsChangedMsg); !ok {
		t.Fatalf("expected optionsChangedMsg, got %T", cmd())
	}
}

func TestOptionsPreCheckedOnSampleLoad(t *testing.T) {
	m := initialOptionsModel()
	for i := range m.ques {
		m.ques[i].check = false
	}
	m, cmd := m.Update(sampleLoadedMsg{Name: "sample.csv"})
	for i, q := range m.ques {
		if !q.check {
			t.Errorf("expected option %d pre-checked after sample load", i)
		}
	}
	if cmd == nil {
		t.Fatal("expected an optionsChangedMsg command")
	}
	opts, ok := cmd().(optionsChangedMsg)
	if !ok {
		t.Fatalf("expected optionsChangedMsg, got %T", cmd())
	}
	if domain.CleanOptions(opts) != domain.AllCleanOptions() {
		t.Errorf("expected all options on, got %+v", opts)
	}
}
