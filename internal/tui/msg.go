package tui

import (
	"github.com/MuhamedUsman/provlens/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

type errMsg struct {
	// errHeader: header to display in the error message
	// do not set if fatal is set to true
	errHeader string
	// err to log
	err error
	// errStr: user-friendly err
	// display if fatal is set to false
	errStr string
	// flag to signal log the err to stderr and exit
	fatal bool
}

func (em errMsg) cmd() tea.Msg { return em }

// spaceFocusSwitchMsg manages child switching using tab & shift+tab
type spaceFocusSwitchMsg struct{}

// fileSelectedMsg promotes a file to the current selection. Selecting a new
// file replaces the old one wholesale.
type fileSelectedMsg domain.SelectedFile

// sampleLoadedMsg carries the path of the freshly written sample CSV, the
// options model pre-checks everything on receiving it.
type sampleLoadedMsg domain.SelectedFile

// selectionRemovedMsg signals a full reset back to the pick affordance
type selectionRemovedMsg struct{}

// submitMsg kicks off the upload with the current selection and options
type submitMsg struct{}

// progressTickMsg is the simulated progress heartbeat, one per interval
type progressTickMsg struct {
	runID int
}

type uploadDoneMsg struct {
	runID  int
	report domain.CleanReport
}

type uploadErrMsg struct {
	runID int
	err   error
}

// resultsInactiveMsg signals the results view is dismissed, back to picking
type resultsInactiveMsg struct{}

func msgToCmd[t tea.Msg](msg t) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
