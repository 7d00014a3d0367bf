package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/MuhamedUsman/provlens/internal/bgtask"
	"github.com/MuhamedUsman/provlens/internal/client"
	"github.com/MuhamedUsman/provlens/internal/config"
	"github.com/MuhamedUsman/provlens/internal/domain"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// processingModel owns the processing overlay: it submits the upload, fakes
// progress while the server cleans, and snaps to 100% when the real
// response lands. Each upload gets a fresh run id, a tick carrying an old
// id is a leftover timer and is dropped, so a run's timer dies exactly
// once no matter how it ended.
type processingModel struct {
	progress progress.Model
	sim      *progressSim
	// runID increments per upload, guards against stale ticks and results
	runID  int
	active bool
	file   domain.SelectedFile
	opts   domain.CleanOptions
	start  time.Time
}

func initialProcessingModel() processingModel {
	p := progress.New(
		progress.WithGradient(subduedHighlightColor.Dark, highlightColor.Dark),
		progress.WithoutPercentage(),
	)
	cfg, err := config.Get()
	if errors.Is(err, config.ErrNoConfig) {
		cfg, _ = config.Load()
	}
	return processingModel{
		progress: p,
		sim:      new(progressSim),
		opts: domain.CleanOptions{
			FixAddresses:         cfg.Clean.FixAddresses,
			NormalizePhones:      cfg.Clean.NormalizePhones,
			StandardizeSpecialty: cfg.Clean.StandardizeSpecialty,
			FlagSuspiciousFields: cfg.Clean.FlagSuspiciousFields,
		},
	}
}

func (m processingModel) capturesKeyEvent(tea.KeyMsg) bool {
	// while the overlay is up, all keys stop here
	return m.active
}

func (m processingModel) Init() tea.Cmd {
	return m.progress.Init()
}

func (m processingModel) Update(msg tea.Msg) (processingModel, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.progress.Width = min(48, max(16, workableW()-16))

	case tea.KeyMsg:
		// submission is one-way, the server owns completion

	case fileSelectedMsg:
		m.file = domain.SelectedFile(msg)

	case sampleLoadedMsg:
		m.file = domain.SelectedFile(msg)

	case selectionRemovedMsg:
		m.file = domain.SelectedFile{}

	case optionsChangedMsg:
		m.opts = domain.CleanOptions(msg)

	case submitMsg:
		if m.active || m.file.Path == "" {
			return m, nil
		}
		if err := validateUpload(m.file); err != nil {
			return m, alertDialogMsg{
				header: "INVALID FILE",
				body:   err.Error(),
			}.cmd
		}
		m.active = true
		m.runID++
		m.sim.reset()
		m.start = time.Now()
		currentFocus = processing
		return m, tea.Batch(
			m.progress.SetPercent(0),
			m.tick(m.runID),
			m.upload(m.runID, m.file, m.opts),
			msgToCmd(spaceFocusSwitchMsg{}),
		)

	case progressTickMsg:
		// a tick from a finished run is a leaked timer firing one last
		// time, dropping it here is the cancellation
		if !m.active || msg.runID != m.runID {
			return m, nil
		}
		m.sim.advance(randIncrement())
		return m, tea.Batch(
			m.progress.SetPercent(float64(m.sim.value)/100),
			m.tick(m.runID),
		)

	case uploadDoneMsg:
		if !m.active || msg.runID != m.runID {
			return m, nil
		}
		m.sim.complete()
		m.active = false
		currentFocus = pick
		return m, tea.Batch(
			m.progress.SetPercent(1),
			msgToCmd(resultsMsg(msg.report)),
			msgToCmd(spaceFocusSwitchMsg{}),
		)

	case uploadErrMsg:
		if !m.active || msg.runID != m.runID {
			return m, nil
		}
		m.active = false
		m.sim.reset()
		currentFocus = pick
		return m, tea.Batch(
			alertDialogMsg{
				header: "UPLOAD FAILED",
				body:   msg.err.Error(),
			}.cmd,
			msgToCmd(spaceFocusSwitchMsg{}),
		)

	}
	return m, m.handleProgressModelUpdate(msg)
}

func (m processingModel) View() string {
	name := runewidth.Truncate(m.file.Name, max(8, m.progress.Width), "…")
	status := fmt.Sprintf("%s  •  %s  •  %s",
		m.sim.phase(),
		humanize.Bytes(uint64(m.file.Size)),
		time.Since(m.start).Round(time.Second))
	v := lipgloss.JoinVertical(lipgloss.Left,
		summaryNameStyle.Render(name),
		"",
		m.progress.View(),
		processingPercentStyle.Render(m.sim.percentText()),
		"",
		processingPhaseStyle.Render(status),
	)
	return processingContainerStyle.Render(v)
}

// maxUploadBytes mirrors the server's multipart cap, refusing locally saves
// a round trip that would end in a 400 anyway.
const maxUploadBytes = 32 << 20

func validateUpload(sel domain.SelectedFile) error {
	if !strings.EqualFold(filepath.Ext(sel.Name), ".csv") {
		return errors.New("only .csv files can be cleaned")
	}
	if sel.Size > maxUploadBytes {
		return fmt.Errorf("file exceeds the %s upload limit", humanize.Bytes(maxUploadBytes))
	}
	return nil
}

func (m processingModel) tick(runID int) tea.Cmd {
	return tea.Tick(progressTick, func(time.Time) tea.Msg {
		return progressTickMsg{runID: runID}
	})
}

func (m processingModel) upload(runID int, sel domain.SelectedFile, opts domain.CleanOptions) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.Get()
		if errors.Is(err, config.ErrNoConfig) {
			cfg, err = config.Load()
		}
		if err != nil {
			return uploadErrMsg{runID: runID, err: err}
		}
		report, err := client.New(cfg).Clean(bgtask.Get().ShutdownCtx(), sel.Path, opts)
		if err != nil {
			return uploadErrMsg{runID: runID, err: err}
		}
		return uploadDoneMsg{runID: runID, report: report}
	}
}

func (m *processingModel) handleProgressModelUpdate(msg tea.Msg) tea.Cmd {
	newModel, cmd := m.progress.Update(msg)
	m.progress = newModel.(progress.Model)
	return cmd
}
