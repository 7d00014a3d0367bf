package tui

import (
	"log/slog"
	"time"

	"github.com/MuhamedUsman/provlens/internal/bgtask"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MuhamedUsman/provlens/internal/tui/overlay"
)

type focusSpace int

const (
	pick focusSpace = iota
	options
	results
	processing
	alert
)

var currentFocus focusSpace

type MainModel struct {
	picker     pickerModel
	options    optionsModel
	processing processingModel
	results    resultsModel
	alert      alertDialogModel
}

func InitialMainModel() MainModel {
	m := MainModel{
		picker:     initialPickerModel(),
		options:    initialOptionsModel(),
		processing: initialProcessingModel(),
		results:    initialResultsModel(),
		alert:      initialAlertDialogModel(),
	}
	m.updateChildKeymaps()
	return m
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(m.picker.Init(), m.processing.Init())
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		termW, termH = msg.Width, msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			shutdownBgTasks()
			return m, tea.Quit
		}
		switch {
		case m.alert.capturesKeyEvent(msg):
			return m, m.handleChildModelUpdates(msg)
		case m.processing.capturesKeyEvent(msg):
			// the processing overlay swallows everything
			return m, nil
		}
		switch msg.String() {

		case "esc", "q":
			if m.childCapturesKeyEvent(msg) {
				break
			}
			shutdownBgTasks()
			return m, tea.Quit

		case "tab":
			if m.childCapturesKeyEvent(msg) {
				break
			}
			currentFocus = m.nextFocus()
			m.updateChildKeymaps()
			return m, tea.Batch(msgToCmd(spaceFocusSwitchMsg{}), m.handleChildModelUpdates(msg))

		case "shift+tab":
			if m.childCapturesKeyEvent(msg) {
				break
			}
			currentFocus = m.prevFocus()
			m.updateChildKeymaps()
			return m, tea.Batch(msgToCmd(spaceFocusSwitchMsg{}), m.handleChildModelUpdates(msg))

		}

	case errMsg:
		if msg.fatal {
			slog.Error(msg.err.Error())
			shutdownBgTasks()
			return m, tea.Quit
		}
		slog.Error(msg.err.Error())
		header := msg.errHeader
		if header == "" {
			header = "ERROR"
		}
		return m, alertDialogMsg{header: header, body: msg.errStr}.cmd

	case resultsMsg:
		currentFocus = results
		m.updateChildKeymaps()
		return m, tea.Batch(msgToCmd(spaceFocusSwitchMsg{}), m.handleChildModelUpdates(msg))

	case resultsInactiveMsg:
		currentFocus = pick
		m.updateChildKeymaps()
		return m, tea.Batch(msgToCmd(spaceFocusSwitchMsg{}), m.handleChildModelUpdates(msg))

	case spaceFocusSwitchMsg:
		m.updateChildKeymaps()

	}

	return m, m.handleChildModelUpdates(msg)
}

func (m MainModel) View() string {
	side := lipgloss.JoinVertical(lipgloss.Left, m.picker.View(), m.options.View())
	large := largeContainerStyle.
		Width(largeContainerW()).
		Height(workableH()).
		Render(m.results.View())
	spaces := lipgloss.JoinHorizontal(lipgloss.Top, side, large)
	v := mainContainerStyle.
		Width(workableW()).
		Height(workableH()).
		Render(spaces)

	if m.processing.active {
		v = overlay.Place(lipgloss.Center, lipgloss.Center, v, m.processing.View())
	}
	if m.alert.active {
		v = overlay.Place(lipgloss.Center, lipgloss.Center, v, m.alert.View())
	}
	return v
}

func (m MainModel) childCapturesKeyEvent(msg tea.KeyMsg) bool {
	return m.picker.capturesKeyEvent(msg) ||
		m.options.capturesKeyEvent(msg) ||
		m.results.capturesKeyEvent(msg)
}

func (m MainModel) nextFocus() focusSpace {
	switch currentFocus {
	case pick:
		return options
	case options:
		return results
	default:
		return pick
	}
}

func (m MainModel) prevFocus() focusSpace {
	switch currentFocus {
	case pick:
		return results
	case results:
		return options
	default:
		return pick
	}
}

func (m *MainModel) updateChildKeymaps() {
	m.picker.updateKeymap(currentFocus != pick)
	m.options.updateKeymap(currentFocus != options)
	m.results.updateKeymap(currentFocus != results)
}

func (m *MainModel) handleChildModelUpdates(msg tea.Msg) tea.Cmd {
	var cmds [5]tea.Cmd
	m.picker, cmds[0] = m.picker.Update(msg)
	m.options, cmds[1] = m.options.Update(msg)
	m.processing, cmds[2] = m.processing.Update(msg)
	m.results, cmds[3] = m.results.Update(msg)
	m.alert, cmds[4] = m.alert.Update(msg)
	return tea.Batch(cmds[:]...)
}

func shutdownBgTasks() {
	if err := bgtask.Get().Shutdown(3 * time.Second); err != nil {
		slog.Error("shutting down background tasks", "err", err)
	}
}
