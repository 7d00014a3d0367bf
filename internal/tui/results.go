package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MuhamedUsman/provlens/internal/domain"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// resultsMsg carries a finished clean report into view
type resultsMsg domain.CleanReport

// resultsModel renders the clean report in a scrollable viewport, one block
// per record with its cleaned fields, issues and score.
type resultsModel struct {
	viewport      viewport.Model
	report        *domain.CleanReport
	titleStyle    lipgloss.Style
	disableKeymap bool
}

func initialResultsModel() resultsModel {
	return resultsModel{
		viewport:   viewport.New(0, 0),
		titleStyle: titleStyle.Margin(0, 2),
	}
}

func (m resultsModel) capturesKeyEvent(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "down", "pgup", "pgdown", "home", "end", "n":
		return !m.disableKeymap && m.report != nil
	default:
		return false
	}
}

func (m resultsModel) Init() tea.Cmd {
	return nil
}

func (m resultsModel) Update(msg tea.Msg) (resultsModel, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.updateDimensions()
		m.refreshContent()

	case tea.KeyMsg:
		if m.disableKeymap {
			return m, nil
		}
		if msg.String() == "n" && m.report != nil {
			m.report = nil
			m.viewport.SetContent("")
			return m, msgToCmd(resultsInactiveMsg{})
		}

	case resultsMsg:
		report := domain.CleanReport(msg)
		m.report = &report
		m.updateDimensions()
		m.refreshContent()
		m.viewport.GotoTop()

	case spaceFocusSwitchMsg:
		m.updateTitleStyleAsFocus(currentFocus == results)

	}
	return m, m.handleViewportUpdate(msg)
}

func (m resultsModel) View() string {
	if m.report == nil {
		b := lipgloss.JoinVertical(lipgloss.Center, banner.String())
		return lipgloss.Place(largeContainerW(), workableH(), lipgloss.Center, lipgloss.Center, b)
	}
	title := m.titleStyle.Render(m.renderTitle())
	status := m.renderStatusBar()
	return lipgloss.JoinVertical(lipgloss.Left, title, status, m.viewport.View())
}

func (m resultsModel) renderTitle() string {
	t := "Clean Report"
	if m.report != nil {
		t = fmt.Sprintf("Clean Report — %s", m.report.Filename)
	}
	return runewidth.Truncate(t, max(0, largeContainerW()-m.titleStyle.GetHorizontalFrameSize()), "…")
}

func (m resultsModel) renderStatusBar() string {
	s := fmt.Sprintf("%d Records • %d Issues • Mean Score %d/100 • %s",
		len(m.report.Records), m.report.TotalIssues, m.report.MeanScore,
		m.report.Elapsed.Round(time.Millisecond))
	style := lipgloss.NewStyle().
		Foreground(highlightColor).
		Faint(true).
		Italic(true).
		Margin(0, 2, 1, 2)
	s = runewidth.Truncate(s, max(0, largeContainerW()-style.GetHorizontalFrameSize()), "…")
	return style.Render(s)
}

func (m *resultsModel) refreshContent() {
	if m.report == nil {
		return
	}
	w := max(8, m.viewport.Width-2)
	gradient := generateGradient(subduedHighlightColor, highlightColor, max(1, len(m.report.Records)))
	blocks := make([]string, 0, len(m.report.Records))
	for i, rr := range m.report.Records {
		blocks = append(blocks, renderRecordBlock(i, rr, w, gradient[i]))
	}
	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
}

func renderRecordBlock(i int, rr domain.RecordReport, width int, tint lipgloss.AdaptiveColor) string {
	head := resultRecordTitleStyle.Render(fmt.Sprintf("Record %d", i+1))
	score := renderScore(rr.Result.AccuracyScore)
	head = lipgloss.JoinHorizontal(lipgloss.Center, head, " ", score)

	lines := []string{head}
	for _, h := range rr.Record.Headers {
		v := rr.Result.CleanedData[h]
		if v == "" {
			v = rr.Record.Get(h)
		}
		line := fmt.Sprintf("%s: %s", h, v)
		lines = append(lines, resultFieldStyle.Foreground(tint).Render(wordwrap.String(line, width)))
	}
	for _, issue := range rr.Result.Issues {
		lines = append(lines, resultIssueStyle.Render(wordwrap.String("! "+issue, width)))
	}
	return strings.Join(lines, "\n")
}

func renderScore(score int) string {
	s := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 80:
		return resultScoreGoodStyle.Render(s)
	case score >= 50:
		return resultScoreWarnStyle.Render(s)
	default:
		return resultScoreBadStyle.Render(s)
	}
}

func (m *resultsModel) updateDimensions() {
	subH := lipgloss.Height(m.renderTitle()) + 2
	m.viewport.Width = max(0, largeContainerW())
	m.viewport.Height = max(0, workableH()-subH)
}

func (m *resultsModel) updateTitleStyleAsFocus(focus bool) {
	if focus {
		m.titleStyle = titleStyle.
			Margin(0, 2).
			Background(highlightColor).
			Foreground(subduedHighlightColor)
	} else {
		m.titleStyle = titleStyle.
			Margin(0, 2).
			Background(grayColor).
			Foreground(highlightColor)
	}
}

func (m *resultsModel) updateKeymap(disable bool) {
	m.disableKeymap = disable
}

func (m *resultsModel) handleViewportUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}
