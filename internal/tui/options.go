package tui

import (
	"errors"
	"strings"

	"github.com/MuhamedUsman/provlens/internal/config"
	"github.com/MuhamedUsman/provlens/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// optionsChangedMsg broadcasts the current checkbox state after a toggle so
// the upload path always submits what the user sees.
type optionsChangedMsg domain.CleanOptions

// cleanQue is one cleaning option presented as a question
type cleanQue struct {
	title, body string
	check       bool
}

// optionsModel holds the cleaning option checkboxes sent with the upload.
// Defaults come from config, loading the sample pre-checks everything.
type optionsModel struct {
	ques          []cleanQue
	cursor        int
	titleStyle    lipgloss.Style
	disableKeymap bool
}

func initialOptionsModel() optionsModel {
	cfg, err := config.Get()
	if errors.Is(err, config.ErrNoConfig) {
		cfg, _ = config.Load()
	}
	q := []cleanQue{
		{
			title: "Fix Addresses?",
			body:  "Complete and correct street addresses.",
			check: cfg.Clean.FixAddresses,
		},
		{
			title: "Normalize Phones?",
			body:  "Reformat phone numbers to (XXX) XXX-XXXX.",
			check: cfg.Clean.NormalizePhones,
		},
		{
			title: "Standardize Specialties?",
			body:  "Map informal specialty names to standard ones.",
			check: cfg.Clean.StandardizeSpecialty,
		},
		{
			title: "Flag Suspicious Fields?",
			body:  "Report fields that look wrong or incomplete.",
			check: cfg.Clean.FlagSuspiciousFields,
		},
	}
	return optionsModel{ques: q, titleStyle: titleStyle.Margin(0, 2)}
}

func (m optionsModel) capturesKeyEvent(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "down", "j", "k", " ", "enter":
		return !m.disableKeymap
	default:
		return false
	}
}

func (m optionsModel) Init() tea.Cmd {
	return nil
}

func (m optionsModel) Update(msg tea.Msg) (optionsModel, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if m.disableKeymap {
			return m, nil
		}
		switch msg.String() {

		case "up", "k":
			m.cursor = (m.cursor - 1 + len(m.ques)) % len(m.ques)

		case "down", "j":
			m.cursor = (m.cursor + 1) % len(m.ques)

		case " ", "enter":
			m.ques[m.cursor].check = !m.ques[m.cursor].check
			return m, msgToCmd(optionsChangedMsg(m.options()))

		}

	case spaceFocusSwitchMsg:
		m.updateTitleStyleAsFocus(currentFocus == options)

	case sampleLoadedMsg:
		for i := range m.ques {
			m.ques[i].check = true
		}
		return m, msgToCmd(optionsChangedMsg(m.options()))

	case selectionRemovedMsg:
		// removal resets everything, a later pick starts from scratch
		fresh := initialOptionsModel()
		m.ques = fresh.ques
		m.cursor = 0
		return m, msgToCmd(optionsChangedMsg(m.options()))

	}
	return m, nil
}

func (m optionsModel) View() string {
	title := m.titleStyle.Render("Cleaning Options")
	sb := new(strings.Builder)
	sb.WriteString(title)
	sb.WriteString("\n\n")
	for i, q := range m.ques {
		if i == m.cursor {
			sb.WriteString(m.renderActiveQue(q))
		} else {
			sb.WriteString(m.renderInactiveQue(q))
		}
		sb.WriteString("\n")
	}
	return sideContainerStyle.Width(sideContainerW()).Render(sb.String())
}

func (m optionsModel) options() domain.CleanOptions {
	return domain.CleanOptions{
		FixAddresses:         m.ques[0].check,
		NormalizePhones:      m.ques[1].check,
		StandardizeSpecialty: m.ques[2].check,
		FlagSuspiciousFields: m.ques[3].check,
	}
}

func (optionsModel) renderActiveQue(q cleanQue) string {
	titleS := optionTitleStyle.
		Background(highlightColor).
		Foreground(subduedHighlightColor).
		Faint(true)
	bodyS := optionBodyStyle.
		Foreground(highlightColor)
	if !q.check {
		titleS = titleS.Strikethrough(true)
		bodyS = bodyS.Strikethrough(true)
	}
	title := truncateQueTitle(q.title)
	que := lipgloss.JoinVertical(lipgloss.Left, titleS.Render(title), bodyS.Render(q.body))
	return optionContainerStyle.
		Width(sideContainerW() - sideContainerStyle.GetHorizontalFrameSize()).
		Render(que)
}

func (optionsModel) renderInactiveQue(q cleanQue) string {
	titleS := optionTitleStyle
	bodyS := optionBodyStyle
	if !q.check {
		titleS = titleS.Strikethrough(true)
		bodyS = bodyS.Strikethrough(true)
	}
	title := truncateQueTitle(q.title)
	que := lipgloss.JoinVertical(lipgloss.Left, titleS.Render(title), bodyS.Render(q.body))
	return optionContainerStyle.
		BorderStyle(lipgloss.HiddenBorder()).
		Width(sideContainerW() - sideContainerStyle.GetHorizontalFrameSize()).
		Render(que)
}

func (m *optionsModel) updateTitleStyleAsFocus(focus bool) {
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

func (m *optionsModel) updateKeymap(disable bool) {
	m.disableKeymap = disable
}

func truncateQueTitle(title string) string {
	tail := "…"
	subW := sideContainerStyle.GetVerticalFrameSize() +
		optionContainerStyle.GetHorizontalFrameSize() +
		optionTitleStyle.GetHorizontalFrameSize() +
		lipgloss.Width(tail)
	titleW := sideContainerW() - subW
	return runewidth.Truncate(title, titleW, tail)
}
