package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	bgColor               = lipgloss.AdaptiveColor{Light: "#fbf1c7", Dark: "#282828"}
	fgColor               = lipgloss.AdaptiveColor{Light: "#282828", Dark: "#fbf1c7"}
	redColor              = lipgloss.AdaptiveColor{Light: "#9d0006", Dark: "#fb4934"}
	yellowColor           = lipgloss.AdaptiveColor{Light: "#b57614", Dark: "#fabd2f"}
	greenColor            = lipgloss.AdaptiveColor{Light: "#79740e", Dark: "#b8bb26"}
	highlightColor        = lipgloss.AdaptiveColor{Light: "#4e562a", Dark: "#ECFD65"}
	midHighlightColor     = lipgloss.AdaptiveColor{Light: "#9DA947", Dark: "#9DA947"}
	subduedHighlightColor = lipgloss.AdaptiveColor{Light: "#ECFD65", Dark: "#4e562a"}
	grayColor             = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#444444"}

	generateGradient = func(base, target lipgloss.AdaptiveColor, steps int) []lipgloss.AdaptiveColor {
		bLight, _ := colorful.Hex(base.Light)
		bDark, _ := colorful.Hex(base.Dark)
		tLight, _ := colorful.Hex(target.Light)
		tDark, _ := colorful.Hex(target.Dark)
		gradient := make([]lipgloss.AdaptiveColor, steps)

		for i := range steps {
			factor := float64(i) / float64(steps)
			lighter := bLight.BlendLuv(tLight, factor)
			darker := bDark.BlendLuv(tDark, factor)
			gradient[i] = lipgloss.AdaptiveColor{
				Light: lighter.Hex(),
				Dark:  darker.Hex(),
			}
		}
		return gradient
	}
)

// terminal dimensions, updated on every tea.WindowSizeMsg
var termW, termH int

var ( // Container width calculations

	workableW = func() int {
		w := termW - mainContainerStyle.GetHorizontalFrameSize()
		return max(0, w)
	}

	workableH = func() int {
		h := termH - mainContainerStyle.GetVerticalFrameSize()
		return max(0, h)
	}

	sideContainerW = func() int {
		w := (workableW() * 34) / 100
		w -= sideContainerStyle.GetHorizontalFrameSize()
		return max(0, w)
	}

	largeContainerW = func() int {
		w := workableW() - sideContainerW()
		w -= largeContainerStyle.GetHorizontalFrameSize()
		return max(0, w)
	}
)

var ( // Common Styles

	titleStyle = lipgloss.NewStyle().
			Background(grayColor).
			Foreground(highlightColor).
			Italic(true).
			Height(1).
			Padding(0, 1)

	sideContainerStyle = lipgloss.NewStyle().
				Padding(1, 1, 0, 1)
)

var ( // mainModel Styles

	mainContainerStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(highlightColor)

	largeContainerStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(subduedHighlightColor).
				Padding(1, 0)
)

var ( // pickerModel Styles

	dropZoneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(subduedHighlightColor).
			Padding(1, 0)

	// hot drop zone, rendered while the file list has pick focus
	dropZoneDraggingStyle = dropZoneStyle.
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(highlightColor)

	summaryCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(subduedHighlightColor).
				Padding(0, 1)

	summaryNameStyle = lipgloss.NewStyle().
				Foreground(highlightColor).
				Bold(true)

	summaryMetaStyle = lipgloss.NewStyle().
				Foreground(midHighlightColor).
				Italic(true).
				Faint(true)
)

var ( // optionsModel Styles

	optionContainerStyle = lipgloss.NewStyle().
				BorderForeground(subduedHighlightColor).
				BorderStyle(lipgloss.RoundedBorder()).
				Padding(0, 1)

	optionTitleStyle = lipgloss.NewStyle().
				Background(subduedHighlightColor).
				Foreground(highlightColor).
				Italic(true).
				Padding(0, 1)

	optionBodyStyle = lipgloss.NewStyle().
			Foreground(midHighlightColor).
			Italic(true)
)

var ( // processingModel Styles

	processingContainerStyle = lipgloss.NewStyle().
					BorderStyle(lipgloss.RoundedBorder()).
					BorderForeground(highlightColor).
					Padding(1, 2)

	processingPhaseStyle = lipgloss.NewStyle().
				Foreground(highlightColor).
				Italic(true)

	processingPercentStyle = lipgloss.NewStyle().
				Foreground(midHighlightColor).
				Faint(true)
)

var ( // resultsModel Styles

	resultRecordTitleStyle = lipgloss.NewStyle().
				Background(subduedHighlightColor).
				Foreground(highlightColor).
				Padding(0, 1).
				Italic(true)

	resultFieldStyle = lipgloss.NewStyle().
				Foreground(midHighlightColor)

	resultIssueStyle = lipgloss.NewStyle().
				Foreground(yellowColor).
				Italic(true)

	resultScoreGoodStyle = lipgloss.NewStyle().Foreground(greenColor)
	resultScoreWarnStyle = lipgloss.NewStyle().Foreground(yellowColor)
	resultScoreBadStyle  = lipgloss.NewStyle().Foreground(redColor)
)

var ( // alertDialogModel Styles

	alertDialogContainerStyle = lipgloss.NewStyle().
					BorderStyle(lipgloss.RoundedBorder()).
					BorderForeground(highlightColor).
					Padding(1, 2)

	alertDialogHeaderStyle = lipgloss.NewStyle().
				Background(highlightColor).
				Foreground(subduedHighlightColor).
				Padding(0, 1).
				Faint(true)

	alertDialogBodyStyle = lipgloss.NewStyle().
				Italic(true).
				Padding(1, 0).
				Foreground(highlightColor)

	alertDialogBtnStyle = lipgloss.NewStyle().
				Background(grayColor).
				Foreground(fgColor).
				Padding(0, 2).
				MarginLeft(1)
)

var (
	banner = lipgloss.NewStyle().
		Foreground(midHighlightColor).
		AlignVertical(lipgloss.Center).
		SetString(bannerTxt)

	slogan = lipgloss.NewStyle().
		Italic(true).
		Foreground(highlightColor).
		Faint(true).
		SetString("clean provider data, fast")

	bannerTxt = `
┌─┐┬─┐┌─┐┬  ┬┬  ┌─┐┌┐┌┌─┐
├─┘├┬┘│ │└┐┌┘│  ├┤ │││└─┐
┴  ┴└─└─┘ └┘ ┴─┘└─┘┘└┘└─┘
           ` + slogan.Render()
)
