package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MuhamedUsman/provlens/internal/domain"
	"github.com/MuhamedUsman/provlens/internal/file"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
)

type dirAction = int

const (
	noop dirAction = iota
	in
	out
)

type dirEntryMsg struct {
	entries []pickItem
	action  dirAction
}

type permDeniedMsg struct{}

type pickItem struct {
	name  string
	isDir bool
}

func (i pickItem) FilterValue() string { return i.name }

func (i pickItem) Title() string {
	if i.isDir {
		return i.name + string(os.PathSeparator)
	}
	return i.name
}

func (i pickItem) Description() string { return "" }

// pickerModel is the drop zone: a filterable file list over the current
// directory. Entering a file promotes it to the one selected file, entering
// a directory descends into it and leaves any selection untouched.
type pickerModel struct {
	fileList   list.Model
	curDirPath string
	// selection is nil until a file is picked, at most one exists
	selection     *domain.SelectedFile
	showHelp      bool
	disableKeymap bool
}

func initialPickerModel() pickerModel {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return pickerModel{
		curDirPath: wd,
		fileList:   newFileList(),
	}
}

func (m pickerModel) capturesKeyEvent(msg tea.KeyMsg) bool {
	if m.fileList.FilterState() == list.Filtering {
		return true
	}
	switch msg.String() {
	case "enter", "backspace", "/", "?", "l", "u":
		return !m.disableKeymap
	case "x":
		// the remove key is claimed only while a selection exists, so it
		// cannot leak into other models and re-trigger a pick
		return !m.disableKeymap && m.selection != nil
	default:
		return false
	}
}

func (m pickerModel) Init() tea.Cmd {
	return m.readDir(m.curDirPath, noop)
}

func (m pickerModel) Update(msg tea.Msg) (pickerModel, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.updateDimensions()

	case tea.KeyMsg:
		if m.disableKeymap {
			return m, nil
		}
		if m.fileList.FilterState() == list.Filtering {
			break // the filter input owns the keys
		}
		switch msg.String() {

		case "enter":
			if m.fileList.SelectedItem() == nil {
				break
			}
			item := m.fileList.SelectedItem().(pickItem)
			if item.isDir {
				return m, m.readDir(filepath.Join(m.curDirPath, item.name), in)
			}
			return m, m.selectFile(filepath.Join(m.curDirPath, item.name))

		case "backspace":
			if m.fileList.FilterState() == list.Unfiltered {
				dirOut := filepath.Dir(m.curDirPath)
				if m.curDirPath == dirOut {
					return m, m.createStatusMsg("Drive Root!", highlightColor)
				}
				return m, m.readDir(dirOut, out)
			}

		case "x":
			if m.selection != nil {
				return m, m.removeSelection()
			}

		case "l":
			return m, m.loadSample()

		case "u":
			if m.selection == nil {
				return m, msgToCmd(errMsg{
					errHeader: "NO FILE SELECTED",
					err:       errors.New("upload requested with no file selected"),
					errStr:    "Pick a CSV below, or press 'l' to load the sample, then upload.",
				})
			}
			return m, msgToCmd(submitMsg{})

		case "?":
			m.showHelp = !m.showHelp
			m.updateDimensions()

		}

	case dirEntryMsg:
		if msg.action != noop {
			m.curDirPath = m.getCurDirPath(msg.action)
			m.fileList.Title = m.getListTitle(m.curDirPath)
		}
		m.fileList.ResetSelected()
		return m, m.populateFileList(msg.entries)

	case fileSelectedMsg:
		sel := domain.SelectedFile(msg)
		m.selection = &sel

	case sampleLoadedMsg:
		sel := domain.SelectedFile(msg)
		m.selection = &sel

	case selectionRemovedMsg:
		m.selection = nil

	case permDeniedMsg:
		return m, m.createStatusMsg("Perm Denied!", redColor)

	}
	return m, m.handleFileListUpdate(msg)
}

func (m pickerModel) View() string {
	if len(m.fileList.Items()) == 0 {
		m.fileList.SetShowStatusBar(false)
	} else {
		m.fileList.SetShowStatusBar(true)
	}
	zone := dropZoneStyle
	if currentFocus == pick {
		zone = dropZoneDraggingStyle
	}
	ht := customPickerHelpTable(m.showHelp).Width(m.fileList.Width())
	v := lipgloss.JoinVertical(lipgloss.Left,
		m.renderSummaryCard(),
		zone.Width(sideContainerW()-sideContainerStyle.GetHorizontalFrameSize()).Render(m.fileList.View()),
		ht.Render(),
	)
	return sideContainerStyle.Width(sideContainerW()).Render(v)
}

// selectFile promotes the file at path to the current selection, replacing
// any previous one. First file wins, there is never more than one.
func (m pickerModel) selectFile(path string) tea.Cmd {
	return func() tea.Msg {
		sel, err := file.Select(path)
		if err != nil {
			return errMsg{
				err:    fmt.Errorf("selecting %q: %v", path, err),
				errStr: "Unable to read the selected file",
			}.cmd()
		}
		return fileSelectedMsg(sel)
	}
}

// loadSample writes the bundled sample CSV to the temp dir and injects it
// as the current selection, as if it had been picked.
func (pickerModel) loadSample() tea.Cmd {
	return func() tea.Msg {
		sel, err := file.WriteSample(os.TempDir())
		if err != nil {
			return errMsg{
				err:    fmt.Errorf("writing sample CSV: %v", err),
				errStr: "Unable to write the sample file",
			}.cmd()
		}
		return sampleLoadedMsg(sel)
	}
}

// removeSelection fully resets the pick state, a later selection behaves
// exactly like the first one after startup.
func (m *pickerModel) removeSelection() tea.Cmd {
	m.selection = nil
	m.fileList.ResetFilter()
	m.fileList.ResetSelected()
	return msgToCmd(selectionRemovedMsg{})
}

func (m pickerModel) renderSummaryCard() string {
	w := sideContainerW() - sideContainerStyle.GetHorizontalFrameSize()
	if m.selection == nil {
		prompt := summaryMetaStyle.Render("No file selected, pick a CSV below or press 'l' for the sample.")
		return summaryCardStyle.Width(w).Render(prompt)
	}
	name := runewidth.Truncate(m.selection.Name, max(0, w-summaryCardStyle.GetHorizontalFrameSize()), "…")
	meta := fmt.Sprintf("%s • x to remove", file.FormatSize(m.selection.Size))
	return summaryCardStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		summaryNameStyle.Render(name),
		summaryMetaStyle.Render(meta),
	))
}

func newFileList() list.Model {
	l := list.New(nil, pickerDelegate(), 0, 0)
	l.Title = "Drop Zone"
	l.SetStatusBarItemName("Entry", "Entries")
	l.DisableQuitKeybindings()
	l.SetShowHelp(false)
	l.Filter = fuzzyFilter
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick")),
			key.NewBinding(key.WithKeys("backspace"), key.WithHelp("b-space", "dir up")),
		}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	l.Styles.Title = l.Styles.Title.
		Background(highlightColor).
		Foreground(bgColor).
		Italic(true)

	l.Styles.StatusBar = l.Styles.StatusBar.
		Foreground(highlightColor).
		Italic(true).
		Faint(true)

	l.Styles.NoItems = l.Styles.NoItems.
		Foreground(highlightColor).
		PaddingLeft(2).
		Italic(true).
		Faint(true)

	c := cursor.New()
	c.Style = lipgloss.NewStyle().Foreground(highlightColor)

	f := textinput.New()
	f.PromptStyle = l.Styles.FilterPrompt.Foreground(highlightColor)
	f.TextStyle = lipgloss.NewStyle().Foreground(highlightColor)
	f.Placeholder = "File Name"
	f.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(highlightColor).
		Faint(true)
	f.Cursor = c
	f.Prompt = "🔎 "
	l.FilterInput = f

	return l
}

// fuzzyFilter ranks entries with sahilm/fuzzy against the filter term.
func fuzzyFilter(term string, targets []string) []list.Rank {
	matches := fuzzy.Find(term, targets)
	ranks := make([]list.Rank, len(matches))
	for i, r := range matches {
		ranks[i] = list.Rank{Index: r.Index, MatchedIndexes: r.MatchedIndexes}
	}
	return ranks
}

func pickerDelegate() list.ItemDelegate {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	d.SetHeight(1)

	d.Styles.NormalTitle = d.Styles.NormalTitle.
		Foreground(highlightColor).
		Faint(true)

	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(highlightColor).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(highlightColor).
		Bold(true).
		Italic(true)

	d.Styles.FilterMatch = d.Styles.FilterMatch.
		Foreground(highlightColor)

	return d
}

func customPickerHelpTable(show bool) *table.Table {
	baseStyle := lipgloss.NewStyle().Margin(0, 1)
	var rows [][]string
	if !show {
		rows = [][]string{{"?", "help"}}
	} else {
		rows = [][]string{
			{"/", "filter"},
			{"enter", "pick file / dir in"},
			{"backspace", "dir out"},
			{"x", "remove selection"},
			{"l", "load sample"},
			{"u", "upload"},
			{"esc", "exit filtering"},
			{"?", "hide help"},
		}
	}
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderBottom(false).
		Wrap(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch col {
			case 0:
				return baseStyle.Foreground(highlightColor).Faint(true)
			case 1:
				return baseStyle.Foreground(subduedHighlightColor)
			default:
				return lipgloss.Style{}
			}
		}).Rows(rows...)
}

func (m *pickerModel) updateDimensions() {
	helpHeight := lipgloss.Height(customPickerHelpTable(m.showHelp).String())
	summaryHeight := lipgloss.Height(m.renderSummaryCard())
	frames := mainContainerStyle.GetVerticalFrameSize() +
		sideContainerStyle.GetVerticalFrameSize() +
		dropZoneStyle.GetVerticalFrameSize()
	h := termH - (frames + helpHeight + summaryHeight + 1)
	w := sideContainerW() - sideContainerStyle.GetHorizontalFrameSize() - dropZoneStyle.GetHorizontalFrameSize()
	m.fileList.SetSize(max(0, w), max(0, h))
}

func (pickerModel) readDir(dir string, action dirAction) tea.Cmd {
	return func() tea.Msg {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return permDeniedMsg{}
			}
			return errMsg{
				err:    fmt.Errorf("reading directory %q: %v", dir, err),
				errStr: "Unable to read directory contents",
			}.cmd()
		}
		items := make([]pickItem, 0, len(entries))
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".") {
				continue
			}
			items = append(items, pickItem{name: e.Name(), isDir: e.IsDir()})
		}
		return dirEntryMsg{entries: items, action: action}
	}
}

func (m *pickerModel) populateFileList(items []pickItem) tea.Cmd {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	return m.fileList.SetItems(listItems)
}

func (m *pickerModel) handleFileListUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.fileList, cmd = m.fileList.Update(msg)
	return cmd
}

func (m *pickerModel) updateKeymap(disable bool) {
	m.disableKeymap = disable
}

// getListTitle shows only the volume name and the final directory name.
func (pickerModel) getListTitle(curDirPath string) string {
	volName := filepath.VolumeName(curDirPath)
	selDir := filepath.ToSlash(filepath.Base(curDirPath))
	c := strings.Count(curDirPath, string(os.PathSeparator))
	if c == 1 || selDir == "/" {
		return fmt.Sprintf("%s%s", volName, selDir)
	}
	return fmt.Sprintf("%s/…/%s", volName, selDir)
}

func (m pickerModel) getCurDirPath(da dirAction) string {
	switch da {
	case in:
		item := m.fileList.SelectedItem().(pickItem)
		return filepath.Join(m.curDirPath, item.name)
	case out:
		return filepath.Dir(m.curDirPath)
	default:
		return ""
	}
}

func (m *pickerModel) createStatusMsg(s string, c lipgloss.AdaptiveColor) tea.Cmd {
	style := lipgloss.NewStyle().
		Foreground(c).
		Italic(true)
	return m.fileList.NewStatusMessage(style.Render(s))
}
