// Package overlay composites one rendered view on top of another, used for
// the processing overlay and dialogs.
package overlay

import (
	"math"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var ansiStyleRegexp = regexp.MustCompile(`\x1b[[\d;]*m`)

// Place draws fg over bg, positioned by hPos and vPos. Position values
// other than the edge constants are treated as a fraction of the free gap,
// so lipgloss.Center lands the foreground in the middle.
func Place(hPos, vPos lipgloss.Position, bg, fg string) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	width := maxLineWidth(bgLines)
	fgWidth := maxLineWidth(fgLines)

	hOffset := offsetFor(hPos, width-fgWidth)
	vOffset := offsetFor(vPos, len(bgLines)-len(fgLines))

	resultLines := make([]string, len(bgLines))
	copy(resultLines, bgLines)

	for i, fgLine := range fgLines {
		bgIdx := i + vOffset
		if bgIdx < 0 || bgIdx >= len(resultLines) {
			continue
		}

		bgLine := resultLines[bgIdx]
		if ansi.StringWidth(bgLine) < hOffset {
			bgLine += strings.Repeat(" ", hOffset-ansi.StringWidth(bgLine))
		}

		// splice the foreground into the line, keeping whatever of the
		// background shows past its right edge
		bgLeft := ansi.Truncate(bgLine, hOffset, "")
		bgRight := truncateLeft(bgLine, hOffset+ansi.StringWidth(fgLine))
		resultLines[bgIdx] = bgLeft + fgLine + bgRight
	}

	return strings.Join(resultLines, "\n")
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		if lw := ansi.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w
}

func offsetFor(pos lipgloss.Position, gap int) int {
	var off int
	switch pos {
	case lipgloss.Left: // same as lipgloss.Top
		off = 0
	case lipgloss.Right: // same as lipgloss.Bottom
		off = gap
	default:
		if gap > 0 {
			off = int(math.Round(float64(gap) * float64(pos)))
		}
	}
	return max(0, off)
}

// truncateLeft returns the portion of line that would appear past the given
// width, preserving ANSI escape sequences.
func truncateLeft(line string, padding int) string {
	if strings.Contains(line, "\n") {
		panic("line must not contain newline")
	}

	wrapped := strings.Split(ansi.Hardwrap(line, padding, true), "\n")
	if len(wrapped) == 1 {
		return ""
	}

	// carry the last open style across the cut
	var ansiStyle string
	ansiStyles := ansiStyleRegexp.FindAllString(wrapped[0], -1)
	if l := len(ansiStyles); l > 0 {
		ansiStyle = ansiStyles[l-1]
	}

	return ansiStyle + strings.Join(wrapped[1:], "")
}
