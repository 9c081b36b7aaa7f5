package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"goal-forecast/internal/model"
	"goal-forecast/internal/projection"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	goodStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	warnStyle = lipgloss.NewStyle().Foreground(ColorOrange)
	badStyle  = lipgloss.NewStyle().Foreground(ColorRed)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table. The first column is left-aligned, the rest right-aligned.
// A row holding the single cell "---" renders as a separator.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(h, widths[i], i == 0)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(pad(cell, widths[i], i == 0)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}
	rule("╰", "┴", "╯")
	return b.String()
}

func pad(s string, w int, left bool) string {
	gap := w - lipgloss.Width(s)
	if gap < 0 {
		gap = 0
	}
	if left {
		return " " + s + strings.Repeat(" ", gap) + " "
	}
	return " " + strings.Repeat(" ", gap) + s + " "
}

// RenderSparkline generates a unicode block sparkline scaled between min and max.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - lo) / span * float64(len(blocks)-1))
		}
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

// RenderHistogram draws one horizontal bar per bin, scaled to the fullest bin.
func RenderHistogram(bins []projection.Bin, maxWidth int) string {
	if len(bins) == 0 {
		return ""
	}
	most := 0
	for _, bin := range bins {
		if bin.Count > most {
			most = bin.Count
		}
	}
	var b strings.Builder
	for _, bin := range bins {
		barLen := 0
		if most > 0 {
			barLen = bin.Count * maxWidth / most
		}
		label := fmt.Sprintf("%10s - %-10s", FormatMoneyShort(bin.Lower), FormatMoneyShort(bin.Upper))
		fmt.Fprintf(&b, "  %s %s %s\n",
			mutedStyle.Render(label),
			valueStyle.Render(strings.Repeat("█", barLen)),
			dimStyle.Render(fmt.Sprint(bin.Count)),
		)
	}
	return b.String()
}

// RenderStatus colors a goal status label.
func RenderStatus(s model.GoalStatus) string {
	switch s {
	case model.StatusAchieved:
		return goodStyle.Render("achieved")
	case model.StatusOnTrack:
		return goodStyle.Render("on track")
	default:
		return warnStyle.Render("needs attention")
	}
}

// RenderProbability colors a success probability by how comfortable it is.
func RenderProbability(p float64) string {
	s := FormatPercent(p)
	switch {
	case p >= 80:
		return goodStyle.Render(s)
	case p >= 50:
		return warnStyle.Render(s)
	default:
		return badStyle.Render(s)
	}
}
