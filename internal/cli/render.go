package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds the colors used for one-shot CLI output.
type Palette struct {
	Border    lipgloss.Color
	TextDim   lipgloss.Color
	TextMuted lipgloss.Color
	Text      lipgloss.Color
	Accent    lipgloss.Color
	Green     lipgloss.Color
	Orange    lipgloss.Color
	Red       lipgloss.Color
	Blue      lipgloss.Color
}

// Flexoki palettes.
var (
	DarkPalette = Palette{
		Border:    lipgloss.Color("#282726"),
		TextDim:   lipgloss.Color("#575653"),
		TextMuted: lipgloss.Color("#6F6E69"),
		Text:      lipgloss.Color("#FFFCF0"),
		Accent:    lipgloss.Color("#3AA99F"),
		Green:     lipgloss.Color("#879A39"),
		Orange:    lipgloss.Color("#DA702C"),
		Red:       lipgloss.Color("#D14D41"),
		Blue:      lipgloss.Color("#4385BE"),
	}
	LightPalette = Palette{
		Border:    lipgloss.Color("#DAD8CE"),
		TextDim:   lipgloss.Color("#B7B5AC"),
		TextMuted: lipgloss.Color("#6F6E69"),
		Text:      lipgloss.Color("#100F0F"),
		Accent:    lipgloss.Color("#24837B"),
		Green:     lipgloss.Color("#66800B"),
		Orange:    lipgloss.Color("#BC5215"),
		Red:       lipgloss.Color("#AF3029"),
		Blue:      lipgloss.Color("#205EA6"),
	}
)

var active = DarkPalette

// UsePalette switches the palette for subsequent renders. "light" selects
// the light palette; anything else is dark.
func UsePalette(name string) {
	if name == "light" {
		active = LightPalette
		return
	}
	active = DarkPalette
}

// Level mirrors calc severity levels without importing calc.
type Level string

// Severity levels understood by RenderLevel.
const (
	Good     Level = "good"
	Warning  Level = "warning"
	Critical Level = "critical"
)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(active.Text).Align(lipgloss.Center)
}

func headerStyle() lipgloss.Style { return lipgloss.NewStyle().Bold(true).Foreground(active.Accent) }
func valueStyle() lipgloss.Style  { return lipgloss.NewStyle().Foreground(active.Text) }
func mutedStyle() lipgloss.Style  { return lipgloss.NewStyle().Foreground(active.TextMuted) }
func dimStyle() lipgloss.Style    { return lipgloss.NewStyle().Foreground(active.TextDim) }

// LevelColor maps a severity to a palette color.
func LevelColor(l Level) lipgloss.Color {
	switch l {
	case Good:
		return active.Green
	case Critical:
		return active.Red
	default:
		return active.Orange
	}
}

// RenderLevel colors text by severity.
func RenderLevel(text string, l Level) string {
	return lipgloss.NewStyle().Foreground(LevelColor(l)).Render(text)
}

// AccentColor returns the accent of the active palette.
func AccentColor() lipgloss.Color {
	return active.Accent
}

// RenderMuted renders secondary text.
func RenderMuted(text string) string {
	return mutedStyle().Render(text)
}

// RenderAccent renders highlighted text.
func RenderAccent(text string) string {
	return headerStyle().Render(text)
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(active.Border).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle().Render(title))
}

// pad fills cell to w display columns. Accented labels are multi-byte, so
// widths are measured in cells, not bytes.
func pad(cell string, w int, right bool) string {
	gap := w - lipgloss.Width(cell)
	if gap <= 0 {
		return cell
	}
	if right {
		return strings.Repeat(" ", gap) + cell
	}
	return cell + strings.Repeat(" ", gap)
}

func rule(b *strings.Builder, widths []int, left, mid, right string) {
	dim := dimStyle()
	b.WriteString(dim.Render(left))
	for i, w := range widths {
		b.WriteString(dim.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dim.Render(mid))
		}
	}
	b.WriteString(dim.Render(right))
	b.WriteString("\n")
}

// RenderTable renders a bordered table with headers and rows. A row holding
// the single cell "---" renders as a separator. Every column but the first
// is right-aligned.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	var b strings.Builder
	dim := dimStyle()

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle().Render(t.Title))
		b.WriteString("\n")
	}

	rule(&b, widths, "╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dim.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle().Render(" " + pad(h, widths[i], false) + " "))
			if i < numCols-1 {
				b.WriteString(dim.Render("│"))
			}
		}
		b.WriteString(dim.Render("│"))
		b.WriteString("\n")
		rule(&b, widths, "├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule(&b, widths, "├", "┼", "┤")
			continue
		}

		b.WriteString(dim.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle().Render(" " + pad(cell, widths[i], i > 0) + " "))
			if i < numCols-1 {
				b.WriteString(dim.Render("│"))
			}
		}
		b.WriteString(dim.Render("│"))
		b.WriteString("\n")
	}

	rule(&b, widths, "╰", "┴", "╯")
	return b.String()
}

// RenderKV renders aligned "label  value" lines.
func RenderKV(pairs [][2]string) string {
	w := 0
	for _, p := range pairs {
		w = max(w, lipgloss.Width(p[0]))
	}
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString("  ")
		b.WriteString(mutedStyle().Render(pad(p[0], w, false)))
		b.WriteString("  ")
		b.WriteString(p[1])
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSparkline generates a unicode block sparkline from a series of
// values, scaled between the series minimum and maximum.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo

	var b strings.Builder
	for _, v := range values {
		idx := len(blocks) / 2
		if span > 0 {
			idx = int((v - lo) / span * float64(len(blocks)-1))
		}
		idx = max(0, min(idx, len(blocks)-1))
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderHorizontalBar renders a bar of value relative to maxValue.
func RenderHorizontalBar(value, maxValue float64, maxWidth int, color lipgloss.Color) string {
	if maxValue <= 0 || maxWidth <= 0 {
		return ""
	}
	barLen := int(math.Round(value / maxValue * float64(maxWidth)))
	barLen = max(0, min(barLen, maxWidth))
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", barLen))
	return bar + dimStyle().Render(strings.Repeat("░", maxWidth-barLen))
}

// RenderScoreBar renders a 0-100 score bar colored by level, followed by the
// score.
func RenderScoreBar(score float64, width int, l Level) string {
	return fmt.Sprintf("%s %s", RenderHorizontalBar(score, 100, width, LevelColor(l)), FormatScore(score))
}
