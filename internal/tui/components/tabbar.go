package components

import (
	"strings"

	"github.com/theirongolddev/budgettdb/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Sections", Key: 'c', KeyPos: 2},
	{Name: "Efficiency", Key: 'e', KeyPos: 0},
	{Name: "Compare", Key: 'p', KeyPos: 3},
	{Name: "Simulate", Key: 'm', KeyPos: 2},
	{Name: "Trends", Key: 'r', KeyPos: 1},
	{Name: "Settings", Key: 'g', KeyPos: 6},
}

// TabVisualWidth returns the rendered width of a tab. Active tabs drop the
// shortcut brackets.
func TabVisualWidth(tab Tab, active bool) int {
	w := lipgloss.Width(tab.Name) + 2 // horizontal padding
	if active {
		return w
	}
	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		return w + 2 // "[" and "]" around the key letter
	}
	return w + 3 // "[k]" appended
}

// TabRows splits tab indexes into rows that fit width. One row when
// everything fits, otherwise as many rows as needed.
func TabRows(activeIdx, width int) [][]int {
	var rows [][]int
	var cur []int
	used := 1 // leading space
	for i, tab := range Tabs {
		w := TabVisualWidth(tab, i == activeIdx)
		if len(cur) > 0 && used+1+w > width {
			rows = append(rows, cur)
			cur = nil
			used = 1
		}
		if len(cur) > 0 {
			used++
		}
		cur = append(cur, i)
		used += w
	}
	if len(cur) > 0 {
		rows = append(rows, cur)
	}
	return rows
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceBright).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	space := lipgloss.NewStyle().Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Background(t.Surface).Width(width)

	render := func(i int) string {
		tab := Tabs[i]
		if i == activeIdx {
			return activeStyle.Render(" " + tab.Name + " ")
		}
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			before := tab.Name[:tab.KeyPos]
			key := string(tab.Name[tab.KeyPos])
			after := tab.Name[tab.KeyPos+1:]
			return inactiveStyle.Render(" "+before) +
				dimKeyStyle.Render("[") + keyStyle.Render(key) + dimKeyStyle.Render("]") +
				inactiveStyle.Render(after+" ")
		}
		return inactiveStyle.Render(" "+tab.Name) +
			dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]") +
			inactiveStyle.Render(" ")
	}

	var lines []string
	for _, row := range TabRows(activeIdx, width) {
		parts := make([]string, len(row))
		for j, idx := range row {
			parts[j] = render(idx)
		}
		lines = append(lines, rowStyle.Render(space.Render(" ")+strings.Join(parts, space.Render(" "))))
	}
	return strings.Join(lines, "\n")
}

// TabAt returns the tab index under the cell (x, y) of the tab bar, or -1.
func TabAt(activeIdx, width, x, y int) int {
	rows := TabRows(activeIdx, width)
	if y < 0 || y >= len(rows) {
		return -1
	}
	pos := 1
	for j, idx := range rows[y] {
		w := TabVisualWidth(Tabs[idx], idx == activeIdx)
		if x >= pos && x < pos+w {
			return idx
		}
		pos += w
		if j < len(rows[y])-1 {
			pos++ // separator
		}
	}
	return -1
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
