package components

import (
	"fmt"

	"github.com/theirongolddev/budgettdb/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. flash is a transient
// message shown in the middle (saved theme, errors).
func RenderStatusBar(width, year int, flash string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)
	flashStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	left := " [?]help  [[ ]]year  [T]theme  [q]uit"
	right := fmt.Sprintf("Budget %d · %s ", year, t.Name)

	mid := ""
	if flash != "" {
		mid = "  " + flashStyle.Render(flash)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if padding < 0 {
		// Drop the flash before truncating the key hints.
		mid = ""
		padding = max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	}

	bar := left + mid
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
