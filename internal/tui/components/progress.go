package components

import (
	"fmt"

	"github.com/theirongolddev/budgettdb/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForScore returns green/yellow/red for a 0-100 efficiency or health
// score, using the same bands as the efficiency status labels.
func ColorForScore(score float64) lipgloss.Color {
	t := theme.Active
	switch {
	case score >= 75:
		return t.Green
	case score >= 50:
		return t.Yellow
	default:
		return t.Red
	}
}

// ScoreBar renders a labeled 0-100 score bar followed by the score.
func ScoreBar(label string, score float64, labelW, barWidth int) string {
	t := theme.Active

	pct := score / 100
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	color := ColorForScore(score)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.SurfaceBright)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	scoreStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(padRight(truncate(label, labelW), labelW)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		scoreStyle.Render(fmt.Sprintf("%3.0f", score))
}

// Gauge renders a compact health gauge such as "44/100" with a short bar.
func Gauge(score int, width int) string {
	t := theme.Active
	color := ColorForScore(float64(score))
	valStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	return valStyle.Render(fmt.Sprintf("%d", score)) + dimStyle.Render("/100") +
		space.Render(" ") + HBar(float64(score), 100, width, color)
}
