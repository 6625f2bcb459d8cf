package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTableAlignsAccentedCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Section", "Total"},
		Rows: [][]string{
			{"Éducation", "168 Md€"},
			{"---"},
			{"Dette", "58 Md€"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	w := lipgloss.Width(lines[0])
	for i, l := range lines {
		if got := lipgloss.Width(l); got != w {
			t.Errorf("line %d width = %d, want %d: %q", i, got, w, l)
		}
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("empty table rendered %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("nil series = %q", got)
	}
	if got := RenderSparkline([]float64{160, 164, 168}); got != "▁▄█" {
		t.Errorf("rising series = %q", got)
	}
	if got := RenderSparkline([]float64{5, 5}); got != "▅▅" {
		t.Errorf("flat series = %q", got)
	}
}

func TestRenderHorizontalBar(t *testing.T) {
	bar := RenderHorizontalBar(50, 100, 10, DarkPalette.Green)
	if got := lipgloss.Width(bar); got != 10 {
		t.Errorf("bar width = %d, want 10", got)
	}
	if RenderHorizontalBar(1, 0, 10, DarkPalette.Green) != "" {
		t.Error("zero max should render nothing")
	}
}

func TestUsePalette(t *testing.T) {
	defer UsePalette("dark")

	UsePalette("light")
	if active != LightPalette {
		t.Error("light palette not active")
	}
	UsePalette("bogus")
	if active != DarkPalette {
		t.Error("unknown name should fall back to dark")
	}
}
