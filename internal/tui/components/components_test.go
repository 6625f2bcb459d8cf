package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/budgettdb/internal/tui/theme"
)

func TestTabAtMatchesRenderedWidths(t *testing.T) {
	for _, width := range []int{200, 80} {
		for active := range Tabs {
			rows := TabRows(active, width)
			for y, row := range rows {
				pos := 1
				for _, idx := range row {
					w := TabVisualWidth(Tabs[idx], idx == active)
					if got := TabAt(active, width, pos+w/2, y); got != idx {
						t.Fatalf("width=%d active=%d row=%d x=%d -> %d, want %d", width, active, y, pos+w/2, got, idx)
					}
					pos += w + 1
				}
			}
		}
	}
}

func TestRenderTabBarFitsWidth(t *testing.T) {
	theme.SetActive("dark")
	for _, width := range []int{80, 120, 200} {
		bar := RenderTabBar(0, width)
		lines := strings.Split(bar, "\n")
		if len(lines) != len(TabRows(0, width)) {
			t.Fatalf("width %d: %d lines, want %d", width, len(lines), len(TabRows(0, width)))
		}
		for i, l := range lines {
			if got := lipgloss.Width(l); got != width {
				t.Errorf("width %d line %d = %d", width, i, got)
			}
		}
	}
	if n := len(TabRows(0, 200)); n != 1 {
		t.Errorf("wide terminal should use one row, got %d", n)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if TabIdxByKey('o') != 0 || TabIdxByKey('g') != len(Tabs)-1 {
		t.Error("unexpected tab key mapping")
	}
	if TabIdxByKey('z') != -1 {
		t.Error("unknown key should map to -1")
	}
	seen := map[rune]bool{}
	for _, tab := range Tabs {
		if seen[tab.Key] {
			t.Errorf("duplicate key %q", tab.Key)
		}
		seen[tab.Key] = true
	}
}

func TestSparklineScalesToRange(t *testing.T) {
	got := Sparkline([]float64{160, 164, 168}, theme.Active.Accent)
	if !strings.Contains(got, "▁▄█") {
		t.Errorf("sparkline = %q", got)
	}
}

func TestHBarWidth(t *testing.T) {
	for _, v := range []float64{-5, 0, 33, 100, 250} {
		if got := lipgloss.Width(HBar(v, 100, 20, theme.Active.Green)); got != 20 {
			t.Errorf("HBar(%v) width = %d", v, got)
		}
	}
}

func TestScoreBarWidth(t *testing.T) {
	got := lipgloss.Width(ScoreBar("Éducation", 58, 12, 20))
	if want := 12 + 1 + 20 + 1 + 3; got != want {
		t.Errorf("ScoreBar width = %d, want %d", got, want)
	}
}

func TestColorForScore(t *testing.T) {
	theme.SetActive("dark")
	if ColorForScore(80) != theme.Dark.Green || ColorForScore(60) != theme.Dark.Yellow || ColorForScore(10) != theme.Dark.Red {
		t.Error("score bands do not match status levels")
	}
}

func TestFormatChartLabel(t *testing.T) {
	cases := map[float64]string{2000: "2T", 1500: "1,5T", 200: "200", 0.5: "0,5"}
	for in, want := range cases {
		if got := formatChartLabel(in); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestBarChartKeepsAccentedLabels(t *testing.T) {
	theme.SetActive("dark")
	out := BarChart([]float64{160, 825, 76}, []string{"Éducation", "Social", "Souveraineté"}, theme.Active.Blue, 60, 8)

	lines := strings.Split(out, "\n")
	labels := lines[len(lines)-1]
	for _, want := range []string{"Éducation", "Social", "Souveraineté"} {
		if !strings.Contains(labels, want) {
			t.Errorf("label row %q missing %q", labels, want)
		}
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w > 60 {
			t.Errorf("line %d width %d > 60", i, w)
		}
	}
}
