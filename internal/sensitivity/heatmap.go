package sensitivity

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette runs from low to high values.
var Palette = []lipgloss.Color{
	"#440154", "#46327e", "#365c8d", "#277f8e",
	"#1fa187", "#4ac16d", "#a0da39", "#fde725",
}

const (
	undefinedGlyph = "·"
	baseGlyph      = "◆"
	cellGlyph      = "█"
)

var (
	axisStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	undefinedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	baseStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#d70000"))
)

// shade maps v onto Palette. Values are scaled logarithmically because the
// surface grows without bound as the required return approaches growth.
func shade(v, lo, hi float64) lipgloss.Color {
	t := 0.0
	switch {
	case hi <= lo:
	case lo > 0:
		t = (math.Log(v) - math.Log(lo)) / (math.Log(hi) - math.Log(lo))
	default:
		t = (v - lo) / (hi - lo)
	}
	idx := int(math.Round(t * float64(len(Palette)-1)))
	idx = max(0, min(idx, len(Palette)-1))
	return Palette[idx]
}

func sample(n, cells, k int) int {
	if cells <= 1 || n <= 1 {
		return 0
	}
	return int(math.Round(float64(k) * float64(n-1) / float64(cells-1)))
}

// HeatmapLines renders s as width x height shaded cells, growth increasing
// to the right and required return increasing upwards, with the base point
// marked. Axis labels surround the grid.
func HeatmapLines(s Surface, width, height int) []string {
	if len(s.Growth) == 0 || len(s.Returns) == 0 {
		return nil
	}
	width = max(2, min(width, len(s.Growth)))
	height = max(2, min(height, len(s.Returns)))

	lo, hi, _ := s.Range()
	bi, bj := s.BaseIndex()
	baseCol := int(math.Round(float64(bj) * float64(width-1) / float64(len(s.Growth)-1)))
	baseRow := int(math.Round(float64(bi) * float64(height-1) / float64(len(s.Returns)-1)))

	labelW := 7
	lines := make([]string, 0, height+3)
	lines = append(lines, axisStyle.Render(fmt.Sprintf("%*s %s", labelW, "return", "value by growth (x) and required return (y)")))

	for row := height - 1; row >= 0; row-- {
		i := sample(len(s.Returns), height, row)
		label := ""
		if row == height-1 || row == 0 || row == baseRow {
			label = fmt.Sprintf("%5.1f%%", s.Returns[i]*100)
		}
		var b strings.Builder
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s ", labelW, label)))
		for col := 0; col < width; col++ {
			j := sample(len(s.Growth), width, col)
			if row == baseRow && col == baseCol {
				b.WriteString(baseStyle.Render(baseGlyph))
				continue
			}
			v, ok := s.At(i, j).Value()
			if !ok {
				b.WriteString(undefinedStyle.Render(undefinedGlyph))
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(shade(v, lo, hi)).Render(cellGlyph))
		}
		lines = append(lines, b.String())
	}

	left := fmt.Sprintf("%.1f%%", s.Growth[0]*100)
	right := fmt.Sprintf("%.1f%%", s.Growth[len(s.Growth)-1]*100)
	gap := max(1, width-len(left)-len(right))
	lines = append(lines, axisStyle.Render(fmt.Sprintf("%*s %s%s%s  growth", labelW, "", left, strings.Repeat(" ", gap), right)))
	lines = append(lines, Legend(lo, hi))
	return lines
}

// Legend renders the palette with the value range.
func Legend(lo, hi float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%7s %.2f ", "", lo))
	for _, c := range Palette {
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render(cellGlyph))
	}
	b.WriteString(fmt.Sprintf(" %.2f   %s base   %s undefined", hi, baseGlyph, undefinedGlyph))
	return b.String()
}

// RenderHeatmap writes the heat map of s to w.
func RenderHeatmap(w io.Writer, s Surface, width, height int) error {
	lines := HeatmapLines(s, width, height)
	if lines == nil {
		return fmt.Errorf("empty surface")
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
