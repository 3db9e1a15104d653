package ui

import (
	"fmt"
	"strings"
)

// ProgressBar renders a Unicode bar with a done/total suffix.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d/%d", bar, done, total)
}

// Panel draws a framed box around lines.
func Panel(lines []string) {
	fmt.Fprintln(stdout, PanelString(strings.Join(lines, "\n")))
}

func PanelString(inner string) string {
	return BorderStyle.Render(inner)
}
