package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░ 1/2", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░ 0/1", ProgressBar(0, 0, 1))
	assert.Equal(t, "█████ 3/1", ProgressBar(3, 1, 5))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"#", "Title"}, [][]string{{"1", "Dune"}, {"2"}}, []ColumnAlignment{AlignRight})
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "TITLE")
	assert.Equal(t, 6, strings.Count(out, "\n")+1)
	assert.Empty(t, RenderTable(nil, nil, nil))
}

func TestOutputRedirect(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	SetColorMode("never")

	OK("saved")
	Fail("broken")
	Hint("run ls")

	assert.Equal(t, "✔ saved\n", out.String())
	assert.Contains(t, errOut.String(), "✖ broken")
	assert.Contains(t, errOut.String(), "Hint: run ls")
	assert.False(t, IsTTY())
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })
	SetColorMode("never")

	SetTheme("mono")
	assert.Equal(t, "[ ]", SymAvailable)
	assert.Equal(t, "[x]", SymLoaned)
	assert.Contains(t, PanelString("Dune"), "+")

	SetTheme("NEON")
	assert.Equal(t, "◻", SymAvailable)

	SetTheme("unknown")
	assert.Equal(t, "☐", SymAvailable)
	assert.Contains(t, PanelString("Dune"), "╭")
}
