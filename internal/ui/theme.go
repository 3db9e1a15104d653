package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles shared by the plain renderers and the interactive list. SetTheme
// rebuilds them.
var (
	TitleStyle    lipgloss.Style
	SuccessStyle  lipgloss.Style
	PendingStyle  lipgloss.Style
	AccentStyle   lipgloss.Style
	MutedStyle    lipgloss.Style
	ErrorStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	LoanedStyle   lipgloss.Style
	HelpStyle     lipgloss.Style
	BorderStyle   lipgloss.Style
)

// Status markers. SymAvailable and SymLoaned follow the theme.
var (
	SymAvailable = "☐"
	SymLoaned    = "☑"
)

const (
	SymOK   = "✔"
	SymFail = "✖"
)

type palette struct {
	title, accent, success, pending, err, border lipgloss.TerminalColor
	frame                                        lipgloss.Border
	available, loaned                            string
}

var themes = map[string]palette{
	"classic": {
		title: lipgloss.NoColor{}, accent: lipgloss.Color("12"),
		success: lipgloss.Color("42"), pending: lipgloss.Color("214"),
		err: lipgloss.Color("9"), border: lipgloss.Color("8"),
		frame:     lipgloss.RoundedBorder(),
		available: "☐", loaned: "☑",
	},
	"neon": {
		title: lipgloss.Color("13"), accent: lipgloss.Color("14"),
		success: lipgloss.Color("10"), pending: lipgloss.Color("11"),
		err: lipgloss.Color("9"), border: lipgloss.Color("13"),
		frame:     lipgloss.RoundedBorder(),
		available: "◻", loaned: "◼",
	},
	"mono": {
		title: lipgloss.NoColor{}, accent: lipgloss.NoColor{},
		success: lipgloss.NoColor{}, pending: lipgloss.NoColor{},
		err: lipgloss.NoColor{}, border: lipgloss.NoColor{},
		frame:     lipgloss.ASCIIBorder(),
		available: "[ ]", loaned: "[x]",
	},
}

func init() { SetTheme("classic") }

// SetTheme switches styles and markers: "classic" (default), "neon" or "mono".
func SetTheme(name string) {
	p, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		p = themes["classic"]
	}

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.title)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.success)
	PendingStyle = lipgloss.NewStyle().Foreground(p.pending)
	AccentStyle = lipgloss.NewStyle().Foreground(p.accent)
	MutedStyle = lipgloss.NewStyle().Faint(true)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.err).Bold(true)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	LoanedStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	HelpStyle = lipgloss.NewStyle().Faint(true)
	BorderStyle = lipgloss.NewStyle().
		Border(p.frame).
		BorderForeground(p.border).
		Padding(0, 1)

	SymAvailable, SymLoaned = p.available, p.loaned
}
