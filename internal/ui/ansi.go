package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects OK, Fail and Panel. Tests use it to capture output.
func SetOutput(out, errOut io.Writer) {
	stdout, stderr = out, errOut
}

// Stdout is the writer command output goes to.
func Stdout() io.Writer { return stdout }

// IsTTY reports whether stdout is an interactive terminal.
func IsTTY() bool {
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetColorMode applies "auto", "always" or "never".
func SetColorMode(mode string) {
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	default:
		if !IsTTY() {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	}
}

func OK(msg string)   { fmt.Fprintln(stdout, SuccessStyle.Render(SymOK+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(stderr, ErrorStyle.Render(SymFail+" "+msg)) }

// Hint prints a muted follow-up line under a failure.
func Hint(msg string) { fmt.Fprintln(stderr, MutedStyle.Render("Hint: "+msg)) }
