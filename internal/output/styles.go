// Package output renders styled terminal output for the gitkit CLI.
// Styling is disabled automatically when stdout is not a terminal.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	headStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	oidStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	statusIndexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	statusWtStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// IsTerminal reports whether stdout is an interactive terminal.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func render(style lipgloss.Style, text string) string {
	if !IsTerminal() {
		return text
	}
	return style.Render(text)
}

// ColorBranchName colors a branch name, highlighting the current branch.
func ColorBranchName(name string, isCurrent bool) string {
	if isCurrent {
		return render(headStyle, name+" (current)")
	}
	return render(branchStyle, name)
}

// ColorOID colors an object id.
func ColorOID(oid string) string {
	return render(oidStyle, oid)
}

// ColorDim makes text dim/gray.
func ColorDim(text string) string {
	return render(dimStyle, text)
}

// ColorError colors an error message.
func ColorError(text string) string {
	return render(errorStyle, text)
}

// ColorStatusCode colors a two-letter status code: the index column in
// green, the worktree column in red.
func ColorStatusCode(index, wt byte) string {
	return render(statusIndexStyle, string(index)) + render(statusWtStyle, string(wt))
}
