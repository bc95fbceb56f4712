package report

// console.go — a Context that renders annotations to a terminal.

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"modelcheck/internal/ruleset"
)

var (
	errorColor   = lipgloss.Color("#CC3333")
	warningColor = lipgloss.Color("#FF8800")
	goodColor    = lipgloss.Color("#228B22")
	mutedColor   = lipgloss.Color("#888888")

	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	goodStyle    = lipgloss.NewStyle().Foreground(goodColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
)

// Console is a Context that writes styled annotation lines to Out. It is
// the collaborator stand-in used by the CLI.
type Console struct {
	Out io.Writer
}

func (c *Console) AttachInfo(category string, objectIDs []string, message string) error {
	_, err := fmt.Fprintf(c.Out, "%s %s (%d object(s)): %s\n",
		goodStyle.Render("PASS"), category, len(objectIDs), message)
	return err
}

func (c *Console) AttachResult(category string, objectIDs []string, message string, severity ruleset.Severity) error {
	label := errorStyle.Render("FAIL")
	if severity == ruleset.SeverityWarning {
		label = warningStyle.Render("WARN")
	}
	if _, err := fmt.Fprintf(c.Out, "%s %s (%d object(s)): %s\n",
		label, category, len(objectIDs), message); err != nil {
		return err
	}
	for _, id := range objectIDs {
		if _, err := fmt.Fprintf(c.Out, "     %s\n", mutedStyle.Render(id)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) MarkRunSuccess(message string) error {
	_, err := fmt.Fprintf(c.Out, "%s %s\n", goodStyle.Render("run succeeded:"), message)
	return err
}

func (c *Console) MarkRunFailed(message string) error {
	_, err := fmt.Fprintf(c.Out, "%s %s\n", errorStyle.Render("run failed:"), message)
	return err
}

// SetContextView is a no-op on the console; viewer state belongs to the
// hosting runtime.
func (c *Console) SetContextView() error { return nil }
