package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

func success(format string, args ...any) {
	printlnFn(successStyle.Render("✓ ") + fmt.Sprintf(format, args...))
}

func warning(format string, args ...any) {
	printlnFn(warningStyle.Render("⚠ ") + fmt.Sprintf(format, args...))
}

func failure(err error) {
	printlnFn(errorStyle.Render("✗ ") + err.Error())
}

func info(format string, args ...any) {
	printlnFn(infoStyle.Render("ℹ ") + fmt.Sprintf(format, args...))
}

func muted(format string, args ...any) {
	printlnFn(mutedStyle.Render(fmt.Sprintf(format, args...)))
}

func heading(title string) {
	printlnFn(primaryStyle.Render(title))
}
