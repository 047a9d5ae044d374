package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/alexanderramin/staffclock/internal/cli/formatter"
	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// staffclockHuhTheme returns a huh theme using the Gruvbox palette.
func staffclockHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateNotes(s string) error {
	if n := utf8.RuneCountInString(s); n > domain.MaxNotesLength {
		return fmt.Errorf("%d characters, limit is %d", n, domain.MaxNotesLength)
	}
	return nil
}

// notesForm edits daily summary notes in a multi-line text area.
func notesForm(result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Notes").
				Description("ctrl+j for a new line, enter to save").
				CharLimit(domain.MaxNotesLength).
				Validate(validateNotes).
				Value(result),
		),
	).WithTheme(staffclockHuhTheme()).WithShowHelp(false)
}
