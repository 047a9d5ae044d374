package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SetColors switches lipgloss between the detected terminal profile and
// plain ASCII output.
func SetColors(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}

// StatusIndicator renders the timer state for the last recorded status.
func StatusIndicator(status *domain.EventStatus) string {
	if status == nil {
		return StyleDim.Render("○ Idle")
	}
	switch *status {
	case domain.StatusStart:
		return StyleGreen.Render("● " + status.Label())
	case domain.StatusStop:
		return StyleYellow.Render("■ " + status.Label())
	default:
		return StyleDim.Render("○ Idle")
	}
}

// EmployeeStatusPill returns a colored indicator for an employee's status.
func EmployeeStatusPill(status domain.EmployeeStatus) string {
	switch status {
	case domain.EmployeeActive:
		return StyleGreen.Render("● Active")
	case domain.EmployeeInactive:
		return StyleDim.Render("✖ Inactive")
	default:
		return StyleDim.Render(string(status))
	}
}

func RoleBadge(role domain.Role) string {
	switch role {
	case domain.RoleHR:
		return StylePurple.Render("HR")
	case "":
		return StyleDim.Render("--")
	}
	return StyleFg.Render(strings.ToUpper(string(role[:1])) + string(role[1:]))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
