package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/roundtutor/internal/ui/theme"
)

// ProgressBar is a simple horizontal bar showing progress through the
// stage ladder.
type ProgressBar struct {
	Width   int
	Current int
	Total   int
}

// View renders the bar with filled and empty segments.
func (p ProgressBar) View() string {
	if p.Total <= 0 || p.Width <= 0 {
		return ""
	}

	current := p.Current
	if current > p.Total {
		current = p.Total
	}
	filled := p.Width * current / p.Total

	bar := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", p.Width-filled))

	return bar
}
