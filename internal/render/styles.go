package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/view"
)

// Styles holds the styles used to draw tables and cards.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Divider  lipgloss.Style

	Good         lipgloss.Style
	Danger       lipgloss.Style
	Warning      lipgloss.Style
	Absent       lipgloss.Style
	NotQualified lipgloss.Style
	Muted        lipgloss.Style

	Card lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0")),
		Header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:     lipgloss.NewStyle().Padding(0, 1),
		Divider:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4A5568")),

		Good:         lipgloss.NewStyle().Foreground(lipgloss.Color("#38A169")),
		Danger:       lipgloss.NewStyle().Foreground(lipgloss.Color("#E53E3E")),
		Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color("#D69E2E")).Bold(true),
		Absent:       lipgloss.NewStyle().Foreground(lipgloss.Color("#D69E2E")),
		NotQualified: lipgloss.NewStyle().Foreground(lipgloss.Color("#E53E3E")),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),

		Card: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// Plain returns styles without colors or borders, for pipes and tests.
func Plain() Styles {
	s := lipgloss.NewStyle()
	return Styles{
		Title: s, Subtitle: s, Header: s.Padding(0, 1), Cell: s.Padding(0, 1), Divider: s,
		Good: s, Danger: s, Warning: s, Absent: s, NotQualified: s, Muted: s,
		Card: s.Border(lipgloss.NormalBorder()).Padding(0, 1),
	}
}

func (s Styles) class(c view.Class) lipgloss.Style {
	switch c {
	case view.ClassGood:
		return s.Good
	case view.ClassDanger:
		return s.Danger
	case view.ClassWarning:
		return s.Warning
	case view.ClassAbsent:
		return s.Absent
	case view.ClassNotQualified:
		return s.NotQualified
	case view.ClassMuted:
		return s.Muted
	}
	return lipgloss.NewStyle()
}
