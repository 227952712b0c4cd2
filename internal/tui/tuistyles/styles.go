// Package tuistyles holds the lipgloss palette and styles shared by the TUI
// and its components.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Palette is a set of colors for one theme
type Palette struct {
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Success    lipgloss.Color
	Danger     lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	StatusBg   lipgloss.Color
}

var (
	DarkPalette = Palette{
		Primary:    lipgloss.Color("#7AA2F7"),
		Accent:     lipgloss.Color("#E0AF68"),
		Success:    lipgloss.Color("#9ECE6A"),
		Danger:     lipgloss.Color("#F7768E"),
		Foreground: lipgloss.Color("#C0CAF5"),
		Muted:      lipgloss.Color("#565F89"),
		Border:     lipgloss.Color("#3B4261"),
		StatusBg:   lipgloss.Color("#1F2335"),
	}

	LightPalette = Palette{
		Primary:    lipgloss.Color("#2E59C7"),
		Accent:     lipgloss.Color("#B5651D"),
		Success:    lipgloss.Color("#2E7D32"),
		Danger:     lipgloss.Color("#C62828"),
		Foreground: lipgloss.Color("#1A1B26"),
		Muted:      lipgloss.Color("#6B7089"),
		Border:     lipgloss.Color("#B4B9CF"),
		StatusBg:   lipgloss.Color("#E1E2E7"),
	}
)

// Styles are the rendered styles for one palette
type Styles struct {
	Palette Palette

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Section      lipgloss.Style
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Value        lipgloss.Style
	MetricLabel  lipgloss.Style
	MetricValue  lipgloss.Style
	Positive     lipgloss.Style
	Error        lipgloss.Style
	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style
	Card         lipgloss.Style
	Panel        lipgloss.Style
}

// New builds styles for the dark or light palette
func New(dark bool) Styles {
	p := LightPalette
	if dark {
		p = DarkPalette
	}

	return Styles{
		Palette:      p,
		Title:        lipgloss.NewStyle().Bold(true).Foreground(p.Primary).Padding(0, 1),
		Subtitle:     lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		Section:      lipgloss.NewStyle().Bold(true).Foreground(p.Accent).MarginTop(1),
		Label:        lipgloss.NewStyle().Foreground(p.Foreground),
		FocusedLabel: lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Value:        lipgloss.NewStyle().Foreground(p.Foreground),
		MetricLabel:  lipgloss.NewStyle().Foreground(p.Muted),
		MetricValue:  lipgloss.NewStyle().Bold(true).Foreground(p.Foreground),
		Positive:     lipgloss.NewStyle().Bold(true).Foreground(p.Success),
		Error:        lipgloss.NewStyle().Foreground(p.Danger),
		StatusBar:    lipgloss.NewStyle().Foreground(p.Muted).Background(p.StatusBg).Padding(0, 1),
		StatusKey:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary).Background(p.StatusBg),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
	}
}
