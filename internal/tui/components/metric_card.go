package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kanpu/internal/tui/tuistyles"
)

// MetricCard displays a single figure with a label and optional caption
type MetricCard struct {
	Label       string
	Value       string
	Description string
	Highlight   bool
	Width       int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// WithDescription adds a caption below the value
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithHighlight renders the value in the success color
func (m *MetricCard) WithHighlight() *MetricCard {
	m.Highlight = true
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled card
func (m *MetricCard) Render(s tuistyles.Styles) string {
	label := s.MetricLabel.Render(m.Label)

	valueStyle := s.MetricValue
	if m.Highlight {
		valueStyle = s.Positive
	}
	content := label + "\n" + valueStyle.Render(m.Value)
	if m.Description != "" {
		content += "\n" + s.Subtitle.Render(m.Description)
	}

	return s.Card.Width(m.Width).Render(content)
}

// MetricGrid renders cards in rows of the given number of columns
func MetricGrid(s tuistyles.Styles, cards []*MetricCard, columns int) string {
	if len(cards) == 0 || columns <= 0 {
		return ""
	}

	var rows []string
	var current []string
	for i, card := range cards {
		current = append(current, card.Render(s))
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
