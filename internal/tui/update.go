package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/kanpu/internal/storage"
	"github.com/rgehrsitz/kanpu/internal/tui/tuistyles"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case autosaveMsg:
		if msg.seq == m.saveSeq && m.dirty {
			m.save()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	focused := &m.fields[m.focus]

	switch {
	case key.Matches(msg, keys.Quit):
		if m.dirty {
			m.save()
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Next):
		return m.moveFocus(1)

	case key.Matches(msg, keys.Prev):
		return m.moveFocus(-1)

	case key.Matches(msg, keys.ToggleTheme):
		m.toggleTheme()
		return m, nil

	case key.Matches(msg, keys.Reset):
		m.reset()
		return m, nil

	case focused.kind == kindChoice && key.Matches(msg, keys.Left):
		focused.cycle(-1)
		return m.changed(nil)

	case focused.kind == kindChoice && key.Matches(msg, keys.Right):
		focused.cycle(1)
		return m.changed(nil)
	}

	if focused.kind == kindChoice {
		return m, nil
	}

	before := focused.input.Value()
	var cmd tea.Cmd
	focused.input, cmd = focused.input.Update(msg)
	if focused.input.Value() == before {
		return m, cmd
	}
	return m.changed(cmd)
}

// changed recalculates and schedules a debounced save
func (m Model) changed(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.recalculate()
	m.dirty = true
	m.saveSeq++
	m.status = ""
	return m, tea.Batch(cmd, scheduleAutosave(m.saveSeq))
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.fields[m.focus].input.Blur()
	n := len(m.fields)
	m.focus = ((m.focus+delta)%n + n) % n
	if m.fields[m.focus].kind == kindChoice {
		return m, nil
	}
	return m, m.fields[m.focus].input.Focus()
}

func (m *Model) toggleTheme() {
	next := storage.ThemeDark
	if m.isDark() {
		next = storage.ThemeLight
	}
	m.theme = next
	m.styles = tuistyles.New(m.isDark())
	if m.themeStore != nil {
		if err := m.themeStore.Save(next); err != nil {
			m.logger.Errorf("failed to save theme: %v", err)
		}
	}
	m.status = "theme: " + string(next)
}

// reset clears the form back to defaults and forgets the saved input
func (m *Model) reset() {
	m.fields = newFields()
	indexFields(m.fields)[fieldSalary].setAmount(defaultSalary)
	m.focus = 0
	m.fields[0].input.Focus()
	if m.inputStore != nil {
		m.inputStore.Clear()
	}
	m.dirty = false
	m.saveSeq++
	m.recalculate()
	m.status = "input cleared"
}
