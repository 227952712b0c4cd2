package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// autosaveDelay is how long input must stay unchanged before it is saved
const autosaveDelay = 500 * time.Millisecond

// autosaveMsg fires after autosaveDelay; stale sequence numbers are ignored
type autosaveMsg struct {
	seq int
}

func scheduleAutosave(seq int) tea.Cmd {
	return tea.Tick(autosaveDelay, func(time.Time) tea.Msg {
		return autosaveMsg{seq: seq}
	})
}
