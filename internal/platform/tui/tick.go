// Package tui provides the Bubble Tea integration for FlipMatch.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pollInterval is how often the game-over condition is polled.
const pollInterval = time.Second

// TickMsg is sent to trigger a game simulation step.
type TickMsg time.Time

// PollMsg is sent once per second to poll level time and game over.
type PollMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 10
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func pollCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return PollMsg(t)
	})
}
