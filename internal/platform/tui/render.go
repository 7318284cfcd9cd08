package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/flipmatch/internal/core"
	"github.com/vovakirdan/flipmatch/internal/flipmatch"
)

// cardWidth is the printable width of one card label. Emoji take two cells.
const cardWidth = 4

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	statValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	comboStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	cardHiddenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	cardFaceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	cardMatchedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("2")).
				Faint(true)

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("57")).
			Foreground(lipgloss.Color("229"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("11")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// cardLabel returns the centered, fixed-width text of one card.
func cardLabel(v flipmatch.CellView) string {
	text := "░░"
	if v.FaceUp && v.Face != "" {
		text = v.Face
	}
	w := runewidth.StringWidth(text)
	if w > cardWidth {
		text = runewidth.Truncate(text, cardWidth, "")
		w = runewidth.StringWidth(text)
	}
	left := (cardWidth - w) / 2
	return strings.Repeat(" ", left) + runewidth.FillRight(text, cardWidth-left)
}

// renderBoard draws the card grid with the cursor highlighted.
func renderBoard(snap flipmatch.Snapshot) string {
	if snap.Width == 0 {
		return boardStyle.Render(statStyle.Render("no board dealt"))
	}

	rows := make([]string, 0, snap.Height)
	for y := 0; y < snap.Height; y++ {
		var row strings.Builder
		for x := 0; x < snap.Width; x++ {
			p := core.P(x, y)
			v := snap.At(p)
			style := cardHiddenStyle
			switch {
			case v.Matched:
				style = cardMatchedStyle
			case v.FaceUp:
				style = cardFaceStyle
			}
			if p == snap.Cursor && snap.State == flipmatch.StateInProgress {
				style = cursorStyle
			}
			if x > 0 {
				row.WriteString(" ")
			}
			row.WriteString(style.Render(cardLabel(v)))
		}
		rows = append(rows, row.String())
	}
	return boardStyle.Render(strings.Join(rows, "\n\n"))
}

// renderHeader draws the title and the running statistics.
func renderHeader(snap flipmatch.Snapshot, unlocked, total int) string {
	s := snap.Stats
	stat := func(label string, value any) string {
		return statStyle.Render(label+" ") + statValueStyle.Render(fmt.Sprint(value))
	}

	remaining := s.RemainingMoves
	if remaining < 0 {
		remaining = 0
	}
	parts := []string{
		titleStyle.Render("FLIPMATCH"),
		stat("Level", fmt.Sprintf("%d/%d", s.Level, s.TotalLevels)),
		stat("Score", s.TotalScore),
		stat("Moves", fmt.Sprintf("%d/%d", remaining, snap.Budget)),
		stat("Streak", s.Streak),
		stat("Time", s.LevelTime.Truncate(time.Second)),
		stat("🏅", fmt.Sprintf("%d/%d", unlocked, total)),
	}
	line := strings.Join(parts, "  ")
	if snap.Combo > 0 {
		line += "  " + comboStyle.Render(fmt.Sprintf("COMBO x%d!", snap.Combo))
	}
	return line
}

// statusLine describes what the player can do next.
func statusLine(snap flipmatch.Snapshot) string {
	s := snap.Stats
	switch snap.State {
	case flipmatch.StateNotStarted:
		return statusStyle.Render(fmt.Sprintf(
			"Level %d: %dx%d grid, %d moves. Press enter to start.",
			s.Level, snap.Grid.Width, snap.Grid.Height, snap.Budget))
	case flipmatch.StateInProgress:
		if snap.Held {
			return statusStyle.Render("Pick the second card.")
		}
		return statusStyle.Render("Find the pairs.")
	case flipmatch.StateLevelComplete:
		if s.IsFinalLevel() {
			return statusStyle.Render("Final level cleared! Press enter to finish.")
		}
		return statusStyle.Render(fmt.Sprintf("Level %d complete! Press enter for level %d.", s.Level, s.Level+1))
	case flipmatch.StateGameOver:
		return warnStyle.Render("Out of moves! Press enter to retry the level, ctrl+r for a new game.")
	case flipmatch.StateGameComplete:
		return statusStyle.Render(fmt.Sprintf("You cleared every level! Final score: %d", s.TotalScore))
	case flipmatch.StateStopped:
		return warnStyle.Render("Stopped. Press enter to retry the level.")
	}
	return ""
}
