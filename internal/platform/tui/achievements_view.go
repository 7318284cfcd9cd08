package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flipmatch/internal/achievements"
)

// Achievements table layout
const (
	achIconWidth   = 4
	achNameWidth   = 16
	achStatusWidth = 14
	achMinDescW    = 24
)

// newAchievementsTable creates the table used by the achievements panel.
func newAchievementsTable(width, height int) table.Model {
	descWidth := width - achIconWidth - achNameWidth - achStatusWidth - 12
	if descWidth < achMinDescW {
		descWidth = achMinDescW
	}
	columns := []table.Column{
		{Title: "", Width: achIconWidth},
		{Title: "Achievement", Width: achNameWidth},
		{Title: "Goal", Width: descWidth},
		{Title: "Unlocked", Width: achStatusWidth},
	}

	rows := height - 10
	if rows < 5 {
		rows = 5
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(rows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// achievementRows converts catalog statuses to table rows.
// Locked entries hide their icon.
func achievementRows(statuses []achievements.Status) []table.Row {
	rows := make([]table.Row, len(statuses))
	for i, st := range statuses {
		icon := "🔒"
		when := "-"
		if st.Unlocked {
			icon = st.Icon
			when = st.UnlockedAt.Local().Format("Jan 02 15:04")
		}
		rows[i] = table.Row{icon, st.Name, st.Description, when}
	}
	return rows
}

// progressLine summarizes unlock progress.
func progressLine(p achievements.Progress) string {
	return fmt.Sprintf("%d/%d unlocked (%d%%)", p.Unlocked, p.Total, p.Percentage)
}
