package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flipmatch/internal/platform/tui"
	"github.com/vovakirdan/flipmatch/internal/storage"
)

var (
	flagScoresPlain  bool
	flagScoresPlayer string
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 finished runs.

In a terminal the interactive scoreboard is shown; pass --plain (or pipe the
output) for a plain table.

Examples:
  flipmatch scores
  flipmatch scores --plain
  flipmatch scores --player alice
  flipmatch scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a plain table instead of the interactive scoreboard")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show runs of this player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded score")
}

func runScores(cmd *cobra.Command, _ []string) {
	s, err := loadSettings(cmd)
	if err != nil {
		fail("%v", err)
	}

	// Open score storage
	store, err := storage.Open(s.DBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			fail("clearing scores: %v", err)
		}
		fmt.Println("Scores cleared.")
		return
	}

	if !flagScoresPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, flagScoresPlayer, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	// Get top scores
	var scores []storage.ScoreEntry
	if flagScoresPlayer != "" {
		scores, err = store.PlayerScores(flagScoresPlayer, 10)
	} else {
		scores, err = store.TopScores(10)
	}
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Println("High Scores - FlipMatch")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flipmatch play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-14s  %-8s  %-5s  %s\n", "Rank", "Player", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-14s  %-8s  %-5s  %s\n", "----", "------", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-14s  %-8d  %-5d  %s\n", i+1, entry.Player, entry.Score, entry.Level, dateStr)
	}

	fmt.Println()
	if st, err := store.Stats(); err == nil {
		fmt.Printf("Best: %d  Best level: %d  Games: %d  Average: %.0f\n",
			st.HighScore, st.BestLevel, st.Games, st.AvgScore)
	}
}
