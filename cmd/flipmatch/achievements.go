package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flipmatch/internal/storage"
)

var flagYes bool

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "List achievements",
	Long: `Show every achievement with its unlock date.

Examples:
  flipmatch achievements
  flipmatch achievements reset --yes`,
	Args: cobra.NoArgs,
	Run:  runAchievementsList,
}

var achievementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List achievements",
	Args:  cobra.NoArgs,
	Run:   runAchievementsList,
}

var achievementsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every unlocked achievement",
	Args:  cobra.NoArgs,
	Run:   runAchievementsReset,
}

func init() {
	achievementsResetCmd.Flags().BoolVar(&flagYes, "yes", false, "Do not ask for confirmation")

	achievementsCmd.AddCommand(achievementsListCmd)
	achievementsCmd.AddCommand(achievementsResetCmd)
}

func runAchievementsList(cmd *cobra.Command, _ []string) {
	s, err := loadSettings(cmd)
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(s.DBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	engine := newEngine(store, s, newLogger(s))
	if w := engine.LastWarning(); w != nil {
		fail("%v", w)
	}

	p := engine.Progress()
	fmt.Printf("Achievements - %d/%d unlocked (%d%%)\n", p.Unlocked, p.Total, p.Percentage)
	fmt.Println()

	fmt.Printf("  %-2s  %-16s  %-16s  %s\n", "", "Name", "Unlocked", "Description")
	fmt.Printf("  %-2s  %-16s  %-16s  %s\n", "", "----", "--------", "-----------")
	for _, a := range engine.All() {
		icon, when := "🔒", "-"
		if a.Unlocked {
			icon = a.Icon
			when = a.UnlockedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %s  %-16s  %-16s  %s\n", icon, a.Name, when, a.Description)
	}
}

func runAchievementsReset(cmd *cobra.Command, _ []string) {
	s, err := loadSettings(cmd)
	if err != nil {
		fail("%v", err)
	}

	if !flagYes {
		fmt.Print("Reset every achievement? [y/N] ")
		var answer string
		fmt.Scanln(&answer) //nolint:errcheck // empty input means no
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return
		}
	}

	store, err := storage.Open(s.DBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	engine := newEngine(store, s, newLogger(s))
	engine.Reset()
	if w := engine.LastWarning(); w != nil {
		fail("%v", w)
	}
	fmt.Println("All achievements reset.")
}
