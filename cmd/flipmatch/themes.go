package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flipmatch/internal/themes"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List card themes",
	Long: `Display all card themes that can be passed to --theme.

Example:
  flipmatch themes`,
	Args: cobra.NoArgs,
	Run:  runThemes,
}

func runThemes(_ *cobra.Command, _ []string) {
	list := themes.List()

	if len(list) == 0 {
		fmt.Println("No themes available.")
		return
	}

	fmt.Println("Available themes:")
	fmt.Println()

	for _, t := range list {
		marker := " "
		if t.ID == themes.DefaultID {
			marker = "*"
		}
		fmt.Printf("  %s %-10s  %-20s  %d faces\n", marker, t.ID, t.Title, t.Size)
	}

	fmt.Println()
	fmt.Println("Use 'flipmatch play --theme <id>' to pick one.")
}
