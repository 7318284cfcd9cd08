// flipmatch is a terminal memory game: flip cards, find pairs, clear levels
// before the move budget runs out and collect achievements on the way.
//
// Usage:
//
//	flipmatch play                 - Play in this terminal
//	flipmatch achievements [list]  - Show unlocked achievements
//	flipmatch achievements reset   - Forget every unlock
//	flipmatch scores               - Show high scores
//	flipmatch themes               - List card themes
//	flipmatch serve                - Start SSH server for remote play
//
// Global flags:
//
//	--db <path>          - Set database path (default: ~/.flipmatch/flipmatch.db)
//	--config <path>      - Use a specific YAML or TOML config file
//	--difficulty <name>  - easy, normal, hard or fixed
//	--theme <id>         - Card theme (default: emojis)
//	--seed <value>       - Set RNG seed for reproducible decks
//	--log-level <level>  - debug, info, warn or error
//
// Every global flag can also be set through a FLIPMATCH_* environment
// variable; flags win over the environment.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flipmatch/internal/config"
	"github.com/vovakirdan/flipmatch/internal/themes"
)

var (
	// Global flags
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagTheme      string
	flagSeed       int64
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flipmatch",
	Short: "FlipMatch - a memory card game for your terminal",
	Long: `FlipMatch is a memory game played in the terminal. Flip two cards per
attempt, match every pair before the move budget runs out and advance
through increasingly large boards.

Available commands:
  play          - Play a game
  achievements  - List or reset achievements
  scores        - View high scores
  themes        - List card themes
  serve         - Start SSH server for remote play

Examples:
  flipmatch play
  flipmatch play --difficulty hard --theme animals
  flipmatch achievements
  flipmatch scores
  flipmatch serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flipmatch/flipmatch.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom config file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", themes.DefaultID, "Card theme")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(serveCmd)
}

// settings is everything a command needs after flags, environment and the
// config file have been merged.
type settings struct {
	DBPath   string
	Seed     int64
	Game     config.Config
	Theme    themes.Theme
	LogLevel log.Level
}

// loadSettings merges flags over FLIPMATCH_* variables over the config file.
func loadSettings(cmd *cobra.Command) (settings, error) {
	e, err := config.ParseEnv()
	if err != nil {
		return settings{}, err
	}

	flags := cmd.Flags()
	pick := func(name, flagValue, envValue string) string {
		if flags.Changed(name) || envValue == "" {
			return flagValue
		}
		return envValue
	}

	s := settings{
		DBPath: pick("db", flagDBPath, e.DBPath),
		Seed:   flagSeed,
	}
	if !flags.Changed("seed") && e.Seed != 0 {
		s.Seed = e.Seed
	}

	s.Game, err = config.Load(pick("config", flagConfig, e.ConfigPath))
	if err != nil {
		return settings{}, err
	}

	if name := pick("difficulty", flagDifficulty, e.Difficulty); name != "" {
		preset, presetErr := config.ParseDifficulty(name)
		if presetErr != nil {
			return settings{}, presetErr
		}
		config.ApplyPreset(&s.Game, preset)
	} else if s.Game.Difficulty != "" {
		config.ApplyPreset(&s.Game, s.Game.Difficulty)
	}
	if err := s.Game.Validate(); err != nil {
		return settings{}, err
	}

	s.Theme, err = themes.Get(pick("theme", flagTheme, e.Theme))
	if err != nil {
		return settings{}, err
	}

	s.LogLevel, err = log.ParseLevel(pick("log-level", flagLogLevel, e.LogLevel))
	if err != nil {
		return settings{}, fmt.Errorf("invalid log level: %w", err)
	}
	return s, nil
}

// newLogger returns the process logger at the configured level.
func newLogger(s settings) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flipmatch",
		Level:           s.LogLevel,
	})
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
