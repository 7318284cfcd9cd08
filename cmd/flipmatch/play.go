package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flipmatch/internal/achievements"
	"github.com/vovakirdan/flipmatch/internal/core"
	"github.com/vovakirdan/flipmatch/internal/platform/tui"
	"github.com/vovakirdan/flipmatch/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play FlipMatch",
	Long: `Start a game in this terminal.

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Space             - Flip the card under the cursor
  Enter             - Start, continue or go to the next level
  R                 - Restart the current level
  X                 - Stop the game
  Ctrl+R            - Reset the game and every achievement
  Tab               - Show achievements
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Difficulty options:
  easy    - 2.5 attempts per pair
  normal  - 2 attempts per pair
  hard    - 1.5 attempts per pair
  fixed   - Use the config file's move budget

Examples:
  flipmatch play
  flipmatch play --difficulty easy
  flipmatch play --theme animals --seed 42
  flipmatch play --config ./my-flipmatch.toml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with your scores (default: $USER)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	s, err := loadSettings(cmd)
	if err != nil {
		fail("%v", err)
	}
	logger := newLogger(s)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// The game is playable without a database; nothing is kept afterwards
	store, err := storage.Open(s.DBPath)
	if err != nil {
		logger.Warn("could not open database, progress will not be saved", "path", s.DBPath, "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	// Logging to stderr would draw over the alt screen
	sessionLogger := log.New(io.Discard)
	if s.LogLevel == log.DebugLevel {
		sessionLogger = logger
	}

	engine := newEngine(store, s, sessionLogger)

	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.Seed = s.Seed

	if err := tui.Run(tui.Options{
		Config:  s.Game,
		Theme:   s.Theme,
		Store:   store,
		Engine:  engine,
		Runtime: cfg,
		Player:  playerName(),
		Logger:  sessionLogger,
	}); err != nil {
		fail("%v", err)
	}
}

// newEngine loads the achievement engine from store, which may be nil.
func newEngine(store *storage.Store, s settings, logger *log.Logger) *achievements.Engine {
	var achStore achievements.Store
	if store != nil {
		achStore = store
	}
	return achievements.NewEngine(achStore,
		achievements.WithLogger(logger),
		achievements.WithStorageKey(s.Game.Achievements.StorageKey),
	)
}

// playerName returns --player, or the login name.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
