package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/flipmatch/internal/achievements"
	"github.com/vovakirdan/flipmatch/internal/config"
	"github.com/vovakirdan/flipmatch/internal/core"
	"github.com/vovakirdan/flipmatch/internal/flipmatch"
	"github.com/vovakirdan/flipmatch/internal/stats"
	"github.com/vovakirdan/flipmatch/internal/storage"
	"github.com/vovakirdan/flipmatch/internal/themes"
)

// bannerDuration is how long an unlock notification stays on screen.
const bannerDuration = 3 * time.Second

// Options carries the dependencies of one game session.
type Options struct {
	Config  config.Config
	Theme   themes.Theme
	Store   *storage.Store        // May be nil; scores are then not saved
	Engine  *achievements.Engine  // Required
	Runtime core.RuntimeConfig
	Player  string
	Logger  *log.Logger // Defaults to a discarding logger
}

// Model is the Bubble Tea model for a FlipMatch session.
type Model struct {
	game       *flipmatch.Game
	engine     *achievements.Engine
	store      *storage.Store
	logger     *log.Logger
	keys       *KeyMapper
	help       help.Model
	table      table.Model
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState

	player     string
	sessionID  string
	scoreSaved bool // Whether the current terminal state has been saved

	banner      string
	bannerTicks int

	showAchievements bool
	width            int
	height           int
	quitting         bool
}

// NewModel creates a new Bubble Tea model for a session.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player

	game := flipmatch.NewGame(
		flipmatch.RulesFromConfig(opts.Config),
		opts.Theme,
		opts.Engine,
		flipmatch.WithSeed(cfg.Seed),
		flipmatch.WithRevealSteps(cfg.TickRate),
	)
	game.OnLevelComplete = func(s stats.Snapshot) {
		logger.Debug("level complete", "player", player, "level", s.Level, "score", s.TotalScore, "moves", s.Moves)
	}
	game.OnGameOver = func(s stats.Snapshot) {
		logger.Debug("game over", "player", player, "level", s.Level, "score", s.TotalScore)
	}
	opts.Engine.SetListener(func(a achievements.Achievement) {
		logger.Info("achievement unlocked", "player", player, "achievement", a.ID)
	})

	h := help.New()
	h.ShowAll = false

	return Model{
		game:       game,
		engine:     opts.Engine,
		store:      opts.Store,
		logger:     logger,
		keys:       NewKeyMapper(),
		help:       h,
		table:      newAchievementsTable(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		player:     player,
		sessionID:  uuid.NewString(),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
}

// Init starts the tick loop and the once-per-second poll.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), pollCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = newAchievementsTable(msg.Width, msg.Height)
		m.table.SetRows(achievementRows(m.engine.All()))
		return m, nil

	case TickMsg:
		return m.handleTick()

	case PollMsg:
		m.game.Tick()
		return m, pollCmd()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Quit):
		m.saveScore()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.Achievements):
		m.showAchievements = !m.showAchievements
		if m.showAchievements {
			m.table.SetRows(achievementRows(m.engine.All()))
			m.table.GotoTop()
		}
		return m, nil
	}

	if m.showAchievements {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	m.keys.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleTick runs one simulation step with the input collected since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionReset) {
		// A new game is a new run on the scoreboard
		m.saveScore()
		m.sessionID = uuid.NewString()
		m.scoreSaved = false
	}

	m.gameState = m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	if unlocked := m.game.TakeUnlocked(); len(unlocked) > 0 {
		names := make([]string, len(unlocked))
		for i, a := range unlocked {
			names[i] = a.Icon + " " + a.Name
		}
		m.banner = "Achievement unlocked: " + strings.Join(names, ", ")
		m.bannerTicks = int(bannerDuration.Seconds()) * m.config.TickRate
	}
	if m.bannerTicks > 0 {
		m.bannerTicks--
		if m.bannerTicks == 0 {
			m.banner = ""
		}
	}

	switch {
	case m.gameState.GameOver:
		m.saveScore()
	case m.game.Manager().State() == flipmatch.StateInProgress:
		m.scoreSaved = false
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the current run once per terminal state.
func (m *Model) saveScore() {
	if m.scoreSaved || m.store == nil {
		return
	}
	s := m.game.Stats()
	if s.TotalScore <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.sessionID, m.player, s.TotalScore, s.Level); err != nil {
		m.logger.Warn("could not save score", "player", m.player, "error", err)
	}
	m.scoreSaved = true
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.game.Snapshot()
	var b strings.Builder

	b.WriteString(renderHeader(snap, m.engine.UnlockedCount(), m.engine.TotalCount()))
	b.WriteString("\n\n")

	if m.showAchievements {
		b.WriteString(titleStyle.Render("ACHIEVEMENTS"))
		b.WriteString("  ")
		b.WriteString(statStyle.Render(progressLine(m.engine.Progress())))
		b.WriteString("\n")
		b.WriteString(boardStyle.Render(m.table.View()))
	} else {
		b.WriteString(renderBoard(snap))
		b.WriteString("\n")
		b.WriteString(statusLine(snap))
	}
	b.WriteString("\n")

	if m.banner != "" {
		b.WriteString(bannerStyle.Render(m.banner))
		b.WriteString("\n")
	}
	if w := m.engine.LastWarning(); w != nil {
		b.WriteString(warnStyle.Render(fmt.Sprintf("achievements not saved: %v", w)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys.Keys())))
	return b.String()
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
