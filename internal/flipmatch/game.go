package flipmatch

import (
	"errors"
	"math/rand"
	"time"

	"github.com/vovakirdan/flipmatch/internal/achievements"
	"github.com/vovakirdan/flipmatch/internal/core"
	"github.com/vovakirdan/flipmatch/internal/stats"
	"github.com/vovakirdan/flipmatch/internal/themes"
)

// comboThreshold is the streak from which a combo is surfaced.
const comboThreshold = 3

// Achiever is the part of the achievement engine a game session drives.
type Achiever interface {
	CheckAchievements(s stats.Snapshot) []achievements.Achievement
	Reset()
}

// GameOption configures a Game.
type GameOption func(*Game)

// WithSeed sets the RNG seed used for dealing.
func WithSeed(seed int64) GameOption {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithGameClock overrides the time source of the session's manager.
func WithGameClock(now func() time.Time) GameOption {
	return func(g *Game) {
		g.managerOpts = append(g.managerOpts, WithClock(now))
	}
}

// WithRevealSteps sets how many steps a mismatched pair stays face up.
func WithRevealSteps(n int) GameOption {
	return func(g *Game) {
		g.revealSteps = n
	}
}

// Game is one player's session: it owns the level manager, the board and
// the cursor, and reports gameplay events to the achievement engine.
type Game struct {
	manager     *Manager
	managerOpts []ManagerOption
	achiever    Achiever
	theme       themes.Theme
	rng         *rand.Rand

	board  *Board
	faces  []string
	cursor core.Pos
	first  *core.Pos

	hidePending []core.Pos
	hideAt      uint64
	revealSteps int
	tick        uint64

	gameOverSent bool
	lastUnlocked []achievements.Achievement

	// OnMatch fires after every successful match, before achievements are checked.
	OnMatch func(a, b Card, s stats.Snapshot)
	// OnLevelComplete fires once per cleared level with LevelComplete set.
	OnLevelComplete func(s stats.Snapshot)
	// OnGameOver fires once when the move budget is overdrawn.
	OnGameOver func(s stats.Snapshot)
}

// NewGame creates a session in StateNotStarted. achiever may be nil.
func NewGame(rules Rules, theme themes.Theme, achiever Achiever, opts ...GameOption) *Game {
	g := &Game{
		achiever:    achiever,
		theme:       theme,
		revealSteps: 8,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.manager = NewManager(rules, g.managerOpts...)
	return g
}

// Manager exposes the level manager of the session.
func (g *Game) Manager() *Manager {
	return g.manager
}

// Board returns the board of the current level, or nil before the first deal.
func (g *Game) Board() *Board {
	return g.board
}

// Start deals the current level and starts it. It also restarts a level in progress.
func (g *Game) Start() error {
	lvl := g.manager.CurrentLevelConfig()
	board, err := Deal(lvl.Width, lvl.Height, g.rng)
	if err != nil {
		return err
	}
	if err := g.manager.StartLevel(lvl.Width, lvl.Height); err != nil {
		return err
	}
	g.board = board
	g.faces = g.theme.Pick(board.Pairs(), g.rng)
	g.cursor = core.Pos{}
	g.first = nil
	g.hidePending = nil
	g.gameOverSent = false
	return nil
}

// Continue handles the confirm action: it starts a level that is waiting,
// advances after a cleared level and completes the game after the last one.
func (g *Game) Continue() error {
	switch g.manager.State() {
	case StateNotStarted, StateStopped, StateGameOver:
		return g.Start()
	case StateLevelComplete:
		err := g.manager.AdvanceLevel()
		if errors.Is(err, ErrFinalLevel) {
			return g.manager.CompleteGame()
		}
		if err != nil {
			return err
		}
		return g.Start()
	default:
		return &InvalidStateError{Op: "continue", State: g.manager.State()}
	}
}

// Stop ends the run in progress.
func (g *Game) Stop() error {
	if err := g.manager.Stop(); err != nil {
		return err
	}
	g.first = nil
	return nil
}

// Reset starts a new game from level 1 and clears every achievement.
func (g *Game) Reset() error {
	g.manager.ResetGame()
	if g.achiever != nil {
		g.achiever.Reset()
	}
	g.lastUnlocked = nil
	return g.Start()
}

// Flip turns the card under the cursor. The second flip of a pair records a
// match attempt. Invalid flips (matched or face-up cards) are ignored.
func (g *Game) Flip() error {
	if g.manager.State() != StateInProgress {
		return &InvalidStateError{Op: "flip", State: g.manager.State()}
	}
	g.flushHidden()

	pos := g.cursor
	if err := g.board.Flip(pos); err != nil {
		return nil
	}
	if g.first == nil {
		g.first = &pos
		return nil
	}

	a := g.board.Card(*g.first)
	b := g.board.Card(pos)
	g.first = nil

	res, err := g.manager.RecordMatchAttempt(a, b)
	if err != nil {
		g.board.Hide(a.Pos, b.Pos)
		return err
	}

	if res.Matched {
		g.board.MarkMatched(a.Pos, b.Pos)
		g.handleMatch(a, b, res)
	} else {
		g.hidePending = []core.Pos{a.Pos, b.Pos}
		g.hideAt = g.tick + uint64(g.revealSteps)
	}

	if res.GameOver {
		g.handleGameOver()
	}
	return nil
}

func (g *Game) handleMatch(a, b Card, res Attempt) {
	snap := g.manager.Stats()
	snap.LevelComplete = false
	if g.OnMatch != nil {
		g.OnMatch(a, b, snap)
	}
	g.check(snap)

	if res.LevelComplete {
		done := g.manager.Stats()
		if g.OnLevelComplete != nil {
			g.OnLevelComplete(done)
		}
		g.check(done)
	}
}

func (g *Game) handleGameOver() {
	if g.gameOverSent {
		return
	}
	g.gameOverSent = true
	g.first = nil
	if g.OnGameOver != nil {
		g.OnGameOver(g.manager.Stats())
	}
}

func (g *Game) check(s stats.Snapshot) {
	if g.achiever == nil {
		return
	}
	if unlocked := g.achiever.CheckAchievements(s); len(unlocked) > 0 {
		g.lastUnlocked = append(g.lastUnlocked, unlocked...)
	}
}

// TakeUnlocked returns and clears the achievements unlocked since the last call.
func (g *Game) TakeUnlocked() []achievements.Achievement {
	out := g.lastUnlocked
	g.lastUnlocked = nil
	return out
}

// Step applies one frame of input. Mismatched cards flip back after the
// reveal delay.
func (g *Game) Step(in core.InputFrame) core.GameState {
	g.tick++
	if len(g.hidePending) > 0 && g.tick >= g.hideAt {
		g.flushHidden()
	}

	switch {
	case in.Has(core.ActionReset):
		//nolint:errcheck // Reset only fails on an invalid level table, caught at load
		g.Reset()
	case in.Has(core.ActionStop):
		//nolint:errcheck // Stopping outside a level is a no-op
		g.Stop()
	case in.Has(core.ActionRestart):
		if g.manager.State() != StateGameComplete && g.manager.State() != StateLevelComplete {
			//nolint:errcheck // Restart cannot fail for a validated level table
			g.Start()
		}
	case in.Has(core.ActionConfirm):
		//nolint:errcheck // Confirm is ignored while a level is in progress
		g.Continue()
	}

	if g.board != nil {
		for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
			if in.Has(a) {
				g.cursor = g.cursor.Step(a, g.board.Width(), g.board.Height())
			}
		}
	}

	if in.Has(core.ActionFlip) && g.manager.State() == StateInProgress {
		//nolint:errcheck // Invalid flips are ignored
		g.Flip()
	}

	return g.State()
}

// Tick is the once-per-second poll: it refreshes level time and detects an
// overdrawn move budget. It is idempotent without intervening attempts.
func (g *Game) Tick() bool {
	over := g.manager.Tick()
	if over {
		g.handleGameOver()
	}
	return over
}

func (g *Game) flushHidden() {
	if len(g.hidePending) == 0 {
		return
	}
	g.board.Hide(g.hidePending...)
	g.hidePending = nil
}

// Combo returns the current streak when it is high enough to celebrate, else 0.
func (g *Game) Combo() int {
	if s := g.manager.Stats().Streak; s >= comboThreshold {
		return s
	}
	return 0
}

// Stats returns the manager's current statistics.
func (g *Game) Stats() stats.Snapshot {
	return g.manager.Stats()
}

// State returns the coarse status for the platform.
func (g *Game) State() core.GameState {
	st := g.manager.State()
	return core.GameState{
		Score:    g.manager.Stats().TotalScore,
		Level:    g.manager.Level(),
		GameOver: st.Terminal(),
		Paused:   st == StateNotStarted || st == StateLevelComplete,
	}
}
