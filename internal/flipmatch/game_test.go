package flipmatch

import (
	"testing"

	"github.com/vovakirdan/flipmatch/internal/achievements"
	"github.com/vovakirdan/flipmatch/internal/config"
	"github.com/vovakirdan/flipmatch/internal/core"
	"github.com/vovakirdan/flipmatch/internal/stats"
	"github.com/vovakirdan/flipmatch/internal/themes"
)

type recordingAchiever struct {
	checks []stats.Snapshot
	resets int
}

func (r *recordingAchiever) CheckAchievements(s stats.Snapshot) []achievements.Achievement {
	r.checks = append(r.checks, s)
	return nil
}

func (r *recordingAchiever) Reset() {
	r.resets++
}

func testTheme() themes.Theme {
	return themes.Theme{ID: "test", Title: "Test", Faces: []string{"A", "B", "C", "D"}}
}

func newTestGame(t *testing.T, ach Achiever, levels ...config.Level) *Game {
	t.Helper()
	g := NewGame(testRules(levels...), testTheme(), ach, WithSeed(7), WithRevealSteps(2))
	if err := g.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return g
}

// pairOf returns the two positions holding sym.
func pairOf(g *Game, sym int) (core.Pos, core.Pos) {
	var found []core.Pos
	b := g.Board()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.Cell(core.P(x, y)).Symbol == sym {
				found = append(found, core.P(x, y))
			}
		}
	}
	return found[0], found[1]
}

func flipAt(t *testing.T, g *Game, p core.Pos) {
	t.Helper()
	g.cursor = p
	if err := g.Flip(); err != nil {
		t.Fatalf("Flip(%v) failed: %v", p, err)
	}
}

func TestGameStartDealsCurrentLevel(t *testing.T) {
	g := newTestGame(t, nil)
	if g.Manager().State() != StateInProgress {
		t.Fatalf("state = %v", g.Manager().State())
	}
	if g.Board().Width() != 2 || g.Board().Height() != 2 {
		t.Errorf("board %dx%d, want 2x2", g.Board().Width(), g.Board().Height())
	}
}

func TestGameMatchCallbacks(t *testing.T) {
	ach := &recordingAchiever{}
	g := newTestGame(t, ach, config.Level{Width: 2, Height: 1})

	var matched, completed int
	g.OnMatch = func(a, b Card, s stats.Snapshot) {
		matched++
		if a.Symbol != b.Symbol {
			t.Errorf("OnMatch with different symbols %d, %d", a.Symbol, b.Symbol)
		}
		if s.LevelComplete {
			t.Error("OnMatch snapshot should not be level complete")
		}
	}
	g.OnLevelComplete = func(s stats.Snapshot) {
		completed++
		if !s.LevelComplete {
			t.Error("OnLevelComplete snapshot should be level complete")
		}
	}

	a, b := pairOf(g, 0)
	flipAt(t, g, a)
	flipAt(t, g, b)

	if matched != 1 || completed != 1 {
		t.Errorf("OnMatch=%d OnLevelComplete=%d, want 1 and 1", matched, completed)
	}
	if len(ach.checks) != 2 {
		t.Fatalf("achievements checked %d times, want 2", len(ach.checks))
	}
	if ach.checks[0].LevelComplete || !ach.checks[1].LevelComplete {
		t.Errorf("check order wrong: %v then %v", ach.checks[0].LevelComplete, ach.checks[1].LevelComplete)
	}
	if !g.Board().Cleared() {
		t.Error("board not cleared")
	}
}

func TestGameSecondPairCompletesDefaultLevel(t *testing.T) {
	ach := &recordingAchiever{}
	g := newTestGame(t, ach)

	a, b := pairOf(g, 0)
	flipAt(t, g, a)
	flipAt(t, g, b)
	if g.Manager().State() != StateInProgress {
		t.Fatalf("state = %v after one of two pairs, want in_progress", g.Manager().State())
	}

	a, b = pairOf(g, 1)
	flipAt(t, g, a)
	flipAt(t, g, b)
	if g.Manager().State() != StateLevelComplete {
		t.Fatalf("state = %v, want level_complete", g.Manager().State())
	}
	s := g.Stats()
	if s.TotalCards != 4 || s.TotalMatches != 2 || s.LevelsCompletedInSession != 1 {
		t.Errorf("totalCards=%d totalMatches=%d levelsCompleted=%d, want 4, 2, 1",
			s.TotalCards, s.TotalMatches, s.LevelsCompletedInSession)
	}
	if n := len(ach.checks); n != 3 || !ach.checks[n-1].LevelComplete {
		t.Errorf("achievement checks = %d, want 3 ending with level complete", n)
	}
}

func TestGameMismatchHidesAfterReveal(t *testing.T) {
	g := newTestGame(t, nil, config.Level{Width: 4, Height: 2})

	a, _ := pairOf(g, 0)
	b, _ := pairOf(g, 1)
	flipAt(t, g, a)
	flipAt(t, g, b)

	if !g.Board().Cell(a).FaceUp || !g.Board().Cell(b).FaceUp {
		t.Fatal("mismatched cards should stay visible")
	}
	if g.Stats().Mismatches != 1 {
		t.Errorf("mismatches = %d", g.Stats().Mismatches)
	}

	g.Step(core.NewInputFrame())
	if !g.Board().Cell(a).FaceUp {
		t.Error("card hidden before the reveal delay")
	}
	g.Step(core.NewInputFrame())
	if g.Board().Cell(a).FaceUp || g.Board().Cell(b).FaceUp {
		t.Error("mismatched cards not hidden after the reveal delay")
	}
}

func TestGameFlipFaceUpIgnored(t *testing.T) {
	g := newTestGame(t, nil, config.Level{Width: 4, Height: 2})
	a, _ := pairOf(g, 0)
	flipAt(t, g, a)
	flipAt(t, g, a)
	if g.Stats().Moves != 0 {
		t.Errorf("flipping the same card twice counted a move")
	}
}

func TestGameContinue(t *testing.T) {
	g := newTestGame(t, nil, config.Level{Width: 2, Height: 1}, config.Level{Width: 4, Height: 2})

	a, b := pairOf(g, 0)
	flipAt(t, g, a)
	flipAt(t, g, b)

	if err := g.Continue(); err != nil {
		t.Fatalf("Continue() failed: %v", err)
	}
	if g.Manager().Level() != 2 || g.Manager().State() != StateInProgress {
		t.Fatalf("level %d state %v after continue", g.Manager().Level(), g.Manager().State())
	}
	if g.Board().Width() != 4 {
		t.Errorf("board width = %d, want 4", g.Board().Width())
	}

	for sym := range 4 {
		a, b := pairOf(g, sym)
		flipAt(t, g, a)
		flipAt(t, g, b)
	}
	if err := g.Continue(); err != nil {
		t.Fatalf("Continue() on final level failed: %v", err)
	}
	if g.Manager().State() != StateGameComplete {
		t.Errorf("state = %v, want game_complete", g.Manager().State())
	}
	if !g.State().GameOver {
		t.Error("platform state should be terminal after game complete")
	}
}

func TestGameOverFiresOnce(t *testing.T) {
	r := testRules(config.Level{Width: 4, Height: 2})
	r.Moves = config.MovesConfig{PerPair: 1, Extra: 0}
	g := NewGame(r, testTheme(), nil, WithSeed(3), WithRevealSteps(0))
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}

	fired := 0
	g.OnGameOver = func(s stats.Snapshot) {
		fired++
		if s.RemainingMoves >= 0 {
			t.Errorf("game over with %d remaining", s.RemainingMoves)
		}
	}

	a, _ := pairOf(g, 0)
	b, _ := pairOf(g, 1)
	for range 5 {
		flipAt(t, g, a)
		flipAt(t, g, b)
		g.flushHidden()
	}
	for range 3 {
		if !g.Tick() {
			t.Fatal("Tick() = false after game over")
		}
	}
	if fired != 1 {
		t.Errorf("OnGameOver fired %d times, want 1", fired)
	}
}

func TestGameReset(t *testing.T) {
	ach := &recordingAchiever{}
	g := newTestGame(t, ach, config.Level{Width: 2, Height: 1}, config.Level{Width: 4, Height: 2})
	a, b := pairOf(g, 0)
	flipAt(t, g, a)
	flipAt(t, g, b)
	if err := g.Continue(); err != nil {
		t.Fatal(err)
	}

	if err := g.Reset(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if ach.resets != 1 {
		t.Errorf("achiever reset %d times", ach.resets)
	}
	if g.Manager().Level() != 1 || g.Stats().TotalScore != 0 {
		t.Errorf("level %d score %d after reset", g.Manager().Level(), g.Stats().TotalScore)
	}
	if g.Manager().State() != StateInProgress {
		t.Errorf("state = %v, want a fresh level in progress", g.Manager().State())
	}
}

func TestGameStepInput(t *testing.T) {
	g := NewGame(testRules(config.Level{Width: 4, Height: 2}), testTheme(), nil, WithSeed(1))

	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)
	if g.Manager().State() != StateInProgress {
		t.Fatalf("confirm did not start the level: %v", g.Manager().State())
	}

	in = core.NewInputFrame()
	in.Set(core.ActionRight)
	in.Set(core.ActionDown)
	g.Step(in)
	if g.cursor != core.P(1, 1) {
		t.Errorf("cursor = %v, want {1 1}", g.cursor)
	}

	in = core.NewInputFrame()
	in.Set(core.ActionFlip)
	g.Step(in)
	snap := g.Snapshot()
	if !snap.Held || !snap.At(core.P(1, 1)).FaceUp {
		t.Error("flip input did not turn the card under the cursor")
	}
	if snap.At(core.P(1, 1)).Face == "" {
		t.Error("face-up card has no face")
	}
	if snap.At(core.P(0, 0)).Face != "" {
		t.Error("face-down card exposes its face")
	}

	in = core.NewInputFrame()
	in.Set(core.ActionStop)
	g.Step(in)
	if g.Manager().State() != StateStopped {
		t.Errorf("state = %v, want stopped", g.Manager().State())
	}
}

func TestGameCombo(t *testing.T) {
	g := newTestGame(t, nil, config.Level{Width: 4, Height: 2})
	for sym := range 3 {
		if g.Combo() != 0 {
			t.Errorf("combo %d shown at streak %d", g.Combo(), sym)
		}
		a, b := pairOf(g, sym)
		flipAt(t, g, a)
		flipAt(t, g, b)
	}
	if g.Combo() != 3 {
		t.Errorf("Combo() = %d, want 3", g.Combo())
	}
}

func TestGameTakeUnlocked(t *testing.T) {
	eng := achievements.NewEngine(nil)
	g := newTestGame(t, eng)
	a, b := pairOf(g, 0)
	flipAt(t, g, a)
	flipAt(t, g, b)

	got := g.TakeUnlocked()
	if len(got) == 0 || got[0].ID != achievements.IDFirstMatch {
		t.Fatalf("TakeUnlocked() = %v, want first_match first", got)
	}
	if len(g.TakeUnlocked()) != 0 {
		t.Error("TakeUnlocked() should drain the queue")
	}
}
