package flipmatch

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/flipmatch/internal/achievements"
	"github.com/vovakirdan/flipmatch/internal/config"
	"github.com/vovakirdan/flipmatch/internal/core"
)

type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testRules(levels ...config.Level) Rules {
	r := DefaultRules()
	if len(levels) > 0 {
		r.Levels = levels
	}
	return r
}

// match returns a matching pair for symbol n.
func match(n int) (Card, Card) {
	return Card{Pos: core.P(0, n), Symbol: n}, Card{Pos: core.P(1, n), Symbol: n}
}

// miss returns a non-matching pair.
func miss() (Card, Card) {
	return Card{Pos: core.P(0, 0), Symbol: 0}, Card{Pos: core.P(1, 0), Symbol: 1}
}

func mustAttempt(t *testing.T, m *Manager, a, b Card) Attempt {
	t.Helper()
	res, err := m.RecordMatchAttempt(a, b)
	if err != nil {
		t.Fatalf("RecordMatchAttempt() failed: %v", err)
	}
	return res
}

func TestSinglePairCompletesLevel(t *testing.T) {
	m := NewManager(testRules())
	if err := m.StartLevel(2, 1); err != nil {
		t.Fatalf("StartLevel(2, 1) failed: %v", err)
	}

	a, b := match(0)
	res := mustAttempt(t, m, a, b)

	s := m.Stats()
	if s.Moves != 1 || s.TotalMatches != 1 {
		t.Errorf("moves=%d totalMatches=%d, want 1 and 1", s.Moves, s.TotalMatches)
	}
	if m.State() != StateLevelComplete || !res.LevelComplete || !s.LevelComplete {
		t.Errorf("state = %v, attempt = %+v; want level complete", m.State(), res)
	}
}

func TestTwoByTwoDealsTwoPairs(t *testing.T) {
	m := NewManager(testRules())
	if err := m.StartLevel(2, 2); err != nil {
		t.Fatal(err)
	}

	a, b := match(0)
	if res := mustAttempt(t, m, a, b); res.LevelComplete {
		t.Fatal("first of two pairs completed the level")
	}
	if m.State() != StateInProgress {
		t.Fatalf("state = %v, want in_progress", m.State())
	}

	a, b = match(1)
	if res := mustAttempt(t, m, a, b); !res.LevelComplete {
		t.Errorf("second pair did not complete the level: %+v", res)
	}
	s := m.Stats()
	if s.TotalCards != 4 || s.Moves != 2 || s.TotalMatches != 2 || !s.LevelComplete {
		t.Errorf("stats = %+v", s)
	}
}

func TestMismatchesResetStreak(t *testing.T) {
	m := NewManager(testRules())
	if err := m.StartLevel(4, 4); err != nil {
		t.Fatal(err)
	}

	a, b := match(0)
	mustAttempt(t, m, a, b)
	for range 3 {
		a, b := miss()
		mustAttempt(t, m, a, b)
	}

	s := m.Stats()
	if s.Streak != 0 {
		t.Errorf("streak = %d, want 0", s.Streak)
	}
	if s.Mismatches != 3 {
		t.Errorf("mismatches = %d, want 3", s.Mismatches)
	}
	if s.Moves != 4 {
		t.Errorf("moves = %d, want 4", s.Moves)
	}
	if s.MaxStreak != 1 {
		t.Errorf("maxStreak = %d, want 1", s.MaxStreak)
	}
}

func TestThreeMismatchesFromStart(t *testing.T) {
	m := NewManager(testRules())
	if err := m.StartLevel(4, 4); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		a, b := miss()
		mustAttempt(t, m, a, b)
	}
	s := m.Stats()
	if s.Streak != 0 || s.Mismatches != 3 || s.Moves != 3 {
		t.Errorf("got streak=%d mismatches=%d moves=%d, want 0/3/3", s.Streak, s.Mismatches, s.Moves)
	}
}

func TestBudgetExhaustedEndsGame(t *testing.T) {
	r := testRules(config.Level{Width: 4, Height: 2})
	r.Moves = config.MovesConfig{PerPair: 1, Extra: 0}
	m := NewManager(r)
	if err := m.StartCurrentLevel(); err != nil {
		t.Fatal(err)
	}
	if m.Budget() != 4 {
		t.Fatalf("budget = %d, want 4", m.Budget())
	}

	for i := range 4 {
		a, b := miss()
		if res := mustAttempt(t, m, a, b); res.GameOver {
			t.Fatalf("attempt %d ended the game with %d moves remaining", i+1, m.Stats().RemainingMoves)
		}
	}
	if m.IsGameOver() {
		t.Fatal("game over with zero moves remaining")
	}

	a, b := miss()
	res := mustAttempt(t, m, a, b)
	if !res.GameOver {
		t.Error("overdrawing attempt should report game over")
	}
	if !m.IsGameOver() || m.State() != StateGameOver {
		t.Errorf("IsGameOver() = %v, state = %v", m.IsGameOver(), m.State())
	}

	var stateErr *InvalidStateError
	if _, err := m.RecordMatchAttempt(a, b); !errors.As(err, &stateErr) {
		t.Errorf("attempt after game over: err = %v, want InvalidStateError", err)
	}
}

func TestResetClearsGameAndAchievements(t *testing.T) {
	m := NewManager(testRules())
	eng := achievements.NewEngine(nil)

	if err := m.StartLevel(2, 1); err != nil {
		t.Fatal(err)
	}
	a, b := match(0)
	mustAttempt(t, m, a, b)
	if err := m.AdvanceLevel(); err != nil {
		t.Fatal(err)
	}
	eng.CheckAchievements(m.Stats())
	if eng.UnlockedCount() == 0 {
		t.Fatal("expected an unlock before reset")
	}

	m.ResetGame()
	eng.Reset()

	if eng.UnlockedCount() != 0 {
		t.Errorf("UnlockedCount() = %d after reset", eng.UnlockedCount())
	}
	if m.Level() != 1 || m.State() != StateNotStarted {
		t.Errorf("level = %d, state = %v; want 1, not_started", m.Level(), m.State())
	}
	s := m.Stats()
	if s.TotalScore != 0 || s.TotalMatches != 0 || s.MaxStreak != 0 || s.LevelsCompletedInSession != 0 {
		t.Errorf("counters not cleared: %+v", s)
	}
}

func TestFiveMatchStreakUnlocksStreakMaster(t *testing.T) {
	m := NewManager(testRules())
	eng := achievements.NewEngine(nil)
	if err := m.StartLevel(4, 4); err != nil {
		t.Fatal(err)
	}

	for i := range 5 {
		a, b := match(i)
		mustAttempt(t, m, a, b)
	}
	if s := m.Stats(); s.Streak != 5 {
		t.Fatalf("streak = %d, want 5", s.Streak)
	}

	unlocked := eng.CheckAchievements(m.Stats())
	found := false
	for _, a := range unlocked {
		if a.ID == achievements.IDStreakMaster {
			found = true
		}
	}
	if !found {
		t.Errorf("streak_master not unlocked, got %v", unlocked)
	}
}

func TestStartLevelResetsPerLevelState(t *testing.T) {
	m := NewManager(testRules())
	if err := m.StartLevel(4, 4); err != nil {
		t.Fatal(err)
	}
	a, b := match(0)
	mustAttempt(t, m, a, b)
	a, b = match(1)
	mustAttempt(t, m, a, b)
	a, b = miss()
	mustAttempt(t, m, a, b)
	a, b = match(2)
	mustAttempt(t, m, a, b)

	before := m.Stats()
	if err := m.StartLevel(4, 4); err != nil {
		t.Fatal(err)
	}
	s := m.Stats()

	if s.Moves != 0 || s.Mismatches != 0 || s.Streak != 0 || s.LevelTime != 0 {
		t.Errorf("per-level state not reset: %+v", s)
	}
	if s.RemainingMoves != m.Budget() {
		t.Errorf("remaining = %d, want full budget %d", s.RemainingMoves, m.Budget())
	}
	if s.TotalScore != before.TotalScore || s.TotalMatches != before.TotalMatches || s.MaxStreak != before.MaxStreak {
		t.Errorf("session counters changed on restart: before %+v after %+v", before, s)
	}
}

func TestStartLevelRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"odd card count", 3, 3},
		{"zero width", 0, 2},
		{"negative", -2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(testRules())
			err := m.StartLevel(tt.w, tt.h)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("StartLevel(%d, %d) err = %v, want ConfigurationError", tt.w, tt.h, err)
			}
			if m.State() != StateNotStarted {
				t.Errorf("state changed to %v on invalid start", m.State())
			}
		})
	}
}

func TestRecordBeforeStartFails(t *testing.T) {
	m := NewManager(testRules())
	a, b := match(0)
	_, err := m.RecordMatchAttempt(a, b)

	var stateErr *InvalidStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("err = %v, want InvalidStateError", err)
	}
	if stateErr.State != StateNotStarted {
		t.Errorf("error state = %v", stateErr.State)
	}
	if m.Stats().Moves != 0 {
		t.Error("rejected attempt counted as a move")
	}
}

func TestSameCardTwiceRejected(t *testing.T) {
	m := NewManager(testRules())
	if err := m.StartLevel(4, 4); err != nil {
		t.Fatal(err)
	}
	c := Card{Pos: core.P(2, 2), Symbol: 3}
	if _, err := m.RecordMatchAttempt(c, c); !errors.Is(err, ErrInvalidAttempt) {
		t.Errorf("err = %v, want ErrInvalidAttempt", err)
	}
	if m.Stats().Moves != 0 {
		t.Error("rejected attempt counted as a move")
	}
}

func TestScoringWithStreakAndBonus(t *testing.T) {
	m := NewManager(testRules())
	if err := m.StartLevel(4, 4); err != nil {
		t.Fatal(err)
	}

	want := []int{10, 20, 30, 40, 50, 50}
	total := 0
	for i, pts := range want {
		a, b := match(i)
		res := mustAttempt(t, m, a, b)
		if res.Points != pts {
			t.Errorf("match %d: points = %d, want %d", i+1, res.Points, pts)
		}
		total += pts
	}
	if got := m.Stats().TotalScore; got != total {
		t.Errorf("total = %d, want %d", got, total)
	}

	a, b := match(6)
	mustAttempt(t, m, a, b)
	a, b = match(7)
	res := mustAttempt(t, m, a, b)
	if !res.LevelComplete {
		t.Fatal("expected level complete after 8 matches")
	}
	total += 50 + 50
	remaining := m.Budget() - 8
	total += remaining * m.Rules().Scoring.LevelBonusPerMove
	if got := m.Stats().TotalScore; got != total {
		t.Errorf("total with bonus = %d, want %d", got, total)
	}
}

func TestPoints(t *testing.T) {
	s := config.Scoring{MatchPoints: 10, StreakCap: 5}
	tests := []struct {
		streak int
		want   int
	}{
		{0, 10},
		{1, 10},
		{3, 30},
		{5, 50},
		{9, 50},
	}
	for _, tt := range tests {
		if got := Points(tt.streak, s); got != tt.want {
			t.Errorf("Points(%d) = %d, want %d", tt.streak, got, tt.want)
		}
	}
}

func TestMaxStreakMonotonic(t *testing.T) {
	m := NewManager(testRules())
	if err := m.StartLevel(6, 6); err != nil {
		t.Fatal(err)
	}

	prev := 0
	seq := []bool{true, true, false, true, false, true, true, true, false}
	sym := 0
	for _, hit := range seq {
		var a, b Card
		if hit {
			a, b = match(sym)
			sym++
		} else {
			a, b = miss()
		}
		mustAttempt(t, m, a, b)
		s := m.Stats()
		if s.MaxStreak < prev {
			t.Fatalf("maxStreak decreased from %d to %d", prev, s.MaxStreak)
		}
		if s.MaxStreak < s.Streak {
			t.Fatalf("maxStreak %d below streak %d", s.MaxStreak, s.Streak)
		}
		prev = s.MaxStreak
	}
	if prev != 3 {
		t.Errorf("maxStreak = %d, want 3", prev)
	}
}

func TestQuickMatches(t *testing.T) {
	clock := newTestClock()
	m := NewManager(testRules(), WithClock(clock.Now))
	if err := m.StartLevel(4, 4); err != nil {
		t.Fatal(err)
	}

	clock.Advance(2 * time.Second)
	a, b := match(0)
	if res := mustAttempt(t, m, a, b); !res.QuickMatch {
		t.Error("match at 2s should be quick")
	}
	clock.Advance(8 * time.Second)
	a, b = match(1)
	if res := mustAttempt(t, m, a, b); !res.QuickMatch {
		t.Error("match at exactly 10s should be quick")
	}
	clock.Advance(time.Second)
	a, b = match(2)
	if res := mustAttempt(t, m, a, b); res.QuickMatch {
		t.Error("match at 11s should not be quick")
	}

	s := m.Stats()
	if s.QuickMatches != 2 {
		t.Errorf("quickMatches = %d, want 2", s.QuickMatches)
	}
	if s.LevelTime != 11*time.Second {
		t.Errorf("levelTime = %v, want 11s", s.LevelTime)
	}
}

func TestQuickMatchWindowRestartsWithLevel(t *testing.T) {
	clock := newTestClock()
	m := NewManager(testRules(), WithClock(clock.Now))
	if err := m.StartLevel(4, 4); err != nil {
		t.Fatal(err)
	}

	clock.Advance(30 * time.Second)
	a, b := match(0)
	if res := mustAttempt(t, m, a, b); res.QuickMatch {
		t.Error("match 30s into the level should not be quick")
	}

	if err := m.StartLevel(4, 4); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Second)
	a, b = match(1)
	if res := mustAttempt(t, m, a, b); !res.QuickMatch {
		t.Error("match 1s into a restarted level should be quick")
	}
	if got := m.Stats().QuickMatches; got != 1 {
		t.Errorf("quickMatches = %d, want 1", got)
	}
}

func TestLevelTimeFrozenOnComplete(t *testing.T) {
	clock := newTestClock()
	m := NewManager(testRules(), WithClock(clock.Now))
	if err := m.StartLevel(2, 1); err != nil {
		t.Fatal(err)
	}
	clock.Advance(5 * time.Second)
	a, b := match(0)
	mustAttempt(t, m, a, b)

	clock.Advance(time.Minute)
	m.Tick()
	if got := m.Stats().LevelTime; got != 5*time.Second {
		t.Errorf("levelTime = %v after completion, want 5s", got)
	}
}

func TestAdvanceThroughAllLevels(t *testing.T) {
	m := NewManager(testRules(config.Level{Width: 2, Height: 1}, config.Level{Width: 2, Height: 1}))

	if err := m.AdvanceLevel(); err == nil {
		t.Error("AdvanceLevel before completing a level should fail")
	}

	for lvl := 1; lvl <= 2; lvl++ {
		if err := m.StartCurrentLevel(); err != nil {
			t.Fatalf("level %d: %v", lvl, err)
		}
		a, b := match(0)
		mustAttempt(t, m, a, b)
		if m.Stats().LevelsCompletedInSession != lvl {
			t.Errorf("levelsCompleted = %d, want %d", m.Stats().LevelsCompletedInSession, lvl)
		}
		if lvl == 1 {
			if !m.CanAdvanceLevel() {
				t.Fatal("CanAdvanceLevel() = false on level 1")
			}
			if err := m.AdvanceLevel(); err != nil {
				t.Fatal(err)
			}
			if m.Level() != 2 || m.State() != StateNotStarted {
				t.Errorf("after advance: level %d state %v", m.Level(), m.State())
			}
		}
	}

	if m.CanAdvanceLevel() {
		t.Error("CanAdvanceLevel() = true on the final level")
	}
	if err := m.AdvanceLevel(); !errors.Is(err, ErrFinalLevel) {
		t.Errorf("AdvanceLevel on final level err = %v, want ErrFinalLevel", err)
	}
	if m.Level() != 2 || m.State() != StateLevelComplete {
		t.Errorf("final advance changed state: level %d state %v", m.Level(), m.State())
	}

	if err := m.CompleteGame(); err != nil {
		t.Fatalf("CompleteGame() failed: %v", err)
	}
	if m.State() != StateGameComplete {
		t.Errorf("state = %v, want game_complete", m.State())
	}
	if err := m.StartCurrentLevel(); err == nil {
		t.Error("StartLevel after game complete should fail")
	}
}

func TestCompleteGameWithLevelsRemaining(t *testing.T) {
	m := NewManager(testRules())
	if err := m.StartLevel(2, 1); err != nil {
		t.Fatal(err)
	}
	a, b := match(0)
	mustAttempt(t, m, a, b)
	if err := m.CompleteGame(); err == nil {
		t.Error("CompleteGame should fail with levels remaining")
	}
}

func TestStop(t *testing.T) {
	m := NewManager(testRules())
	if err := m.Stop(); err == nil {
		t.Error("Stop before start should fail")
	}
	if err := m.StartLevel(4, 4); err != nil {
		t.Fatal(err)
	}
	if err := m.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if m.State() != StateStopped || !m.State().Terminal() {
		t.Errorf("state = %v, want stopped", m.State())
	}
	a, b := match(0)
	if _, err := m.RecordMatchAttempt(a, b); err == nil {
		t.Error("attempt after stop should fail")
	}
}

func TestTickIdempotent(t *testing.T) {
	r := testRules(config.Level{Width: 4, Height: 2})
	r.Moves = config.MovesConfig{PerPair: 1, Extra: 0}
	m := NewManager(r)
	if err := m.StartCurrentLevel(); err != nil {
		t.Fatal(err)
	}
	if m.Tick() {
		t.Fatal("fresh level reported game over")
	}
	for range 5 {
		a, b := miss()
		//nolint:errcheck // The last attempt ends the game
		m.RecordMatchAttempt(a, b)
	}

	before := m.Stats()
	for range 3 {
		if !m.Tick() {
			t.Fatal("Tick() = false after budget overdrawn")
		}
	}
	if after := m.Stats(); after != before {
		t.Errorf("Tick changed stats: %+v -> %+v", before, after)
	}
}

func TestPollGameOver(t *testing.T) {
	m := NewManager(testRules())
	if err := m.StartLevel(2, 1); err != nil {
		t.Fatal(err)
	}
	s := m.Stats()
	s.RemainingMoves = -1
	if !PollGameOver(s) {
		t.Error("negative remaining should be game over")
	}
	s.LevelComplete = true
	if PollGameOver(s) {
		t.Error("a completed level is never game over")
	}
}

func TestCompletingOnLastMoveIsNotGameOver(t *testing.T) {
	r := testRules(config.Level{Width: 4, Height: 2})
	r.Moves = config.MovesConfig{PerPair: 1, Extra: 1}
	m := NewManager(r)
	if err := m.StartCurrentLevel(); err != nil {
		t.Fatal(err)
	}
	a, b := miss()
	mustAttempt(t, m, a, b)
	for i := range 4 {
		a, b := match(i)
		mustAttempt(t, m, a, b)
	}
	if m.State() != StateLevelComplete {
		t.Errorf("state = %v, want level_complete", m.State())
	}
	if m.IsGameOver() {
		t.Error("completed level reported game over")
	}
	if m.Stats().RemainingMoves != 0 {
		t.Errorf("remaining = %d, want 0", m.Stats().RemainingMoves)
	}
}
