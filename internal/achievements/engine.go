package achievements

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flipmatch/internal/config"
	"github.com/vovakirdan/flipmatch/internal/stats"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithClock overrides the time source for unlock timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithCatalog replaces the default catalog.
func WithCatalog(catalog []Achievement) Option {
	return func(e *Engine) {
		e.catalog = catalog
	}
}

// WithStorageKey sets the durable-store key of the unlocked set.
func WithStorageKey(key string) Option {
	return func(e *Engine) {
		e.key = key
	}
}

// Engine holds the achievement catalog and the set of unlocks.
// It is not safe for concurrent use; each game session owns its engine.
type Engine struct {
	catalog  []Achievement
	index    map[string]int
	unlocked map[string]time.Time

	store    Store
	key      string
	logger   *log.Logger
	now      func() time.Time
	listener func(Achievement)

	lastWarning error
}

// NewEngine creates an engine and loads the unlocked set from store.
// A nil store keeps unlocks in memory only. Load failures degrade to an
// empty set and are reported through the logger and LastWarning.
func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		catalog: DefaultCatalog(),
		store:   store,
		key:     config.DefaultStorageKey,
		logger:  log.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.index = make(map[string]int, len(e.catalog))
	for i, a := range e.catalog {
		e.index[a.ID] = i
	}
	e.unlocked = e.load()
	return e
}

// SetListener registers the unlock callback. Only one listener is kept;
// the last registration wins. Pass nil to remove it.
func (e *Engine) SetListener(fn func(Achievement)) {
	e.listener = fn
}

// CheckAchievements evaluates every locked achievement in catalog order and
// unlocks those whose condition holds. AchievementCount is taken before any
// unlock of this call, so achievements about achievements only see earlier
// unlocks. It never fails; panicking conditions are skipped and logged.
func (e *Engine) CheckAchievements(s stats.Snapshot) []Achievement {
	s.AchievementCount = len(e.unlocked)

	var newly []Achievement
	for _, a := range e.catalog {
		if _, ok := e.unlocked[a.ID]; ok {
			continue
		}
		if !e.evaluate(a, s) {
			continue
		}
		if e.Unlock(a.ID) {
			newly = append(newly, a)
		}
	}
	return newly
}

// evaluate runs a condition, treating a panic as not satisfied.
func (e *Engine) evaluate(a Achievement, s stats.Snapshot) (ok bool) {
	if a.Condition == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			e.warn(&PersistenceWarning{Op: "evaluate", Key: a.ID, Err: fmt.Errorf("condition panicked: %v", r)})
			ok = false
		}
	}()
	return a.Condition.Evaluate(s)
}

// Unlock records the achievement with the current time, persists the set
// and notifies the listener. It returns false for unknown or already
// unlocked IDs and then changes nothing.
func (e *Engine) Unlock(id string) bool {
	i, known := e.index[id]
	if !known {
		return false
	}
	if _, ok := e.unlocked[id]; ok {
		return false
	}

	// Millisecond precision matches the stored form.
	e.unlocked[id] = time.UnixMilli(e.now().UnixMilli())
	e.save()

	if e.listener != nil {
		e.listener(e.catalog[i])
	}
	return true
}

// IsUnlocked reports whether the achievement was unlocked.
func (e *Engine) IsUnlocked(id string) bool {
	_, ok := e.unlocked[id]
	return ok
}

// UnlockedAt returns the unlock time of an achievement.
func (e *Engine) UnlockedAt(id string) (time.Time, bool) {
	at, ok := e.unlocked[id]
	return at, ok
}

// UnlockedCount returns the number of unlocked achievements.
func (e *Engine) UnlockedCount() int {
	return len(e.unlocked)
}

// TotalCount returns the catalog size.
func (e *Engine) TotalCount() int {
	return len(e.catalog)
}

// Progress returns the unlocked share of the catalog.
func (e *Engine) Progress() Progress {
	p := Progress{Unlocked: e.UnlockedCount(), Total: e.TotalCount()}
	if p.Total > 0 {
		p.Percentage = int(math.Round(float64(p.Unlocked) / float64(p.Total) * 100))
	}
	return p
}

// All returns the catalog in display order with unlock state.
func (e *Engine) All() []Status {
	out := make([]Status, len(e.catalog))
	for i, a := range e.catalog {
		at, ok := e.unlocked[a.ID]
		out[i] = Status{Achievement: a, Unlocked: ok, UnlockedAt: at}
	}
	return out
}

// Reset clears every unlock and persists the empty set.
func (e *Engine) Reset() {
	e.unlocked = make(map[string]time.Time)
	e.write()
}

// LastWarning returns the most recent persistence warning, or nil.
func (e *Engine) LastWarning() error {
	return e.lastWarning
}

func (e *Engine) load() map[string]time.Time {
	empty := make(map[string]time.Time)
	if e.store == nil {
		return empty
	}

	data, err := e.store.Get(e.key)
	if err != nil {
		e.warn(&PersistenceWarning{Op: "load", Key: e.key, Err: err})
		return empty
	}
	stored, err := decodeUnlocked(data)
	if err != nil {
		e.warn(&PersistenceWarning{Op: "load", Key: e.key, Err: err})
		return empty
	}

	for id := range stored {
		if _, known := e.index[id]; !known {
			e.logger.Debug("dropping unknown achievement", "key", e.key, "achievement", id)
			delete(stored, id)
		}
	}
	return stored
}

// save writes the unlocked set after adopting unlocks that another engine
// on the same key stored since this one loaded, so two sessions of one
// player do not drop each other's unlocks.
func (e *Engine) save() {
	if e.store == nil {
		return
	}
	e.mergeStored()
	e.write()
}

// mergeStored adds stored unlocks missing from memory. Read failures are
// left to write, which reports the store state.
func (e *Engine) mergeStored() {
	data, err := e.store.Get(e.key)
	if err != nil {
		return
	}
	stored, err := decodeUnlocked(data)
	if err != nil {
		return
	}
	for id, at := range stored {
		if _, known := e.index[id]; !known {
			continue
		}
		if _, ok := e.unlocked[id]; !ok {
			e.unlocked[id] = at
		}
	}
}

// write stores the in-memory set. Failures are reported and otherwise
// ignored; the in-memory set stays authoritative.
func (e *Engine) write() {
	if e.store == nil {
		return
	}
	data, err := encodeUnlocked(e.unlocked)
	if err != nil {
		e.warn(&PersistenceWarning{Op: "save", Key: e.key, Err: err})
		return
	}
	if err := e.store.Set(e.key, data); err != nil {
		e.warn(&PersistenceWarning{Op: "save", Key: e.key, Err: err})
	}
}

func (e *Engine) warn(w *PersistenceWarning) {
	e.lastWarning = w
	if e.logger != nil {
		e.logger.Warn("achievement persistence", "op", w.Op, "key", w.Key, "error", w.Err)
	}
}
