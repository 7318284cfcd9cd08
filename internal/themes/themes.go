// Package themes provides a registry of card face sets.
// Themes register themselves in init() functions so the platform can list
// and pick them without hardcoded dependencies.
package themes

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

// Theme is a named set of card faces. Every face must be distinct.
type Theme struct {
	ID    string
	Title string
	Faces []string
}

// Pick returns n distinct faces chosen at random for one level.
// When the theme has fewer than n faces, labels are generated for the rest.
func (t Theme) Pick(n int, rng *rand.Rand) []string {
	perm := rng.Perm(len(t.Faces))
	out := make([]string, n)
	for i := range out {
		if i < len(perm) {
			out[i] = t.Faces[perm[i]]
			continue
		}
		out[i] = fmt.Sprintf("%02d", i+1)
	}
	return out
}

// Info contains metadata about a registered theme.
type Info struct {
	ID    string
	Title string
	Size  int
}

var (
	themes = make(map[string]Theme)
	mu     sync.RWMutex
)

// Register adds a theme to the registry.
// Panics if a theme with the same ID is already registered or has no faces.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := themes[t.ID]; exists {
		panic(fmt.Sprintf("themes: theme %q already registered", t.ID))
	}
	if len(t.Faces) == 0 {
		panic(fmt.Sprintf("themes: theme %q has no faces", t.ID))
	}
	themes[t.ID] = t
}

// List returns information about all registered themes, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(themes))
	for id, t := range themes {
		result = append(result, Info{ID: id, Title: t.Title, Size: len(t.Faces)})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns a registered theme by its ID.
// Returns an error if the theme ID is not registered.
func Get(id string) (Theme, error) {
	mu.RLock()
	defer mu.RUnlock()

	t, ok := themes[id]
	if !ok {
		return Theme{}, fmt.Errorf("themes: unknown theme %q", id)
	}
	return t, nil
}

// Exists checks if a theme with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := themes[id]
	return ok
}
