package flipmatch

import (
	"github.com/vovakirdan/flipmatch/internal/config"
	"github.com/vovakirdan/flipmatch/internal/core"
	"github.com/vovakirdan/flipmatch/internal/stats"
)

// CellView is one rendered board position.
type CellView struct {
	Face    string // Empty while the card is face down
	FaceUp  bool
	Matched bool
}

// Snapshot captures everything a renderer needs for one frame.
type Snapshot struct {
	Tick   uint64
	State  State
	Grid   config.Level // Configured grid of the current level
	Width  int
	Height int
	Cells  []CellView // Row-major
	Cursor core.Pos
	Held   bool // A first card is waiting for its partner
	Budget int
	Combo  int
	Stats  stats.Snapshot
}

// Snapshot returns the current session snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   g.tick,
		State:  g.manager.State(),
		Grid:   g.manager.CurrentLevelConfig(),
		Cursor: g.cursor,
		Held:   g.first != nil,
		Budget: g.manager.Budget(),
		Combo:  g.Combo(),
		Stats:  g.manager.Stats(),
	}
	if g.board == nil {
		return snap
	}

	snap.Width = g.board.Width()
	snap.Height = g.board.Height()
	snap.Cells = make([]CellView, 0, snap.Width*snap.Height)
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			c := g.board.Cell(core.P(x, y))
			v := CellView{FaceUp: c.FaceUp, Matched: c.Matched}
			if c.FaceUp && c.Symbol < len(g.faces) {
				v.Face = g.faces[c.Symbol]
			}
			snap.Cells = append(snap.Cells, v)
		}
	}
	return snap
}

// At returns the cell view at p.
func (s Snapshot) At(p core.Pos) CellView {
	if !p.In(s.Width, s.Height) {
		return CellView{}
	}
	return s.Cells[p.Index(s.Width)]
}
