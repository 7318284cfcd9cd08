package flipmatch

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/flipmatch/internal/config"
	"github.com/vovakirdan/flipmatch/internal/core"
)

var (
	errOutOfRange    = errors.New("position outside the board")
	errAlreadyFaceUp = errors.New("card already face up")
	errMatched       = errors.New("card already matched")
)

// Cell is one position of the board.
type Cell struct {
	Symbol  int
	FaceUp  bool
	Matched bool
}

// Board is a dealt grid of paired cards, stored row-major.
type Board struct {
	width  int
	height int
	cells  []Cell
}

// Deal shuffles width*height/2 pairs onto a new board.
func Deal(width, height int, rng *rand.Rand) (*Board, error) {
	lvl := config.Level{Width: width, Height: height}
	if err := lvl.Validate(); err != nil {
		return nil, &ConfigurationError{Width: width, Height: height, Err: err}
	}

	cells := make([]Cell, lvl.Cards())
	for i := range cells {
		cells[i].Symbol = i / 2
	}
	rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})

	return &Board{width: width, height: height, cells: cells}, nil
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Pairs returns the number of pairs dealt.
func (b *Board) Pairs() int { return len(b.cells) / 2 }

// Cell returns the cell at p. Positions outside the board yield a zero Cell.
func (b *Board) Cell(p core.Pos) Cell {
	if !p.In(b.width, b.height) {
		return Cell{}
	}
	return b.cells[p.Index(b.width)]
}

// Card returns the card identity at p.
func (b *Board) Card(p core.Pos) Card {
	return Card{Pos: p, Symbol: b.Cell(p).Symbol}
}

// Flip turns the card at p face up. Matched and already face-up cards
// cannot be flipped.
func (b *Board) Flip(p core.Pos) error {
	if !p.In(b.width, b.height) {
		return fmt.Errorf("flip %v: %w", p, errOutOfRange)
	}
	c := &b.cells[p.Index(b.width)]
	switch {
	case c.Matched:
		return fmt.Errorf("flip %v: %w", p, errMatched)
	case c.FaceUp:
		return fmt.Errorf("flip %v: %w", p, errAlreadyFaceUp)
	}
	c.FaceUp = true
	return nil
}

// Hide turns unmatched cards at the given positions face down.
func (b *Board) Hide(ps ...core.Pos) {
	for _, p := range ps {
		if !p.In(b.width, b.height) {
			continue
		}
		c := &b.cells[p.Index(b.width)]
		if !c.Matched {
			c.FaceUp = false
		}
	}
}

// MarkMatched resolves a pair permanently.
func (b *Board) MarkMatched(ps ...core.Pos) {
	for _, p := range ps {
		if !p.In(b.width, b.height) {
			continue
		}
		c := &b.cells[p.Index(b.width)]
		c.Matched = true
		c.FaceUp = true
	}
}

// Unmatched returns the number of pairs still on the board.
func (b *Board) Unmatched() int {
	n := 0
	for _, c := range b.cells {
		if !c.Matched {
			n++
		}
	}
	return n / 2
}

// Cleared reports whether every pair was resolved.
func (b *Board) Cleared() bool {
	return b.Unmatched() == 0
}
