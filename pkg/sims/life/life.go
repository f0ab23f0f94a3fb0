// Package life implements Conway's Game of Life on a toroidal grid.
//
// The grid is a flat row-major buffer of one byte per cell holding Dead (0)
// or Alive (1). Step computes the whole next generation from the current one
// into a second buffer and then swaps the two, so no neighbor count ever
// observes a cell updated during the same tick.
//
// A Life value is not safe for concurrent use. Hosts that drive it from more
// than one goroutine must serialize calls themselves.
package life

import (
	"errors"
	"fmt"

	"d2ca/pkg/core"
)

// Cell is the state of a single grid cell.
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

var (
	// ErrInvalidSize is returned when a grid is constructed with a
	// non-positive width or height.
	ErrInvalidSize = errors.New("life: width and height must be positive")
	// ErrInvalidCells is returned when an explicit cell buffer does not
	// match the grid dimensions or holds values other than 0 and 1.
	ErrInvalidCells = errors.New("life: invalid cell buffer")
)

// Life implements Conway's Game of Life with toroidal wrapping.
type Life struct {
	w, h int
	cur  []uint8
	nxt  []uint8
	gen  uint64

	// epoch changes whenever cur stops being the live generation.
	epoch uint64
}

// New returns a Life simulation with the provided dimensions, every cell
// seeded alive or dead with equal probability from a non-reproducible source.
func New(w, h int) (*Life, error) {
	return NewWithSource(w, h, core.NewRandomRNG())
}

// NewWithSource returns a Life simulation seeded cell by cell from src.
func NewWithSource(w, h int, src core.BoolSource) (*Life, error) {
	l, err := alloc(w, h)
	if err != nil {
		return nil, err
	}
	core.FillBinary(src, l.cur)
	return l, nil
}

// FromCells returns a Life simulation whose first generation is a copy of
// cells, laid out row-major.
func FromCells(w, h int, cells []uint8) (*Life, error) {
	l, err := alloc(w, h)
	if err != nil {
		return nil, err
	}
	if len(cells) != len(l.cur) {
		return nil, fmt.Errorf("%w: got %d cells for a %dx%d grid", ErrInvalidCells, len(cells), w, h)
	}
	for i, c := range cells {
		if c > 1 {
			return nil, fmt.Errorf("%w: cell %d has value %d", ErrInvalidCells, i, c)
		}
	}
	copy(l.cur, cells)
	return l, nil
}

func alloc(w, h int) (*Life, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, w, h)
	}
	cells := make([]uint8, w*h)
	return &Life{w: w, h: h, cur: cells, nxt: make([]uint8, len(cells))}, nil
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Width returns the number of columns.
func (l *Life) Width() int { return l.w }

// Height returns the number of rows.
func (l *Life) Height() int { return l.h }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.w, H: l.h} }

// Generation returns the number of Steps taken since construction or the
// last Reset.
func (l *Life) Generation() uint64 { return l.gen }

// Cells exposes the current grid values without copying. The slice is only
// meaningful until the next Step, Reset or Clear; callers must not write to
// it.
func (l *Life) Cells() []uint8 { return l.cur }

// Reset randomizes the board using the provided seed.
func (l *Life) Reset(seed int64) {
	core.FillBinary(core.NewRNG(seed), l.cur)
	l.gen = 0
	l.epoch++
}

// Clear kills every cell.
func (l *Life) Clear() {
	clear(l.cur)
	l.gen = 0
	l.epoch++
}

// Alive reports whether the cell at (row, col) is alive. Coordinates wrap.
func (l *Life) Alive(row, col int) bool {
	row, col = core.Wrap(l.w, l.h, row, col)
	return l.cur[core.Index(l.w, row, col)] == uint8(Alive)
}

// Set stores c at (row, col). Coordinates wrap.
func (l *Life) Set(row, col int, c Cell) {
	row, col = core.Wrap(l.w, l.h, row, col)
	if c != Dead {
		c = Alive
	}
	l.cur[core.Index(l.w, row, col)] = uint8(c)
}

// Population returns the number of live cells.
func (l *Life) Population() int {
	n := 0
	for _, c := range l.cur {
		n += int(c)
	}
	return n
}

// LiveNeighbors counts the live cells among the eight toroidal neighbors of
// (row, col). On grids narrower or shorter than three cells the same cell can
// be counted more than once, itself included.
func (l *Life) LiveNeighbors(row, col int) int {
	row, col = core.Wrap(l.w, l.h, row, col)
	return l.neighbors(row, col)
}

func (l *Life) neighbors(row, col int) int {
	w, h := l.w, l.h
	n := 0
	for _, dr := range [3]int{h - 1, 0, 1} {
		r := (row + dr) % h
		for _, dc := range [3]int{w - 1, 0, 1} {
			if dr == 0 && dc == 0 {
				continue
			}
			n += int(l.cur[r*w+(col+dc)%w])
		}
	}
	return n
}

// Next applies Conway's rule to a cell in state c with the given number of
// live neighbors.
func Next(c Cell, neighbors int) Cell {
	switch {
	case c == Alive && (neighbors == 2 || neighbors == 3):
		return Alive
	case c == Dead && neighbors == 3:
		return Alive
	default:
		return Dead
	}
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	w, h := l.w, l.h
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			idx := row*w + col
			l.nxt[idx] = uint8(Next(Cell(l.cur[idx]), l.neighbors(row, col)))
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
	l.gen++
	l.epoch++
}

// StepN advances the simulation by n generations.
func (l *Life) StepN(n int) {
	for i := 0; i < n; i++ {
		l.Step()
	}
}
