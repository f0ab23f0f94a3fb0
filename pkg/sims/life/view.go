package life

// View is a borrowed, read-only window onto one generation of a Life grid.
// It does not copy the buffer. Once the owning Life steps, resets or clears,
// Valid reports false and the contents of Bytes are no longer that
// generation.
type View struct {
	Width      int
	Height     int
	Generation uint64

	owner *Life
	epoch uint64
	cells []uint8
}

// View returns a view of the current generation.
func (l *Life) View() View {
	return View{
		Width:      l.w,
		Height:     l.h,
		Generation: l.gen,
		owner:      l,
		epoch:      l.epoch,
		cells:      l.cur,
	}
}

// Valid reports whether the view still describes the owner's live generation.
func (v View) Valid() bool {
	return v.owner != nil && v.owner.epoch == v.epoch
}

// Len returns the number of cells, Width*Height.
func (v View) Len() int { return len(v.cells) }

// At returns the cell at (row, col). Coordinates must be in range.
func (v View) At(row, col int) Cell {
	return Cell(v.cells[row*v.Width+col])
}

// Bytes returns the row-major cell buffer. Callers must not modify it or
// retain it past the owner's next Step.
func (v View) Bytes() []uint8 { return v.cells }

// Snapshot returns a copy of the viewed cells that survives later Steps.
func (v View) Snapshot() []uint8 {
	return append([]uint8(nil), v.cells...)
}
