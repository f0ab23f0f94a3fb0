package core

// Index returns the linear row-major slice index for (row, col) on a grid w
// cells wide.
func Index(w, row, col int) int { return row*w + col }

// Wrap applies toroidal wrapping to the provided coordinates on a w*h grid.
func Wrap(w, h, row, col int) (int, int) {
	row = (row%h + h) % h
	col = (col%w + w) % w
	return row, col
}
