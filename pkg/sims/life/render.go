package life

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// DeadGlyph is written for dead cells by Render.
	DeadGlyph = '□'
	// AliveGlyph is written for live cells by Render.
	AliveGlyph = '■'
)

// ErrMalformed is returned by Parse for text that does not describe a grid.
var ErrMalformed = errors.New("life: malformed grid text")

// Render returns the grid as Height lines of Width glyphs, each line
// terminated by a newline.
func (l *Life) Render() string {
	var sb strings.Builder
	sb.Grow((l.w*3 + 1) * l.h)
	l.render(&sb)
	return sb.String()
}

// String implements fmt.Stringer.
func (l *Life) String() string { return l.Render() }

// WriteTo writes the rendered grid to w.
func (l *Life) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, l.Render())
	return int64(n), err
}

func (l *Life) render(sb *strings.Builder) {
	for row := 0; row < l.h; row++ {
		for _, c := range l.cur[row*l.w : (row+1)*l.w] {
			sb.WriteRune(Glyph(Cell(c)))
		}
		sb.WriteByte('\n')
	}
}

// Glyph returns the rune Render uses for c.
func Glyph(c Cell) rune {
	if c == Dead {
		return DeadGlyph
	}
	return AliveGlyph
}

// parseGlyph maps a rune back to a cell. Besides the Render glyphs it accepts
// the common plain-text pattern notations.
func parseGlyph(r rune) (Cell, bool) {
	switch r {
	case DeadGlyph, '.', '0':
		return Dead, true
	case AliveGlyph, '#', 'O', '*', '1':
		return Alive, true
	}
	return Dead, false
}

// Parse builds a Life grid from text in the format produced by Render.
// Every line must hold the same non-zero number of glyphs. A trailing newline
// and carriage returns are ignored.
func Parse(text string) (*Life, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	lines := strings.Split(text, "\n")
	w := -1
	var cells []uint8
	for i, line := range lines {
		n := 0
		for _, r := range line {
			c, ok := parseGlyph(r)
			if !ok {
				return nil, fmt.Errorf("%w: line %d: unexpected %q", ErrMalformed, i+1, r)
			}
			cells = append(cells, uint8(c))
			n++
		}
		if w == -1 {
			w = n
		}
		if n != w || n == 0 {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d", ErrMalformed, i+1, n, w)
		}
	}
	return FromCells(w, len(lines), cells)
}
