package life

import (
	"errors"
	"slices"
	"testing"

	"d2ca/pkg/core"
)

func mustFromCells(t *testing.T, w, h int, alive ...[2]int) *Life {
	t.Helper()
	cells := make([]uint8, w*h)
	for _, rc := range alive {
		cells[rc[0]*w+rc[1]] = 1
	}
	l, err := FromCells(w, h, cells)
	if err != nil {
		t.Fatalf("FromCells: %v", err)
	}
	return l
}

func expectAlive(t *testing.T, l *Life, label string, alive ...[2]int) {
	t.Helper()
	want := map[[2]int]bool{}
	for _, rc := range alive {
		want[rc] = true
	}
	for row := 0; row < l.Height(); row++ {
		for col := 0; col < l.Width(); col++ {
			got := l.Alive(row, col)
			if got != want[[2]int{row, col}] {
				t.Fatalf("%s: cell (%d,%d) alive=%v, expected %v\n%s", label, row, col, got, !got, l.Render())
			}
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	l := mustFromCells(t, 5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})

	l.Step()
	expectAlive(t, l, "after first step", [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})

	l.Step()
	expectAlive(t, l, "after second step", [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})

	if l.Generation() != 2 {
		t.Fatalf("generation = %d, want 2", l.Generation())
	}
}

func TestBlockStillLife(t *testing.T) {
	block := [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	l := mustFromCells(t, 4, 4, block...)
	before := slices.Clone(l.Cells())

	for i := 0; i < 3; i++ {
		l.Step()
		if !slices.Equal(before, l.Cells()) {
			t.Fatalf("block changed after %d steps:\n%s", i+1, l.Render())
		}
	}
}

func TestLoneCellDiesOnTorus(t *testing.T) {
	l := mustFromCells(t, 3, 3, [2]int{1, 1})
	if n := l.LiveNeighbors(0, 0); n != 1 {
		t.Fatalf("corner neighbors = %d, want 1", n)
	}
	l.Step()
	if p := l.Population(); p != 0 {
		t.Fatalf("population = %d, want 0\n%s", p, l.Render())
	}
}

func TestNeighborsWrapAcrossEdges(t *testing.T) {
	l := mustFromCells(t, 6, 5, [2]int{4, 5}, [2]int{0, 5}, [2]int{4, 0})
	if n := l.LiveNeighbors(0, 0); n != 3 {
		t.Fatalf("LiveNeighbors(0,0) = %d, want 3", n)
	}
	l.Step()
	if !l.Alive(0, 0) {
		t.Fatalf("expected birth at (0,0) from wrapped neighbors\n%s", l.Render())
	}
}

func TestGliderTravelsAroundTorus(t *testing.T) {
	glider := [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	l := mustFromCells(t, 8, 8, glider...)
	start := slices.Clone(l.Cells())

	l.StepN(4)
	shifted := make([][2]int, len(glider))
	for i, rc := range glider {
		shifted[i] = [2]int{rc[0] + 1, rc[1] + 1}
	}
	expectAlive(t, l, "after 4 steps", shifted...)

	// Eight cells in each direction brings it home.
	l.StepN(28)
	if !slices.Equal(start, l.Cells()) {
		t.Fatalf("glider did not return after 32 steps:\n%s", l.Render())
	}
}

func TestDegenerateGrids(t *testing.T) {
	one := mustFromCells(t, 1, 1, [2]int{0, 0})
	// Offsets collapse to the cell itself; pairs equal to (0,0) are skipped.
	if n := one.LiveNeighbors(0, 0); n != 5 {
		t.Fatalf("1x1 neighbors = %d, want 5", n)
	}
	one.Step()
	if one.Population() != 0 {
		t.Fatal("1x1 live cell should die of overpopulation")
	}
	one.Step()
	if one.Population() != 0 {
		t.Fatal("1x1 dead cell should stay dead")
	}

	row := mustFromCells(t, 3, 1, [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2})
	if n := row.LiveNeighbors(0, 1); n != 7 {
		t.Fatalf("1x3 neighbors = %d, want 7", n)
	}
	row.Step()
	if row.Population() != 0 {
		t.Fatalf("full 1x3 row should die:\n%s", row.Render())
	}
}

func TestNextRule(t *testing.T) {
	for n := 0; n <= 8; n++ {
		wantAlive := n == 2 || n == 3
		if got := Next(Alive, n); (got == Alive) != wantAlive {
			t.Fatalf("Next(Alive, %d) = %d", n, got)
		}
		wantBirth := n == 3
		if got := Next(Dead, n); (got == Alive) != wantBirth {
			t.Fatalf("Next(Dead, %d) = %d", n, got)
		}
	}
}

func TestInvariantsHoldAcrossGenerations(t *testing.T) {
	sizes := []core.Size{{W: 1, H: 1}, {W: 1, H: 7}, {W: 9, H: 1}, {W: 2, H: 2}, {W: 17, H: 11}}
	for _, sz := range sizes {
		l, err := NewWithSource(sz.W, sz.H, core.NewRNG(int64(sz.W*100+sz.H)))
		if err != nil {
			t.Fatalf("NewWithSource(%d,%d): %v", sz.W, sz.H, err)
		}
		for gen := 0; gen <= 40; gen++ {
			cells := l.Cells()
			if len(cells) != sz.W*sz.H {
				t.Fatalf("%dx%d gen %d: len = %d", sz.W, sz.H, gen, len(cells))
			}
			for i, c := range cells {
				if c > 1 {
					t.Fatalf("%dx%d gen %d: cell %d = %d", sz.W, sz.H, gen, i, c)
				}
			}
			l.Step()
		}
	}
}

func TestStepDeterministic(t *testing.T) {
	seed, err := NewWithSource(32, 24, core.NewRNG(5))
	if err != nil {
		t.Fatal(err)
	}
	start := slices.Clone(seed.Cells())

	a, _ := FromCells(32, 24, start)
	b, _ := FromCells(32, 24, start)
	for i := 0; i < 25; i++ {
		a.Step()
		b.Step()
		if !slices.Equal(a.Cells(), b.Cells()) {
			t.Fatalf("runs diverged at step %d", i+1)
		}
	}
}

func TestResetReproducible(t *testing.T) {
	l, err := NewWithSource(20, 20, core.NewRNG(11))
	if err != nil {
		t.Fatal(err)
	}
	initial := slices.Clone(l.Cells())

	l.StepN(3)
	l.Reset(11)
	if !slices.Equal(initial, l.Cells()) {
		t.Fatal("Reset with the construction seed should restore the first generation")
	}
	if l.Generation() != 0 {
		t.Fatalf("generation after Reset = %d", l.Generation())
	}

	l.Clear()
	if l.Population() != 0 {
		t.Fatal("Clear left live cells")
	}
}

func TestSetWraps(t *testing.T) {
	l := mustFromCells(t, 4, 3)
	l.Set(-1, -1, Alive)
	if !l.Alive(2, 3) {
		t.Fatal("Set(-1,-1) should land on (2,3)")
	}
	l.Set(5, 4, Cell(7))
	if l.Cells()[core.Index(4, 2, 0)] != 1 {
		t.Fatal("Set should normalize non-zero states to Alive")
	}
}

func TestConstructorsRejectBadInput(t *testing.T) {
	for _, sz := range [][2]int{{0, 3}, {3, 0}, {-1, 4}, {0, 0}} {
		if _, err := New(sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("New(%d,%d) err = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
		if _, err := FromCells(sz[0], sz[1], nil); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("FromCells(%d,%d) err = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
	}
	if _, err := FromCells(2, 2, []uint8{0, 1, 0}); !errors.Is(err, ErrInvalidCells) {
		t.Fatalf("short buffer err = %v", err)
	}
	if _, err := FromCells(2, 1, []uint8{0, 2}); !errors.Is(err, ErrInvalidCells) {
		t.Fatalf("bad value err = %v", err)
	}
}

func TestFromCellsCopies(t *testing.T) {
	src := []uint8{1, 0, 0, 1}
	l, err := FromCells(2, 2, src)
	if err != nil {
		t.Fatal(err)
	}
	src[1] = 1
	if l.Alive(0, 1) {
		t.Fatal("FromCells must not alias the caller's buffer")
	}
}

func TestNewSeedsBothStates(t *testing.T) {
	l, err := New(64, 64)
	if err != nil {
		t.Fatal(err)
	}
	p := l.Population()
	if p == 0 || p == 64*64 {
		t.Fatalf("random seeding produced population %d", p)
	}
}
