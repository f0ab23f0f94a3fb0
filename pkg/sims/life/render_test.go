package life

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"d2ca/pkg/core"
)

func TestRenderLayout(t *testing.T) {
	l := mustFromCells(t, 3, 2, [2]int{0, 0}, [2]int{1, 2})
	want := "■□□\n□□■\n"
	if got := l.Render(); got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
	if l.String() != want {
		t.Fatal("String should match Render")
	}

	var sb strings.Builder
	if _, err := l.WriteTo(&sb); err != nil {
		t.Fatal(err)
	}
	if sb.String() != want {
		t.Fatalf("WriteTo wrote %q", sb.String())
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	l, err := NewWithSource(7, 5, core.NewRNG(9))
	if err != nil {
		t.Fatal(err)
	}
	before := slices.Clone(l.Cells())
	_ = l.Render()
	if !slices.Equal(before, l.Cells()) || l.Generation() != 0 {
		t.Fatal("Render mutated the grid")
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	for seed := int64(0); seed < 8; seed++ {
		l, err := NewWithSource(int(seed)+1, int(seed%3)+1, core.NewRNG(seed))
		if err != nil {
			t.Fatal(err)
		}
		l.StepN(int(seed))

		text := l.Render()
		if lines := strings.Count(text, "\n"); lines != l.Height() {
			t.Fatalf("seed %d: %d lines, want %d", seed, lines, l.Height())
		}
		back, err := Parse(text)
		if err != nil {
			t.Fatalf("seed %d: Parse: %v", seed, err)
		}
		if back.Width() != l.Width() || back.Height() != l.Height() {
			t.Fatalf("seed %d: dims %dx%d, want %dx%d", seed, back.Width(), back.Height(), l.Width(), l.Height())
		}
		if !slices.Equal(back.Cells(), l.Cells()) {
			t.Fatalf("seed %d: round trip changed cells", seed)
		}
	}
}

func TestParsePlainNotation(t *testing.T) {
	l, err := Parse(".....\r\n..#..\r\n..O..\r\n..*..\r\n.....")
	if err != nil {
		t.Fatal(err)
	}
	l.Step()
	expectAlive(t, l, "parsed blinker", [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{"", "\n", "■□\n■\n", "■x\n", "\n■■\n"} {
		if _, err := Parse(text); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Parse(%q) err = %v, want ErrMalformed", text, err)
		}
	}
}
