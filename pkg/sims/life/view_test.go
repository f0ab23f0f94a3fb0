package life

import "testing"

func TestViewLifetime(t *testing.T) {
	l := mustFromCells(t, 5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	v := l.View()
	if !v.Valid() {
		t.Fatal("fresh view should be valid")
	}
	if v.Width != 5 || v.Height != 5 || v.Len() != 25 {
		t.Fatalf("view dims = %dx%d len %d", v.Width, v.Height, v.Len())
	}
	if v.At(2, 1) != Alive || v.At(1, 2) != Dead {
		t.Fatal("view does not reflect the current generation")
	}
	if &v.Bytes()[0] != &l.Cells()[0] {
		t.Fatal("view should share the engine buffer")
	}

	snap := v.Snapshot()
	l.Step()
	if v.Valid() {
		t.Fatal("view should be invalid after Step")
	}
	if snap[2*5+1] != 1 || snap[1*5+2] != 0 {
		t.Fatal("snapshot changed after Step")
	}

	v = l.View()
	if v.Generation != 1 {
		t.Fatalf("generation = %d, want 1", v.Generation)
	}
	l.Reset(3)
	if v.Valid() {
		t.Fatal("view should be invalid after Reset")
	}

	var zero View
	if zero.Valid() {
		t.Fatal("zero View must not be valid")
	}
}
