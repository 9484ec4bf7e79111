package sim

import "testing"

func TestGridIndexRoundTrip(t *testing.T) {
	g := Grid{W: 7, H: 5}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := g.Index(x, y)
			rx, ry := g.Coords(i)
			if rx != x || ry != y {
				t.Fatalf("round trip (%d,%d) -> %d -> (%d,%d)", x, y, i, rx, ry)
			}
		}
	}
}

func TestGridInBounds(t *testing.T) {
	g := Grid{W: 4, H: 3}
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{3, 2, true},
		{-1, 0, false},
		{0, -1, false},
		{4, 0, false},
		{0, 3, false},
	}
	for _, c := range cases {
		if got := g.InBounds(c.x, c.y); got != c.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestNeighborOrderInterior(t *testing.T) {
	g := Grid{W: 5, H: 5}
	i := g.Index(2, 2)

	var buf [4]int32
	got := g.Neighbors(buf[:0], i)

	want := []int32{
		int32(g.Index(2, 1)), // north
		int32(g.Index(2, 3)), // south
		int32(g.Index(3, 2)), // east
		int32(g.Index(1, 2)), // west
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d neighbors, got %d", len(want), len(got))
	}
	for k := range want {
		if got[k] != want[k] {
			t.Errorf("neighbor %d: got %d, want %d", k, got[k], want[k])
		}
	}
}

func TestNeighborCorners(t *testing.T) {
	g := Grid{W: 3, H: 3}

	var buf [4]int32
	got := g.Neighbors(buf[:0], g.Index(0, 0))
	want := []int32{int32(g.Index(0, 1)), int32(g.Index(1, 0))} // south, east
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("corner (0,0): got %v, want %v", got, want)
	}

	got = g.Neighbors(buf[:0], g.Index(2, 2))
	want = []int32{int32(g.Index(2, 1)), int32(g.Index(1, 2))} // north, west
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("corner (2,2): got %v, want %v", got, want)
	}
}
