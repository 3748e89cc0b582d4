package grid

import "testing"

func TestElement_NeighbourOffsets(t *testing.T) {
	origin := C(0, 0)
	want := map[Element]Coord{
		North:     C(0, 1),
		East:      C(1, 0),
		South:     C(0, -1),
		West:      C(-1, 0),
		NorthEast: C(1, 1),
		SouthEast: C(1, -1),
		SouthWest: C(-1, -1),
		NorthWest: C(-1, 1),
		Center:    C(0, 0),
	}
	for e, c := range want {
		if got := origin.Neighbour(e); got != c {
			t.Fatalf("%s neighbour = %s, want %s", e, got, c)
		}
	}
}

func TestElement_CornerEdges(t *testing.T) {
	tests := []struct {
		corner Element
		a, b   Element
	}{
		{NorthEast, North, East},
		{SouthEast, East, South},
		{SouthWest, South, West},
		{NorthWest, West, North},
	}
	for _, tt := range tests {
		a, b, ok := tt.corner.CornerEdges()
		if !ok || a != tt.a || b != tt.b {
			t.Fatalf("%s edges = %s,%s (ok=%v), want %s,%s", tt.corner, a, b, ok, tt.a, tt.b)
		}
		// The diagonal is the sum of both edge offsets.
		if tt.a.Offset().Add(tt.b.Offset()) != tt.corner.Offset() {
			t.Fatalf("%s offset does not match its edges", tt.corner)
		}
	}
	if _, _, ok := North.CornerEdges(); ok {
		t.Fatal("edge element should not report corner edges")
	}
}

func TestElement_Opposite(t *testing.T) {
	pairs := [][2]Element{{North, South}, {East, West}, {NorthEast, SouthWest}, {SouthEast, NorthWest}}
	for _, p := range pairs {
		if p[0].Opposite() != p[1] || p[1].Opposite() != p[0] {
			t.Fatalf("opposite of %s/%s mismatch", p[0], p[1])
		}
	}
	if Center.Opposite() != Center {
		t.Fatal("center should be its own opposite")
	}
}

func TestElement_Yaw(t *testing.T) {
	want := map[Element]float64{
		Center: 0, North: 90, East: 0, South: -90, West: -180,
		NorthEast: 90, SouthEast: 0, SouthWest: -90, NorthWest: -180,
	}
	for e, y := range want {
		if got := e.Yaw(); got != y {
			t.Fatalf("%s yaw = %v, want %v", e, got, y)
		}
	}
}
