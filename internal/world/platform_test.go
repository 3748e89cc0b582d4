package world

import (
	"testing"

	"github.com/Garsondee/Oneiron/internal/catalog"
	"github.com/Garsondee/Oneiron/internal/grid"
)

func TestPlatform_NewHasOriginSlotOnly(t *testing.T) {
	ts := NewTestSession(WithPlatformAt(0, 0, 0))
	p := ts.MustPlatform(0)
	if p.TileCount() != 0 {
		t.Fatalf("new platform has %d tiles, want 0", p.TileCount())
	}
	slots := p.Slots()
	if len(slots) != 1 || slots[0].Coord != grid.C(0, 0) || !slots[0].Enabled {
		t.Fatalf("slots = %+v, want one enabled slot at origin", slots)
	}
}

func TestPlatform_CheckEmpty(t *testing.T) {
	ts := NewTestSession(
		WithPlatformAt(0, 0, 0),
		WithPattern(0, "#E"),
	)
	p := ts.MustPlatform(0)

	tests := []struct {
		name           string
		c              grid.Coord
		structuralOnly bool
		want           bool
	}{
		{"bare tile, any tile counts", grid.C(0, 0), false, false},
		{"bare tile, structural only", grid.C(0, 0), true, true},
		{"engine tile", grid.C(1, 0), false, false},
		{"engine tile, structural only", grid.C(1, 0), true, false},
		{"no tile", grid.C(2, 0), false, true},
		{"no tile, structural only", grid.C(2, 0), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.CheckEmpty(tt.c, tt.structuralOnly); got != tt.want {
				t.Fatalf("CheckEmpty(%s, %v) = %v, want %v", tt.c, tt.structuralOnly, got, tt.want)
			}
		})
	}

	if p.CheckEmptyNeighbour(grid.C(0, 0), grid.East, false) {
		t.Fatal("east neighbour of (0,0) is the engine tile")
	}
	if !p.CheckEmptyNeighbour(grid.C(0, 0), grid.West, false) {
		t.Fatal("west neighbour of (0,0) is empty")
	}
	if !p.CheckEmptyNeighbour(grid.C(0, 0), grid.Center, false) {
		t.Fatal("center has no neighbour and should report empty")
	}
	if got := p.NeighbourType(grid.C(0, 0), grid.East); got != catalog.BuildingEngine {
		t.Fatalf("NeighbourType east = %s, want engine", got)
	}
	if got := p.NeighbourType(grid.C(0, 0), grid.North); got != catalog.BuildingEmpty {
		t.Fatalf("NeighbourType north = %s, want empty", got)
	}
}

func TestPlatform_MassTracksTiles(t *testing.T) {
	ts := NewTestSession(WithBaseMass(2.5), WithPlatformAt(0, 0, 0))
	p := ts.MustPlatform(0)
	body := ts.Bodies[0]
	if p.Mass() != 2.5 || body.Mass != 2.5 {
		t.Fatalf("empty mass = %v (body %v), want 2.5", p.Mass(), body.Mass)
	}
	for _, c := range []grid.Coord{grid.C(0, 0), grid.C(1, 0), grid.C(1, 0), grid.C(-4, 7)} {
		p.AddTile(c)
		if want := 2.5 + float64(p.TileCount()); p.Mass() != want || body.Mass != want {
			t.Fatalf("after %s mass = %v (body %v), want %v", c, p.Mass(), body.Mass, want)
		}
	}
	if p.TileCount() != 3 {
		t.Fatalf("duplicate AddTile should not add a tile, got %d", p.TileCount())
	}
}

func TestPlatform_AddTileDoesNotFixFringe(t *testing.T) {
	ts := NewTestSession(WithPlatformAt(0, 0, 0), WithTiles(0, grid.C(0, 0)))
	p := ts.MustPlatform(0)
	p.AddTile(grid.C(0, 1))
	old, _ := p.Tile(grid.C(0, 0))
	if old.Form(grid.North) != catalog.FormBlockSide {
		t.Fatalf("neighbour changed before FixFringe: north = %s", old.Form(grid.North))
	}
	p.FixFringe(grid.C(0, 1))
	if old.Form(grid.North) != catalog.FormBlockTween {
		t.Fatalf("after FixFringe north = %s, want tween", old.Form(grid.North))
	}
}

func TestPlatform_AddMissingSlotsIdempotent(t *testing.T) {
	ts := NewTestSession(WithPlatformAt(0, 0, 0))
	p := ts.MustPlatform(0)
	p.AddTile(grid.C(0, 0))
	if n := p.AddMissingSlots(); n != 4 {
		t.Fatalf("first call added %d slots, want 4 (origin slot already existed)", n)
	}
	before := p.Slots()
	if n := p.AddMissingSlots(); n != 0 {
		t.Fatalf("second call added %d slots, want 0", n)
	}
	after := p.Slots()
	if len(before) != len(after) {
		t.Fatalf("slot count changed %d → %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("slot %d changed %+v → %+v", i, before[i], after[i])
		}
	}
}

func TestPlatform_AddMissingSlotsKeepsDesignatedHidden(t *testing.T) {
	ts := NewTestSession(WithPlatformAt(0, 0, 0))
	p := ts.MustPlatform(0)
	p.AddTile(grid.C(3, 3))
	p.SetBuilding(grid.C(3, 3), catalog.BuildingEngine)
	p.AddMissingSlots()
	s, ok := p.Slot(grid.C(3, 3))
	if !ok || s.Enabled {
		t.Fatalf("slot on engine tile = %+v (ok=%v), want hidden", s, ok)
	}
	if en, _ := ts.Renderer.SlotEnabled(0, grid.C(3, 3)); en {
		t.Fatal("renderer should have the engine slot hidden")
	}
}

func TestPlatform_SetBuildingMissingTileIsNoop(t *testing.T) {
	ts := NewTestSession(WithPlatformAt(0, 0, 0), WithTiles(0, grid.C(0, 0)))
	p := ts.MustPlatform(0)
	slots := len(p.Slots())
	p.SetBuilding(grid.C(9, 9), catalog.BuildingEngine)
	p.FixFringe(grid.C(9, 9))
	if p.TileCount() != 1 || len(p.Slots()) != slots {
		t.Fatalf("missing tile edit changed the platform: tiles=%d slots=%d", p.TileCount(), len(p.Slots()))
	}
	if ts.Log.CountCategory("building", "set") != 0 {
		t.Fatal("no building should have been logged")
	}
}

func TestPlatform_SetBuildingRoundTrip(t *testing.T) {
	ts := NewTestSession(WithPlatformAt(0, 0, 0), WithTiles(0, grid.C(0, 0)))
	p := ts.MustPlatform(0)
	tile, _ := p.Tile(grid.C(0, 0))

	p.SetBuilding(grid.C(0, 0), catalog.BuildingEngine)
	if tile.Building() != catalog.BuildingEngine || tile.Form(grid.Center) != catalog.FormEngineCenter {
		t.Fatalf("engine: building=%s center=%s", tile.Building(), tile.Form(grid.Center))
	}
	if s, _ := p.Slot(grid.C(0, 0)); s.Enabled {
		t.Fatal("engine tile slot should be hidden")
	}

	// Repeating the designation keeps the end state.
	p.SetBuilding(grid.C(0, 0), catalog.BuildingEngine)
	if s, _ := p.Slot(grid.C(0, 0)); s.Enabled || tile.Form(grid.Center) != catalog.FormEngineCenter {
		t.Fatal("repeated designation changed the end state")
	}

	p.SetBuilding(grid.C(0, 0), catalog.BuildingEmpty)
	if tile.Form(grid.Center) != catalog.FormBlockCenter {
		t.Fatalf("empty center = %s, want block center", tile.Form(grid.Center))
	}
	if s, _ := p.Slot(grid.C(0, 0)); !s.Enabled {
		t.Fatal("bare tile slot should be shown again")
	}
	m, _ := ts.Renderer.Model(0, grid.C(0, 0), grid.Center)
	if m.Path != catalog.Default().Model(catalog.FormBlockCenter).Path {
		t.Fatalf("renderer center = %q", m.Path)
	}
}

func TestPlatform_PickCornerType(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    catalog.CornerType
	}{
		{"alone", "#", catalog.CornerOut},
		{"diagonal only", ".#/#.", catalog.CornerDouble},
		{"north edge only", "#./#.", catalog.CornerTween},
		{"east edge only", "##", catalog.CornerTween},
		{"east edge and diagonal", ".#/##", catalog.CornerTween},
		{"north edge and diagonal", "##/#.", catalog.CornerTween},
		{"both edges", "#./##", catalog.CornerIn},
		{"both edges and diagonal", "##/##", catalog.CornerFill},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTestSession(WithPlatformAt(0, 0, 0), WithPattern(0, tt.pattern))
			p := ts.MustPlatform(0)
			if got := p.PickCornerType(grid.C(0, 0), grid.NorthEast); got != tt.want {
				t.Fatalf("NE corner of (0,0) = %s, want %s\n%s", got, tt.want, p.Layout())
			}
		})
	}
}

func TestPlatform_PickCornerTypeDegenerate(t *testing.T) {
	ts := NewTestSession(WithPlatformAt(0, 0, 0), WithPattern(0, "##/##"))
	p := ts.MustPlatform(0)
	if got := p.PickCornerType(grid.C(5, 5), grid.NorthEast); got != catalog.CornerNone {
		t.Fatalf("corner of an empty cell = %s, want none", got)
	}
	if got := p.PickCornerType(grid.C(0, 0), grid.North); got != catalog.CornerNone {
		t.Fatalf("edge element as corner = %s, want none", got)
	}
}

// TestPlatform_PickCornerTypeIsLocal fills every cell outside the corner's
// 2x2 block and checks no classification changes.
func TestPlatform_PickCornerTypeIsLocal(t *testing.T) {
	block := map[grid.Coord]bool{
		grid.C(0, 0): true, grid.C(0, 1): true, grid.C(1, 0): true, grid.C(1, 1): true,
	}
	var distractors []grid.Coord
	for y := -2; y <= 3; y++ {
		for x := -2; x <= 3; x++ {
			if c := grid.C(x, y); !block[c] {
				distractors = append(distractors, c)
			}
		}
	}
	for mask := 0; mask < 8; mask++ {
		ts := NewTestSession(WithPlatformAt(0, 0, 0))
		p := ts.MustPlatform(0)
		p.AddTile(grid.C(0, 0))
		if mask&1 != 0 {
			p.AddTile(grid.C(0, 1))
		}
		if mask&2 != 0 {
			p.AddTile(grid.C(1, 0))
		}
		if mask&4 != 0 {
			p.AddTile(grid.C(1, 1))
		}
		want := p.PickCornerType(grid.C(0, 0), grid.NorthEast)
		for _, c := range distractors {
			p.AddTile(c)
			p.SetBuilding(c, catalog.BuildingEngine)
			if got := p.PickCornerType(grid.C(0, 0), grid.NorthEast); got != want {
				t.Fatalf("mask %03b: adding %s changed corner %s → %s", mask, c, want, got)
			}
		}
	}
}

func TestPlatform_Layout(t *testing.T) {
	ts := NewTestSession(WithPlatformAt(0, 0, 0), WithPattern(0, "E./##"))
	p := ts.MustPlatform(0)
	// Bounds span the slots too: x -1..2, y -1..2.
	want := "" +
		".+..\n" +
		"+E+.\n" +
		"+##+\n" +
		".++.\n"
	if got := p.Layout(); got != want {
		t.Fatalf("layout =\n%s\nwant\n%s", got, want)
	}
}

func TestParsePattern_UnknownGlyph(t *testing.T) {
	if _, err := ParsePattern("#X#"); err == nil {
		t.Fatal("expected error for unknown glyph")
	}
}

func TestPlatform_ApplyThrust(t *testing.T) {
	ts := NewTestSession(WithPlatformAt(0, 0, 0), WithPattern(0, "E#/ES"))
	p := ts.MustPlatform(0)
	if n := p.ApplyThrust(0.5); n != 2 {
		t.Fatalf("fired %d engines, want 2", n)
	}
	forces := ts.Bodies[0].Forces
	if len(forces) != 2 {
		t.Fatalf("body got %d forces, want 2", len(forces))
	}
	for _, f := range forces {
		if f.Force.X != 0 || f.Force.Y != 0 || f.Force.Z != 250 {
			t.Fatalf("force = %+v, want (0,0,250)", f.Force)
		}
		if f.Offset.X != 0 || (f.Offset.Z != 0 && f.Offset.Z != -1) {
			t.Fatalf("force offset = %+v, want on column x=0", f.Offset)
		}
	}
}
