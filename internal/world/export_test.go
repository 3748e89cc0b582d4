package world

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/Oneiron/internal/grid"
	"github.com/Garsondee/Oneiron/internal/snapshot"
)

func TestSession_ExportImport(t *testing.T) {
	src := NewTestSession(
		WithPlatformAt(0, 0, 0),
		WithPlatformAt(-4, 0, 6),
		WithPattern(0, "E#/E#/##"),
		WithPattern(1, "S.S/###"),
	)
	src.Session.Despawn(0)
	src.Session.SpawnPlatform(src.Bodies[1].Pos)
	p2 := src.MustPlatform(2)
	p2.AddTile(grid.C(0, 0))
	p2.FixFringe(grid.C(0, 0))
	p2.AddMissingSlots()
	src.Controller.OnTick(0.1, TickInput{})

	path := filepath.Join(t.TempDir(), "layout.snap")
	if err := snapshot.Write(path, src.Session.Export()); err != nil {
		t.Fatalf("write: %v", err)
	}
	snap, err := snapshot.Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	dst := NewTestSession(WithPlatformAt(99, 0, 0), WithPattern(0, "###"))
	if err := dst.Session.Import(snap); err != nil {
		t.Fatalf("import: %v", err)
	}
	if dst.Session.Tick() != 1 {
		t.Fatalf("tick = %d, want 1", dst.Session.Tick())
	}
	if len(dst.Session.Platforms()) != 2 {
		t.Fatalf("platforms = %d, want 2", len(dst.Session.Platforms()))
	}
	for _, sp := range src.Session.Platforms() {
		dp, ok := dst.Session.Platform(sp.ID())
		if !ok {
			t.Fatalf("platform %s missing after import", sp.ID())
		}
		if dp.Position() != sp.Position() {
			t.Fatalf("%s position %v, want %v", sp.ID(), dp.Position(), sp.Position())
		}
		if dp.Layout() != sp.Layout() {
			t.Fatalf("%s layout\n%s\nwant\n%s", sp.ID(), dp.Layout(), sp.Layout())
		}
		for _, st := range sp.Tiles() {
			dt, _ := dp.Tile(st.Coord())
			if dt.Forms() != st.Forms() {
				t.Fatalf("%s tile %s forms differ", sp.ID(), st.Coord())
			}
		}
	}

	// Ids keep counting from the highest imported one.
	if p := dst.Session.SpawnPlatform(dst.Bodies[1].Pos); p.ID() != 3 {
		t.Fatalf("next id = %s, want P3", p.ID())
	}
}

func TestController_ImportResetsSelection(t *testing.T) {
	ts := NewTestSession(
		WithPlatformAt(0, 0, 0),
		WithPattern(0, "##"),
		WithSelected(0),
	)
	ts.ClickSurface(0, grid.C(0, 0), false)
	if ids := ts.Controller.SelectedIDs(); len(ids) != 1 || ids[0] != 0 {
		t.Fatalf("selected before import = %v", ids)
	}

	snap := snapshot.SessionV1{Platforms: []snapshot.PlatformV1{
		{ID: 0, Position: [3]float64{50, 0, 50}, Tiles: []snapshot.TileV1{{X: 0, Y: 0}}},
	}}
	if err := ts.Controller.Import(snap); err != nil {
		t.Fatalf("import: %v", err)
	}
	if ids := ts.Controller.SelectedIDs(); len(ids) != 0 {
		t.Fatalf("selection survived import: %v", ids)
	}
	if ts.MustPlatform(0).IsSelected() {
		t.Fatal("imported platform should not be selected")
	}
	if _, ok := ts.Controller.LastHit(); ok {
		t.Fatal("last hit should be forgotten after import")
	}
	ts.Controller.OnKeyDown(KeyLock)
	if len(ts.Camera.Locked) != 0 {
		t.Fatalf("camera locked onto %v after import", ts.Camera.Locked)
	}
}

func TestController_RejectedImportKeepsState(t *testing.T) {
	ts := NewTestSession(WithPlatformAt(0, 0, 0), WithPattern(0, "##"))
	ts.ClickSurface(0, grid.C(0, 0), false)

	bad := snapshot.SessionV1{Platforms: []snapshot.PlatformV1{{ID: 3}, {ID: 3}}}
	if err := ts.Controller.Import(bad); err == nil {
		t.Fatal("expected duplicate id error")
	}
	if ids := ts.Controller.SelectedIDs(); len(ids) != 1 || ids[0] != 0 {
		t.Fatalf("selection = %v, want [P0] kept", ids)
	}
	if m, ok := ts.Renderer.Model(0, grid.C(0, 0), grid.Center); !ok || m.Empty() {
		t.Fatal("rejected import withdrew the platform's models")
	}
}

func TestSession_ClearWithdrawsRenderedState(t *testing.T) {
	ts := NewTestSession(WithPlatformAt(0, 0, 0), WithPattern(0, "E#"))
	snap := snapshot.SessionV1{Platforms: []snapshot.PlatformV1{
		{ID: 4, Tiles: []snapshot.TileV1{{X: 5, Y: 5}}},
	}}
	if err := ts.Session.Import(snap); err != nil {
		t.Fatalf("import: %v", err)
	}
	for _, c := range []grid.Coord{grid.C(0, 0), grid.C(1, 0)} {
		for e := grid.Center; e < grid.ElementCount; e++ {
			if m, _ := ts.Renderer.Model(0, c, e); !m.Empty() {
				t.Fatalf("old P0 %s %s still rendered as %s", c, e, m.Path)
			}
		}
	}
	if enabled, _ := ts.Renderer.SlotEnabled(0, grid.C(1, 0)); enabled {
		t.Fatal("old P0 slot still visible")
	}
	if m, ok := ts.Renderer.Model(4, grid.C(5, 5), grid.Center); !ok || m.Empty() {
		t.Fatal("imported platform not rendered")
	}
}

func TestSession_ImportRejectsBadSnapshot(t *testing.T) {
	tests := []struct {
		name string
		snap snapshot.SessionV1
		want string
	}{
		{
			name: "duplicate id",
			snap: snapshot.SessionV1{Platforms: []snapshot.PlatformV1{{ID: 1}, {ID: 1}}},
			want: "duplicate",
		},
		{
			name: "unknown building",
			snap: snapshot.SessionV1{Platforms: []snapshot.PlatformV1{
				{ID: 0, Tiles: []snapshot.TileV1{{X: 0, Y: 0, Building: "cannon"}}},
			}},
			want: "cannon",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTestSession(WithPlatformAt(0, 0, 0), WithPattern(0, "##"))
			err := ts.Session.Import(tt.snap)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
			if p := ts.MustPlatform(0); p.TileCount() != 2 {
				t.Fatal("failed import modified the session")
			}
		})
	}
}

func TestEditLog_Queries(t *testing.T) {
	el := NewEditLog()
	var mirrored []string
	el.Subscribe(func(e EditLogEntry) { mirrored = append(mirrored, e.Key) })

	el.Add(0, "P0", "tile", "add", "(0,0) mass=2")
	el.Add(1, "P1", "tile", "add", "(0,1) mass=3")
	el.Add(2, "P0", "building", "set", "(0,0) engine")

	if n := el.CountCategory("tile", ""); n != 2 {
		t.Fatalf("tile entries = %d, want 2", n)
	}
	if adds := el.Filter("tile", "add"); len(adds) != 2 || adds[1].Platform != "P1" {
		t.Fatalf("tile adds = %+v", adds)
	}
	if !el.HasEntry("building", "set", "engine") || el.HasEntry("building", "set", "spire") {
		t.Fatal("HasEntry mismatch")
	}
	if len(mirrored) != 3 {
		t.Fatalf("subscriber saw %d entries, want 3", len(mirrored))
	}
	if !strings.HasPrefix(el.Entries()[2].String(), "[T=002] P0   building") {
		t.Fatalf("format = %q", el.Entries()[2].String())
	}
	if strings.Count(el.Format(), "\n") != 3 {
		t.Fatal("Format should write one line per entry")
	}
}
