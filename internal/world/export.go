package world

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"

	"github.com/Garsondee/Oneiron/internal/catalog"
	"github.com/Garsondee/Oneiron/internal/grid"
	"github.com/Garsondee/Oneiron/internal/snapshot"
)

// Export captures the layout of every platform.
func (s *Session) Export() snapshot.SessionV1 {
	snap := snapshot.SessionV1{Header: snapshot.Header{Tick: s.tick}}
	for _, p := range s.Platforms() {
		pos := p.Position()
		pv := snapshot.PlatformV1{
			ID:       int(p.id),
			Position: [3]float64{pos.X, pos.Y, pos.Z},
		}
		for _, t := range p.Tiles() {
			tv := snapshot.TileV1{X: t.coord.X, Y: t.coord.Y}
			if t.building.Designated() {
				tv.Building = t.building.String()
			}
			pv.Tiles = append(pv.Tiles, tv)
		}
		snap.Platforms = append(snap.Platforms, pv)
	}
	return snap
}

// Import replaces every platform with the ones in snap. The snapshot is
// validated before the session is touched.
func (s *Session) Import(snap snapshot.SessionV1) error {
	type placed struct {
		pv    snapshot.PlatformV1
		cells []PatternCell
	}
	plan := make([]placed, 0, len(snap.Platforms))
	seen := make(map[int]bool, len(snap.Platforms))
	for _, pv := range snap.Platforms {
		if seen[pv.ID] {
			return errors.Errorf("snapshot: duplicate platform id %d", pv.ID)
		}
		seen[pv.ID] = true
		cells := make([]PatternCell, 0, len(pv.Tiles))
		for _, tv := range pv.Tiles {
			b := catalog.BuildingEmpty
			if tv.Building != "" {
				var ok bool
				if b, ok = catalog.ParseBuilding(tv.Building); !ok {
					return errors.Errorf("snapshot: platform %d: unknown building %q", pv.ID, tv.Building)
				}
			}
			cells = append(cells, PatternCell{Coord: grid.C(tv.X, tv.Y), Building: b})
		}
		plan = append(plan, placed{pv: pv, cells: cells})
	}

	s.Clear()
	s.tick = snap.Header.Tick
	for _, pl := range plan {
		pos := model3d.Coord3D{X: pl.pv.Position[0], Y: pl.pv.Position[1], Z: pl.pv.Position[2]}
		p := s.spawn(PlatformID(pl.pv.ID), pos)
		p.Build(pl.cells)
	}
	s.logf("platform", "import", "%d platforms", len(plan))
	return nil
}
