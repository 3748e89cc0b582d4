package host

import (
	"math"

	"github.com/unixpickle/model3d/model3d"

	"github.com/Garsondee/Oneiron/internal/grid"
	"github.com/Garsondee/Oneiron/internal/world"
)

// slotMarkerHalf is the half-size of the slot marker drawn on a bare tile.
// On empty cells the whole cell is the slot.
const slotMarkerHalf = 0.2

// CellAt returns the grid cell of p under world position pos and the offset of
// pos from that cell's centre, in grid axes (+Y north).
func CellAt(p *world.Platform, pos model3d.Coord3D) (grid.Coord, float64, float64) {
	origin := p.Position()
	lx := pos.X - origin.X
	ly := origin.Z - pos.Z
	cx, cy := math.Round(lx), math.Round(ly)
	return grid.C(int(cx), int(cy)), lx - cx, ly - cy
}

// Pick builds the ordered hit list under pos: the cursor first, then the
// platforms from the newest down, each contributing its slot before its
// surface. With no platform under pos the list ends in a void hit.
func Pick(s *world.Session, pos model3d.Coord3D) []world.Hit {
	hits := []world.Hit{{Kind: world.HitCursor}}
	ps := s.Platforms()
	for i := len(ps) - 1; i >= 0; i-- {
		p := ps[i]
		c, dx, dy := CellAt(p, pos)
		_, onTile := p.Tile(c)
		if slot, ok := p.Slot(c); ok && slot.Enabled {
			onMarker := math.Abs(dx) <= slotMarkerHalf && math.Abs(dy) <= slotMarkerHalf
			if !onTile || onMarker {
				hits = append(hits, world.Hit{Kind: world.HitPlaceholder, Platform: p.ID(), Coord: c})
			}
		}
		if onTile {
			hits = append(hits, world.Hit{Kind: world.HitPlatformSurface, Platform: p.ID(), Coord: c})
		}
	}
	if len(hits) == 1 {
		hits = append(hits, world.Hit{Kind: world.HitVoid})
	}
	return hits
}
