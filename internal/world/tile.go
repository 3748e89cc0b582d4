package world

import (
	"github.com/Garsondee/Oneiron/internal/catalog"
	"github.com/Garsondee/Oneiron/internal/grid"
)

// Directional buildings face north: the forward edge gets the end cap and the
// rear edge the start cap.
const (
	forwardEdge = grid.North
	rearEdge    = grid.South
)

// Tile is one occupied cell of a platform.
type Tile struct {
	platform *Platform // owner; tiles never outlive it
	coord    grid.Coord
	building catalog.BuildingType
	forms    [grid.ElementCount]catalog.Form
}

// newTile creates a bare tile with the construction-time element forms: block
// center, open sides and outer corners. The fringe is not resolved here.
func newTile(p *Platform, c grid.Coord) *Tile {
	t := &Tile{platform: p, coord: c}
	t.setForm(grid.Center, catalog.FormBlockCenter)
	for _, e := range grid.Edges {
		t.setForm(e, catalog.FormBlockSide)
	}
	for _, e := range grid.Corners {
		t.setForm(e, catalog.FormOutCorner)
	}
	return t
}

// Coord returns the tile's cell.
func (t *Tile) Coord() grid.Coord { return t.coord }

// Platform returns the owning platform.
func (t *Tile) Platform() *Platform { return t.platform }

// Building returns the designated building type.
func (t *Tile) Building() catalog.BuildingType { return t.building }

// Form returns the current form of element e.
func (t *Tile) Form(e grid.Element) catalog.Form {
	if e >= grid.ElementCount {
		return catalog.FormNone
	}
	return t.forms[e]
}

// Forms returns all nine element forms indexed by grid.Element.
func (t *Tile) Forms() [grid.ElementCount]catalog.Form { return t.forms }

// SetBuilding overwrites the building type. It always re-selects the center
// model and updates the slot at this cell: designated tiles hide their slot,
// bare tiles show it again. Edges and corners are left to FixFringe.
func (t *Tile) SetBuilding(b catalog.BuildingType) {
	t.building = b
	t.platform.setSlotEnabled(t.coord, !b.Designated())
	t.setForm(grid.Center, b.Spec().CenterForm)
	t.platform.logf("building", "set", "%s %s", t.coord, b)
}

// FixFringe recomputes the eight edge and corner elements from the current
// occupancy of the platform.
func (t *Tile) FixFringe() {
	for e := grid.North; e < grid.ElementCount; e++ {
		t.setForm(e, t.ResolveElement(e))
	}
}

// ResolveElement computes the form element e should have right now without
// applying it. The center resolves to the building's center form.
func (t *Tile) ResolveElement(e grid.Element) catalog.Form {
	switch {
	case e == grid.Center:
		return t.building.Spec().CenterForm
	case e.IsEdge():
		return t.resolveEdge(e)
	case e.IsCorner():
		return t.platform.PickCornerType(t.coord, e).Form()
	default:
		return catalog.FormNone
	}
}

func (t *Tile) resolveEdge(e grid.Element) catalog.Form {
	spec := t.building.Spec()
	p := t.platform

	if p.CheckEmptyNeighbour(t.coord, e, false) {
		if spec.Directional {
			switch e {
			case forwardEdge:
				return spec.EndForm
			case rearEdge:
				return spec.StartForm
			}
		}
		return catalog.FormBlockSide
	}

	// Each seam is drawn once, by the north and west edges of the tiles
	// on its south and east side.
	switch e {
	case grid.North:
		if spec.Directional && p.NeighbourType(t.coord, e) == t.building {
			return catalog.FormNone
		}
		return catalog.FormBlockTween
	case grid.West:
		return catalog.FormBlockTween
	default:
		return catalog.FormNone
	}
}

func (t *Tile) setForm(e grid.Element, f catalog.Form) {
	t.forms[e] = f
	p := t.platform
	p.renderer.SetElement(ElementRef{
		Platform: p.id,
		Coord:    t.coord,
		Element:  e,
		Yaw:      e.Yaw(),
	}, p.catalog.Model(f))
}
