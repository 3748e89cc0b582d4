package world

import (
	"fmt"
	"sort"

	"github.com/unixpickle/model3d/model3d"

	"github.com/Garsondee/Oneiron/internal/catalog"
	"github.com/Garsondee/Oneiron/internal/grid"
)

// PlatformID is the stable key of a platform inside its session.
type PlatformID int

func (id PlatformID) String() string { return fmt.Sprintf("P%d", int(id)) }

// Slot is a placeholder inviting construction at a cell. Slots sit on every
// tile and on every empty cell next to one; designated tiles hide theirs.
type Slot struct {
	Coord   grid.Coord
	Enabled bool
}

// Platform is a floating structure made of a sparse grid of tiles.
type Platform struct {
	id       PlatformID
	baseMass float64
	thrust   float64 // scale applied to building thrust
	tiles    map[grid.Coord]*Tile
	slots    map[grid.Coord]*Slot
	selected bool

	moveTarget    model3d.Coord3D
	hasMoveTarget bool

	body     Body
	catalog  *catalog.Catalog
	renderer Renderer
	log      *EditLog
	tick     *int // session tick, for log entries
}

// newPlatform creates an empty platform with a single enabled slot at the
// origin so the first tile can be placed.
func newPlatform(id PlatformID, baseMass float64, body Body, deps *SessionDeps, tick *int) *Platform {
	p := &Platform{
		id:       id,
		baseMass: baseMass,
		thrust:   deps.ThrustScale,
		tiles:    make(map[grid.Coord]*Tile),
		slots:    make(map[grid.Coord]*Slot),
		body:     body,
		catalog:  deps.Catalog,
		renderer: deps.Renderer,
		log:      deps.Log,
		tick:     tick,
	}
	p.body.SetMass(p.Mass())
	p.addSlot(grid.Coord{}, true)
	return p
}

// ID returns the platform's session key.
func (p *Platform) ID() PlatformID { return p.id }

// Position returns the current world position reported by the body.
func (p *Platform) Position() model3d.Coord3D { return p.body.Position() }

// Body returns the physics collaborator.
func (p *Platform) Body() Body { return p.body }

// Mass is the base mass plus one unit per tile.
func (p *Platform) Mass() float64 { return p.baseMass + float64(len(p.tiles)) }

// TileCount returns the number of tiles.
func (p *Platform) TileCount() int { return len(p.tiles) }

// Tile returns the tile at c, if any.
func (p *Platform) Tile(c grid.Coord) (*Tile, bool) {
	t, ok := p.tiles[c]
	return t, ok
}

// Tiles returns all tiles ordered north to south, then west to east.
func (p *Platform) Tiles() []*Tile {
	out := make([]*Tile, 0, len(p.tiles))
	for _, t := range p.tiles {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return coordLess(out[i].coord, out[j].coord) })
	return out
}

// Slot returns the slot at c, if any.
func (p *Platform) Slot(c grid.Coord) (Slot, bool) {
	s, ok := p.slots[c]
	if !ok {
		return Slot{}, false
	}
	return *s, true
}

// Slots returns all slots in the same order as Tiles.
func (p *Platform) Slots() []Slot {
	out := make([]Slot, 0, len(p.slots))
	for _, s := range p.slots {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return coordLess(out[i].Coord, out[j].Coord) })
	return out
}

func coordLess(a, b grid.Coord) bool {
	if a.Y != b.Y {
		return a.Y > b.Y
	}
	return a.X < b.X
}

// CheckEmpty reports whether c is free. With structuralOnly false, c is empty
// iff no tile occupies it. With structuralOnly true, a tile that has no
// building designated also counts as empty.
func (p *Platform) CheckEmpty(c grid.Coord, structuralOnly bool) bool {
	t, ok := p.tiles[c]
	if !ok {
		return true
	}
	return structuralOnly && !t.building.Designated()
}

// CheckEmptyNeighbour applies CheckEmpty to the neighbour of c behind element
// e. Corner elements look at the diagonal; the center has no neighbour and
// always reports empty.
func (p *Platform) CheckEmptyNeighbour(c grid.Coord, e grid.Element, structuralOnly bool) bool {
	if !e.IsEdge() && !e.IsCorner() {
		return true
	}
	return p.CheckEmpty(c.Neighbour(e), structuralOnly)
}

// NeighbourType returns the building type of the neighbour behind e, or
// BuildingEmpty when there is none.
func (p *Platform) NeighbourType(c grid.Coord, e grid.Element) catalog.BuildingType {
	if !e.IsEdge() && !e.IsCorner() {
		return catalog.BuildingEmpty
	}
	t, ok := p.tiles[c.Neighbour(e)]
	if !ok {
		return catalog.BuildingEmpty
	}
	return t.building
}

// PickCornerType classifies corner e of the tile at c from the two edge
// neighbours that meet at the corner and the diagonal neighbour. Nothing else
// influences the result. CornerNone is reserved for a cell without a tile;
// an isolated tile gets outer corners.
func (p *Platform) PickCornerType(c grid.Coord, e grid.Element) catalog.CornerType {
	a, b, ok := e.CornerEdges()
	if !ok || p.CheckEmpty(c, false) {
		return catalog.CornerNone
	}
	edgeA := !p.CheckEmptyNeighbour(c, a, false)
	edgeB := !p.CheckEmptyNeighbour(c, b, false)
	diag := !p.CheckEmptyNeighbour(c, e, false)

	switch {
	case edgeA && edgeB && diag:
		return catalog.CornerFill
	case edgeA && edgeB:
		return catalog.CornerIn
	case edgeA || edgeB:
		return catalog.CornerTween
	case diag:
		return catalog.CornerDouble
	default:
		return catalog.CornerOut
	}
}

// AddTile places a bare tile at c and adds one unit of mass. An existing tile
// is returned unchanged. The fringe is not fixed: callers run FixFringe and
// AddMissingSlots once the edit is complete.
func (p *Platform) AddTile(c grid.Coord) *Tile {
	if t, ok := p.tiles[c]; ok {
		return t
	}
	t := newTile(p, c)
	p.tiles[c] = t
	p.body.SetMass(p.Mass())
	p.logf("tile", "add", "%s mass=%.0f", c, p.Mass())
	return t
}

// SetBuilding designates the tile at c. Missing tiles are ignored.
func (p *Platform) SetBuilding(c grid.Coord, b catalog.BuildingType) {
	t, ok := p.tiles[c]
	if !ok {
		return
	}
	t.SetBuilding(b)
}

// FixFringe re-resolves the tile at c and every tile in its 3x3 neighbourhood.
func (p *Platform) FixFringe(c grid.Coord) {
	for e := grid.Center; e < grid.ElementCount; e++ {
		if t, ok := p.tiles[c.Neighbour(e)]; ok {
			t.FixFringe()
		}
	}
}

// FixAllFringes re-resolves every tile of the platform.
func (p *Platform) FixAllFringes() {
	for _, t := range p.tiles {
		t.FixFringe()
	}
}

// AddMissingSlots creates the slots that are missing on tiles and on the empty
// cells next to them. Existing slots are left as they are, so calling it
// repeatedly has no further effect. It returns the number of slots created.
func (p *Platform) AddMissingSlots() int {
	added := 0
	for c, t := range p.tiles {
		if _, ok := p.slots[c]; !ok {
			p.addSlot(c, !t.building.Designated())
			added++
		}
		for _, e := range grid.Edges {
			n := c.Neighbour(e)
			if _, occupied := p.tiles[n]; occupied {
				continue
			}
			if _, ok := p.slots[n]; ok {
				continue
			}
			p.addSlot(n, true)
			added++
		}
	}
	return added
}

func (p *Platform) addSlot(c grid.Coord, enabled bool) {
	p.slots[c] = &Slot{Coord: c, Enabled: enabled}
	p.renderer.SetSlot(p.id, c, enabled)
}

// setSlotEnabled shows or hides the slot at c, creating it if needed.
func (p *Platform) setSlotEnabled(c grid.Coord, enabled bool) {
	s, ok := p.slots[c]
	if !ok {
		p.addSlot(c, enabled)
		return
	}
	s.Enabled = enabled
	p.renderer.SetSlot(p.id, c, enabled)
}

// release withdraws every element and slot the platform pushed to the
// renderer. It runs when the platform leaves its session.
func (p *Platform) release() {
	for c := range p.tiles {
		for e := grid.Center; e < grid.ElementCount; e++ {
			p.renderer.SetElement(ElementRef{Platform: p.id, Coord: c, Element: e}, catalog.Model{})
		}
	}
	for c := range p.slots {
		p.renderer.SetSlot(p.id, c, false)
	}
}

// SetSelected toggles the selection highlight. Selection set membership is
// kept by the Controller.
func (p *Platform) SetSelected(selected bool) {
	p.selected = selected
}

// IsSelected reports the highlight state.
func (p *Platform) IsSelected() bool { return p.selected }

// SetMoveTarget records where the body should steer to.
func (p *Platform) SetMoveTarget(pos model3d.Coord3D) {
	p.moveTarget = pos
	p.hasMoveTarget = true
	p.body.SetMoveTarget(pos)
	p.logf("command", "move", "(%.1f,%.1f,%.1f)", pos.X, pos.Y, pos.Z)
}

// ClearMoveTarget drops the current destination.
func (p *Platform) ClearMoveTarget() {
	p.hasMoveTarget = false
	p.body.ClearMoveTarget()
}

// MoveTarget returns the current destination, if any.
func (p *Platform) MoveTarget() (model3d.Coord3D, bool) {
	return p.moveTarget, p.hasMoveTarget
}

// engineForward is the direction of engine thrust in the platform frame:
// engines face north, so they push towards -Y on the grid, which is +Z.
var engineForward = model3d.Coord3D{X: 0, Y: 0, Z: 1}

// TileOffset returns the platform-local position of cell c.
func TileOffset(c grid.Coord) model3d.Coord3D {
	return model3d.Coord3D{X: float64(c.X), Y: 0, Z: -float64(c.Y)}
}

// ApplyThrust makes every thrusting tile push the body for dt seconds and
// returns how many tiles fired.
func (p *Platform) ApplyThrust(dt float64) int {
	fired := 0
	for c, t := range p.tiles {
		thrust := t.building.Spec().Thrust * p.thrust
		if thrust <= 0 {
			continue
		}
		p.body.ApplyForce(engineForward.Scale(thrust*dt), TileOffset(c))
		fired++
	}
	return fired
}

func (p *Platform) logf(category, key, format string, args ...any) {
	if p.log == nil {
		return
	}
	tick := 0
	if p.tick != nil {
		tick = *p.tick
	}
	p.log.Add(tick, p.id.String(), category, key, fmt.Sprintf(format, args...))
}
