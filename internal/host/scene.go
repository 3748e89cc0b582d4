package host

import (
	"image/color"
	"path"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/Garsondee/Oneiron/internal/catalog"
	"github.com/Garsondee/Oneiron/internal/grid"
	"github.com/Garsondee/Oneiron/internal/world"
)

// materialColors maps material names (the resource file name without its
// extension) to draw colours. Materials not listed here are looked up as CSS
// colour names, then fall back to magenta.
var materialColors = map[string]color.RGBA{
	"block_center": colornames.Slategray,
	"solid":        colornames.Dimgray,
	"glow":         colornames.Gold,
	"glass":        colornames.Lightskyblue,
}

// MaterialColor returns the colour a material is drawn with.
func MaterialColor(material string) color.RGBA {
	name := strings.TrimSuffix(path.Base(material), path.Ext(material))
	if c, ok := materialColors[name]; ok {
		return c
	}
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return colornames.Magenta
}

type sceneKey struct {
	platform world.PlatformID
	coord    grid.Coord
	element  grid.Element
}

type sceneSlotKey struct {
	platform world.PlatformID
	coord    grid.Coord
}

// Scene keeps the model last pushed for every element and the visibility of
// every slot. It implements world.Renderer; the game draws from it.
type Scene struct {
	elements map[sceneKey]catalog.Model
	slots    map[sceneSlotKey]bool
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		elements: make(map[sceneKey]catalog.Model),
		slots:    make(map[sceneSlotKey]bool),
	}
}

func (s *Scene) SetElement(ref world.ElementRef, m catalog.Model) {
	k := sceneKey{ref.Platform, ref.Coord, ref.Element}
	if m.Empty() {
		delete(s.elements, k)
		return
	}
	s.elements[k] = m
}

func (s *Scene) SetSlot(id world.PlatformID, c grid.Coord, enabled bool) {
	k := sceneSlotKey{id, c}
	if !enabled {
		delete(s.slots, k)
		return
	}
	s.slots[k] = true
}

// Element returns the model shown for an element; false means nothing is drawn.
func (s *Scene) Element(id world.PlatformID, c grid.Coord, e grid.Element) (catalog.Model, bool) {
	m, ok := s.elements[sceneKey{id, c, e}]
	return m, ok
}

// SlotVisible reports whether the slot marker at c is shown.
func (s *Scene) SlotVisible(id world.PlatformID, c grid.Coord) bool {
	return s.slots[sceneSlotKey{id, c}]
}

// Rect is an axis-aligned box in cell units, +Y north, centred on the cell.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// elementInset is where the centre block ends and the fringe ring starts.
const elementInset = 0.35

// ElementRect returns the area of a cell an element covers.
func ElementRect(e grid.Element) Rect {
	const in, out = elementInset, 0.5
	switch e {
	case grid.Center:
		return Rect{-in, -in, in, in}
	case grid.North:
		return Rect{-in, in, in, out}
	case grid.East:
		return Rect{in, -in, out, in}
	case grid.South:
		return Rect{-in, -out, in, -in}
	case grid.West:
		return Rect{-out, -in, -in, in}
	case grid.NorthEast:
		return Rect{in, in, out, out}
	case grid.SouthEast:
		return Rect{in, -out, out, -in}
	case grid.SouthWest:
		return Rect{-out, -out, -in, -in}
	case grid.NorthWest:
		return Rect{-out, in, -in, out}
	}
	return Rect{}
}

// Bands splits r into one vertical stripe per material, west to east.
func (r Rect) Bands(n int) []Rect {
	if n <= 1 {
		return []Rect{r}
	}
	out := make([]Rect, n)
	w := (r.MaxX - r.MinX) / float64(n)
	for i := range out {
		out[i] = Rect{r.MinX + float64(i)*w, r.MinY, r.MinX + float64(i+1)*w, r.MaxY}
	}
	return out
}
