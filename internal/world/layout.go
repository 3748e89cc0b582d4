package world

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Garsondee/Oneiron/internal/catalog"
	"github.com/Garsondee/Oneiron/internal/grid"
)

// Layout glyphs besides the building glyphs.
const (
	glyphNothing = '.'
	glyphSlot    = '+'
)

// Layout renders the platform as rows of glyphs, north row first. Tiles use
// their building glyph, enabled slots on empty cells '+', anything else '.'.
func (p *Platform) Layout() string {
	if len(p.tiles) == 0 && len(p.slots) == 0 {
		return ""
	}
	minX, minY, maxX, maxY := p.bounds()
	var sb strings.Builder
	for y := maxY; y >= minY; y-- {
		for x := minX; x <= maxX; x++ {
			c := grid.C(x, y)
			switch t, ok := p.tiles[c]; {
			case ok:
				sb.WriteRune(t.building.Spec().Glyph)
			case p.slotEnabled(c):
				sb.WriteRune(glyphSlot)
			default:
				sb.WriteRune(glyphNothing)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (p *Platform) slotEnabled(c grid.Coord) bool {
	s, ok := p.slots[c]
	return ok && s.Enabled
}

func (p *Platform) bounds() (minX, minY, maxX, maxY int) {
	first := true
	grow := func(c grid.Coord) {
		if first {
			minX, maxX, minY, maxY = c.X, c.X, c.Y, c.Y
			first = false
			return
		}
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minY, maxY = min(minY, c.Y), max(maxY, c.Y)
	}
	for c := range p.tiles {
		grow(c)
	}
	for c := range p.slots {
		grow(c)
	}
	return minX, minY, maxX, maxY
}

// PatternCell is one tile parsed from a layout pattern.
type PatternCell struct {
	Coord    grid.Coord
	Building catalog.BuildingType
}

// ParsePattern reads a layout pattern: rows separated by '/' or newlines,
// north row first, the bottom-left character at (0,0). Building glyphs place
// tiles; '.', '+' and spaces leave the cell empty.
func ParsePattern(pattern string) ([]PatternCell, error) {
	rows := strings.FieldsFunc(pattern, func(r rune) bool { return r == '/' || r == '\n' })
	var cells []PatternCell
	for i, row := range rows {
		y := len(rows) - 1 - i
		for x, r := range []rune(strings.TrimRight(row, "\r")) {
			if r == glyphNothing || r == glyphSlot || r == ' ' {
				continue
			}
			b, ok := catalog.BuildingByGlyph(r)
			if !ok {
				return nil, errors.Errorf("pattern row %d: unknown glyph %q", i, r)
			}
			cells = append(cells, PatternCell{Coord: grid.C(x, y), Building: b})
		}
	}
	return cells, nil
}

// Build places the pattern on p the way interactive edits would: tiles first,
// then designations, then a full fringe pass and the missing slots.
func (p *Platform) Build(cells []PatternCell) {
	for _, cell := range cells {
		p.AddTile(cell.Coord)
	}
	for _, cell := range cells {
		if cell.Building.Designated() {
			p.SetBuilding(cell.Coord, cell.Building)
		}
	}
	p.FixAllFringes()
	p.AddMissingSlots()
}
