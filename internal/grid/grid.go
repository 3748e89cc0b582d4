// Package grid holds the integer coordinate model shared by platforms and tiles.
package grid

import "fmt"

// Coord identifies one cell of a platform grid. +Y is north, +X is east.
type Coord struct {
	X int
	Y int
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int) Coord { return Coord{X: x, Y: y} }

// Add returns c offset by o.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Neighbour returns the cell next to c in the direction of an edge or corner
// element. The center element maps onto c itself.
func (c Coord) Neighbour(e Element) Coord {
	return c.Add(e.Offset())
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Element is one of the nine renderable parts of a tile.
type Element uint8

const (
	Center    Element = iota // tile body, owned by the building type
	North                    // +Y edge
	East                     // +X edge
	South                    // -Y edge
	West                     // -X edge
	NorthEast                // corners follow the edges clockwise
	SouthEast
	SouthWest
	NorthWest
	ElementCount // sentinel
)

// Edges lists the four edge elements in resolver order.
var Edges = [4]Element{North, East, South, West}

// Corners lists the four corner elements in resolver order.
var Corners = [4]Element{NorthEast, SouthEast, SouthWest, NorthWest}

var elementNames = [ElementCount]string{
	"center", "north", "east", "south", "west",
	"northeast", "southeast", "southwest", "northwest",
}

func (e Element) String() string {
	if e >= ElementCount {
		return fmt.Sprintf("element(%d)", uint8(e))
	}
	return elementNames[e]
}

// IsEdge reports whether e is one of N, E, S, W.
func (e Element) IsEdge() bool { return e >= North && e <= West }

// IsCorner reports whether e is one of NE, SE, SW, NW.
func (e Element) IsCorner() bool { return e >= NorthEast && e <= NorthWest }

var elementOffsets = [ElementCount]Coord{
	Center:    {0, 0},
	North:     {0, 1},
	East:      {1, 0},
	South:     {0, -1},
	West:      {-1, 0},
	NorthEast: {1, 1},
	SouthEast: {1, -1},
	SouthWest: {-1, -1},
	NorthWest: {-1, 1},
}

// Offset returns the grid step from a tile to the neighbour behind e.
func (e Element) Offset() Coord {
	if e >= ElementCount {
		return Coord{}
	}
	return elementOffsets[e]
}

// Opposite returns the edge or corner facing e from the other side.
// The center is its own opposite.
func (e Element) Opposite() Element {
	switch {
	case e.IsEdge():
		return North + (e-North+2)%4
	case e.IsCorner():
		return NorthEast + (e-NorthEast+2)%4
	default:
		return e
	}
}

// CornerEdges returns the two edges that meet at corner e, in clockwise order
// (NE → North, East). ok is false for non-corner elements.
func (e Element) CornerEdges() (a, b Element, ok bool) {
	if !e.IsCorner() {
		return 0, 0, false
	}
	i := e - NorthEast
	return North + i, North + (i+1)%4, true
}

// Yaw is the rotation in degrees about the up axis applied to the element's
// model. Edge and corner models are authored facing east.
func (e Element) Yaw() float64 {
	if e == Center || e >= ElementCount {
		return 0
	}
	nth := int(e-1) % 4
	return 90 - float64(nth)*90
}
