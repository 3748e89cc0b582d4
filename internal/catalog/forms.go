// Package catalog maps the visual forms chosen by the fringe resolver onto
// model and material resource paths, and describes the building types.
package catalog

import "fmt"

// Form identifies which model variant an element renders.
type Form uint8

const (
	FormNone           Form = iota // no geometry
	FormBlockCenter                // plain tile body
	FormBlockSide                  // open edge facing an empty cell
	FormBlockTween                 // seam between two occupied cells
	FormOutCorner                  // convex corner
	FormInCorner                   // concave corner
	FormTweenCorner                // corner continuing a straight edge
	FormDoubleCorner               // two outer corners meeting diagonally
	FormFillCorner                 // crossing point of two seams
	FormEngineCenter               // engine body
	FormEngineEnd                  // engine front cap
	FormEngineStart                // engine rear cap
	FormSpireCenter                // dreamspire body
	formCount                      // sentinel
)

var formNames = [formCount]string{
	FormNone:         "none",
	FormBlockCenter:  "block_center",
	FormBlockSide:    "block_side",
	FormBlockTween:   "block_tween",
	FormOutCorner:    "block_outcorner",
	FormInCorner:     "block_incorner",
	FormTweenCorner:  "block_tweencorner",
	FormDoubleCorner: "block_doublecorner",
	FormFillCorner:   "block_fillcorner",
	FormEngineCenter: "engine_center",
	FormEngineEnd:    "engine_end",
	FormEngineStart:  "engine_start",
	FormSpireCenter:  "spire_center",
}

func (f Form) String() string {
	if f >= formCount {
		return fmt.Sprintf("form(%d)", uint8(f))
	}
	return formNames[f]
}

// ParseForm looks a form up by its catalog key.
func ParseForm(name string) (Form, bool) {
	for i, n := range formNames {
		if n == name {
			return Form(i), true
		}
	}
	return FormNone, false
}

// Forms returns every known form in declaration order.
func Forms() []Form {
	out := make([]Form, 0, formCount)
	for f := Form(0); f < formCount; f++ {
		out = append(out, f)
	}
	return out
}

// CornerType is the corner topology picked from the occupancy around a corner.
type CornerType uint8

const (
	CornerNone   CornerType = iota // own cell empty, nothing to draw
	CornerIn                       // both edges occupied, diagonal empty
	CornerOut                      // nothing around the corner
	CornerTween                    // exactly one edge occupied
	CornerDouble                   // only the diagonal occupied
	CornerFill                     // both edges and the diagonal occupied
)

var cornerNames = [...]string{"none", "in", "out", "tween", "double", "fill"}

func (c CornerType) String() string {
	if int(c) >= len(cornerNames) {
		return fmt.Sprintf("corner(%d)", uint8(c))
	}
	return cornerNames[c]
}

// Form returns the corner model form for c. The mapping is fixed.
func (c CornerType) Form() Form {
	switch c {
	case CornerIn:
		return FormInCorner
	case CornerOut:
		return FormOutCorner
	case CornerTween:
		return FormTweenCorner
	case CornerDouble:
		return FormDoubleCorner
	case CornerFill:
		return FormFillCorner
	default:
		return FormNone
	}
}
