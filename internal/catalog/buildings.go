package catalog

import "fmt"

// BuildingType designates what a tile has been built into.
type BuildingType uint8

const (
	BuildingEmpty     BuildingType = iota // bare tile
	BuildingEngine                        // directional thruster, front faces north
	BuildingSpire                         // dreamspire, purely decorative
	buildingTypeCount                     // sentinel
)

// BuildingSpec is the static description of one building type.
// Directional buildings have a forward (north) and rear (south) edge that get
// dedicated cap forms when open, and join seamlessly along the forward edge
// with a neighbour of the same type.
type BuildingSpec struct {
	Name        string
	Glyph       rune // layout character
	Directional bool
	CenterForm  Form
	EndForm     Form    // open forward edge
	StartForm   Form    // open rear edge
	Thrust      float64 // force per second while thrust is held; 0 = none
}

// Buildings is indexed by BuildingType. Adding a type means adding a constant
// and a row here.
var Buildings = [buildingTypeCount]BuildingSpec{
	BuildingEmpty: {
		Name:       "empty",
		Glyph:      '#',
		CenterForm: FormBlockCenter,
	},
	BuildingEngine: {
		Name:        "engine",
		Glyph:       'E',
		Directional: true,
		CenterForm:  FormEngineCenter,
		EndForm:     FormEngineEnd,
		StartForm:   FormEngineStart,
		Thrust:      500,
	},
	BuildingSpire: {
		Name:       "spire",
		Glyph:      'S',
		CenterForm: FormSpireCenter,
	},
}

// Spec returns the description of b. Unknown types describe as empty.
func (b BuildingType) Spec() BuildingSpec {
	if b >= buildingTypeCount {
		return Buildings[BuildingEmpty]
	}
	return Buildings[b]
}

func (b BuildingType) String() string {
	if b >= buildingTypeCount {
		return fmt.Sprintf("building(%d)", uint8(b))
	}
	return Buildings[b].Name
}

// Designated reports whether b is anything other than a bare tile.
func (b BuildingType) Designated() bool { return b != BuildingEmpty }

// ParseBuilding looks a building type up by name.
func ParseBuilding(name string) (BuildingType, bool) {
	for i := range Buildings {
		if Buildings[i].Name == name {
			return BuildingType(i), true
		}
	}
	return BuildingEmpty, false
}

// BuildingByGlyph looks a building type up by its layout character.
func BuildingByGlyph(r rune) (BuildingType, bool) {
	for i := range Buildings {
		if Buildings[i].Glyph == r {
			return BuildingType(i), true
		}
	}
	return BuildingEmpty, false
}

// BuildingTypes returns every known building type.
func BuildingTypes() []BuildingType {
	out := make([]BuildingType, 0, buildingTypeCount)
	for b := BuildingType(0); b < buildingTypeCount; b++ {
		out = append(out, b)
	}
	return out
}
