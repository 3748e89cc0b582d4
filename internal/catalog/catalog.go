package catalog

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	modelDir    = "Resources/Models/"
	materialDir = "Resources/Materials/"
)

// Material resource paths used by the default catalog.
const (
	MatBlockCenter = materialDir + "block_center.xml"
	MatSolid       = materialDir + "solid.xml"
	MatGlow        = materialDir + "glow.xml"
	MatGlass       = materialDir + "glass.xml"
)

// Model is a renderable resource: a model path plus one material per submesh.
// An empty Path means no geometry.
type Model struct {
	Path      string   `yaml:"model"`
	Materials []string `yaml:"materials"`
}

// Empty reports whether m renders nothing.
func (m Model) Empty() bool { return m.Path == "" }

// Catalog resolves forms to models.
type Catalog struct {
	models map[Form]Model
}

// Default returns the catalog shipped with the game.
func Default() *Catalog {
	block := []string{MatBlockCenter}
	return &Catalog{models: map[Form]Model{
		FormNone:         {},
		FormBlockCenter:  {Path: modelDir + "Block_center.mdl", Materials: block},
		FormBlockSide:    {Path: modelDir + "Block_side.mdl", Materials: block},
		FormBlockTween:   {Path: modelDir + "Block_tween.mdl", Materials: block},
		FormOutCorner:    {Path: modelDir + "Block_outcorner.mdl", Materials: block},
		FormInCorner:     {Path: modelDir + "Block_incorner.mdl", Materials: block},
		FormTweenCorner:  {Path: modelDir + "Block_tweencorner.mdl", Materials: block},
		FormDoubleCorner: {Path: modelDir + "Block_doublecorner.mdl", Materials: block},
		FormFillCorner:   {Path: modelDir + "Block_fillcorner.mdl", Materials: block},
		FormEngineCenter: {
			Path:      modelDir + "Engine_center.mdl",
			Materials: []string{MatBlockCenter, MatSolid, MatGlow, MatGlass},
		},
		FormEngineEnd: {
			Path:      modelDir + "Engine_end.mdl",
			Materials: []string{MatBlockCenter, MatSolid, MatGlow, MatGlass},
		},
		// Submesh order of the start cap differs from the end cap.
		FormEngineStart: {
			Path:      modelDir + "Engine_start.mdl",
			Materials: []string{MatSolid, MatGlow, MatBlockCenter},
		},
		FormSpireCenter: {
			Path:      modelDir + "Dreamspire.mdl",
			Materials: []string{MatSolid, MatGlass},
		},
	}}
}

// Model returns the resource for f. FormNone and unknown forms yield an empty
// model.
func (c *Catalog) Model(f Form) Model {
	if c == nil {
		return Default().Model(f)
	}
	m := c.models[f]
	if f == FormNone {
		return Model{}
	}
	return Model{Path: m.Path, Materials: append([]string(nil), m.Materials...)}
}

// file is the on-disk layout of a catalog override:
//
//	forms:
//	  engine_end:
//	    model: Resources/Models/Engine_end_v2.mdl
//	    materials: [Resources/Materials/block_center.xml, ...]
type file struct {
	Forms map[string]Model `yaml:"forms"`
}

// Load reads a YAML catalog and layers it over the default catalog. Forms that
// the file does not mention keep their defaults.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog")
	}
	return Parse(raw)
}

// Parse layers raw YAML over the default catalog.
func Parse(raw []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "catalog yaml")
	}
	c := Default()
	for name, m := range f.Forms {
		form, ok := ParseForm(name)
		if !ok {
			return nil, errors.Errorf("catalog: unknown form %q", name)
		}
		if form == FormNone {
			return nil, errors.New("catalog: form \"none\" cannot be overridden")
		}
		if m.Path == "" {
			return nil, errors.Errorf("catalog: form %q has no model", name)
		}
		c.models[form] = m
	}
	return c, nil
}
