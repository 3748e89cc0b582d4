package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_EveryFormHasModel(t *testing.T) {
	c := Default()
	for _, f := range Forms() {
		m := c.Model(f)
		if f == FormNone {
			if !m.Empty() {
				t.Fatalf("none form should be empty, got %q", m.Path)
			}
			continue
		}
		if m.Empty() {
			t.Fatalf("form %s has no model", f)
		}
		if len(m.Materials) == 0 {
			t.Fatalf("form %s has no materials", f)
		}
	}
}

func TestDefault_EngineCapMaterials(t *testing.T) {
	c := Default()
	end := c.Model(FormEngineEnd)
	if len(end.Materials) != 4 || end.Materials[2] != MatGlow || end.Materials[3] != MatGlass {
		t.Fatalf("engine end materials = %v", end.Materials)
	}
	start := c.Model(FormEngineStart)
	if len(start.Materials) != 3 || start.Materials[0] != MatSolid || start.Materials[2] != MatBlockCenter {
		t.Fatalf("engine start materials = %v", start.Materials)
	}
}

func TestModel_ReturnsCopy(t *testing.T) {
	c := Default()
	m := c.Model(FormBlockSide)
	m.Materials[0] = "mutated"
	if c.Model(FormBlockSide).Materials[0] != MatBlockCenter {
		t.Fatal("catalog materials should not be shared with callers")
	}
}

func TestParse_OverridesOneForm(t *testing.T) {
	raw := []byte(`
forms:
  engine_end:
    model: Resources/Models/Engine_end_v2.mdl
    materials: [a.xml, b.xml]
`)
	c, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := c.Model(FormEngineEnd).Path; got != "Resources/Models/Engine_end_v2.mdl" {
		t.Fatalf("engine_end path = %q", got)
	}
	if got := c.Model(FormBlockSide).Path; !strings.HasSuffix(got, "Block_side.mdl") {
		t.Fatalf("untouched form lost its default, got %q", got)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown form", "forms:\n  warp_core:\n    model: x.mdl\n"},
		{"none override", "forms:\n  none:\n    model: x.mdl\n"},
		{"missing model", "forms:\n  block_side:\n    materials: [a.xml]\n"},
		{"bad yaml", "forms: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("forms:\n  spire_center:\n    model: s.mdl\n    materials: [m.xml]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Model(FormSpireCenter).Path != "s.mdl" {
		t.Fatalf("spire override not applied")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCornerType_Form(t *testing.T) {
	want := map[CornerType]Form{
		CornerNone:   FormNone,
		CornerIn:     FormInCorner,
		CornerOut:    FormOutCorner,
		CornerTween:  FormTweenCorner,
		CornerDouble: FormDoubleCorner,
		CornerFill:   FormFillCorner,
	}
	for ct, f := range want {
		if ct.Form() != f {
			t.Fatalf("%s → %s, want %s", ct, ct.Form(), f)
		}
	}
}

func TestBuildings_Table(t *testing.T) {
	if BuildingEmpty.Designated() {
		t.Fatal("empty should not be designated")
	}
	eng := BuildingEngine.Spec()
	if !eng.Directional || eng.EndForm != FormEngineEnd || eng.StartForm != FormEngineStart {
		t.Fatalf("engine spec = %+v", eng)
	}
	if BuildingSpire.Spec().Directional {
		t.Fatal("spire should not be directional")
	}
	for _, b := range BuildingTypes() {
		got, ok := ParseBuilding(b.String())
		if !ok || got != b {
			t.Fatalf("ParseBuilding(%q) = %v,%v", b.String(), got, ok)
		}
	}
	if BuildingType(200).Spec().Name != "empty" {
		t.Fatal("unknown building should describe as empty")
	}
}
