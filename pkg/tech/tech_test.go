package tech

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/waveforge/waveforge/pkg/errors"
)

func TestGenericValidates(t *testing.T) {
	if err := Generic().Validate(); err != nil {
		t.Fatalf("Generic() should validate: %v", err)
	}
}

func TestLayerString(t *testing.T) {
	l := Layer{Layer: 1, Datatype: 10}
	if l.String() != "1/10" {
		t.Errorf("String = %q, want 1/10", l.String())
	}
}

func TestLayerMapGet(t *testing.T) {
	g := Generic()
	l, err := g.Layers.Get("WG")
	if err != nil {
		t.Fatalf("Get(WG): %v", err)
	}
	if l.Layer != 1 {
		t.Errorf("WG layer = %d, want 1", l.Layer)
	}
	if _, err := g.Layers.Get("NOPE"); !errors.Is(err, errors.ErrCodeInvalidLayer) {
		t.Errorf("missing layer should give INVALID_LAYER, got %v", err)
	}
}

func TestLayerMapDuplicateDetection(t *testing.T) {
	m := LayerMap{
		"A": {Layer: 1, Datatype: 0},
		"B": {Layer: 1, Datatype: 0},
	}
	if err := m.Validate(); err == nil {
		t.Error("duplicate GDS layers should fail validation")
	}
}

func TestStackOrderingByMeshOrder(t *testing.T) {
	names := Generic().Stack.Names()
	if names[0] != "core" {
		t.Errorf("first level = %s, want core (lowest mesh order)", names[0])
	}
	// clad (10) sorts after box (9)
	last := names[len(names)-1]
	if last != "clad" {
		t.Errorf("last level = %s, want clad", last)
	}
}

func TestStackSliceAndPerturb(t *testing.T) {
	stack := Generic().Stack

	sub, err := stack.Slice("core", "box")
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if len(sub) != 2 {
		t.Errorf("Slice size = %d, want 2", len(sub))
	}
	if _, err := stack.Slice("core", "missing"); err == nil {
		t.Error("Slice of unknown level should fail")
	}

	pert, err := stack.Perturb("core", 1.1)
	if err != nil {
		t.Fatalf("Perturb: %v", err)
	}
	want := stack["core"].Thickness * 1.1
	if got := pert["core"].Thickness; got != want {
		t.Errorf("perturbed thickness = %g, want %g", got, want)
	}
	// Nominal stack is untouched.
	if stack["core"].Thickness != 0.22 {
		t.Error("Perturb must not mutate the original stack")
	}
}

func TestLayerLevelZMax(t *testing.T) {
	l := LayerLevel{ZMin: -2, Thickness: 2}
	if l.ZMax() != 0 {
		t.Errorf("ZMax = %g, want 0", l.ZMax())
	}
}

func TestViews(t *testing.T) {
	v := Generic().Views
	groups := v.Groups()
	if len(groups) != 2 {
		t.Errorf("Groups = %v, want 2 entries", groups)
	}
	for _, name := range v.VisibleLayers() {
		if name == "TEXT" {
			t.Error("TEXT is not visible and should be excluded")
		}
	}
}

const sampleTech = `
name = "sample"

[layers.WG]
layer = 1
datatype = 0

[layers.M1]
layer = 41
datatype = 0

[views.WG]
color = "#ff0000"
alpha = 1.0
visible = true

[stack.core]
layer = { layer = 1, datatype = 0 }
thickness = 0.22
zmin = 0.0
material = "si"
mesh_order = 1

[cross_sections.strip]
width = 0.5
layer = "WG"
radius = 10.0
`

func TestParseTOML(t *testing.T) {
	tech, err := Parse(sampleTech)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tech.Name != "sample" {
		t.Errorf("Name = %q", tech.Name)
	}
	if tech.CrossSections["strip"].Radius != 10.0 {
		t.Errorf("strip radius = %g", tech.CrossSections["strip"].Radius)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tech.toml")
	if err := os.WriteFile(path, []byte(sampleTech), 0644); err != nil {
		t.Fatal(err)
	}
	tech, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := tech.Layers.Get("M1"); err != nil {
		t.Errorf("M1 missing after Load: %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeTechFile) {
		t.Errorf("missing file should give INVALID_TECH_FILE, got %v", err)
	}
}

func TestValidateRejectsBadCrossSection(t *testing.T) {
	tech := Generic()
	tech.CrossSections["bad"] = CrossSectionConfig{Width: 0.5, Layer: "NOPE"}
	if err := tech.Validate(); !errors.Is(err, errors.ErrCodeInvalidCrossSection) {
		t.Errorf("unknown xs layer should fail, got %v", err)
	}
}
