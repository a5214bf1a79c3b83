package xsection

import (
	"testing"

	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/tech"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(tech.Generic())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func TestRegistryGet(t *testing.T) {
	r := testRegistry(t)

	strip, err := r.Get("strip")
	if err != nil {
		t.Fatalf("Get(strip): %v", err)
	}
	if strip.Width != 0.5 || strip.Radius != 10.0 {
		t.Errorf("strip = %+v", strip)
	}
	if strip.Layer.Layer != 1 {
		t.Errorf("strip layer resolved to %v, want 1/0", strip.Layer)
	}

	if _, err := r.Get("nope"); !errors.Is(err, errors.ErrCodeInvalidCrossSection) {
		t.Errorf("unknown cross-section should give INVALID_CROSS_SECTION, got %v", err)
	}
}

func TestRibHasSlabSection(t *testing.T) {
	r := testRegistry(t)
	rib, err := r.Get("rib")
	if err != nil {
		t.Fatalf("Get(rib): %v", err)
	}
	if len(rib.Sections) != 1 {
		t.Fatalf("rib sections = %d, want 1", len(rib.Sections))
	}
	if rib.Sections[0].Layer.Layer != 3 {
		t.Errorf("slab layer = %v, want 3/0", rib.Sections[0].Layer)
	}
}

func TestFullWidth(t *testing.T) {
	r := testRegistry(t)
	strip, _ := r.Get("strip")
	if strip.FullWidth() != 0.5 {
		t.Errorf("strip FullWidth = %g, want 0.5", strip.FullWidth())
	}
	rib, _ := r.Get("rib")
	if rib.FullWidth() != 6.0 {
		t.Errorf("rib FullWidth = %g, want 6.0 (slab)", rib.FullWidth())
	}
}

func TestHashDistinguishesWidth(t *testing.T) {
	r := testRegistry(t)
	strip, _ := r.Get("strip")
	wide := strip
	wide.Width = 1.0
	if strip.Hash() == wide.Hash() {
		t.Error("different widths should hash differently")
	}
	if strip.Hash() != strip.Hash() {
		t.Error("hash should be deterministic")
	}
}

func TestNamesSorted(t *testing.T) {
	names := testRegistry(t).Names()
	if len(names) != 3 {
		t.Fatalf("Names = %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names not sorted: %v", names)
		}
	}
}
