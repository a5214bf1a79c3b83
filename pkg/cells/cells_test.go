package cells

import (
	"context"
	"math"
	"testing"

	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/tech"
	"github.com/waveforge/waveforge/pkg/xsection"
)

func stripXS(t *testing.T) xsection.CrossSection {
	t.Helper()
	xreg, err := xsection.NewRegistry(tech.Generic())
	if err != nil {
		t.Fatal(err)
	}
	xs, err := xreg.Get("strip")
	if err != nil {
		t.Fatal(err)
	}
	return xs
}

func TestStraightPorts(t *testing.T) {
	xs := stripXS(t)
	c, err := Straight(xs, 25)
	if err != nil {
		t.Fatalf("Straight: %v", err)
	}
	o1, _ := c.Port("o1")
	o2, _ := c.Port("o2")
	if !o1.Center.Eq(geometry.Pt(0, 0)) || o1.Orientation != 180 {
		t.Errorf("o1 = %+v", o1)
	}
	if !o2.Center.Eq(geometry.Pt(25, 0)) || o2.Orientation != 0 {
		t.Errorf("o2 = %+v", o2)
	}
	if c.Info["length"] != 25.0 {
		t.Errorf("length info = %v", c.Info["length"])
	}
}

func TestStraightBelowMinLength(t *testing.T) {
	xs := stripXS(t)
	if _, err := Straight(xs, 0.001); err == nil {
		t.Error("length below MinLength should fail")
	}
}

func TestRibStraightHasSlab(t *testing.T) {
	xreg, _ := xsection.NewRegistry(tech.Generic())
	rib, _ := xreg.Get("rib")
	c, err := Straight(rib, 10)
	if err != nil {
		t.Fatalf("Straight: %v", err)
	}
	slab := tech.Layer{Layer: 3, Datatype: 0}
	if len(c.Polygons[slab]) != 1 {
		t.Errorf("rib straight should extrude a slab polygon, got %d", len(c.Polygons[slab]))
	}
}

func TestBendCircularEndPose(t *testing.T) {
	xs := stripXS(t)
	c, err := BendCircular(xs, 10, 90)
	if err != nil {
		t.Fatalf("BendCircular: %v", err)
	}
	o2, _ := c.Port("o2")
	if !o2.Center.Eq(geometry.Pt(10, 10)) {
		t.Errorf("90° bend end = %+v, want (10,10)", o2.Center)
	}
	if o2.Orientation != 90 {
		t.Errorf("90° bend end orientation = %g", o2.Orientation)
	}
	if got, want := c.Info["length"].(float64), 10*math.Pi/2; math.Abs(got-want) > 1e-9 {
		t.Errorf("arc length = %g, want %g", got, want)
	}

	// Negative angle turns right.
	c, _ = BendCircular(xs, 10, -90)
	o2, _ = c.Port("o2")
	if !o2.Center.Eq(geometry.Pt(10, -10)) || o2.Orientation != -90 {
		t.Errorf("-90° bend end = %+v @ %g", o2.Center, o2.Orientation)
	}
}

func TestBendCircularDefaultRadius(t *testing.T) {
	xs := stripXS(t) // strip radius is 10
	c, err := BendCircular(xs, 0, 90)
	if err != nil {
		t.Fatal(err)
	}
	if c.Info["radius"] != 10.0 {
		t.Errorf("default radius = %v, want 10", c.Info["radius"])
	}
}

func TestBendEulerEndPose(t *testing.T) {
	xs := stripXS(t)
	c, err := BendEuler(xs, 10, 90, 0.5)
	if err != nil {
		t.Fatalf("BendEuler: %v", err)
	}
	o2, _ := c.Port("o2")
	if o2.Orientation != 90 {
		t.Errorf("euler end orientation = %g", o2.Orientation)
	}
	// End point must lie in the first quadrant, further out than the
	// circular bend of the same radius.
	if o2.Center.X <= 0 || o2.Center.Y <= 0 {
		t.Errorf("euler end = %+v", o2.Center)
	}
	if o2.Center.X < 10 {
		t.Errorf("euler bend should span more than its min radius, got x=%g", o2.Center.X)
	}
	// Longer than the circular arc with the same min radius.
	if l := c.Info["length"].(float64); l <= 10*math.Pi/2 {
		t.Errorf("euler length = %g, want > circular %g", l, 10*math.Pi/2)
	}
}

func TestBendEulerBadP(t *testing.T) {
	xs := stripXS(t)
	if _, err := BendEuler(xs, 10, 90, 0); err == nil {
		t.Error("p=0 should fail")
	}
	if _, err := BendEuler(xs, 10, 90, 1.5); err == nil {
		t.Error("p>1 should fail")
	}
}

func TestTaperPortsAndWidths(t *testing.T) {
	xs := stripXS(t)
	c, err := Taper(xs, 12, 0.5, 2.0)
	if err != nil {
		t.Fatalf("Taper: %v", err)
	}
	o1, _ := c.Port("o1")
	o2, _ := c.Port("o2")
	if o1.Width != 0.5 || o2.Width != 2.0 {
		t.Errorf("taper widths = %g, %g", o1.Width, o2.Width)
	}
	if !o2.Center.Eq(geometry.Pt(12, 0)) {
		t.Errorf("o2 = %+v", o2.Center)
	}
}

func TestMMI1x2Symmetry(t *testing.T) {
	xs := stripXS(t)
	c, err := MMI1x2(xs, 2.5, 5.5, 0.25, 1.0)
	if err != nil {
		t.Fatalf("MMI1x2: %v", err)
	}
	o2, _ := c.Port("o2")
	o3, _ := c.Port("o3")
	if o2.Center.Y != -o3.Center.Y {
		t.Errorf("outputs not symmetric: %g vs %g", o2.Center.Y, o3.Center.Y)
	}
	if o2.Center.X != o3.Center.X {
		t.Errorf("outputs at different x: %g vs %g", o2.Center.X, o3.Center.X)
	}
	o1, _ := c.Port("o1")
	if o1.Orientation != 180 {
		t.Errorf("input orientation = %g", o1.Orientation)
	}
}

func TestRingSingle(t *testing.T) {
	xs := stripXS(t)
	c, err := RingSingle(xs, 10, 0.2, 4)
	if err != nil {
		t.Fatalf("RingSingle: %v", err)
	}
	o1, _ := c.Port("o1")
	o2, _ := c.Port("o2")
	if o1.Orientation != 180 || o2.Orientation != 0 {
		t.Errorf("bus ports = %g, %g", o1.Orientation, o2.Orientation)
	}
	want := 2*4.0 + 2*math.Pi*10
	if got := c.Info["circumference"].(float64); math.Abs(got-want) > 1e-9 {
		t.Errorf("circumference = %g, want %g", got, want)
	}
	if _, err := RingSingle(xs, 10, 0, 4); err == nil {
		t.Error("zero gap should fail")
	}
}

func TestMZIBalancedPorts(t *testing.T) {
	xs := stripXS(t)
	c, err := MZI(xs, 10, 0.1, 2.0)
	if err != nil {
		t.Fatalf("MZI: %v", err)
	}
	o1, err := c.Port("o1")
	if err != nil {
		t.Fatal(err)
	}
	o2, err := c.Port("o2")
	if err != nil {
		t.Fatal(err)
	}
	if o1.Orientation != 180 {
		t.Errorf("mzi input orientation = %g", o1.Orientation)
	}
	if math.Abs(o2.Orientation) > 1e-9 {
		t.Errorf("mzi output orientation = %g, want 0", o2.Orientation)
	}
	// Input and output sit on the same axis.
	if math.Abs(o1.Center.Y-o2.Center.Y) > 1e-6 {
		t.Errorf("mzi ports misaligned: y=%g vs y=%g", o1.Center.Y, o2.Center.Y)
	}
	if o2.Center.X <= o1.Center.X {
		t.Errorf("mzi output should be east of input")
	}
}

func TestRegisterAllAndBuild(t *testing.T) {
	xreg, err := xsection.NewRegistry(tech.Generic())
	if err != nil {
		t.Fatal(err)
	}
	reg := layout.NewRegistry(nil)
	if err := RegisterAll(reg, xreg); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}

	names := reg.Names()
	if len(names) != 7 {
		t.Errorf("registered cells = %v", names)
	}

	ctx := context.Background()
	c, err := reg.Build(ctx, "straight", layout.Params{"length": 42.0})
	if err != nil {
		t.Fatalf("Build straight: %v", err)
	}
	if c.Name != "straight_length42" {
		t.Errorf("built name = %q", c.Name)
	}

	again, _ := reg.Build(ctx, "straight", layout.Params{"length": 42.0})
	if again != c {
		t.Error("second build should hit the cache")
	}

	if _, err := reg.Build(ctx, "mzi", layout.Params{"delta_length": 20.0}); err != nil {
		t.Fatalf("Build mzi: %v", err)
	}
	if _, err := reg.Build(ctx, "bend_euler", nil); err != nil {
		t.Fatalf("Build bend_euler: %v", err)
	}
}
