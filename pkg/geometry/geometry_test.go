package geometry

import (
	"math"
	"testing"
)

func almostEq(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{360, 0},
		{540, 180},
		{-540, 180},
	}
	for _, c := range cases {
		if got := NormalizeAngle(c.in); !almostEq(got, c.want) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAngleDiff(t *testing.T) {
	if got := AngleDiff(170, -170); !almostEq(got, 20) {
		t.Errorf("AngleDiff(170, -170) = %v, want 20", got)
	}
	if got := AngleDiff(-170, 170); !almostEq(got, -20) {
		t.Errorf("AngleDiff(-170, 170) = %v, want -20", got)
	}
}

func TestRotate(t *testing.T) {
	p := Pt(1, 0).Rotate(90)
	if !p.Eq(Pt(0, 1)) {
		t.Errorf("Rotate(90) = %+v, want (0,1)", p)
	}
	p = Pt(1, 1).RotateAround(180, Pt(1, 0))
	if !p.Eq(Pt(1, -1)) {
		t.Errorf("RotateAround = %+v, want (1,-1)", p)
	}
}

func TestCrossSign(t *testing.T) {
	// y-axis lies counterclockwise of x-axis
	if c := Pt(1, 0).Cross(Pt(0, 1)); c <= 0 {
		t.Errorf("Cross sign = %v, want > 0", c)
	}
}

func TestRayIntersection(t *testing.T) {
	// Ray east from origin, ray north from (5, -3): cross at (5, 0).
	a := At(0, 0, 0)
	b := At(5, -3, 90)
	t1, t2, ok := RayIntersection(a, b)
	if !ok {
		t.Fatal("expected intersection")
	}
	if !almostEq(t1, 5) || !almostEq(t2, 3) {
		t.Errorf("t1=%v t2=%v, want 5, 3", t1, t2)
	}

	// Parallel rays do not intersect.
	if _, _, ok := RayIntersection(At(0, 0, 0), At(0, 1, 0)); ok {
		t.Error("parallel rays should not intersect")
	}

	// Crossing behind the first pose yields a negative parameter.
	t1, _, ok = RayIntersection(At(0, 0, 0), At(-5, -3, 90))
	if !ok || t1 >= 0 {
		t.Errorf("t1=%v ok=%v, want negative parameter", t1, ok)
	}
}

func TestPoseTransform(t *testing.T) {
	p := At(1, 0, 0).Transform(Pt(10, 10), 90, false)
	if !p.Position.Eq(Pt(10, 11)) || !almostEq(p.Orientation, 90) {
		t.Errorf("Transform = %+v", p)
	}
	p = At(1, 2, 45).Transform(Pt(0, 0), 0, true)
	if !p.Position.Eq(Pt(1, -2)) || !almostEq(p.Orientation, -45) {
		t.Errorf("mirror Transform = %+v", p)
	}
}

func TestPolygonAreaAndBounds(t *testing.T) {
	r := Rect(0, 0, 4, 2)
	if a := r.Area(); !almostEq(a, 8) {
		t.Errorf("Area = %v, want 8", a)
	}
	b := r.Rotate(90, Pt(0, 0)).Bounds()
	if !almostEq(b.Width(), 2) || !almostEq(b.Height(), 4) {
		t.Errorf("rotated bounds = %+v", b)
	}
}

func TestPathLength(t *testing.T) {
	pts := []Point{{0, 0}, {3, 0}, {3, 4}}
	if l := PathLength(pts); !almostEq(l, 7) {
		t.Errorf("PathLength = %v, want 7", l)
	}
}

func TestCenterlineToPolygon(t *testing.T) {
	pg := CenterlineToPolygon([]Point{{0, 0}, {10, 0}}, 0.5)
	if len(pg) != 4 {
		t.Fatalf("vertices = %d, want 4", len(pg))
	}
	if a := math.Abs(pg.Area()); !almostEq(a, 5) {
		t.Errorf("outline area = %v, want 5", a)
	}
}
