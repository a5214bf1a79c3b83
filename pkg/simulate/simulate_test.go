package simulate

import (
	"context"
	"strings"
	"testing"

	"github.com/waveforge/waveforge/pkg/cache"
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/tech"
	"github.com/waveforge/waveforge/pkg/xsection"
)

type fakeEngine struct {
	runs int
	out  []byte
	err  error
}

func (e *fakeEngine) Name() string { return "fake" }

func (e *fakeEngine) Run(ctx context.Context, job Job) ([]byte, error) {
	e.runs++
	return e.out, e.err
}

func testModeJob(t *testing.T) *ModeJob {
	t.Helper()
	pdk := tech.Generic()
	xreg, err := xsection.NewRegistry(pdk)
	if err != nil {
		t.Fatal(err)
	}
	xs, err := xreg.Get("strip")
	if err != nil {
		t.Fatal(err)
	}
	return &ModeJob{
		Mesh: MeshJob{
			CrossSection: xs,
			Stack:        pdk.Stack,
			Resolutions:  map[string]Resolution{"core": {Size: 0.03, Distance: 0.5}},
		},
	}
}

func TestModeJobDefaults(t *testing.T) {
	j := testModeJob(t)
	if err := j.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if j.Wavelength != DefaultWavelength || j.NumModes != DefaultNumModes || j.Order != DefaultOrder {
		t.Errorf("defaults = %g, %d, %d", j.Wavelength, j.NumModes, j.Order)
	}
	if j.Mesh.DefaultSize != DefaultMeshSize {
		t.Errorf("mesh default size = %g", j.Mesh.DefaultSize)
	}
}

func testTCADJob(t *testing.T) *TCADJob {
	t.Helper()
	return &TCADJob{
		Mesh: testModeJob(t).Mesh,
		Contacts: []Contact{
			{Name: "anode", Level: "slab90"},
			{Name: "cathode", Level: "slab90"},
		},
		Dopings: []Doping{
			{Level: "core", Dopant: "p", Concentration: 1e17},
			{Level: "slab90", Dopant: "n", Concentration: 1e18},
		},
		BiasMax: 1.0,
	}
}

func TestTCADJobDefaults(t *testing.T) {
	j := testTCADJob(t)
	if err := j.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if j.Kind() != "tcad" {
		t.Errorf("kind = %q", j.Kind())
	}
	if j.BiasStep != DefaultBiasStep {
		t.Errorf("bias step = %g", j.BiasStep)
	}
	if j.Mesh.DefaultSize != DefaultMeshSize {
		t.Errorf("mesh default size = %g", j.Mesh.DefaultSize)
	}
}

func TestTCADJobValidation(t *testing.T) {
	j := testTCADJob(t)
	j.Contacts = j.Contacts[:1]
	if err := j.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("single contact: %v", err)
	}

	j = testTCADJob(t)
	j.Contacts[0].Level = "missing"
	if err := j.Validate(); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown contact level: %v", err)
	}

	j = testTCADJob(t)
	j.Dopings[0].Dopant = "x"
	if err := j.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad dopant: %v", err)
	}

	j = testTCADJob(t)
	j.BiasMin, j.BiasMax = 2, 1
	if err := j.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("inverted bias range: %v", err)
	}
}

func TestJobValidation(t *testing.T) {
	j := testModeJob(t)
	j.NumModes = -1
	if err := j.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative modes: %v", err)
	}

	j = testModeJob(t)
	j.Order = 9
	if err := j.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad order: %v", err)
	}

	m := &MeshJob{}
	if err := m.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty stack: %v", err)
	}

	f := &FDTDJob{}
	if err := f.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty fdtd: %v", err)
	}

	f = &FDTDJob{ComponentName: "mzi", Component: []byte("{}"), Stack: tech.Generic().Stack}
	if err := f.Validate(); err != nil {
		t.Errorf("fdtd defaults: %v", err)
	}
	if f.WavelengthMin != 1.5 || f.WavelengthMax != 1.6 || f.Resolution != DefaultFDTDPixels {
		t.Errorf("fdtd defaults = %+v", f)
	}
}

func TestRunnerCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	eng := &fakeEngine{out: []byte(`{"n_eff": 2.4}`)}
	r := NewRunner(eng, fc, nil, nil)
	defer r.Close()

	ctx := context.Background()
	res, err := r.Run(ctx, testModeJob(t), RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.CacheHit || eng.runs != 1 {
		t.Errorf("first run: hit=%v runs=%d", res.CacheHit, eng.runs)
	}

	res, err = r.Run(ctx, testModeJob(t), RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheHit || eng.runs != 1 {
		t.Errorf("second run: hit=%v runs=%d", res.CacheHit, eng.runs)
	}
	if string(res.Data) != `{"n_eff": 2.4}` {
		t.Errorf("cached data = %s", res.Data)
	}

	// Refresh forces a recompute.
	res, err = r.Run(ctx, testModeJob(t), RunOptions{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit || eng.runs != 2 {
		t.Errorf("refresh: hit=%v runs=%d", res.CacheHit, eng.runs)
	}
}

func TestRunnerNoCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	eng := &fakeEngine{out: []byte("ok")}
	r := NewRunner(eng, fc, nil, nil)
	defer r.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := r.Run(ctx, testModeJob(t), RunOptions{NoCache: true}); err != nil {
			t.Fatal(err)
		}
	}
	if eng.runs != 2 {
		t.Errorf("no-cache runs = %d", eng.runs)
	}
}

func TestRunnerKeyDistinguishesJobs(t *testing.T) {
	eng := &fakeEngine{out: []byte("ok")}
	r := NewRunner(eng, nil, nil, nil)

	a := testModeJob(t)
	b := testModeJob(t)
	b.Wavelength = 1.31
	if err := a.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
	ka, _ := r.key(a)
	kb, _ := r.key(b)
	if ka == kb {
		t.Error("different wavelengths must key differently")
	}

	m := &a.Mesh
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	km, _ := r.key(m)
	if !strings.HasPrefix(km, "mesh:") {
		t.Errorf("mesh key = %q", km)
	}

	d := testTCADJob(t)
	if err := d.Validate(); err != nil {
		t.Fatal(err)
	}
	kd, _ := r.key(d)
	if !strings.HasPrefix(kd, "sim:") {
		t.Errorf("tcad key = %q", kd)
	}
	if kd == ka {
		t.Error("tcad and mode jobs must key differently")
	}
}

func TestRunnerNoEngine(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	_, err := r.Run(context.Background(), testModeJob(t), RunOptions{})
	if !errors.Is(err, errors.ErrCodeEngine) {
		t.Errorf("err = %v", err)
	}
}

func TestCommandEngineRuns(t *testing.T) {
	eng := &CommandEngine{Binary: "cat"}
	job := testModeJob(t)
	if err := job.Validate(); err != nil {
		t.Fatal(err)
	}
	out, err := eng.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(string(out), `"kind":"modes"`) {
		t.Errorf("output = %s", out)
	}
}

func TestCommandEngineFailure(t *testing.T) {
	eng := &CommandEngine{Binary: "false"}
	job := testModeJob(t)
	if err := job.Validate(); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Run(context.Background(), job); !errors.Is(err, errors.ErrCodeEngine) {
		t.Errorf("err = %v", err)
	}
}
