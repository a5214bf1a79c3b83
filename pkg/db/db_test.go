package db

import (
	"context"
	"testing"
	"time"

	"github.com/waveforge/waveforge/pkg/errors"
)

func testStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestTouchAssignsIDs(t *testing.T) {
	w := &Wafer{Name: "w1"}
	w.Touch()
	if w.ID == "" || w.CreatedAt.IsZero() || w.UpdatedAt.IsZero() {
		t.Errorf("wafer not stamped: %+v", w)
	}

	// Touch again keeps identity but refreshes UpdatedAt.
	id, created := w.ID, w.CreatedAt
	w.Touch()
	if w.ID != id || !w.CreatedAt.Equal(created) {
		t.Error("second Touch must not reassign identity")
	}
}

func TestWaferRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	w := &Wafer{Name: "lot42", Diameter: 200, Material: "silicon"}
	if err := s.CreateWafer(ctx, w); err != nil {
		t.Fatalf("CreateWafer: %v", err)
	}

	got, err := s.GetWafer(ctx, w.ID)
	if err != nil {
		t.Fatalf("GetWafer: %v", err)
	}
	if got.Name != "lot42" || got.Diameter != 200 {
		t.Errorf("got = %+v", got)
	}

	if _, err := s.GetWafer(ctx, "missing"); !errors.Is(err, errors.ErrCodeRecordNotFound) {
		t.Errorf("missing wafer err = %v", err)
	}

	if err := s.DeleteWafer(ctx, w.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetWafer(ctx, w.ID); !errors.Is(err, errors.ErrCodeRecordNotFound) {
		t.Errorf("deleted wafer err = %v", err)
	}
	if err := s.DeleteWafer(ctx, w.ID); err != nil {
		t.Errorf("double delete: %v", err)
	}
}

func TestHierarchyListing(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	w := &Wafer{Name: "w"}
	if err := s.CreateWafer(ctx, w); err != nil {
		t.Fatal(err)
	}

	r1 := &Reticle{WaferID: w.ID, Name: "r1", Row: 0, Col: 0}
	r2 := &Reticle{WaferID: w.ID, Name: "r2", Row: 0, Col: 1}
	other := &Reticle{WaferID: "elsewhere", Name: "rx"}
	for _, r := range []*Reticle{r1, r2, other} {
		if err := s.CreateReticle(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.ListReticles(ctx, w.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("reticles on wafer = %d", len(got))
	}
	all, err := s.ListReticles(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("all reticles = %d", len(all))
	}

	d := &Die{ReticleID: r1.ID, Name: "d1", X: 100, Y: 200}
	if err := s.CreateDie(ctx, d); err != nil {
		t.Fatal(err)
	}
	dies, err := s.ListDies(ctx, r1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(dies) != 1 || dies[0].X != 100 {
		t.Errorf("dies = %+v", dies)
	}
}

func TestComponentAndSimulationRecords(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	c := &ComponentRecord{
		DieID:  "die-1",
		Name:   "mzi_delta_length20",
		Cell:   "mzi",
		Params: map[string]any{"delta_length": 20.0},
		Hash:   "component:abc123",
	}
	if err := s.CreateComponent(ctx, c); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetComponentByHash(ctx, "component:abc123")
	if err != nil {
		t.Fatalf("GetComponentByHash: %v", err)
	}
	if got.Cell != "mzi" {
		t.Errorf("got = %+v", got)
	}
	if _, err := s.GetComponentByHash(ctx, "nope"); !errors.Is(err, errors.ErrCodeRecordNotFound) {
		t.Errorf("missing hash err = %v", err)
	}

	sim := &SimulationRecord{
		ComponentID: c.ID,
		Engine:      "femwell",
		Kind:        "modes",
		Settings:    map[string]any{"wavelength": 1.55},
		ResultKey:   "sim:def456",
	}
	if err := s.CreateSimulation(ctx, sim); err != nil {
		t.Fatal(err)
	}

	sims, err := s.ListSimulations(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sims) != 1 || sims[0].Engine != "femwell" {
		t.Errorf("sims = %+v", sims)
	}
	none, err := s.ListSimulations(ctx, "other")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("filter leak: %+v", none)
	}
}

func TestListOrdering(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i, name := range []string{"first", "second", "third"} {
		w := &Wafer{Name: name}
		w.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
		if err := s.CreateWafer(ctx, w); err != nil {
			t.Fatal(err)
		}
	}
	wafers, err := s.ListWafers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(wafers) != 3 || wafers[0].Name != "first" || wafers[2].Name != "third" {
		t.Errorf("order = %+v", wafers)
	}
}
