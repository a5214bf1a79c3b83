package db

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/waveforge/waveforge/pkg/errors"
)

// FileStore keeps records as JSON files under a base directory, one
// subdirectory per record kind. It is meant for single-user CLI work;
// use MongoStore for shared deployments.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file store rooted at baseDir. An empty baseDir
// defaults to ~/.config/waveforge/db.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "resolving home dir")
		}
		baseDir = filepath.Join(home, ".config", "waveforge", "db")
	}
	for _, kind := range []string{"wafers", "reticles", "dies", "components", "simulations"} {
		if err := os.MkdirAll(filepath.Join(baseDir, kind), 0o700); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "creating store dir")
		}
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Path returns the store's base directory.
func (s *FileStore) Path() string { return s.baseDir }

func (s *FileStore) recordPath(kind, id string) string {
	return filepath.Join(s.baseDir, kind, id+".json")
}

func (s *FileStore) write(kind, id string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encoding %s record", kind)
	}
	if err := os.WriteFile(s.recordPath(kind, id), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "writing %s record", kind)
	}
	return nil
}

func (s *FileStore) read(kind, id string, v any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(s.recordPath(kind, id))
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeRecordNotFound, "%s %s not found", kind, id)
		}
		return errors.Wrap(errors.ErrCodeStore, err, "reading %s record", kind)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "decoding %s record", kind)
	}
	return nil
}

// readAll decodes every record of a kind and passes it to keep, which
// appends matches to its own slice.
func readAll[T any](s *FileStore, kind string, keep func(*T)) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, err := os.ReadDir(filepath.Join(s.baseDir, kind))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "listing %s records", kind)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, kind, entry.Name()))
		if err != nil {
			continue
		}
		var rec T
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		keep(&rec)
	}
	return nil
}

// CreateWafer stores a wafer, assigning ID and timestamps.
func (s *FileStore) CreateWafer(ctx context.Context, w *Wafer) error {
	w.Touch()
	return s.write("wafers", w.ID, w)
}

// GetWafer loads a wafer by ID.
func (s *FileStore) GetWafer(ctx context.Context, id string) (*Wafer, error) {
	var w Wafer
	if err := s.read("wafers", id, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// ListWafers returns all wafers sorted by creation time.
func (s *FileStore) ListWafers(ctx context.Context) ([]*Wafer, error) {
	var out []*Wafer
	if err := readAll(s, "wafers", func(w *Wafer) { out = append(out, w) }); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// DeleteWafer removes a wafer. Deleting a missing wafer is not an error.
func (s *FileStore) DeleteWafer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.recordPath("wafers", id)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStore, err, "deleting wafer")
	}
	return nil
}

// CreateReticle stores a reticle.
func (s *FileStore) CreateReticle(ctx context.Context, r *Reticle) error {
	r.Touch()
	return s.write("reticles", r.ID, r)
}

// ListReticles returns reticles on a wafer; empty waferID lists all.
func (s *FileStore) ListReticles(ctx context.Context, waferID string) ([]*Reticle, error) {
	var out []*Reticle
	err := readAll(s, "reticles", func(r *Reticle) {
		if waferID == "" || r.WaferID == waferID {
			out = append(out, r)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// CreateDie stores a die.
func (s *FileStore) CreateDie(ctx context.Context, d *Die) error {
	d.Touch()
	return s.write("dies", d.ID, d)
}

// ListDies returns dies in a reticle; empty reticleID lists all.
func (s *FileStore) ListDies(ctx context.Context, reticleID string) ([]*Die, error) {
	var out []*Die
	err := readAll(s, "dies", func(d *Die) {
		if reticleID == "" || d.ReticleID == reticleID {
			out = append(out, d)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// CreateComponent stores a component record.
func (s *FileStore) CreateComponent(ctx context.Context, c *ComponentRecord) error {
	c.Touch()
	return s.write("components", c.ID, c)
}

// GetComponentByHash finds the component record with the given content
// hash.
func (s *FileStore) GetComponentByHash(ctx context.Context, hash string) (*ComponentRecord, error) {
	var found *ComponentRecord
	err := readAll(s, "components", func(c *ComponentRecord) {
		if c.Hash == hash && found == nil {
			found = c
		}
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, errors.New(errors.ErrCodeRecordNotFound, "component with hash %s not found", hash)
	}
	return found, nil
}

// ListComponents returns component records on a die; empty dieID lists all.
func (s *FileStore) ListComponents(ctx context.Context, dieID string) ([]*ComponentRecord, error) {
	var out []*ComponentRecord
	err := readAll(s, "components", func(c *ComponentRecord) {
		if dieID == "" || c.DieID == dieID {
			out = append(out, c)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// CreateSimulation stores a simulation record.
func (s *FileStore) CreateSimulation(ctx context.Context, rec *SimulationRecord) error {
	rec.Touch()
	return s.write("simulations", rec.ID, rec)
}

// ListSimulations returns simulation records for a component; empty
// componentID lists all.
func (s *FileStore) ListSimulations(ctx context.Context, componentID string) ([]*SimulationRecord, error) {
	var out []*SimulationRecord
	err := readAll(s, "simulations", func(rec *SimulationRecord) {
		if componentID == "" || rec.ComponentID == componentID {
			out = append(out, rec)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

var _ Store = (*FileStore)(nil)
