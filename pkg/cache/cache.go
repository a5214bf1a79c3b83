// Package cache provides the caching layer used by the cell registry and
// the simulation runner.
//
// Two things get cached: built components (keyed by cell name plus the
// canonical hash of their build parameters) and solver results (keyed by
// job hashes). Backends:
//   - file: sharded JSON files for CLI usage
//   - redis: Redis-backed storage for shared multi-instance deployments
//   - null: disabled caching for tests
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached artifact kind. Components are cheap to rebuild
// but invalidate only when parameters change, so they keep for a month.
// Solver results are expensive and content-addressed, so they keep longer.
const (
	TTLComponent  = 30 * 24 * time.Hour
	TTLMesh       = 90 * 24 * time.Hour
	TTLSimulation = 90 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Implementations must treat a missing key as a miss, not an error.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value with an optional TTL (0 means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the different cached artifact kinds.
// Keys embed a content hash of the options so that any parameter change
// produces a distinct key.
type Keyer interface {
	// ComponentKey keys a built component by cell name and build params.
	ComponentKey(cell string, params map[string]any) string
	// SimulationKey keys a solver result by engine and job settings.
	SimulationKey(engine, jobHash string, opts SimKeyOpts) string
	// MeshKey keys a generated mesh by cross-section and stack hashes.
	MeshKey(xsHash, stackHash string, opts MeshKeyOpts) string
}

// SimKeyOpts captures the settings that differentiate solver runs on the
// same geometry.
type SimKeyOpts struct {
	Wavelength float64 `json:"wavelength"`
	NumModes   int     `json:"num_modes"`
	Order      int     `json:"order"`
}

// MeshKeyOpts captures the settings that differentiate meshes of the same
// cross-section.
type MeshKeyOpts struct {
	Resolution  float64 `json:"resolution"`
	DefaultSize float64 `json:"default_size"`
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// ComponentKey generates a key for a built component.
func (k *DefaultKeyer) ComponentKey(cell string, params map[string]any) string {
	return hashKey("component", cell, params)
}

// SimulationKey generates a key for a solver result.
func (k *DefaultKeyer) SimulationKey(engine, jobHash string, opts SimKeyOpts) string {
	return hashKey("sim", engine, jobHash, opts)
}

// MeshKey generates a key for a generated mesh.
func (k *DefaultKeyer) MeshKey(xsHash, stackHash string, opts MeshKeyOpts) string {
	return hashKey("mesh", xsHash, stackHash, opts)
}
