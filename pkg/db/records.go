// Package db stores fabrication and simulation metadata: wafers carry
// reticles, reticles carry dies, dies carry placed components, and
// components accumulate simulation records. Two backends exist, a
// JSON-file store for CLI use and a MongoDB store for shared
// deployments.
package db

import (
	"time"

	"github.com/google/uuid"
)

// Wafer is one physical substrate.
type Wafer struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Diameter  float64   `json:"diameter_mm" bson:"diameter_mm"`
	Material  string    `json:"material" bson:"material"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Reticle is one exposure field on a wafer.
type Reticle struct {
	ID        string    `json:"id" bson:"_id"`
	WaferID   string    `json:"wafer_id" bson:"wafer_id"`
	Name      string    `json:"name" bson:"name"`
	Row       int       `json:"row" bson:"row"`
	Col       int       `json:"col" bson:"col"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Die is one chip inside a reticle.
type Die struct {
	ID        string    `json:"id" bson:"_id"`
	ReticleID string    `json:"reticle_id" bson:"reticle_id"`
	Name      string    `json:"name" bson:"name"`
	X         float64   `json:"x" bson:"x"` // position in reticle, um
	Y         float64   `json:"y" bson:"y"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ComponentRecord ties a built component to its die placement. Hash is
// the component's cache key, which links the record back to the built
// geometry.
type ComponentRecord struct {
	ID        string         `json:"id" bson:"_id"`
	DieID     string         `json:"die_id" bson:"die_id"`
	Name      string         `json:"name" bson:"name"`
	Cell      string         `json:"cell" bson:"cell"`
	Params    map[string]any `json:"params,omitempty" bson:"params,omitempty"`
	Hash      string         `json:"hash" bson:"hash"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

// SimulationRecord captures one solver run against a component.
// ResultKey is the cache key under which the raw solver output lives.
type SimulationRecord struct {
	ID          string         `json:"id" bson:"_id"`
	ComponentID string         `json:"component_id" bson:"component_id"`
	Engine      string         `json:"engine" bson:"engine"`
	Kind        string         `json:"kind" bson:"kind"`
	Settings    map[string]any `json:"settings,omitempty" bson:"settings,omitempty"`
	ResultKey   string         `json:"result_key" bson:"result_key"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
}

// NewID returns a fresh record identifier.
func NewID() string { return uuid.NewString() }

// stamp fills ID and CreatedAt when unset and returns the timestamp used.
func stamp(id *string, created *time.Time) time.Time {
	now := time.Now().UTC()
	if *id == "" {
		*id = NewID()
	}
	if created.IsZero() {
		*created = now
	}
	return now
}

// Touch fills the wafer's ID and timestamps.
func (w *Wafer) Touch() { w.UpdatedAt = stamp(&w.ID, &w.CreatedAt) }

// Touch fills the reticle's ID and creation time.
func (r *Reticle) Touch() { stamp(&r.ID, &r.CreatedAt) }

// Touch fills the die's ID and creation time.
func (d *Die) Touch() { stamp(&d.ID, &d.CreatedAt) }

// Touch fills the record's ID and creation time.
func (c *ComponentRecord) Touch() { stamp(&c.ID, &c.CreatedAt) }

// Touch fills the record's ID and creation time.
func (s *SimulationRecord) Touch() { stamp(&s.ID, &s.CreatedAt) }
