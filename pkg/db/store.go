package db

import "context"

// Store is the metadata persistence interface. Create methods fill IDs
// and timestamps via Touch, Get methods return ErrCodeRecordNotFound for
// missing IDs, and List methods filter by the parent ID (empty lists all).
type Store interface {
	CreateWafer(ctx context.Context, w *Wafer) error
	GetWafer(ctx context.Context, id string) (*Wafer, error)
	ListWafers(ctx context.Context) ([]*Wafer, error)
	DeleteWafer(ctx context.Context, id string) error

	CreateReticle(ctx context.Context, r *Reticle) error
	ListReticles(ctx context.Context, waferID string) ([]*Reticle, error)

	CreateDie(ctx context.Context, d *Die) error
	ListDies(ctx context.Context, reticleID string) ([]*Die, error)

	CreateComponent(ctx context.Context, c *ComponentRecord) error
	GetComponentByHash(ctx context.Context, hash string) (*ComponentRecord, error)
	ListComponents(ctx context.Context, dieID string) ([]*ComponentRecord, error)

	CreateSimulation(ctx context.Context, s *SimulationRecord) error
	ListSimulations(ctx context.Context, componentID string) ([]*SimulationRecord, error)

	Close(ctx context.Context) error
}
