package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/waveforge/waveforge/pkg/errors"
)

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	// URI is the connection string, e.g. mongodb://localhost:27017.
	URI string
	// Database names the database; empty uses "waveforge".
	Database string
	// ConnectTimeout bounds the initial connection; zero uses 10s.
	ConnectTimeout time.Duration
}

// MongoStore persists metadata in MongoDB, one collection per record
// kind.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo URI is required")
	}
	if cfg.Database == "" {
		cfg.Database = "waveforge"
	}
	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStore, err, "pinging mongodb")
	}
	return &MongoStore{client: client, db: client.Database(cfg.Database)}, nil
}

func (s *MongoStore) insert(ctx context.Context, coll string, v any) error {
	if _, err := s.db.Collection(coll).InsertOne(ctx, v); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "inserting into %s", coll)
	}
	return nil
}

func (s *MongoStore) findOne(ctx context.Context, coll string, filter bson.M, v any) error {
	err := s.db.Collection(coll).FindOne(ctx, filter).Decode(v)
	if err == mongo.ErrNoDocuments {
		return errors.New(errors.ErrCodeRecordNotFound, "no matching record in %s", coll)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "querying %s", coll)
	}
	return nil
}

func findMany[T any](ctx context.Context, s *MongoStore, coll string, filter bson.M) ([]*T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.db.Collection(coll).Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "querying %s", coll)
	}
	defer cur.Close(ctx)

	var out []*T
	for cur.Next(ctx) {
		var rec T
		if err := cur.Decode(&rec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "decoding %s record", coll)
		}
		out = append(out, &rec)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "iterating %s", coll)
	}
	return out, nil
}

// parentFilter builds the List filter: empty parent lists everything.
func parentFilter(field, id string) bson.M {
	if id == "" {
		return bson.M{}
	}
	return bson.M{field: id}
}

// CreateWafer stores a wafer, assigning ID and timestamps.
func (s *MongoStore) CreateWafer(ctx context.Context, w *Wafer) error {
	w.Touch()
	return s.insert(ctx, "wafers", w)
}

// GetWafer loads a wafer by ID.
func (s *MongoStore) GetWafer(ctx context.Context, id string) (*Wafer, error) {
	var w Wafer
	if err := s.findOne(ctx, "wafers", bson.M{"_id": id}, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// ListWafers returns all wafers sorted by creation time.
func (s *MongoStore) ListWafers(ctx context.Context) ([]*Wafer, error) {
	return findMany[Wafer](ctx, s, "wafers", bson.M{})
}

// DeleteWafer removes a wafer. Deleting a missing wafer is not an error.
func (s *MongoStore) DeleteWafer(ctx context.Context, id string) error {
	if _, err := s.db.Collection("wafers").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "deleting wafer")
	}
	return nil
}

// CreateReticle stores a reticle.
func (s *MongoStore) CreateReticle(ctx context.Context, r *Reticle) error {
	r.Touch()
	return s.insert(ctx, "reticles", r)
}

// ListReticles returns reticles on a wafer; empty waferID lists all.
func (s *MongoStore) ListReticles(ctx context.Context, waferID string) ([]*Reticle, error) {
	return findMany[Reticle](ctx, s, "reticles", parentFilter("wafer_id", waferID))
}

// CreateDie stores a die.
func (s *MongoStore) CreateDie(ctx context.Context, d *Die) error {
	d.Touch()
	return s.insert(ctx, "dies", d)
}

// ListDies returns dies in a reticle; empty reticleID lists all.
func (s *MongoStore) ListDies(ctx context.Context, reticleID string) ([]*Die, error) {
	return findMany[Die](ctx, s, "dies", parentFilter("reticle_id", reticleID))
}

// CreateComponent stores a component record.
func (s *MongoStore) CreateComponent(ctx context.Context, c *ComponentRecord) error {
	c.Touch()
	return s.insert(ctx, "components", c)
}

// GetComponentByHash finds the component record with the given content
// hash.
func (s *MongoStore) GetComponentByHash(ctx context.Context, hash string) (*ComponentRecord, error) {
	var c ComponentRecord
	if err := s.findOne(ctx, "components", bson.M{"hash": hash}, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListComponents returns component records on a die; empty dieID lists all.
func (s *MongoStore) ListComponents(ctx context.Context, dieID string) ([]*ComponentRecord, error) {
	return findMany[ComponentRecord](ctx, s, "components", parentFilter("die_id", dieID))
}

// CreateSimulation stores a simulation record.
func (s *MongoStore) CreateSimulation(ctx context.Context, rec *SimulationRecord) error {
	rec.Touch()
	return s.insert(ctx, "simulations", rec)
}

// ListSimulations returns simulation records for a component; empty
// componentID lists all.
func (s *MongoStore) ListSimulations(ctx context.Context, componentID string) ([]*SimulationRecord, error) {
	return findMany[SimulationRecord](ctx, s, "simulations", parentFilter("component_id", componentID))
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
