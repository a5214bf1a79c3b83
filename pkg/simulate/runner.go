package simulate

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/waveforge/waveforge/pkg/cache"
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/observability"
)

// Runner executes solver jobs with result caching. It is stateless apart
// from the cache and logger, so a single Runner can serve concurrent
// callers.
type Runner struct {
	Engine Engine
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil
// keyer uses the default key generator.
func NewRunner(engine Engine, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Engine: engine, Cache: c, Keyer: keyer, Logger: logger}
}

// RunOptions controls caching for one run.
type RunOptions struct {
	// Refresh recomputes even on a cache hit and overwrites the entry.
	Refresh bool
	// NoCache skips the cache entirely for this run.
	NoCache bool
}

// Result is one solver run outcome.
type Result struct {
	Data     []byte
	CacheHit bool
	Duration time.Duration
	Key      string
}

// Run validates the job, consults the cache, and invokes the engine on a
// miss. Cache failures are treated as misses, never as run failures.
func (r *Runner) Run(ctx context.Context, job Job, opts RunOptions) (*Result, error) {
	if r.Engine == nil {
		return nil, errors.New(errors.ErrCodeEngine, "no solver engine configured")
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	key, ttl := r.key(job)
	if !opts.NoCache && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			r.Logger.Debug("solver cache hit", "engine", r.Engine.Name(), "kind", job.Kind())
			observability.Cache().OnCacheHit(ctx, job.Kind())
			return &Result{Data: data, CacheHit: true, Key: key}, nil
		}
		observability.Cache().OnCacheMiss(ctx, job.Kind())
	}

	observability.Solve().OnSolveStart(ctx, r.Engine.Name(), job.Kind())
	start := time.Now()
	data, err := r.Engine.Run(ctx, job)
	elapsed := time.Since(start)
	observability.Solve().OnSolveComplete(ctx, r.Engine.Name(), job.Kind(), len(data), elapsed, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("solver run finished",
		"engine", r.Engine.Name(),
		"kind", job.Kind(),
		"duration", elapsed)

	if !opts.NoCache {
		if r.Cache.Set(ctx, key, data, ttl) == nil {
			observability.Cache().OnCacheSet(ctx, job.Kind(), len(data))
		}
	}
	return &Result{Data: data, Duration: elapsed, Key: key}, nil
}

// key derives the cache key and TTL for a validated job.
func (r *Runner) key(job Job) (string, time.Duration) {
	switch j := job.(type) {
	case *MeshJob:
		return r.Keyer.MeshKey(j.CrossSection.Hash(), meshStackHash(j), cache.MeshKeyOpts{
			Resolution:  j.finest(),
			DefaultSize: j.DefaultSize,
		}), cache.TTLMesh
	case *ModeJob:
		return r.Keyer.SimulationKey(r.Engine.Name(), cache.HashParams(j), cache.SimKeyOpts{
			Wavelength: j.Wavelength,
			NumModes:   j.NumModes,
			Order:      j.Order,
		}), cache.TTLSimulation
	default:
		return r.Keyer.SimulationKey(r.Engine.Name(), cache.HashParams(job), cache.SimKeyOpts{}), cache.TTLSimulation
	}
}

// meshStackHash folds the stack and the per-layer refinements into one
// content hash.
func meshStackHash(j *MeshJob) string {
	return cache.HashParams(map[string]any{
		"stack":       j.Stack,
		"resolutions": j.Resolutions,
	})
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
