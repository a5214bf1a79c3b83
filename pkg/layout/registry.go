package layout

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/waveforge/waveforge/pkg/cache"
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/observability"
)

// Params are the keyword arguments of a parametric cell builder.
type Params map[string]any

// Builder constructs a component from merged parameters. Builders must be
// deterministic: the same parameters always yield the same geometry.
type Builder func(p Params) (*Component, error)

// Registry holds parametric cell builders and caches their results.
//
// Build results are memoized in process, keyed by the SHA-256 hash of the
// cell name and canonical parameter JSON; an optional byte cache persists
// flattened components across processes. Built components get a
// deterministic auto-generated name derived from the parameters that
// differ from the builder's defaults, so two calls with equal parameters
// return the identical cached instance.
type Registry struct {
	mu       sync.Mutex
	builders map[string]Builder
	defaults map[string]Params
	memo     map[string]*Component
	taken    map[string]string // component name -> cache key, for $N dedup
	store    cache.Cache       // optional persistent cache, may be nil
	keyer    cache.Keyer
}

// NewRegistry creates an empty cell registry. store may be nil to disable
// cross-process persistence.
func NewRegistry(store cache.Cache) *Registry {
	return &Registry{
		builders: make(map[string]Builder),
		defaults: make(map[string]Params),
		memo:     make(map[string]*Component),
		taken:    make(map[string]string),
		store:    store,
		keyer:    cache.NewDefaultKeyer(),
	}
}

// Register adds a builder under the given cell name with its default
// parameters. Registering the same name twice is an error.
func (r *Registry) Register(name string, defaults Params, b Builder) error {
	if err := errors.ValidateCellName(name); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.builders[name]; exists {
		return errors.New(errors.ErrCodeDuplicateCell, "cell already registered: %s", name)
	}
	r.builders[name] = b
	if defaults == nil {
		defaults = Params{}
	}
	r.defaults[name] = defaults
	return nil
}

// Names returns the registered cell names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns a copy of a cell's default parameters.
func (r *Registry) Defaults(name string) (Params, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.defaults[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeCellNotFound, "unknown cell: %s", name)
	}
	out := make(Params, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out, nil
}

// Build returns the component for a cell with the given parameter
// overrides, building it at most once per distinct parameter set.
func (r *Registry) Build(ctx context.Context, name string, overrides Params) (*Component, error) {
	r.mu.Lock()
	builder, ok := r.builders[name]
	if !ok {
		r.mu.Unlock()
		return nil, errors.New(errors.ErrCodeCellNotFound, "unknown cell: %s", name)
	}
	defaults := r.defaults[name]
	r.mu.Unlock()

	merged := make(Params, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	changed := make(Params, len(overrides))
	for k, v := range overrides {
		if _, known := defaults[k]; !known {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"cell %s has no parameter %q", name, k)
		}
		merged[k] = v
		if fmt.Sprintf("%v", defaults[k]) != fmt.Sprintf("%v", v) {
			changed[k] = v
		}
	}

	key := r.keyer.ComponentKey(name, merged)

	r.mu.Lock()
	if c, hit := r.memo[key]; hit {
		r.mu.Unlock()
		return c, nil
	}
	r.mu.Unlock()

	if r.store != nil {
		if data, hit, err := r.store.Get(ctx, key); err == nil && hit {
			if c, err := UnmarshalComponent(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "component")
				r.mu.Lock()
				r.memo[key] = c
				r.mu.Unlock()
				return c, nil
			}
			// Corrupt persisted entry: drop it and rebuild.
			_ = r.store.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, "component")
	}

	observability.Build().OnBuildStart(ctx, name)
	start := time.Now()
	c, err := builder(merged)
	if err != nil {
		observability.Build().OnBuildComplete(ctx, name, 0, time.Since(start), err)
		return nil, errors.Wrap(errors.ErrCodeInvalidCell, err, "building %s", name)
	}
	observability.Build().OnBuildComplete(ctx, name, c.PolygonCount(), time.Since(start), nil)
	c.Name = r.assignName(autoName(name, changed), key)

	r.mu.Lock()
	r.memo[key] = c
	r.mu.Unlock()

	if r.store != nil {
		if data, err := MarshalComponent(c.Flatten()); err == nil {
			if r.store.Set(ctx, key, data, cache.TTLComponent) == nil {
				observability.Cache().OnCacheSet(ctx, "component", len(data))
			}
		}
	}
	return c, nil
}

// assignName reserves a component name, appending "$N" when another
// parameter set already produced the same base name.
func (r *Registry) assignName(base, key string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := base
	for n := 1; ; n++ {
		owner, taken := r.taken[name]
		if !taken || owner == key {
			r.taken[name] = key
			return name
		}
		name = fmt.Sprintf("%s$%d", base, n)
	}
}

// maxNameLength bounds auto-generated names; longer names are truncated
// and suffixed with a hash to stay unique.
const maxNameLength = 64

// autoName derives a component name from the cell name and the parameters
// that differ from the defaults: "mzi_delta_length10_length_x0.2".
func autoName(cell string, changed Params) string {
	if len(changed) == 0 {
		return cell
	}
	keys := make([]string, 0, len(changed))
	for k := range changed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(cell)
	for _, k := range keys {
		sb.WriteByte('_')
		sb.WriteString(k)
		sb.WriteString(formatValue(changed[k]))
	}
	name := sb.String()
	if len(name) > maxNameLength {
		h := cache.HashParams([]any{cell, changed})
		name = name[:maxNameLength-9] + "_" + h[:8]
	}
	return name
}

// formatValue renders a parameter value compactly for use in names.
func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		s := fmt.Sprintf("%v", v)
		return strings.Map(func(r rune) rune {
			switch r {
			case ' ', '/', '\\':
				return '-'
			}
			return r
		}, s)
	}
}
