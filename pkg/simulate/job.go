// Package simulate hands layout geometry off to external solvers: mesh
// generation, waveguide eigenmode solving, time-domain transmission
// runs, and drift-diffusion device solves. The package does not
// implement any solver numerics itself; it prepares job descriptions,
// shells out to an engine, and caches results keyed by the job content.
package simulate

import (
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/tech"
	"github.com/waveforge/waveforge/pkg/xsection"
)

// Default solver settings applied by Validate.
const (
	DefaultWavelength  = 1.55 // um, C band center
	DefaultNumModes    = 4
	DefaultOrder       = 1
	DefaultMeshSize    = 0.5 // um, background element size
	DefaultFDTDPixels  = 20  // resolution in pixels per um
	DefaultFDTDRunTime = 100.0
	DefaultBiasStep    = 0.1 // V
)

// Job is a solver work item. Validate applies defaults in place, so it
// must be called before hashing or running a job.
type Job interface {
	// Kind names the job type on the wire ("mesh", "modes", "fdtd",
	// "tcad").
	Kind() string
	// Validate checks fields and fills defaults.
	Validate() error
}

// Resolution is a per-layer mesh refinement: target element size inside
// the layer and the distance over which it relaxes to the background.
type Resolution struct {
	Size     float64 `json:"size"`
	Distance float64 `json:"distance"`
}

// MeshJob describes meshing one cross-section against a layer stack.
type MeshJob struct {
	CrossSection xsection.CrossSection `json:"cross_section"`
	Stack        tech.LayerStack       `json:"stack"`
	Resolutions  map[string]Resolution `json:"resolutions,omitempty"`
	DefaultSize  float64               `json:"default_size,omitempty"`
}

// Kind returns the wire name.
func (j *MeshJob) Kind() string { return "mesh" }

// Validate checks the job and fills defaults.
func (j *MeshJob) Validate() error {
	if len(j.Stack) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "mesh job needs a layer stack")
	}
	if j.DefaultSize == 0 {
		j.DefaultSize = DefaultMeshSize
	}
	if j.DefaultSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "mesh default size must be positive, got %g", j.DefaultSize)
	}
	for name, res := range j.Resolutions {
		if res.Size <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "resolution for %s must be positive, got %g", name, res.Size)
		}
	}
	return nil
}

// finest returns the smallest requested element size.
func (j *MeshJob) finest() float64 {
	size := j.DefaultSize
	for _, res := range j.Resolutions {
		if res.Size < size {
			size = res.Size
		}
	}
	return size
}

// ModeJob describes an eigenmode solve on a meshed cross-section.
// A nonzero Radius requests bend modes at that radius.
type ModeJob struct {
	Mesh       MeshJob `json:"mesh"`
	Wavelength float64 `json:"wavelength,omitempty"`
	NumModes   int     `json:"num_modes,omitempty"`
	Order      int     `json:"order,omitempty"`
	Radius     float64 `json:"radius,omitempty"`
}

// Kind returns the wire name.
func (j *ModeJob) Kind() string { return "modes" }

// Validate checks the job and fills defaults.
func (j *ModeJob) Validate() error {
	if err := j.Mesh.Validate(); err != nil {
		return err
	}
	if j.Wavelength == 0 {
		j.Wavelength = DefaultWavelength
	}
	if j.Wavelength <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "wavelength must be positive, got %g", j.Wavelength)
	}
	if j.NumModes == 0 {
		j.NumModes = DefaultNumModes
	}
	if j.NumModes < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "num_modes must be at least 1, got %d", j.NumModes)
	}
	if j.Order == 0 {
		j.Order = DefaultOrder
	}
	if j.Order < 1 || j.Order > 3 {
		return errors.New(errors.ErrCodeInvalidInput, "element order must be 1..3, got %d", j.Order)
	}
	if j.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "bend radius must not be negative, got %g", j.Radius)
	}
	return nil
}

// FDTDJob describes a time-domain transmission run over a flattened
// component. Component carries the geometry as interchange JSON so the
// solver process needs no access to the cell registry.
type FDTDJob struct {
	ComponentName string          `json:"component_name"`
	Component     []byte          `json:"component"`
	Stack         tech.LayerStack `json:"stack"`
	WavelengthMin float64         `json:"wavelength_min,omitempty"`
	WavelengthMax float64         `json:"wavelength_max,omitempty"`
	Resolution    int             `json:"resolution,omitempty"`
	RunTime       float64         `json:"run_time,omitempty"`
}

// Kind returns the wire name.
func (j *FDTDJob) Kind() string { return "fdtd" }

// Validate checks the job and fills defaults.
func (j *FDTDJob) Validate() error {
	if len(j.Component) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "fdtd job needs component geometry")
	}
	if len(j.Stack) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "fdtd job needs a layer stack")
	}
	if j.WavelengthMin == 0 && j.WavelengthMax == 0 {
		j.WavelengthMin, j.WavelengthMax = 1.5, 1.6
	}
	if j.WavelengthMin <= 0 || j.WavelengthMax < j.WavelengthMin {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid wavelength range [%g, %g]", j.WavelengthMin, j.WavelengthMax)
	}
	if j.Resolution == 0 {
		j.Resolution = DefaultFDTDPixels
	}
	if j.Resolution < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "resolution must be positive, got %d", j.Resolution)
	}
	if j.RunTime == 0 {
		j.RunTime = DefaultFDTDRunTime
	}
	if j.RunTime < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "run time must not be negative, got %g", j.RunTime)
	}
	return nil
}

// Contact is an electrical terminal: a named stack level the solver
// attaches a bias boundary condition to.
type Contact struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Doping is an implant region: dopant polarity and peak concentration
// applied to a stack level.
type Doping struct {
	Level         string  `json:"level"`
	Dopant        string  `json:"dopant"`        // "n" or "p"
	Concentration float64 `json:"concentration"` // peak, 1/cm^3
}

// TCADJob describes a drift-diffusion solve of an active cross-section:
// the meshed geometry with doped regions and contacts, swept over a
// bias range.
type TCADJob struct {
	Mesh     MeshJob   `json:"mesh"`
	Contacts []Contact `json:"contacts"`
	Dopings  []Doping  `json:"dopings,omitempty"`
	BiasMin  float64   `json:"bias_min,omitempty"`
	BiasMax  float64   `json:"bias_max,omitempty"`
	BiasStep float64   `json:"bias_step,omitempty"`
}

// Kind returns the wire name.
func (j *TCADJob) Kind() string { return "tcad" }

// Validate checks the job and fills defaults.
func (j *TCADJob) Validate() error {
	if err := j.Mesh.Validate(); err != nil {
		return err
	}
	if len(j.Contacts) < 2 {
		return errors.New(errors.ErrCodeInvalidInput,
			"tcad job needs at least two contacts, got %d", len(j.Contacts))
	}
	for _, c := range j.Contacts {
		if c.Name == "" || c.Level == "" {
			return errors.New(errors.ErrCodeInvalidInput, "contact needs a name and a stack level")
		}
		if _, err := j.Mesh.Stack.Get(c.Level); err != nil {
			return err
		}
	}
	for _, d := range j.Dopings {
		if d.Dopant != "n" && d.Dopant != "p" {
			return errors.New(errors.ErrCodeInvalidInput, "dopant must be n or p, got %q", d.Dopant)
		}
		if d.Concentration <= 0 {
			return errors.New(errors.ErrCodeInvalidInput,
				"doping concentration must be positive, got %g", d.Concentration)
		}
		if _, err := j.Mesh.Stack.Get(d.Level); err != nil {
			return err
		}
	}
	if j.BiasStep == 0 {
		j.BiasStep = DefaultBiasStep
	}
	if j.BiasStep < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "bias step must be positive, got %g", j.BiasStep)
	}
	if j.BiasMax < j.BiasMin {
		return errors.New(errors.ErrCodeInvalidInput, "invalid bias range [%g, %g]", j.BiasMin, j.BiasMax)
	}
	return nil
}
