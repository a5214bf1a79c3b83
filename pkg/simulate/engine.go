package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/waveforge/waveforge/pkg/errors"
)

// Engine runs solver jobs and returns the raw result bytes (typically a
// JSON document produced by the solver).
type Engine interface {
	// Name identifies the engine in cache keys and logs.
	Name() string
	// Run executes the job. The job must already be validated.
	Run(ctx context.Context, job Job) ([]byte, error)
}

// jobEnvelope is the wire format handed to external solver processes.
type jobEnvelope struct {
	Kind string `json:"kind"`
	Job  Job    `json:"job"`
}

// CommandEngine runs jobs by invoking an external solver binary. The job
// is written to a temporary JSON file whose path is appended to Args, and
// the solver's stdout is taken as the result.
type CommandEngine struct {
	// Binary is the solver executable, e.g. a mesher or mode solver
	// wrapper script on PATH.
	Binary string
	// Args are passed before the job file path.
	Args []string
	// Dir is the working directory; empty means inherit.
	Dir string
	// Timeout bounds a single run; zero means no limit beyond ctx.
	Timeout time.Duration
}

// Name returns the binary name without its directory.
func (e *CommandEngine) Name() string { return filepath.Base(e.Binary) }

// Run writes the job file, executes the solver, and returns its stdout.
func (e *CommandEngine) Run(ctx context.Context, job Job) ([]byte, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	data, err := json.Marshal(jobEnvelope{Kind: job.Kind(), Job: job})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngine, err, "encoding %s job", job.Kind())
	}

	f, err := os.CreateTemp(e.Dir, "waveforge-job-*.json")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngine, err, "creating job file")
	}
	jobPath := f.Name()
	defer os.Remove(jobPath)
	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, errors.Wrap(errors.ErrCodeEngine, err, "writing job file")
	}
	if err := f.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngine, err, "writing job file")
	}

	cmd := exec.CommandContext(ctx, e.Binary, append(append([]string{}, e.Args...), jobPath)...)
	cmd.Dir = e.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := stderr.String()
		if len(msg) > 500 {
			msg = msg[len(msg)-500:]
		}
		return nil, errors.Wrap(errors.ErrCodeEngine, err, "%s %s job failed: %s", e.Name(), job.Kind(), msg)
	}
	return stdout.Bytes(), nil
}
