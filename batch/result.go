package batch

import (
	"time"

	"github.com/erraggy/oasgate/oaserrors"
	"github.com/erraggy/oasgate/validator"
)

// Result is the outcome of one Runner.Run call.
type Result struct {
	// RunID identifies the run in logs and output.
	RunID string `json:"run_id" yaml:"run_id"`
	// Files holds one entry per input path, in input order.
	Files []FileResult `json:"files" yaml:"files"`
	// Reports holds the non-empty post-validation reports, in stage order.
	Reports []*validator.BatchReport `json:"reports,omitempty" yaml:"reports,omitempty"`
	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// FileResult is the outcome for a single spec file.
type FileResult struct {
	Path string `json:"path" yaml:"path"`
	// Stage is the name of the stage that rejected the file, or "".
	Stage string `json:"stage,omitempty" yaml:"stage,omitempty"`
	// Kind is the violated rule, or "" for passes and non-rule failures.
	Kind  oaserrors.Kind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Error string         `json:"error,omitempty" yaml:"error,omitempty"`
	// Err is the original error for errors.Is and errors.As.
	Err error `json:"-" yaml:"-"`
}

// OK reports whether the file passed every stage.
func (f FileResult) OK() bool {
	return f.Err == nil
}

// Failed returns the files that did not pass, in input order.
func (r *Result) Failed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if !f.OK() {
			out = append(out, f)
		}
	}
	return out
}

// Passed returns how many files passed every stage.
func (r *Result) Passed() int {
	return len(r.Files) - len(r.Failed())
}

// OK reports whether every file passed and no post-validation report exists.
func (r *Result) OK() bool {
	return len(r.Failed()) == 0 && len(r.Reports) == 0
}
