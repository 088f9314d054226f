package batch

import (
	"fmt"

	"github.com/erraggy/oasgate/parser"
	"github.com/erraggy/oasgate/validator"
)

// Option is a function that configures a Runner
type Option func(*Runner) error

// WithStages sets the validation stages every file passes through, in order.
// Default: a single validator.Default stage
func WithStages(stages ...validator.Stage) Option {
	return func(r *Runner) error {
		if len(stages) == 0 {
			return fmt.Errorf("at least one stage is required")
		}
		for i, s := range stages {
			if s.Validator == nil {
				return fmt.Errorf("stage %d has no validator", i)
			}
		}
		r.stages = stages
		return nil
	}
}

// WithConcurrency validates up to n files at once.
// Default: 1
func WithConcurrency(n int) Option {
	return func(r *Runner) error {
		if n < 1 {
			return fmt.Errorf("concurrency must be at least 1, got %d", n)
		}
		r.concurrency = n
		return nil
	}
}

// WithLogger sets the structured logger for run progress.
// Default: parser.NopLogger
func WithLogger(l parser.Logger) Option {
	return func(r *Runner) error {
		if l == nil {
			l = parser.NopLogger{}
		}
		r.logger = l
		return nil
	}
}

// WithMaxFileSize sets the maximum spec file size in bytes.
// Default: parser.DefaultMaxFileSize
func WithMaxFileSize(size int64) Option {
	return func(r *Runner) error {
		if size <= 0 {
			return fmt.Errorf("max file size must be positive, got %d", size)
		}
		r.maxFileSize = size
		return nil
	}
}
