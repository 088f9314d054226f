package validator

import (
	"fmt"

	"github.com/erraggy/oasgate/parser"
)

// Option is a function that configures a validation operation
type Option func(*validateConfig) error

// validateConfig holds configuration for a validation operation
type validateConfig struct {
	maxFileSize int64
	logger      parser.Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		maxFileSize: parser.DefaultMaxFileSize,
		logger:      parser.NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithMaxFileSize sets the maximum spec file size in bytes.
// Default: 10MB
func WithMaxFileSize(size int64) Option {
	return func(cfg *validateConfig) error {
		if size <= 0 {
			return fmt.Errorf("max file size must be positive, got %d", size)
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithLogger sets the structured logger used for debug output.
// Default: parser.NopLogger
func WithLogger(l parser.Logger) Option {
	return func(cfg *validateConfig) error {
		if l == nil {
			l = parser.NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}
