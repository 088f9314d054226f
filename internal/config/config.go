// Package config loads oasgate settings from an optional YAML file and
// OASGATE_* environment variables, and turns them into batch stages.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasgate/batch"
	"github.com/erraggy/oasgate/ihan"
	"github.com/erraggy/oasgate/jsonld"
	"github.com/erraggy/oasgate/oaserrors"
	"github.com/erraggy/oasgate/parser"
	"github.com/erraggy/oasgate/validator"
)

// DefaultFile is read from the working directory when no file is given.
const DefaultFile = ".oasgate.yaml"

// Supported standards.
const (
	StandardDefault = "default"
	StandardIHAN    = "ihan"
)

// Config holds every setting shared by the CLI and the MCP server.
type Config struct {
	// Standard selects the per-file rules: "default" or "ihan".
	Standard string `yaml:"standard"`
	// CheckURLs adds the JSON-LD URL reachability stage.
	CheckURLs bool `yaml:"check_urls"`
	// Patterns are validated when no paths are given on the command line.
	Patterns []string `yaml:"patterns,omitempty"`
	// Concurrency is the number of files validated at once.
	Concurrency int `yaml:"concurrency"`
	// ProbeConcurrency is the number of URLs probed at once.
	ProbeConcurrency int `yaml:"probe_concurrency"`
	// URLTimeout bounds each URL probe.
	URLTimeout time.Duration `yaml:"url_timeout"`
	// UserAgent is sent with URL probes. Empty means oasgate.UserAgent().
	UserAgent string `yaml:"user_agent,omitempty"`
	// MaxFileSize limits spec and companion reads, in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Standard:         StandardDefault,
		Concurrency:      1,
		ProbeConcurrency: 4,
		URLTimeout:       jsonld.DefaultTimeout,
		MaxFileSize:      parser.DefaultMaxFileSize,
	}
}

// Load builds a Config from the defaults, then the YAML file at path, then
// OASGATE_* environment variables. An empty path reads DefaultFile when it
// exists.
func Load(path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304 - config path is user-provided
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: "invalid YAML", Cause: err}
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// applyEnv overrides fields from OASGATE_* environment variables.
// Invalid values log a warning and keep the current value.
func (c *Config) applyEnv() {
	c.Standard = envStandard("OASGATE_STANDARD", c.Standard)
	c.CheckURLs = EnvBool("OASGATE_CHECK_URLS", c.CheckURLs)
	c.Concurrency = EnvInt("OASGATE_CONCURRENCY", c.Concurrency)
	c.ProbeConcurrency = EnvInt("OASGATE_PROBE_CONCURRENCY", c.ProbeConcurrency)
	c.URLTimeout = EnvDuration("OASGATE_URL_TIMEOUT", c.URLTimeout)
	c.MaxFileSize = int64(EnvInt("OASGATE_MAX_FILE_SIZE", int(c.MaxFileSize)))
	if ua := os.Getenv("OASGATE_USER_AGENT"); ua != "" {
		c.UserAgent = ua
	}
}

// Validate reports the first invalid setting as a *oaserrors.ConfigError.
func (c *Config) Validate() error {
	switch {
	case c.Standard != StandardDefault && c.Standard != StandardIHAN:
		return &oaserrors.ConfigError{Option: "standard", Value: c.Standard, Message: "must be default or ihan"}
	case c.Concurrency < 1:
		return &oaserrors.ConfigError{Option: "concurrency", Value: c.Concurrency, Message: "must be at least 1"}
	case c.ProbeConcurrency < 1:
		return &oaserrors.ConfigError{Option: "probe_concurrency", Value: c.ProbeConcurrency, Message: "must be at least 1"}
	case c.URLTimeout <= 0:
		return &oaserrors.ConfigError{Option: "url_timeout", Value: c.URLTimeout, Message: "must be positive"}
	case c.MaxFileSize <= 0:
		return &oaserrors.ConfigError{Option: "max_file_size", Value: c.MaxFileSize, Message: "must be positive"}
	}
	return nil
}

// Checker returns the HTTP URL checker described by c.
func (c *Config) Checker() *jsonld.HTTPChecker {
	return &jsonld.HTTPChecker{
		Client:    &http.Client{Timeout: c.URLTimeout},
		UserAgent: c.UserAgent,
	}
}

// Rules returns the per-file validator for c.Standard. The IHAN standard
// replaces the default version check rather than adding to it.
func (c *Config) Rules() validator.Validator {
	if c.Standard == StandardIHAN {
		return &ihan.Validator{MaxFileSize: c.MaxFileSize}
	}
	return validator.Default{}
}

// Stages returns the batch stages for c. A nil checker selects c.Checker().
func (c *Config) Stages(checker jsonld.URLChecker, logger parser.Logger) ([]validator.Stage, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	stages := []validator.Stage{{Validator: c.Rules()}}

	if c.CheckURLs {
		if checker == nil {
			checker = c.Checker()
		}
		stage := jsonld.NewStage(checker,
			jsonld.WithProbeConcurrency(c.ProbeConcurrency),
			jsonld.WithLogger(logger))
		if v, ok := stage.Validator.(*jsonld.URLValidator); ok {
			v.MaxFileSize = c.MaxFileSize
		}
		stages = append(stages, stage)
	}
	return stages, nil
}

// Runner returns a batch.Runner configured from c.
func (c *Config) Runner(checker jsonld.URLChecker, logger parser.Logger) (*batch.Runner, error) {
	stages, err := c.Stages(checker, logger)
	if err != nil {
		return nil, err
	}
	return batch.New(
		batch.WithStages(stages...),
		batch.WithConcurrency(c.Concurrency),
		batch.WithMaxFileSize(c.MaxFileSize),
		batch.WithLogger(logger),
	)
}
