package validator

import (
	"context"
	"fmt"

	"github.com/erraggy/oasgate/oaserrors"
	"github.com/erraggy/oasgate/parser"
)

// Artifact is a per-file value retained for post-validation. Its shape is
// defined by the validator that produced it.
type Artifact any

// Validator checks a decoded spec document.
//
// ValidateSpec is the only required method. It must not touch the
// filesystem; checks that need sibling files belong in CheckFiles (see
// FileChecker), which runs only after ValidateSpec succeeded.
type Validator interface {
	// Name identifies the validator in reports and logs.
	Name() string
	// ValidateSpec returns a taxonomy error (see package oaserrors) describing
	// the first rule the document violates, or nil.
	ValidateSpec(doc *parser.ParseResult) error
}

// FileChecker is implemented by validators with filesystem side checks,
// such as companion files that must sit next to the spec.
type FileChecker interface {
	CheckFiles(specPath string) error
}

// ArtifactCollector is implemented by validators that retain per-file data
// for post-validation.
type ArtifactCollector interface {
	CollectArtifact(specPath string) (Artifact, error)
}

// PostValidateFunc runs once per batch over the ordered artifacts of every
// file that passed. It returns nil when the batch passed.
//
// It is not bound to a Validator instance: a batch hook sees only artifacts.
type PostValidateFunc func(ctx context.Context, artifacts []Artifact) *BatchReport

// Stage pairs a per-file validator with its optional batch hook.
type Stage struct {
	Validator    Validator
	PostValidate PostValidateFunc
}

// Name returns the stage validator's name.
func (s Stage) Name() string {
	if s.Validator == nil {
		return ""
	}
	return s.Validator.Name()
}

// Validate loads the spec at specPath, runs v.ValidateSpec, and then, when v
// is a FileChecker, v.CheckFiles.
//
// Invalid JSON is reported before any structural check, and structural
// checks before file checks. Validation errors without a Path get specPath.
func Validate(v Validator, specPath string, opts ...Option) error {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return fmt.Errorf("validator: invalid options: %w", err)
	}
	log := cfg.logger.With("validator", v.Name(), "path", specPath)

	p := &parser.Parser{MaxFileSize: cfg.maxFileSize, Logger: cfg.logger}
	doc, err := p.Parse(specPath)
	if err != nil {
		return err
	}

	if err := v.ValidateSpec(doc); err != nil {
		log.Debug("spec rejected", "error", err)
		return withPath(err, specPath)
	}

	if fc, ok := v.(FileChecker); ok {
		if err := fc.CheckFiles(specPath); err != nil {
			log.Debug("file check failed", "error", err)
			return withPath(err, specPath)
		}
	}
	return nil
}

// Collect returns v's artifact for specPath, or nil when v does not collect
// artifacts. Call it only after Validate succeeded for the same file.
func Collect(v Validator, specPath string) (Artifact, error) {
	ac, ok := v.(ArtifactCollector)
	if !ok {
		return nil, nil
	}
	artifact, err := ac.CollectArtifact(specPath)
	if err != nil {
		return nil, withPath(err, specPath)
	}
	return artifact, nil
}

// withPath fills in the Path of a bare ValidationError.
func withPath(err error, path string) error {
	if ve, ok := err.(*oaserrors.ValidationError); ok && ve.Path == "" { //nolint:errorlint // only bare errors are rewritten
		return ve.WithPath(path)
	}
	return err
}
