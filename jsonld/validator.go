package jsonld

import (
	"errors"
	"io/fs"

	"github.com/erraggy/oasgate/ihan"
	"github.com/erraggy/oasgate/oaserrors"
	"github.com/erraggy/oasgate/parser"
	"github.com/erraggy/oasgate/validator"
)

// Name is the validator name used in logs and batch reports.
const Name = "jsonld-urls"

// URLValidator collects the URLs referenced by each spec's .jsonld
// companion so they can be probed once per batch.
type URLValidator struct {
	// MaxFileSize limits .jsonld reads.
	// Default: parser.DefaultMaxFileSize
	MaxFileSize int64
	// MaxDepth limits object nesting while walking.
	// Default: DefaultMaxDepth
	MaxDepth int
}

// New creates a URLValidator with default limits.
func New() *URLValidator {
	return &URLValidator{
		MaxFileSize: parser.DefaultMaxFileSize,
		MaxDepth:    DefaultMaxDepth,
	}
}

// Name implements validator.Validator.
func (v *URLValidator) Name() string { return Name }

// ValidateSpec accepts every document; this validator only collects artifacts.
func (v *URLValidator) ValidateSpec(_ *parser.ParseResult) error { return nil }

// CollectArtifact reads <stem>.jsonld next to specPath and returns an
// Artifact with its URLs.
func (v *URLValidator) CollectArtifact(specPath string) (validator.Artifact, error) {
	_, jsonldPath := ihan.CompanionPaths(specPath)

	p := &parser.Parser{MaxFileSize: v.MaxFileSize}
	data, err := p.ReadFile(jsonldPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &oaserrors.ValidationError{
			Kind:    oaserrors.KindCompanionFileMissing,
			Path:    jsonldPath,
			Message: "missing " + jsonldPath,
		}
	}
	if err != nil {
		return nil, err
	}

	root, err := parser.DecodeJSON(data)
	if err != nil {
		return nil, &oaserrors.ValidationError{
			Kind:    oaserrors.KindCompanionFileInvalidJSON,
			Path:    jsonldPath,
			Message: "failed to parse " + jsonldPath,
			Cause:   err,
		}
	}

	urls, err := FindURLs(root, v.MaxDepth)
	if err != nil {
		return nil, err
	}
	return Artifact{jsonldPath: urls}, nil
}

var (
	_ validator.Validator         = (*URLValidator)(nil)
	_ validator.ArtifactCollector = (*URLValidator)(nil)
)
