package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erraggy/oasgate/oaserrors"
)

// DefaultMaxFileSize is the largest spec or companion file read by default (10MB).
const DefaultMaxFileSize int64 = 10 << 20

// Parser loads spec files into generic JSON trees.
type Parser struct {
	// MaxFileSize is the maximum file size in bytes.
	// Default: 10MB
	MaxFileSize int64
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{MaxFileSize: DefaultMaxFileSize}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// ParseResult is a decoded spec document.
//
// Callers should treat ParseResult as read-only: validators share it and
// never modify the tree.
type ParseResult struct {
	// SourcePath is the file the document was read from.
	// Readers and byte slices get a synthetic name ("ParseReader.json", "ParseBytes.json").
	SourcePath string
	// Root is the decoded top-level value. It is one of map[string]any, []any,
	// string, float64, bool or nil.
	Root any
	// Data is Root when the document is a JSON object, otherwise nil.
	Data map[string]any
	// Version is the "openapi" field when it is a string, otherwise "".
	Version string
	// LoadTime is the time taken to read the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// Parse reads and decodes the JSON file at specPath.
//
// A file that is not valid JSON yields a *oaserrors.ValidationError of kind
// KindInvalidJSON whose Path is specPath. Read failures are returned wrapped
// and are not validation errors.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := p.ReadFile(specPath)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, err
	}

	result, err := p.decode(data, specPath)
	if err != nil {
		return nil, err
	}
	result.LoadTime = loadTime
	return result, nil
}

// ParseReader decodes JSON from r.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := readLimited(r, p.maxFileSize(), "ParseReader.json")
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, err
	}
	result, err := p.decode(data, "ParseReader.json")
	if err != nil {
		return nil, err
	}
	result.LoadTime = loadTime
	return result, nil
}

// ParseBytes decodes JSON from data.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	if int64(len(data)) > p.maxFileSize() {
		return nil, fileTooLarge("ParseBytes.json", p.maxFileSize(), int64(len(data)))
	}
	return p.decode(data, "ParseBytes.json")
}

// ReadFile reads path, enforcing MaxFileSize.
func (p *Parser) ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // G304 - path is caller-provided spec file
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return readLimited(f, p.maxFileSize(), path)
}

func (p *Parser) decode(data []byte, sourcePath string) (*ParseResult, error) {
	root, err := DecodeJSON(data)
	if err != nil {
		p.log().Debug("invalid JSON", "path", sourcePath, "error", err)
		return nil, &oaserrors.ValidationError{
			Kind:    oaserrors.KindInvalidJSON,
			Path:    sourcePath,
			Message: "Incorrect JSON",
			Cause:   err,
		}
	}

	result := &ParseResult{
		SourcePath: sourcePath,
		Root:       root,
		Data:       AsMap(root),
		SourceSize: int64(len(data)),
	}
	result.Version = GetString(result.Data, "openapi")
	p.log().Debug("parsed document", "path", sourcePath, "version", result.Version, "size", result.SourceSize)
	return result, nil
}

// DecodeJSON decodes a single JSON value. Trailing non-whitespace data is an error.
func DecodeJSON(data []byte) (any, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return root, nil
}

func readLimited(r io.Reader, limit int64, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return nil, fileTooLarge(name, limit, 0)
	}
	return data, nil
}

func fileTooLarge(name string, limit, actual int64) error {
	return &oaserrors.ResourceLimitError{
		ResourceType: "file_size",
		Limit:        limit,
		Actual:       actual,
		Message:      name,
	}
}
