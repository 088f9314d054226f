// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasgate/internal/fileutil"
)

// DefaultHTML is the human-readable companion written by WriteBundle.
const DefaultHTML = "<html><body><h1>Company Basic Info</h1></body></html>\n"

// NewIHANSpec returns a decoded OpenAPI 3.0 document that satisfies every
// IHAN rule: one POST endpoint, component-schema request and response
// models, and both authorization headers. Each call returns a fresh tree,
// so tests may mutate it freely.
func NewIHANSpec() map[string]any {
	return map[string]any{
		"openapi": "3.0.2",
		"info": map[string]any{
			"title":   "Company Basic Info",
			"version": "1.0.0",
		},
		"paths": map[string]any{
			"/draft/Company/BasicInfo": map[string]any{
				"post": map[string]any{
					"summary": "Company Basic Info",
					"parameters": []any{
						map[string]any{"name": "Authorization", "in": "header", "schema": map[string]any{"type": "string"}},
						map[string]any{"name": "X-Authorization-Provider", "in": "header", "schema": map[string]any{"type": "string"}},
					},
					"requestBody": map[string]any{
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/BasicCompanyInfoRequest"},
							},
						},
						"required": true,
					},
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Successful Response",
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{"$ref": "#/components/schemas/BasicCompanyInfoResponse"},
								},
							},
						},
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"BasicCompanyInfoRequest": map[string]any{
					"title":      "BasicCompanyInfoRequest",
					"type":       "object",
					"properties": map[string]any{"companyId": map[string]any{"type": "string"}},
				},
				"BasicCompanyInfoResponse": map[string]any{
					"title":      "BasicCompanyInfoResponse",
					"type":       "object",
					"properties": map[string]any{"name": map[string]any{"type": "string"}},
				},
			},
		},
	}
}

// NewJSONLD returns a JSON-LD companion document referencing urls as the
// @id of nested terms.
func NewJSONLD(urls ...string) map[string]any {
	terms := make(map[string]any, len(urls))
	for i, u := range urls {
		terms[fmt.Sprintf("term%d", i)] = map[string]any{"@id": u}
	}
	return map[string]any{
		"@context": map[string]any{
			"@version": 1.1,
			"terms":    terms,
		},
	}
}

// Bundle describes a spec file and its companions. A nil field is not
// written, which lets tests model missing companions.
type Bundle struct {
	// Spec is marshaled to JSON, or written verbatim when it is a string or []byte
	Spec any
	// HTML is written verbatim; nil skips the file
	HTML *string
	// JSONLD is marshaled like Spec; nil skips the file
	JSONLD any
}

// NewBundle returns a conformant bundle: NewIHANSpec, DefaultHTML and a
// JSON-LD document referencing urls.
func NewBundle(urls ...string) Bundle {
	html := DefaultHTML
	return Bundle{
		Spec:   NewIHANSpec(),
		HTML:   &html,
		JSONLD: NewJSONLD(urls...),
	}
}

// WriteBundle writes b as <dir>/<name>.json with its companions and returns
// the spec path.
func WriteBundle(t *testing.T, dir, name string, b Bundle) string {
	t.Helper()

	specPath := filepath.Join(dir, name+".json")
	if b.Spec != nil {
		WriteFile(t, specPath, encodeJSON(t, b.Spec))
	}
	if b.HTML != nil {
		WriteFile(t, filepath.Join(dir, name+".html"), []byte(*b.HTML))
	}
	if b.JSONLD != nil {
		WriteFile(t, filepath.Join(dir, name+".jsonld"), encodeJSON(t, b.JSONLD))
	}
	return specPath
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, fileutil.ReadableByAll); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	WriteFile(t, tmpFile, data)
	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	WriteFile(t, tmpFile, encodeJSON(t, doc))
	return tmpFile
}

func encodeJSON(t *testing.T, v any) []byte {
	t.Helper()

	switch raw := v.(type) {
	case string:
		return []byte(raw)
	case []byte:
		return raw
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return data
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
