package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

// TestNewIHANSpec verifies the conformant spec fixture has the expected shape.
func TestNewIHANSpec(t *testing.T) {
	spec := NewIHANSpec()

	assert.Equal(t, "3.0.2", spec["openapi"])
	paths, ok := spec["paths"].(map[string]any)
	require.True(t, ok, "paths should be an object")
	require.Len(t, paths, 1, "exactly one endpoint")

	item := paths["/draft/Company/BasicInfo"].(map[string]any)
	assert.Contains(t, item, "post")
	assert.Len(t, item, 1, "only the POST operation")

	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	assert.Contains(t, schemas, "BasicCompanyInfoRequest")
	assert.Contains(t, schemas, "BasicCompanyInfoResponse")
}

// TestNewIHANSpecFresh verifies each call returns an independent tree.
func TestNewIHANSpecFresh(t *testing.T) {
	a := NewIHANSpec()
	b := NewIHANSpec()

	delete(a, "components")
	assert.Contains(t, b, "components", "mutating one fixture must not affect another")
}

func TestNewJSONLD(t *testing.T) {
	doc := NewJSONLD("https://a.example/x", "http://b.example/y")

	terms := doc["@context"].(map[string]any)["terms"].(map[string]any)
	require.Len(t, terms, 2)

	var ids []string
	for _, term := range terms {
		ids = append(ids, term.(map[string]any)["@id"].(string))
	}
	assert.ElementsMatch(t, []string{"https://a.example/x", "http://b.example/y"}, ids)
}

func TestWriteBundle(t *testing.T) {
	t.Run("conformant bundle", func(t *testing.T) {
		dir := t.TempDir()
		path := WriteBundle(t, dir, "api", NewBundle("https://a.example/x"))

		assert.Equal(t, filepath.Join(dir, "api.json"), path)
		assert.FileExists(t, filepath.Join(dir, "api.html"))
		assert.FileExists(t, filepath.Join(dir, "api.jsonld"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var parsed map[string]any
		require.NoError(t, json.Unmarshal(data, &parsed))
		assert.Equal(t, "3.0.2", parsed["openapi"])
	})

	t.Run("nil companions are skipped", func(t *testing.T) {
		dir := t.TempDir()
		b := NewBundle()
		b.HTML = nil
		b.JSONLD = nil
		WriteBundle(t, dir, "api", b)

		assert.FileExists(t, filepath.Join(dir, "api.json"))
		assert.NoFileExists(t, filepath.Join(dir, "api.html"))
		assert.NoFileExists(t, filepath.Join(dir, "api.jsonld"))
	})

	t.Run("raw content is written verbatim", func(t *testing.T) {
		dir := t.TempDir()
		WriteBundle(t, dir, "broken", Bundle{Spec: "{not json", JSONLD: []byte("[]")})

		data, err := os.ReadFile(filepath.Join(dir, "broken.json"))
		require.NoError(t, err)
		assert.Equal(t, "{not json", string(data))

		data, err = os.ReadFile(filepath.Join(dir, "broken.jsonld"))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("nested directories are created", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")
		path := WriteBundle(t, dir, "api", NewBundle())
		assert.FileExists(t, path)
	})
}

// TestWriteTempYAML verifies that documents can be written to temporary YAML files.
func TestWriteTempYAML(t *testing.T) {
	path := WriteTempYAML(t, map[string]any{"standard": "ihan", "concurrency": 4})

	assert.FileExists(t, path, "Temporary YAML file should exist")
	assert.Equal(t, ".yaml", filepath.Ext(path), "File should have .yaml extension")
	assert.True(t, filepath.IsAbs(path), "Path should be absolute")

	data, err := os.ReadFile(path)
	require.NoError(t, err, "Should be able to read temp file")

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed), "Should be able to unmarshal YAML")
	assert.Equal(t, "ihan", parsed["standard"])
	assert.Equal(t, 4, parsed["concurrency"])
}

// TestWriteTempJSON verifies that documents can be written to temporary JSON files.
func TestWriteTempJSON(t *testing.T) {
	path := WriteTempJSON(t, NewIHANSpec())

	assert.FileExists(t, path, "Temporary JSON file should exist")
	assert.Equal(t, ".json", filepath.Ext(path), "File should have .json extension")

	data, err := os.ReadFile(path)
	require.NoError(t, err, "Should be able to read temp file")

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed), "Should be able to unmarshal JSON")
	assert.Equal(t, "3.0.2", parsed["openapi"], "OpenAPI version should match")
	assert.Contains(t, string(data), "\n", "JSON should be indented with newlines")
}

func TestPtr(t *testing.T) {
	p := Ptr("x")
	require.NotNil(t, p)
	assert.Equal(t, "x", *p)
}
