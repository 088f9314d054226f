package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgate/ihan"
	"github.com/erraggy/oasgate/internal/testutil"
	"github.com/erraggy/oasgate/jsonld"
	"github.com/erraggy/oasgate/oaserrors"
	"github.com/erraggy/oasgate/parser"
	"github.com/erraggy/oasgate/validator"
)

// fakeChecker fails the URLs in bad and counts every probe.
type fakeChecker struct {
	mu    sync.Mutex
	bad   map[string]bool
	calls map[string]int
}

func newFakeChecker(bad ...string) *fakeChecker {
	f := &fakeChecker{bad: make(map[string]bool), calls: make(map[string]int)}
	for _, u := range bad {
		f.bad[u] = true
	}
	return f
}

func (f *fakeChecker) CheckURL(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if f.bad[url] {
		return errors.New("HTTP 404")
	}
	return nil
}

func ihanStages(checker jsonld.URLChecker) []validator.Stage {
	return []validator.Stage{
		{Validator: validator.NewComposite(validator.Default{}, ihan.New())},
		jsonld.NewStage(checker),
	}
}

func TestNewDefaults(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	require.Len(t, r.Stages(), 1)
	assert.Equal(t, "default", r.Stages()[0].Name())
}

func TestNewInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"no stages", WithStages()},
		{"nil validator", WithStages(validator.Stage{})},
		{"zero concurrency", WithConcurrency(0)},
		{"negative file size", WithMaxFileSize(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
		})
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()

	good := testutil.WriteBundle(t, dir, "good", testutil.NewBundle("https://vocab.example/shared", "https://vocab.example/good"))
	shared := testutil.WriteBundle(t, dir, "other", testutil.NewBundle("https://vocab.example/shared"))

	noEndpoints := testutil.NewBundle("https://vocab.example/never")
	spec := testutil.NewIHANSpec()
	spec["paths"] = map[string]any{}
	noEndpoints.Spec = spec
	bad := testutil.WriteBundle(t, dir, "bad", noEndpoints)

	missingHTML := testutil.NewBundle("https://vocab.example/never")
	missingHTML.HTML = nil
	noHTML := testutil.WriteBundle(t, dir, "nohtml", missingHTML)

	checker := newFakeChecker("https://vocab.example/shared")
	r, err := New(WithStages(ihanStages(checker)...))
	require.NoError(t, err)

	res, err := r.Run(context.Background(), []string{good, bad, shared, noHTML})
	require.NoError(t, err)
	assert.Len(t, res.RunID, 8)

	require.Len(t, res.Files, 4)
	assert.True(t, res.Files[0].OK())
	assert.Equal(t, oaserrors.KindNoEndpoints, res.Files[1].Kind)
	assert.Equal(t, "default+ihan", res.Files[1].Stage)
	assert.True(t, res.Files[2].OK())
	assert.Equal(t, oaserrors.KindCompanionFileMissing, res.Files[3].Kind)
	assert.ErrorIs(t, res.Files[3].Err, oaserrors.ErrCompanionFileMissing)

	assert.Equal(t, 2, res.Passed())
	assert.Len(t, res.Failed(), 2)
	assert.False(t, res.OK())

	// Files rejected by IHAN never reach the URL stage.
	assert.Zero(t, checker.calls["https://vocab.example/never"])
	assert.Equal(t, 1, checker.calls["https://vocab.example/shared"])
	assert.Equal(t, 1, checker.calls["https://vocab.example/good"])

	require.Len(t, res.Reports, 1)
	report := res.Reports[0]
	assert.Equal(t, jsonld.Name, report.Validator)
	want := fmt.Sprintf("Failed to fetch https://vocab.example/shared (found in %s, %s)\n",
		filepath.Join(dir, "good.jsonld"), filepath.Join(dir, "other.jsonld"))
	assert.Equal(t, want, report.String())
}

func TestRunAllPass(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteBundle(t, dir, "a", testutil.NewBundle("https://vocab.example/a"))
	b := testutil.WriteBundle(t, dir, "b", testutil.NewBundle())

	r, err := New(WithStages(ihanStages(newFakeChecker())...))
	require.NoError(t, err)

	res, err := r.Run(context.Background(), []string{a, b})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Empty(t, res.Reports)
	assert.Equal(t, 2, res.Passed())
}

func TestRunDefaultStage(t *testing.T) {
	dir := t.TempDir()
	v3 := testutil.WriteBundle(t, dir, "v3", testutil.Bundle{Spec: `{"openapi": "3.1.0"}`})
	v2 := testutil.WriteBundle(t, dir, "v2", testutil.Bundle{Spec: `{"swagger": "2.0"}`})
	broken := testutil.WriteBundle(t, dir, "broken", testutil.Bundle{Spec: `{"openapi": `})
	missing := filepath.Join(dir, "missing.json")

	r, err := New()
	require.NoError(t, err)

	res, err := r.Run(context.Background(), []string{v3, v2, broken, missing})
	require.NoError(t, err)

	assert.True(t, res.Files[0].OK())
	assert.Equal(t, oaserrors.KindUnsupportedVersion, res.Files[1].Kind)
	assert.Equal(t, oaserrors.KindInvalidJSON, res.Files[2].Kind)
	assert.False(t, res.Files[3].OK())
	assert.Empty(t, res.Files[3].Kind, "I/O failures carry no rule kind")
	assert.Contains(t, res.Files[3].Error, "missing.json")
}

// orderRecorder collects one artifact per file and records the order the
// batch hook sees them in.
type orderRecorder struct{}

func (orderRecorder) Name() string { return "order" }
func (orderRecorder) ValidateSpec(_ *parser.ParseResult) error { return nil }
func (orderRecorder) CollectArtifact(p string) (validator.Artifact, error) { return p, nil }

func TestRunConcurrencyKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := range 12 {
		paths = append(paths, testutil.WriteBundle(t, dir, fmt.Sprintf("spec%02d", i), testutil.Bundle{Spec: `{"openapi": "3.0.0"}`}))
	}

	var seen []validator.Artifact
	stage := validator.Stage{
		Validator: orderRecorder{},
		PostValidate: func(_ context.Context, artifacts []validator.Artifact) *validator.BatchReport {
			seen = artifacts
			return nil
		},
	}

	r, err := New(WithStages(stage), WithConcurrency(4))
	require.NoError(t, err)

	res, err := r.Run(context.Background(), paths)
	require.NoError(t, err)
	assert.True(t, res.OK())

	require.Len(t, seen, len(paths))
	for i, p := range paths {
		assert.Equal(t, p, seen[i])
		assert.Equal(t, p, res.Files[i].Path)
	}
}

func TestRunCanceled(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteBundle(t, dir, "a", testutil.NewBundle())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := New()
	require.NoError(t, err)
	_, err = r.Run(ctx, []string{path})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunEmpty(t *testing.T) {
	r, err := New(WithStages(ihanStages(newFakeChecker())...))
	require.NoError(t, err)

	res, err := r.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.True(t, res.OK())
}
