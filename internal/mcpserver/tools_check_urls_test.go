package mcpserver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgate/internal/testutil"
	"github.com/erraggy/oasgate/oaserrors"
)

func TestCheckURLsTool_AllReachable(t *testing.T) {
	checker := &fakeChecker{}
	useChecker(t, checker)

	dir := t.TempDir()
	testutil.WriteBundle(t, dir, "a", testutil.NewBundle("https://one.example/a", "https://two.example/b"))
	testutil.WriteBundle(t, dir, "b", testutil.NewBundle("https://one.example/a"))

	_, output, err := handleCheckURLs(context.Background(), &mcp.CallToolRequest{}, checkURLsInput{
		Paths: []string{dir},
	})
	require.NoError(t, err)

	assert.True(t, output.Valid)
	assert.Equal(t, 2, output.FileCount)
	assert.Equal(t, 2, output.URLCount)
	assert.Zero(t, output.FailureCount)
	assert.Empty(t, output.Failures)
	assert.ElementsMatch(t, []string{"https://one.example/a", "https://two.example/b"}, checker.probed,
		"each distinct URL is probed once")
}

func TestCheckURLsTool_Failures(t *testing.T) {
	useChecker(t, &fakeChecker{dead: map[string]bool{
		"https://b.example/gone": true,
		"https://a.example/gone": true,
	}})

	dir := t.TempDir()
	testutil.WriteBundle(t, dir, "x", testutil.NewBundle("https://b.example/gone", "https://a.example/gone"))
	testutil.WriteBundle(t, dir, "y", testutil.NewBundle("https://b.example/gone"))

	_, output, err := handleCheckURLs(context.Background(), &mcp.CallToolRequest{}, checkURLsInput{
		Paths:       []string{filepath.Join(dir, "**", "*.json")},
		Concurrency: 2,
	})
	require.NoError(t, err)

	assert.False(t, output.Valid)
	assert.Equal(t, 2, output.FailureCount)
	require.Len(t, output.Failures, 2)

	first := output.Failures[0]
	assert.Equal(t, "https://a.example/gone", first.URL, "failures are sorted by URL")
	assert.Equal(t, []string{filepath.Join(dir, "x.jsonld")}, first.Files)

	second := output.Failures[1]
	assert.Equal(t, "https://b.example/gone", second.URL)
	assert.Equal(t, []string{filepath.Join(dir, "x.jsonld"), filepath.Join(dir, "y.jsonld")}, second.Files)
	assert.Contains(t, second.Message, "Failed to fetch https://b.example/gone")
	assert.Contains(t, second.Reason, "404")
}

func TestCheckURLsTool_SkipsBrokenCompanions(t *testing.T) {
	useChecker(t, &fakeChecker{})

	dir := t.TempDir()
	good := testutil.NewBundle("https://ok.example/")
	testutil.WriteBundle(t, dir, "good", good)
	missing := testutil.NewBundle()
	missing.JSONLD = nil
	testutil.WriteBundle(t, dir, "missing", missing)
	broken := testutil.NewBundle()
	broken.JSONLD = "{not json"
	testutil.WriteBundle(t, dir, "broken", broken)

	_, output, err := handleCheckURLs(context.Background(), &mcp.CallToolRequest{}, checkURLsInput{
		Paths: []string{dir},
	})
	require.NoError(t, err)

	assert.False(t, output.Valid)
	assert.Equal(t, 3, output.FileCount)
	assert.Equal(t, 1, output.URLCount)
	require.Len(t, output.Skipped, 2)
	assert.Equal(t, filepath.Join(dir, "broken.json"), output.Skipped[0].Path)
	assert.Equal(t, string(oaserrors.KindCompanionFileInvalidJSON), output.Skipped[0].Kind)
	assert.Equal(t, filepath.Join(dir, "missing.json"), output.Skipped[1].Path)
	assert.Equal(t, string(oaserrors.KindCompanionFileMissing), output.Skipped[1].Kind)
	assert.NotContains(t, output.Skipped[1].Message, dir, "absolute paths are not leaked")
}

func TestCheckURLsTool_SkipsInvalidSpec(t *testing.T) {
	checker := &fakeChecker{}
	useChecker(t, checker)

	dir := t.TempDir()
	testutil.WriteBundle(t, dir, "good", testutil.NewBundle("https://ok.example/"))
	bad := testutil.NewBundle("https://unreached.example/")
	bad.Spec = "{not json"
	testutil.WriteBundle(t, dir, "bad", bad)

	_, output, err := handleCheckURLs(context.Background(), &mcp.CallToolRequest{}, checkURLsInput{
		Paths: []string{dir},
	})
	require.NoError(t, err)

	assert.False(t, output.Valid)
	assert.Equal(t, 2, output.FileCount)
	assert.Equal(t, 1, output.URLCount)
	require.Len(t, output.Skipped, 1)
	assert.Equal(t, filepath.Join(dir, "bad.json"), output.Skipped[0].Path)
	assert.Equal(t, string(oaserrors.KindInvalidJSON), output.Skipped[0].Kind)
	assert.Equal(t, []string{"https://ok.example/"}, checker.probed,
		"URLs of a spec that fails to load are not checked")
}

func TestCheckURLsTool_Pagination(t *testing.T) {
	dead := map[string]bool{}
	var urls []string
	for _, u := range []string{"https://e.example/1", "https://e.example/2", "https://e.example/3"} {
		dead[u] = true
		urls = append(urls, u)
	}
	useChecker(t, &fakeChecker{dead: dead})

	dir := t.TempDir()
	testutil.WriteBundle(t, dir, "api", testutil.NewBundle(urls...))

	_, output, err := handleCheckURLs(context.Background(), &mcp.CallToolRequest{}, checkURLsInput{
		Paths:  []string{dir},
		Offset: 2,
		Limit:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, output.FailureCount)
	assert.Equal(t, 1, output.Returned)
	require.Len(t, output.Failures, 1)
	assert.Equal(t, "https://e.example/3", output.Failures[0].URL)
}

func TestCheckURLsTool_Errors(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		wantErr string
	}{
		{name: "no paths", wantErr: "paths is required"},
		{name: "missing file", paths: []string{filepath.Join(t.TempDir(), "nope.json")}, wantErr: "resolve pattern"},
		{name: "empty directory", paths: []string{t.TempDir()}, wantErr: "no spec files match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleCheckURLs(context.Background(), &mcp.CallToolRequest{}, checkURLsInput{Paths: tt.paths})
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			text, ok := result.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Contains(t, text.Text, tt.wantErr)
		})
	}
}
