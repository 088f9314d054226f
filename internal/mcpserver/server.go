// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasgate validation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgate"
)

const serverInstructions = `oasgate MCP server: validates OpenAPI 3.x JSON specs against the default rules or the IHAN standard, and checks that URLs referenced from JSON-LD companion files are reachable.

Configuration: defaults come from .oasgate.yaml in the server's working directory and OASGATE_* environment variables set in your MCP client config.

Key settings:
- OASGATE_STANDARD (default: default) - "default" or "ihan"
- OASGATE_CHECK_URLS (default: false) - add URL reachability checks to validate
- OASGATE_CONCURRENCY (default: 1) - files validated at once
- OASGATE_PROBE_CONCURRENCY (default: 4) - URLs probed at once
- OASGATE_URL_TIMEOUT (default: 30s) - timeout per URL probe
- OASGATE_MCP_LIMIT (default: 100) - default page size for file results
- OASGATE_ALLOW_PRIVATE_IPS (default: false) - let URL probes reach private addresses

Companion files: an IHAN spec X.json needs X.html and X.jsonld next to it.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasgate", Version: oasgate.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate OpenAPI 3.x JSON spec files. Paths may be files, directories (every *.json below) or ** globs. Each file is checked against the selected standard (default or ihan); ihan also requires non-empty X.html and X.jsonld companions. Set check_urls to probe every URL found in the JSON-LD companions. Alternatively pass inline content to check a single document without companion files. Use offset/limit to page through file results.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_urls",
		Description: "Collect every URL value from the JSON-LD companions (X.jsonld) of the given spec files and probe each once with an HTTP GET. Returns one failure per unreachable URL with every file that references it. Private and loopback addresses are refused unless OASGATE_ALLOW_PRIVATE_IPS is set.",
	}, handleCheckURLs)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.Limit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.Limit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
