package mcpserver

import (
	"log/slog"

	"github.com/erraggy/oasgate/internal/config"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup via loadConfig().
type serverConfig struct {
	// Validation settings shared with the CLI.
	*config.Config

	// Pagination defaults for the files array of tool results.
	Limit    int
	MaxLimit int

	// MaxInlineSize limits inline spec content passed to the validate tool.
	MaxInlineSize int64

	// AllowPrivateIPs lets URL probes reach private and loopback addresses.
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads .oasgate.yaml from the working directory, if present, and
// OASGATE_* environment variables. An invalid file or value logs a warning
// and falls back to the built-in defaults.
func loadConfig() *serverConfig {
	base, err := config.Load("")
	if err != nil {
		slog.Warn("invalid oasgate configuration, using defaults", "error", err)
		base = config.Default()
	}
	return &serverConfig{
		Config:          base,
		Limit:           config.EnvInt("OASGATE_MCP_LIMIT", 100),
		MaxLimit:        config.EnvInt("OASGATE_MCP_MAX_LIMIT", 1000),
		MaxInlineSize:   int64(config.EnvInt("OASGATE_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs: config.EnvBool("OASGATE_ALLOW_PRIVATE_IPS", false),
	}
}
