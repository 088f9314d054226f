package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"

	"github.com/erraggy/oasgate/internal/mcpserver"
)

// HandleMCP starts the MCP server over stdio and blocks until the client
// disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasgate mcp\n\n")
		Writef(fs.Output(), "Run an MCP server over stdio exposing the validate and check_urls tools.\n")
		Writef(fs.Output(), "Defaults come from OASGATE_* environment variables.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return mcpserver.Run(ctx)
}
