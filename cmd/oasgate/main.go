package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/oasgate"
	"github.com/erraggy/oasgate/cmd/oasgate/commands"
)

// commandNames lists every top-level command, used for typo suggestions.
var commandNames = []string{"validate", "watch", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasgate v%s\n", oasgate.Version())
		fmt.Printf("commit: %s\n", oasgate.Commit())
		fmt.Printf("built: %s\n", oasgate.BuildTime())
		fmt.Printf("go: %s\n", oasgate.GoVersion())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "validate":
		err = commands.HandleValidate(os.Args[2:])
	case "watch":
		err = commands.HandleWatch(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, commands.ErrValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`oasgate - OpenAPI spec gatekeeper

Usage:
  oasgate <command> [options]

Commands:
  validate    Validate spec files against the default or IHAN standard
  watch       Re-validate specs whenever they or their companions change
  mcp         Run an MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasgate validate api.json
  oasgate validate --standard ihan specs/
  oasgate validate --standard ihan --check-urls 'specs/**/*.json'
  oasgate watch --standard ihan specs/

Configuration:
  Settings are read from .oasgate.yaml (or --config FILE), then OASGATE_*
  environment variables, then command-line flags.

Run 'oasgate <command> --help' for more information on a command.`)
}
