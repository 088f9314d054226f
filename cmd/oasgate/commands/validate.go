package commands

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"

	"github.com/erraggy/oasgate"
	"github.com/erraggy/oasgate/batch"
	"github.com/erraggy/oasgate/internal/config"
	"github.com/erraggy/oasgate/internal/fileutil"
	"github.com/erraggy/oasgate/jsonld"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Standard    string
	CheckURLs   bool
	Format      string
	Quiet       bool
	Concurrency int
	URLTimeout  time.Duration
	Config      string
	Output      string
	Verbose     bool
}

// bindRunFlags registers the flags shared by validate and watch.
func bindRunFlags(fs *flag.FlagSet, flags *ValidateFlags) {
	fs.StringVar(&flags.Standard, "standard", config.StandardDefault, "rule set: default or ihan")
	fs.BoolVar(&flags.CheckURLs, "check-urls", false, "probe every URL referenced by .jsonld companions")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only report failures")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only report failures")
	fs.IntVar(&flags.Concurrency, "concurrency", 1, "number of files validated at once")
	fs.DurationVar(&flags.URLTimeout, "url-timeout", jsonld.DefaultTimeout, "timeout for each URL probe")
	fs.StringVar(&flags.Config, "config", "", "config file (default: "+config.DefaultFile+" if present)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log progress to stderr")
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	bindRunFlags(fs, flags)
	fs.StringVar(&flags.Output, "o", "", "write the report to a file instead of stdout")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasgate validate [flags] <file|dir|glob>...\n\n")
		Writef(fs.Output(), "Validate OpenAPI spec files and, with --standard ihan, their .html and .jsonld companions.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable text output\n")
		Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasgate validate api.json\n")
		Writef(fs.Output(), "  oasgate validate --standard ihan specs/\n")
		Writef(fs.Output(), "  oasgate validate --standard ihan --check-urls 'specs/**/*.json'\n")
		Writef(fs.Output(), "  oasgate validate --format json -o report.json specs/\n")
		Writef(fs.Output(), "\nWith no paths, the patterns from the config file are used.\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Every file passed and no batch report was produced\n")
		Writef(fs.Output(), "  1    A file failed, a batch report was produced, or an error occurred\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	cfg, err := resolveConfig(fs, flags)
	if err != nil {
		return err
	}

	patterns := fs.Args()
	if len(patterns) == 0 {
		patterns = cfg.Patterns
	}
	if len(patterns) == 0 {
		fs.Usage()
		return fmt.Errorf("validate command requires at least one file, directory, or glob")
	}

	files, err := batch.Discover(patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no spec files match %v", patterns)
	}

	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, files); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := RunValidation(ctx, cfg, files, flags)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := WriteResult(&out, res, flags); err != nil {
		return err
	}
	if flags.Output != "" {
		if err := os.WriteFile(flags.Output, out.Bytes(), fileutil.OwnerReadWrite); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		if !flags.Quiet {
			Writef(os.Stderr, "Report written to %s\n", flags.Output)
		}
	} else {
		Writef(os.Stdout, "%s", out.Bytes())
	}

	if !res.OK() {
		return ErrValidationFailed
	}
	return nil
}

// resolveConfig loads the config file and environment, then applies every
// flag that was set explicitly on the command line.
func resolveConfig(fs *flag.FlagSet, flags *ValidateFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.Config)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "standard":
			cfg.Standard = flags.Standard
		case "check-urls":
			cfg.CheckURLs = flags.CheckURLs
		case "concurrency":
			cfg.Concurrency = flags.Concurrency
		case "url-timeout":
			cfg.URLTimeout = flags.URLTimeout
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunValidation runs one batch over files with the stages described by cfg.
func RunValidation(ctx context.Context, cfg *config.Config, files []string, flags *ValidateFlags) (*batch.Result, error) {
	r, err := cfg.Runner(nil, NewLogger(flags.Verbose))
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, files)
}

// WriteResult renders res to w in the format selected by flags.
func WriteResult(w io.Writer, res *batch.Result, flags *ValidateFlags) error {
	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		return OutputStructured(w, res, flags.Format)
	}
	WriteText(w, res, flags.Quiet)
	return nil
}

// WriteText writes the human-readable result. quiet drops passing files
// and the summary.
func WriteText(w io.Writer, res *batch.Result, quiet bool) {
	for _, f := range res.Files {
		if f.OK() {
			if !quiet {
				WriteStatus(w, SymbolPass, f.Path, color.FgGreen)
			}
			continue
		}
		WriteStatus(w, SymbolFail, f.Path, color.FgRed)
		Writef(w, "    %s\n", f.Error)
	}

	for _, r := range res.Reports {
		WriteStatus(w, SymbolWarn, r.Error(), color.FgYellow)
		for _, f := range r.Failures {
			Writef(w, "    %s\n", f.Message)
		}
	}

	if quiet {
		return
	}
	Writef(w, "\noasgate %s run %s: %d file(s), %d passed, %d failed, %d batch report(s) in %v\n",
		oasgate.Version(), res.RunID, len(res.Files), res.Passed(), len(res.Failed()), len(res.Reports),
		res.Duration.Round(time.Millisecond))
}
