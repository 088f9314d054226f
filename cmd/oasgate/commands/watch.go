package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/erraggy/oasgate/batch"
	"github.com/erraggy/oasgate/ihan"
	"github.com/erraggy/oasgate/parser"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// WatchFlags contains flags for the watch command
type WatchFlags struct {
	ValidateFlags
	Debounce time.Duration
}

// SetupWatchFlags creates and configures a FlagSet for the watch command.
func SetupWatchFlags() (*flag.FlagSet, *WatchFlags) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	flags := &WatchFlags{}

	bindRunFlags(fs, &flags.ValidateFlags)
	fs.DurationVar(&flags.Debounce, "debounce", DefaultDebounce, "wait this long after the last change before re-validating")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasgate watch [flags] <dir>...\n\n")
		Writef(fs.Output(), "Validate every spec below the given directories, then validate again\n")
		Writef(fs.Output(), "whenever a .json, .html, or .jsonld file changes. Stop with Ctrl-C.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasgate watch --standard ihan specs/\n")
		Writef(fs.Output(), "  oasgate watch --standard ihan --check-urls --debounce 1s specs/ drafts/\n")
	}

	return fs, flags
}

// HandleWatch executes the watch command
func HandleWatch(args []string) error {
	fs, flags := SetupWatchFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("watch command requires at least one directory")
	}
	if flags.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %v", flags.Debounce)
	}

	cfg, err := resolveConfig(fs, &flags.ValidateFlags)
	if err != nil {
		return err
	}
	dirs := fs.Args()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run := func(ctx context.Context) {
		files, err := batch.Discover(dirs)
		if err != nil {
			Writef(os.Stderr, "Error: %v\n", err)
			return
		}
		res, err := RunValidation(ctx, cfg, files, &flags.ValidateFlags)
		if err != nil {
			if ctx.Err() == nil {
				Writef(os.Stderr, "Error: %v\n", err)
			}
			return
		}
		if err := WriteResult(os.Stdout, res, &flags.ValidateFlags); err != nil {
			Writef(os.Stderr, "Error: %v\n", err)
		}
	}

	w, err := NewWatcher(dirs, flags.Debounce, NewLogger(flags.Verbose))
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	run(ctx)
	if !flags.Quiet {
		Writef(os.Stderr, "Watching %s for changes...\n", strings.Join(dirs, ", "))
	}
	err = w.Run(ctx, func(ctx context.Context, changed []string) {
		if !flags.Quiet {
			Writef(os.Stderr, "\n%d file(s) changed, validating...\n", len(changed))
		}
		run(ctx)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Watcher reports debounced changes to spec and companion files below a
// set of directories.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   parser.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
}

// NewWatcher watches dirs and every directory below them.
func NewWatcher(dirs []string, debounce time.Duration, logger parser.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("commands: creating watcher: %w", err)
	}
	if logger == nil {
		logger = parser.NopLogger{}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
	}
	for _, dir := range dirs {
		if err := w.addRecursive(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("commands: watching %s: %w", dir, err)
		}
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run calls onChange with the sorted changed paths once no further change
// arrived for the debounce interval. It blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string)) error {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	var lastEvent time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				lastEvent = time.Now()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)

		case <-ticker.C:
			if lastEvent.IsZero() || time.Since(lastEvent) < w.debounce {
				continue
			}
			if changed := w.flush(); len(changed) > 0 {
				lastEvent = time.Time{}
				onChange(ctx, changed)
			}
		}
	}
}

// handleEvent records a relevant change and reports whether it was one.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	path := event.Name
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addRecursive(path); err != nil {
				w.logger.Warn("failed to watch new directory", "path", path, "error", err)
			}
			return false
		}
	}
	if !isWatchedFile(path) {
		return false
	}

	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()
	w.logger.Debug("file change detected", "path", path, "op", event.Op.String())
	return true
}

func (w *Watcher) flush() []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	w.pending = make(map[string]fsnotify.Op)
	sort.Strings(changed)
	return changed
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return err
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// isWatchedFile reports whether path is a spec or companion file.
func isWatchedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case batch.SpecExt, ihan.ExtHTML, ihan.ExtJSONLD:
		return true
	}
	return false
}
