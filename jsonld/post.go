package jsonld

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oasgate/parser"
	"github.com/erraggy/oasgate/validator"
)

// Option configures PostValidate.
type Option func(*postConfig)

type postConfig struct {
	concurrency int
	logger      parser.Logger
}

// WithProbeConcurrency probes up to n URLs at once. Values below 1 mean 1.
// Default: 1
func WithProbeConcurrency(n int) Option {
	return func(cfg *postConfig) {
		cfg.concurrency = max(n, 1)
	}
}

// WithLogger sets the logger for per-URL debug output.
// Default: parser.NopLogger
func WithLogger(l parser.Logger) Option {
	return func(cfg *postConfig) {
		if l == nil {
			l = parser.NopLogger{}
		}
		cfg.logger = l
	}
}

// PostValidate probes every distinct URL found in artifacts exactly once and
// reports each unreachable URL together with every file that references it.
//
// Referencing files are listed in artifact order and report lines are sorted
// by URL. Probe failures never stop the pass. When ctx is done, URLs not yet
// probed are reported with the context error. The result is nil when every
// URL is reachable.
func PostValidate(ctx context.Context, checker URLChecker, artifacts []validator.Artifact, opts ...Option) *validator.BatchReport {
	cfg := &postConfig{concurrency: 1, logger: parser.NopLogger{}}
	for _, opt := range opts {
		opt(cfg)
	}

	refs := invert(artifacts, cfg.logger)
	urls := make([]string, 0, len(refs))
	for u := range refs {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	results := make([]error, len(urls))
	var g errgroup.Group
	g.SetLimit(cfg.concurrency)
	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			results[i] = err
			continue
		}
		g.Go(func() error {
			results[i] = checker.CheckURL(ctx, u)
			cfg.logger.Debug("probed url", "url", u, "ok", results[i] == nil)
			return nil
		})
	}
	_ = g.Wait()

	report := &validator.BatchReport{Validator: Name}
	for i, u := range urls {
		if results[i] == nil {
			continue
		}
		files := refs[u]
		report.Failures = append(report.Failures, validator.Failure{
			Subject: u,
			Files:   files,
			Reason:  results[i].Error(),
			Message: fmt.Sprintf("Failed to fetch %s (found in %s)", u, strings.Join(files, ", ")),
		})
	}
	cfg.logger.Info("url post-validation finished", "urls", len(urls), "failed", len(report.Failures))
	if report.Empty() {
		return nil
	}
	return report
}

// invert maps each URL to the companion files referencing it, in artifact
// order. A plain map[string]URLSet counts as an Artifact; nil artifacts and
// artifacts of other types are skipped.
func invert(artifacts []validator.Artifact, logger parser.Logger) map[string][]string {
	refs := make(map[string][]string)
	for _, a := range artifacts {
		var art Artifact
		switch v := a.(type) {
		case Artifact:
			art = v
		case map[string]URLSet:
			art = v
		case nil:
			continue
		default:
			logger.Debug("skipping artifact", "type", fmt.Sprintf("%T", a))
			continue
		}
		paths := make([]string, 0, len(art))
		for p := range art {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			for u := range art[p] {
				refs[u] = append(refs[u], p)
			}
		}
	}
	return refs
}

// NewStage returns the batch stage that collects URLs per file and probes
// them with checker after the batch.
func NewStage(checker URLChecker, opts ...Option) validator.Stage {
	return validator.Stage{
		Validator: New(),
		PostValidate: func(ctx context.Context, artifacts []validator.Artifact) *validator.BatchReport {
			return PostValidate(ctx, checker, artifacts, opts...)
		},
	}
}
