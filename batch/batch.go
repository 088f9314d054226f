package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oasgate/oaserrors"
	"github.com/erraggy/oasgate/parser"
	"github.com/erraggy/oasgate/validator"
)

// Runner validates a batch of spec files through a fixed list of stages.
type Runner struct {
	stages      []validator.Stage
	concurrency int
	logger      parser.Logger
	maxFileSize int64
}

// New creates a Runner.
func New(opts ...Option) (*Runner, error) {
	r := &Runner{
		stages:      []validator.Stage{{Validator: validator.Default{}}},
		concurrency: 1,
		logger:      parser.NopLogger{},
		maxFileSize: parser.DefaultMaxFileSize,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, &oaserrors.ConfigError{Option: "batch", Message: "invalid options", Cause: err}
		}
	}
	return r, nil
}

// Stages returns the configured stages.
func (r *Runner) Stages() []validator.Stage {
	return r.stages
}

// Run validates every file in paths.
//
// Each file goes through the stages in order: validator.Validate, then
// validator.Collect. The first failure stops that file. Once every file is
// done, each stage's PostValidate hook runs once with the artifacts of the
// files that passed, in input order.
//
// File failures and batch reports are part of the Result. Run itself only
// fails when ctx is done before the batch finished.
func (r *Runner) Run(ctx context.Context, paths []string) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID: uuid.New().String()[:8],
		Files: make([]FileResult, len(paths)),
	}
	log := r.logger.With("run_id", res.RunID)
	log.Info("batch started", "files", len(paths), "stages", len(r.stages), "concurrency", r.concurrency)

	// One slot per file keeps artifact order equal to input order.
	artifacts := make([][]validator.Artifact, len(paths))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res.Files[i], artifacts[i] = r.runFile(ctx, log, path)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch: run %s canceled: %w", res.RunID, err)
	}

	for si, stage := range r.stages {
		if stage.PostValidate == nil {
			continue
		}
		var collected []validator.Artifact
		for _, fileArtifacts := range artifacts {
			if si < len(fileArtifacts) && fileArtifacts[si] != nil {
				collected = append(collected, fileArtifacts[si])
			}
		}
		report := stage.PostValidate(ctx, collected)
		if report.Empty() {
			log.Debug("post-validation passed", "stage", stage.Name(), "artifacts", len(collected))
			continue
		}
		log.Warn("post-validation failed", "stage", stage.Name(), "failures", len(report.Failures))
		res.Reports = append(res.Reports, report)
	}

	res.Duration = time.Since(start)
	log.Info("batch finished",
		"passed", res.Passed(),
		"failed", len(res.Failed()),
		"reports", len(res.Reports),
		"duration", res.Duration)
	return res, nil
}

// runFile runs every stage on one file and returns its outcome together
// with one artifact slot per stage.
func (r *Runner) runFile(ctx context.Context, log parser.Logger, path string) (FileResult, []validator.Artifact) {
	log = log.With("path", path)
	artifacts := make([]validator.Artifact, len(r.stages))

	for si, stage := range r.stages {
		if err := ctx.Err(); err != nil {
			return failed(path, stage, err), nil
		}
		err := validator.Validate(stage.Validator, path,
			validator.WithMaxFileSize(r.maxFileSize),
			validator.WithLogger(log))
		if err == nil {
			artifacts[si], err = validator.Collect(stage.Validator, path)
		}
		if err != nil {
			log.Info("file failed", "stage", stage.Name(), "kind", oaserrors.KindOf(err), "error", err)
			return failed(path, stage, err), nil
		}
	}

	log.Debug("file passed")
	return FileResult{Path: path}, artifacts
}

func failed(path string, stage validator.Stage, err error) FileResult {
	return FileResult{
		Path:  path,
		Stage: stage.Name(),
		Kind:  oaserrors.KindOf(err),
		Error: err.Error(),
		Err:   err,
	}
}
