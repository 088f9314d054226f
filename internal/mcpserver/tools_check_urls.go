package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgate/batch"
	"github.com/erraggy/oasgate/jsonld"
	"github.com/erraggy/oasgate/oaserrors"
	"github.com/erraggy/oasgate/validator"
)

type checkURLsInput struct {
	Paths       []string `json:"paths"                 jsonschema:"Spec files, directories or ** globs whose X.jsonld companions are scanned"`
	Concurrency int      `json:"concurrency,omitempty" jsonschema:"URLs probed at once (default from OASGATE_PROBE_CONCURRENCY)"`
	Offset      int      `json:"offset,omitempty"      jsonschema:"Skip the first N failures (for pagination)"`
	Limit       int      `json:"limit,omitempty"       jsonschema:"Maximum number of failures to return (default 100)"`
}

type urlFailure struct {
	URL     string   `json:"url"`
	Files   []string `json:"files"`
	Reason  string   `json:"reason,omitempty"`
	Message string   `json:"message"`
}

type skippedFile struct {
	Path    string `json:"path"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

type checkURLsOutput struct {
	Valid        bool          `json:"valid"`
	FileCount    int           `json:"file_count"`
	URLCount     int           `json:"url_count"`
	FailureCount int           `json:"failure_count"`
	Returned     int           `json:"returned"`
	Failures     []urlFailure  `json:"failures,omitempty"`
	Skipped      []skippedFile `json:"skipped,omitempty"`
}

func handleCheckURLs(ctx context.Context, _ *mcp.CallToolRequest, input checkURLsInput) (*mcp.CallToolResult, checkURLsOutput, error) {
	if len(input.Paths) == 0 {
		return errResult(fmt.Errorf("paths is required")), checkURLsOutput{}, nil
	}
	files, err := batch.Discover(input.Paths)
	if err != nil {
		return errResult(err), checkURLsOutput{}, nil
	}
	if len(files) == 0 {
		return errResult(fmt.Errorf("no spec files match %v", input.Paths)), checkURLsOutput{}, nil
	}

	collector := &jsonld.URLValidator{MaxFileSize: cfg.MaxFileSize, MaxDepth: jsonld.DefaultMaxDepth}
	output := checkURLsOutput{FileCount: len(files)}
	artifacts := makeSlice[validator.Artifact](len(files))
	urls := jsonld.NewURLSet()
	for _, path := range files {
		// Only files whose spec loads get their companion URLs checked.
		err := validator.Validate(collector, path, validator.WithMaxFileSize(cfg.MaxFileSize))
		var artifact validator.Artifact
		if err == nil {
			artifact, err = validator.Collect(collector, path)
		}
		if err != nil {
			output.Skipped = append(output.Skipped, skippedFile{
				Path:    path,
				Kind:    string(oaserrors.KindOf(err)),
				Message: sanitizeError(err),
			})
			continue
		}
		if a, ok := artifact.(jsonld.Artifact); ok {
			for _, set := range a {
				for u := range set {
					urls.Add(u)
				}
			}
		}
		artifacts = append(artifacts, artifact)
	}
	output.URLCount = len(urls)

	concurrency := input.Concurrency
	if concurrency <= 0 {
		concurrency = cfg.ProbeConcurrency
	}
	report := jsonld.PostValidate(ctx, newURLChecker(cfg), artifacts, jsonld.WithProbeConcurrency(concurrency))

	if !report.Empty() {
		output.FailureCount = len(report.Failures)
		output.Failures = makeSlice[urlFailure](len(report.Failures))
		for _, f := range report.Failures {
			output.Failures = append(output.Failures, urlFailure{
				URL:     f.Subject,
				Files:   f.Files,
				Reason:  f.Reason,
				Message: f.Message,
			})
		}
	}
	output.Valid = output.FailureCount == 0 && len(output.Skipped) == 0
	output.Failures = paginate(output.Failures, input.Offset, input.Limit)
	output.Returned = len(output.Failures)
	return nil, output, nil
}
