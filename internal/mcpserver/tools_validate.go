package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgate/batch"
	"github.com/erraggy/oasgate/internal/config"
	"github.com/erraggy/oasgate/internal/options"
	"github.com/erraggy/oasgate/oaserrors"
	"github.com/erraggy/oasgate/parser"
	"github.com/erraggy/oasgate/validator"
)

// inlineSourceName stands in for the file path of inline content.
const inlineSourceName = "inline.json"

type validateInput struct {
	Paths     []string `json:"paths,omitempty"      jsonschema:"Spec files, directories or ** globs to validate"`
	Content   string   `json:"content,omitempty"    jsonschema:"Inline spec JSON to validate instead of paths. Companion files are not checked."`
	Standard  string   `json:"standard,omitempty"   jsonschema:"Rule set: default or ihan"`
	CheckURLs *bool    `json:"check_urls,omitempty" jsonschema:"Probe every URL found in the JSON-LD companions"`
	Offset    int      `json:"offset,omitempty"     jsonschema:"Skip the first N file results (for pagination)"`
	Limit     int      `json:"limit,omitempty"      jsonschema:"Maximum number of file results to return (default 100)"`
}

type fileOutput struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Stage   string `json:"stage,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

type validateOutput struct {
	Valid       bool                     `json:"valid"`
	RunID       string                   `json:"run_id,omitempty"`
	Standard    string                   `json:"standard"`
	FileCount   int                      `json:"file_count"`
	FailedCount int                      `json:"failed_count"`
	Returned    int                      `json:"returned"`
	Files       []fileOutput             `json:"files,omitempty"`
	Reports     []*validator.BatchReport `json:"reports,omitempty"`
}

func handleValidate(ctx context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	if err := options.ValidateSingleInputSource(
		"must provide paths or content",
		"provide either paths or content, not both",
		len(input.Paths) > 0, input.Content != "",
	); err != nil {
		return errResult(err), validateOutput{}, nil
	}

	c, err := toolConfig(input.Standard, input.CheckURLs)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	var output validateOutput
	if input.Content != "" {
		output = validateInline(c, input.Content)
	} else {
		output, err = validatePaths(ctx, c, input.Paths)
		if err != nil {
			return errResult(err), validateOutput{}, nil
		}
	}

	output.Files = paginate(output.Files, input.Offset, input.Limit)
	output.Returned = len(output.Files)
	return nil, output, nil
}

// toolConfig applies per-call overrides to a copy of the server defaults.
func toolConfig(standard string, checkURLs *bool) (*config.Config, error) {
	c := *cfg.Config
	if standard != "" {
		c.Standard = standard
	}
	if checkURLs != nil {
		c.CheckURLs = *checkURLs
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func validatePaths(ctx context.Context, c *config.Config, patterns []string) (validateOutput, error) {
	files, err := batch.Discover(patterns)
	if err != nil {
		return validateOutput{}, err
	}
	if len(files) == 0 {
		return validateOutput{}, fmt.Errorf("no spec files match %v", patterns)
	}

	runner, err := c.Runner(newURLChecker(cfg), nil)
	if err != nil {
		return validateOutput{}, err
	}
	res, err := runner.Run(ctx, files)
	if err != nil {
		return validateOutput{}, err
	}

	output := validateOutput{
		Valid:     res.OK(),
		RunID:     res.RunID,
		Standard:  c.Standard,
		FileCount: len(res.Files),
		Reports:   res.Reports,
	}
	output.Files = makeSlice[fileOutput](len(res.Files))
	for _, f := range res.Files {
		if !f.OK() {
			output.FailedCount++
		}
		output.Files = append(output.Files, fileOutput{
			Path:    f.Path,
			Valid:   f.OK(),
			Stage:   f.Stage,
			Kind:    string(f.Kind),
			Message: f.Error,
		})
	}
	return output, nil
}

// validateInline checks content against the per-file rules only.
func validateInline(c *config.Config, content string) validateOutput {
	rules := c.Rules()
	result := fileOutput{Path: inlineSourceName, Valid: true}

	doc, err := parser.ParseWithOptions(
		parser.WithBytes([]byte(content)),
		parser.WithMaxFileSize(cfg.MaxInlineSize),
		parser.WithSourceName(inlineSourceName),
	)
	if err == nil {
		err = rules.ValidateSpec(doc)
	}
	if err != nil {
		result = fileOutput{
			Path:    inlineSourceName,
			Stage:   rules.Name(),
			Kind:    string(oaserrors.KindOf(err)),
			Message: sanitizeError(err),
		}
	}

	output := validateOutput{
		Valid:     result.Valid,
		Standard:  c.Standard,
		FileCount: 1,
		Files:     []fileOutput{result},
	}
	if !result.Valid {
		output.FailedCount = 1
	}
	return output
}
