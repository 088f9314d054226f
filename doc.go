// Package oasgate validates OpenAPI 3.x specification files in batch, against
// a baseline rule set or the IHAN organizational standard.
//
// A run takes a set of spec files (JSON), checks each one independently
// through an ordered list of stages, and then gives stages with a batch hook
// a single pass over the data they collected from every file that passed.
// The built-in batch hook probes every URL referenced from the files'
// JSON-LD companions once, no matter how many files reference it.
//
// # Overview
//
// The module consists of these packages:
//
//   - oaserrors: error taxonomy, one Kind and sentinel per rule
//   - parser: JSON loading with size limits, plus helpers for walking the decoded tree
//   - validator: the Validator contract, the Default validator and Composite
//   - ihan: the IHAN rule engine and companion file checks
//   - jsonld: URL extraction from JSON-LD companions and batch URL probing
//   - batch: file discovery and the concurrent batch runner
//
// # Quick Start
//
// Validate a single file against the IHAN standard:
//
//	import (
//		"github.com/erraggy/oasgate/ihan"
//		"github.com/erraggy/oasgate/validator"
//	)
//
//	if err := validator.Validate(ihan.New(), "BasicInfo.json"); err != nil {
//		fmt.Println(err) // e.g. "authorization-header-missing in BasicInfo.json: ..."
//	}
//
// Validate a directory, including URL reachability:
//
//	files, err := batch.Discover([]string{"specs/"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	runner, err := batch.New(batch.WithStages(
//		validator.Stage{Validator: validator.NewComposite(validator.Default{}, ihan.New())},
//		jsonld.NewStage(jsonld.NewHTTPChecker(0), jsonld.WithProbeConcurrency(4)),
//	))
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := runner.Run(ctx, files)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range result.Failed() {
//		fmt.Printf("%s: %s\n", f.Path, f.Error)
//	}
//	for _, r := range result.Reports {
//		fmt.Print(r.String())
//	}
//
// # Companion Files
//
// For a spec file X.json the IHAN standard requires X.html (human readable,
// not blank) and X.jsonld (valid, non-empty JSON) in the same directory.
//
// # Errors
//
// Every rule violation is an *oaserrors.ValidationError. Use errors.Is with
// the per-kind sentinels, or with oaserrors.ErrIHANStandard to match any IHAN
// rule:
//
//	if errors.Is(err, oaserrors.ErrCompanionFileMissing) {
//		// X.html or X.jsonld is absent
//	}
//
// # Command Line and MCP
//
// The oasgate command (cmd/oasgate) wraps the batch runner with validate,
// watch and mcp subcommands. Settings come from flags, .oasgate.yaml and
// OASGATE_* environment variables.
package oasgate
