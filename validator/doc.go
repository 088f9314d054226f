// Package validator defines the contract shared by every oasgate validation
// stage and the baseline Default validator.
//
// # Lifecycle
//
// A validation run has two phases:
//
//  1. Per file: [Validate] reads and decodes the spec, calls
//     [Validator.ValidateSpec], and then [FileChecker.CheckFiles] when the
//     validator has filesystem side checks. If that succeeds, [Collect]
//     gathers the file's [Artifact] from an [ArtifactCollector].
//  2. Per batch: once every file was processed, the stage's
//     [PostValidateFunc] receives the ordered artifacts and returns a
//     [BatchReport], or nil when the batch passed.
//
// Failures in phase 1 are taxonomy errors from package oaserrors and stop
// that file immediately; other files are unaffected and a failed file
// contributes no artifact. A BatchReport never invalidates an individual file.
//
// # Writing a Validator
//
// Only Name and ValidateSpec are required:
//
//	type titled struct{}
//
//	func (titled) Name() string { return "titled" }
//
//	func (titled) ValidateSpec(doc *parser.ParseResult) error {
//		if parser.GetString(parser.GetMap(doc.Data, "info"), "title") == "" {
//			return oaserrors.New(oaserrors.KindSchemaMissing, "info.title is required")
//		}
//		return nil
//	}
//
// Checks that read sibling files go in CheckFiles, so invalid JSON is always
// reported before structural problems, and structural problems before
// missing files.
//
// # Composition
//
// [Composite] runs several validators on the same file as one. Package batch
// drives whole runs over many files and stages.
package validator
