// Package batch drives validation of many spec files in one run.
//
// A Runner holds an ordered list of validator.Stage values. Every file goes
// through the stages in order and stops at its first failure, so a later
// stage never sees a file an earlier stage rejected. After the last file,
// each stage with a PostValidate hook runs once over the artifacts of the
// files that passed:
//
//	r, err := batch.New(
//		batch.WithStages(
//			validator.Stage{Validator: validator.NewComposite(validator.Default{}, ihan.New())},
//			jsonld.NewStage(jsonld.NewHTTPChecker(0)),
//		),
//		batch.WithConcurrency(4),
//	)
//	if err != nil {
//		return err
//	}
//	files, err := batch.Discover([]string{"specs/**/*.json"})
//	if err != nil {
//		return err
//	}
//	res, err := r.Run(ctx, files)
//
// Per-file failures are recorded in Result.Files and batch-level findings in
// Result.Reports; neither makes Run return an error.
package batch
