// Package parser loads OpenAPI spec files into generic JSON trees.
//
// Validators in oasgate work on the raw decoded document rather than a typed
// model: a spec that breaks the IHAN standard may still be perfectly valid
// OpenAPI, and the rules need to see exactly what the author wrote.
//
// # Basic Usage
//
//	result, err := parser.New().Parse("api.json")
//	if err != nil {
//		var ve *oaserrors.ValidationError
//		if errors.As(err, &ve) {
//			// ve.Kind == oaserrors.KindInvalidJSON
//		}
//		return err
//	}
//	paths := parser.GetMap(result.Data, "paths")
//
// # Tree Accessors
//
// [AsMap], [GetMap], [GetString], [GetSlice] and [Lookup] navigate the tree
// without type assertions at every step. [IsEmpty] reports whether a value
// carries content, treating nil, false, 0, "" and empty containers as empty.
//
// # Resource Limits
//
// Inputs larger than [Parser.MaxFileSize] (10MB by default) are rejected with
// a *oaserrors.ResourceLimitError before decoding.
package parser
