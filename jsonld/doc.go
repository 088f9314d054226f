// Package jsonld checks that the URLs referenced by JSON-LD companion files
// are reachable.
//
// Checking happens in two phases. Per file, URLValidator reads the .jsonld
// companion of a spec and returns an Artifact holding every http(s) string
// value found in its nested objects. After the batch, PostValidate inverts
// the artifacts into a URL to files index and probes each distinct URL
// exactly once, so a vocabulary shared by many specs costs one request:
//
//	stage := jsonld.NewStage(jsonld.NewHTTPChecker(10*time.Second),
//		jsonld.WithProbeConcurrency(8))
//
// The resulting *validator.BatchReport has one line per unreachable URL:
//
//	Failed to fetch https://example.com/vocab (found in a.jsonld, b.jsonld)
//
// Supply a custom URLChecker to control transport, timeouts and retries.
package jsonld
