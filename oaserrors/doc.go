// Package oaserrors provides structured error types for the oasgate module.
//
// Import path: github.com/erraggy/oasgate/oaserrors
//
// # Error Types
//
//   - [ValidationError]: a spec file violates a rule; its [Kind] names the rule
//   - [ResourceLimitError]: an input exceeded a size or depth limit
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// [ErrValidation] matches every [ValidationError]. [ErrIHANStandard] matches
// only those raised by IHAN rules. Each [Kind] also has its own sentinel
// ([ErrInvalidJSON], [ErrSchemaMissing], ...) so callers can branch on the
// failure category without a type assertion:
//
//	if errors.Is(err, oaserrors.ErrMultipleEndpoints) {
//	    // spec declares more than one path
//	}
//
// Extract details with errors.As():
//
//	var ve *oaserrors.ValidationError
//	if errors.As(err, &ve) {
//	    fmt.Printf("%s: %s\n", ve.Kind, ve.Message)
//	}
//
// I/O failures are never ValidationErrors; they are returned wrapped, so
// errors.Is(err, fs.ErrNotExist) keeps working.
package oaserrors
