// Package oaserrors provides structured error types for oasgate.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish "this file failed validation"
// from configuration problems, resource limits, and plain I/O failures.
//
// # Error Categories
//
//   - ValidationError: a spec file violates a rule (one Kind per rule)
//   - ResourceLimitError: an input exceeded a configured limit
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	err := validator.Validate(ihan.New(), "api.json")
//	switch {
//	case errors.Is(err, oaserrors.ErrCompanionFileMissing):
//	    // a companion .html or .jsonld file is absent
//	case errors.Is(err, oaserrors.ErrIHANStandard):
//	    // any other IHAN rule violation
//	case errors.Is(err, oaserrors.ErrValidation):
//	    // baseline failures such as invalid JSON
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrValidation matches every ValidationError regardless of kind.
	ErrValidation = errors.New("validation error")

	// ErrIHANStandard matches ValidationErrors raised by IHAN standard rules.
	ErrIHANStandard = errors.New("IHAN standard violation")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// Kind identifies which rule a ValidationError violates.
type Kind string

// Structural kinds, enforced for every spec file.
const (
	KindInvalidJSON        Kind = "invalid-json"
	KindUnsupportedVersion Kind = "unsupported-openapi-version"
)

// IHAN standard kinds.
const (
	KindNoEndpoints                Kind = "no-endpoints"
	KindMultipleEndpoints          Kind = "multiple-endpoints-not-allowed"
	KindPostMethodMissing          Kind = "post-method-missing"
	KindOnlyPostAllowed            Kind = "only-post-allowed"
	KindRequestBodyMissing         Kind = "request-body-missing"
	KindResponseBodyMissing        Kind = "response-body-missing"
	KindWrongContentType           Kind = "wrong-content-type"
	KindSchemaMissing              Kind = "schema-missing"
	KindAuthorizationHeaderMissing Kind = "authorization-header-missing"
	KindAuthProviderHeaderMissing  Kind = "auth-provider-header-missing"
	KindCompanionFileMissing       Kind = "companion-file-missing"
	KindCompanionFileEmpty         Kind = "companion-file-empty"
	KindCompanionFileInvalidJSON   Kind = "companion-file-invalid-json"
)

// Per-kind sentinels. errors.Is(err, ErrSchemaMissing) is true for any
// ValidationError whose Kind is KindSchemaMissing.
var (
	ErrInvalidJSON                = errors.New(string(KindInvalidJSON))
	ErrUnsupportedVersion         = errors.New(string(KindUnsupportedVersion))
	ErrNoEndpoints                = errors.New(string(KindNoEndpoints))
	ErrMultipleEndpoints          = errors.New(string(KindMultipleEndpoints))
	ErrPostMethodMissing          = errors.New(string(KindPostMethodMissing))
	ErrOnlyPostAllowed            = errors.New(string(KindOnlyPostAllowed))
	ErrRequestBodyMissing         = errors.New(string(KindRequestBodyMissing))
	ErrResponseBodyMissing        = errors.New(string(KindResponseBodyMissing))
	ErrWrongContentType           = errors.New(string(KindWrongContentType))
	ErrSchemaMissing              = errors.New(string(KindSchemaMissing))
	ErrAuthorizationHeaderMissing = errors.New(string(KindAuthorizationHeaderMissing))
	ErrAuthProviderHeaderMissing  = errors.New(string(KindAuthProviderHeaderMissing))
	ErrCompanionFileMissing       = errors.New(string(KindCompanionFileMissing))
	ErrCompanionFileEmpty         = errors.New(string(KindCompanionFileEmpty))
	ErrCompanionFileInvalidJSON   = errors.New(string(KindCompanionFileInvalidJSON))
)

var kindSentinels = map[Kind]error{
	KindInvalidJSON:                ErrInvalidJSON,
	KindUnsupportedVersion:         ErrUnsupportedVersion,
	KindNoEndpoints:                ErrNoEndpoints,
	KindMultipleEndpoints:          ErrMultipleEndpoints,
	KindPostMethodMissing:          ErrPostMethodMissing,
	KindOnlyPostAllowed:            ErrOnlyPostAllowed,
	KindRequestBodyMissing:         ErrRequestBodyMissing,
	KindResponseBodyMissing:        ErrResponseBodyMissing,
	KindWrongContentType:           ErrWrongContentType,
	KindSchemaMissing:              ErrSchemaMissing,
	KindAuthorizationHeaderMissing: ErrAuthorizationHeaderMissing,
	KindAuthProviderHeaderMissing:  ErrAuthProviderHeaderMissing,
	KindCompanionFileMissing:       ErrCompanionFileMissing,
	KindCompanionFileEmpty:         ErrCompanionFileEmpty,
	KindCompanionFileInvalidJSON:   ErrCompanionFileInvalidJSON,
}

// Sentinel returns the sentinel error for the kind, or nil for an unknown kind.
func (k Kind) Sentinel() error {
	return kindSentinels[k]
}

// IsIHAN reports whether the kind belongs to the IHAN standard group.
func (k Kind) IsIHAN() bool {
	switch k {
	case KindInvalidJSON, KindUnsupportedVersion:
		return false
	}
	_, known := kindSentinels[k]
	return known
}

// Kinds returns every known kind, structural kinds first.
func Kinds() []Kind {
	return []Kind{
		KindInvalidJSON,
		KindUnsupportedVersion,
		KindNoEndpoints,
		KindMultipleEndpoints,
		KindPostMethodMissing,
		KindOnlyPostAllowed,
		KindRequestBodyMissing,
		KindResponseBodyMissing,
		KindWrongContentType,
		KindSchemaMissing,
		KindAuthorizationHeaderMissing,
		KindAuthProviderHeaderMissing,
		KindCompanionFileMissing,
		KindCompanionFileEmpty,
		KindCompanionFileInvalidJSON,
	}
}

// ValidationError represents a rule violation in a spec file or one of its
// companion files.
type ValidationError struct {
	// Kind is the violated rule
	Kind Kind
	// Path is the file the violation was found in (may be empty)
	Path string
	// Message describes the violation
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := string(e.Kind)
	if msg == "" {
		msg = "validation error"
	}
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// Matches ErrValidation, the sentinel of e.Kind, and ErrIHANStandard for IHAN kinds.
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	if target == ErrIHANStandard {
		return e.Kind.IsIHAN()
	}
	if s := e.Kind.Sentinel(); s != nil && target == s {
		return true
	}
	return false
}

// New returns a ValidationError of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithPath returns a copy of e with Path set. The receiver is left unchanged.
func (e *ValidationError) WithPath(path string) *ValidationError {
	c := *e
	c.Path = path
	return &c
}

// KindOf returns the Kind of the first ValidationError in err's chain,
// or "" when err is not a validation failure.
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return ""
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "file_size", "nesting_depth"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
