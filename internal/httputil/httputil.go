// Package httputil provides HTTP-related constants and helpers.
package httputil

// HTTP Method Constants, as they appear as Path Item keys.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// OperationMethods lists every Path Item key that declares an operation,
// in the order the OpenAPI specification documents them.
var OperationMethods = []string{
	MethodGet,
	MethodPut,
	MethodPost,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodPatch,
	MethodTrace,
}

// MediaTypeJSON is the only media type accepted for IHAN request and response models.
const MediaTypeJSON = "application/json"

// Status code boundaries
const (
	MinStatusCode        = 100 // Minimum valid HTTP status code
	MaxStatusCode        = 599 // Maximum valid HTTP status code
	MinClientErrorStatus = 400 // First status treated as a failed fetch
)

// IsOperationMethod reports whether key is a Path Item operation key.
func IsOperationMethod(key string) bool {
	for _, m := range OperationMethods {
		if m == key {
			return true
		}
	}
	return false
}

// IsSuccessStatus reports whether a final response status counts as a
// successful fetch: any valid status below 400.
func IsSuccessStatus(code int) bool {
	return code >= MinStatusCode && code < MinClientErrorStatus
}
