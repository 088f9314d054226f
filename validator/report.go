package validator

import (
	"fmt"
	"strings"
)

// BatchReport is the outcome of a failed post-validation pass. It belongs to
// the batch as a whole, not to any single file.
type BatchReport struct {
	// Validator names the stage that produced the report.
	Validator string `json:"validator" yaml:"validator"`
	// Failures lists each failed subject in a stable order.
	Failures []Failure `json:"failures" yaml:"failures"`
}

// Failure is one line of a BatchReport.
type Failure struct {
	// Subject is what failed, such as a URL.
	Subject string `json:"subject" yaml:"subject"`
	// Files lists every file that references Subject.
	Files []string `json:"files" yaml:"files"`
	// Reason is the underlying error text.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	// Message is the human-readable report line.
	Message string `json:"message" yaml:"message"`
}

// String returns every failure message on its own line.
func (r *BatchReport) String() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, f := range r.Failures {
		b.WriteString(f.Message)
		b.WriteByte('\n')
	}
	return b.String()
}

// Empty reports whether the report has no failures.
func (r *BatchReport) Empty() bool {
	return r == nil || len(r.Failures) == 0
}

// Error implements error so a report can be returned where an error is expected.
func (r *BatchReport) Error() string {
	return fmt.Sprintf("%s post-validation failed: %d failure(s)", r.Validator, len(r.Failures))
}
