// Package options provides shared helpers for functional-option validation.
package options

import "github.com/erraggy/oasgate/oaserrors"

// ValidateSingleInputSource returns a *oaserrors.ConfigError unless exactly
// one of sources is true.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}

	switch {
	case count == 0:
		return &oaserrors.ConfigError{Option: "input", Message: noSourceMsg}
	case count > 1:
		return &oaserrors.ConfigError{Option: "input", Value: count, Message: multiSourceMsg}
	}
	return nil
}
