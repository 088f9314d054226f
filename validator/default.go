package validator

import (
	"strings"

	"github.com/erraggy/oasgate/oaserrors"
	"github.com/erraggy/oasgate/parser"
)

// Default is the baseline validator: the document must declare an OpenAPI
// 3.x version. It is used when no organizational standard is enforced.
type Default struct{}

// Name implements Validator.
func (Default) Name() string { return "default" }

// ValidateSpec implements Validator.
func (Default) ValidateSpec(doc *parser.ParseResult) error {
	if !strings.HasPrefix(doc.Version, "3") {
		return oaserrors.New(oaserrors.KindUnsupportedVersion,
			"openapi version %q is not supported, expected 3.x", doc.Version)
	}
	return nil
}

var _ Validator = Default{}
