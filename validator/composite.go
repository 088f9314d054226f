package validator

import (
	"strings"

	"github.com/erraggy/oasgate/parser"
)

// Composite runs several validators as one, in order, stopping at the first
// failure. All ValidateSpec checks run before any CheckFiles check.
type Composite struct {
	validators []Validator
}

// NewComposite creates a Composite of the given validators.
func NewComposite(validators ...Validator) *Composite {
	return &Composite{validators: validators}
}

// Name joins the member names with "+".
func (c *Composite) Name() string {
	names := make([]string, 0, len(c.validators))
	for _, v := range c.validators {
		names = append(names, v.Name())
	}
	return strings.Join(names, "+")
}

// ValidateSpec implements Validator.
func (c *Composite) ValidateSpec(doc *parser.ParseResult) error {
	for _, v := range c.validators {
		if err := v.ValidateSpec(doc); err != nil {
			return err
		}
	}
	return nil
}

// CheckFiles implements FileChecker for members that have file checks.
func (c *Composite) CheckFiles(specPath string) error {
	for _, v := range c.validators {
		fc, ok := v.(FileChecker)
		if !ok {
			continue
		}
		if err := fc.CheckFiles(specPath); err != nil {
			return err
		}
	}
	return nil
}

// Validators returns the members of the composite.
func (c *Composite) Validators() []Validator {
	return c.validators
}

var (
	_ Validator   = (*Composite)(nil)
	_ FileChecker = (*Composite)(nil)
)
