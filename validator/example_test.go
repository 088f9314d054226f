package validator_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/oasgate/oaserrors"
	"github.com/erraggy/oasgate/validator"
)

// ExampleValidate demonstrates the baseline OpenAPI 3 version gate.
func ExampleValidate() {
	dir, _ := os.MkdirTemp("", "oasgate-example")
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "swagger.json")
	_ = os.WriteFile(path, []byte(`{"swagger": "2.0"}`), 0o600)

	err := validator.Validate(validator.Default{}, path)
	fmt.Println(errors.Is(err, oaserrors.ErrUnsupportedVersion))
	fmt.Println(errors.Is(err, oaserrors.ErrValidation))
	// Output:
	// true
	// true
}
