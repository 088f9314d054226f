package jsonld_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/erraggy/oasgate/jsonld"
	"github.com/erraggy/oasgate/validator"
)

func ExamplePostValidate() {
	checker := jsonld.URLCheckerFunc(func(_ context.Context, url string) error {
		if url == "https://vocab.example/missing" {
			return errors.New("HTTP 404")
		}
		return nil
	})

	artifacts := []validator.Artifact{
		jsonld.Artifact{"company.jsonld": jsonld.NewURLSet("https://vocab.example/missing", "https://vocab.example/ok")},
		jsonld.Artifact{"person.jsonld": jsonld.NewURLSet("https://vocab.example/missing")},
	}

	report := jsonld.PostValidate(context.Background(), checker, artifacts)
	fmt.Print(report.String())
	// Output: Failed to fetch https://vocab.example/missing (found in company.jsonld, person.jsonld)
}
