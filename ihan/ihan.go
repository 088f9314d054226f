package ihan

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"github.com/erraggy/oasgate/internal/httputil"
	"github.com/erraggy/oasgate/oaserrors"
	"github.com/erraggy/oasgate/parser"
)

// Header parameters every IHAN POST operation must declare.
const (
	HeaderAuthorization         = "authorization"
	HeaderAuthorizationProvider = "x-authorization-provider"
)

// SchemaRefPrefix is where request and response models must be defined.
const SchemaRefPrefix = "#/components/schemas/"

// Companion file extensions.
const (
	ExtHTML   = ".html"
	ExtJSONLD = ".jsonld"
)

// Validator enforces the IHAN standard.
type Validator struct {
	// MaxFileSize limits companion file reads.
	// Default: parser.DefaultMaxFileSize
	MaxFileSize int64
}

// New creates an IHAN validator with default settings.
func New() *Validator {
	return &Validator{MaxFileSize: parser.DefaultMaxFileSize}
}

// Name implements validator.Validator.
func (v *Validator) Name() string { return "ihan" }

// ValidateSpec checks that doc describes exactly one POST endpoint with
// component-schema request and response models and the authorization
// headers. The first violation found is returned.
func (v *Validator) ValidateSpec(doc *parser.ParseResult) error {
	paths := parser.GetMap(doc.Data, "paths")
	if len(paths) == 0 {
		return oaserrors.New(oaserrors.KindNoEndpoints, "no endpoints defined in \"paths\"")
	}
	if len(paths) > 1 {
		return oaserrors.New(oaserrors.KindMultipleEndpoints, "only one endpoint allowed, found %d", len(paths))
	}

	var pathName string
	var pathItem map[string]any
	for name, item := range paths {
		pathName, pathItem = name, parser.AsMap(item)
	}

	if _, ok := pathItem[httputil.MethodPost]; !ok {
		return oaserrors.New(oaserrors.KindPostMethodMissing, "POST method is missing for %s", pathName)
	}
	for _, method := range httputil.OperationMethods {
		if method == httputil.MethodPost {
			continue
		}
		if _, ok := pathItem[method]; ok {
			return oaserrors.New(oaserrors.KindOnlyPostAllowed,
				"only POST method allowed for %s, found %s", pathName, strings.ToUpper(method))
		}
	}
	post := parser.AsMap(pathItem[httputil.MethodPost])

	schemas := parser.AsMap(parser.Lookup(doc.Data, "components", "schemas"))
	if len(schemas) == 0 {
		return oaserrors.New(oaserrors.KindSchemaMissing, "no \"components/schemas\" section defined")
	}

	// A requestBody without inline content (absent, null or a $ref to
	// components/requestBodies) is not checked.
	if body := parser.GetMap(post, "requestBody"); !parser.IsEmpty(body["content"]) {
		if err := validateComponentSchema(body, schemas); err != nil {
			return err
		}
	}

	success := parser.AsMap(parser.Lookup(post, "responses", "200"))
	if len(success) == 0 || parser.IsEmpty(success["content"]) {
		return oaserrors.New(oaserrors.KindResponseBodyMissing,
			"POST %s must define a 200 response with content", pathName)
	}
	if err := validateComponentSchema(success, schemas); err != nil {
		return err
	}

	return validateHeaders(pathItem, post)
}

// validateComponentSchema checks that body (a Request Body or Response
// object) describes its model as an application/json reference to an
// existing component schema.
func validateComponentSchema(body, schemas map[string]any) error {
	media := parser.AsMap(parser.GetMap(body, "content")[httputil.MediaTypeJSON])
	if len(media) == 0 {
		return oaserrors.New(oaserrors.KindWrongContentType,
			"model description must be in %s format", httputil.MediaTypeJSON)
	}

	ref := parser.GetString(parser.GetMap(media, "schema"), "$ref")
	if ref == "" {
		return oaserrors.New(oaserrors.KindSchemaMissing,
			"request or response model is missing from \"schema/$ref\" section")
	}
	if !strings.HasPrefix(ref, SchemaRefPrefix) {
		return oaserrors.New(oaserrors.KindSchemaMissing,
			"request and response models must be defined at %q section, got %q", SchemaRefPrefix, ref)
	}

	name, _, _ := strings.Cut(strings.TrimPrefix(ref, SchemaRefPrefix), "/")
	if parser.IsEmpty(schemas[name]) {
		return oaserrors.New(oaserrors.KindSchemaMissing, "component schema is missed for %s", name)
	}
	return nil
}

// validateHeaders requires both authorization header parameters, compared
// by Unicode case folding. Path-level parameters apply to the operation too.
func validateHeaders(pathItem, post map[string]any) error {
	fold := cases.Fold()
	headers := make(map[string]bool)
	for _, params := range [][]any{parser.GetSlice(pathItem, "parameters"), parser.GetSlice(post, "parameters")} {
		for _, p := range params {
			param := parser.AsMap(p)
			if parser.GetString(param, "in") != "header" {
				continue
			}
			headers[fold.String(parser.GetString(param, "name"))] = true
		}
	}

	if !headers[fold.String(HeaderAuthorization)] {
		return oaserrors.New(oaserrors.KindAuthorizationHeaderMissing,
			"header parameter %q is required", "Authorization")
	}
	if !headers[fold.String(HeaderAuthorizationProvider)] {
		return oaserrors.New(oaserrors.KindAuthProviderHeaderMissing,
			"header parameter %q is required", "X-Authorization-Provider")
	}
	return nil
}

// CheckFiles requires the human-readable and linked-data companions of
// specPath: <stem>.html must exist and not be blank, <stem>.jsonld must
// exist, parse as JSON and not be empty.
func (v *Validator) CheckFiles(specPath string) error {
	htmlPath, jsonldPath := CompanionPaths(specPath)
	p := &parser.Parser{MaxFileSize: v.MaxFileSize}

	html, err := readCompanion(p, htmlPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(html)) == "" {
		return companionEmpty(htmlPath)
	}

	data, err := readCompanion(p, jsonldPath)
	if err != nil {
		return err
	}
	content, err := parser.DecodeJSON(data)
	if err != nil {
		return &oaserrors.ValidationError{
			Kind:    oaserrors.KindCompanionFileInvalidJSON,
			Path:    jsonldPath,
			Message: "failed to parse " + jsonldPath,
			Cause:   err,
		}
	}
	if parser.IsEmpty(content) {
		return companionEmpty(jsonldPath)
	}
	return nil
}

// CompanionPaths returns the .html and .jsonld paths that belong to specPath.
func CompanionPaths(specPath string) (htmlPath, jsonldPath string) {
	stem := strings.TrimSuffix(specPath, filepath.Ext(specPath))
	return stem + ExtHTML, stem + ExtJSONLD
}

func readCompanion(p *parser.Parser, path string) ([]byte, error) {
	data, err := p.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &oaserrors.ValidationError{
			Kind:    oaserrors.KindCompanionFileMissing,
			Path:    path,
			Message: "missing " + path,
		}
	}
	return data, err
}

func companionEmpty(path string) error {
	return &oaserrors.ValidationError{
		Kind:    oaserrors.KindCompanionFileEmpty,
		Path:    path,
		Message: "make sure " + path + " is not empty",
	}
}
