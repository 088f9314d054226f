// Package ihan implements the IHAN API standard as a validator.
//
// An IHAN-conformant spec describes a single data product: exactly one path
// with a single POST operation, request and response models referenced from
// #/components/schemas/ as application/json, and the Authorization and
// X-Authorization-Provider header parameters. Every spec file also ships
// with two companions sharing its stem:
//
//	company.json    the OpenAPI document
//	company.html    human-readable documentation (must not be blank)
//	company.jsonld  linked-data context (must be non-empty JSON)
//
// Rules are checked in a fixed order and the first violation is returned
// as an *oaserrors.ValidationError, so a failing file always reports one
// stable kind:
//
//	err := validator.Validate(ihan.New(), "company.json")
//	if errors.Is(err, oaserrors.ErrIHANStandard) {
//		fmt.Println(oaserrors.KindOf(err))
//	}
//
// Header names are compared with Unicode case folding. Parameters declared
// on the path item count as well as those on the operation.
package ihan
