// Package parser loads OpenAPI 3.x documents into the object model the
// differ compares.
//
// The parser accepts YAML or JSON input from a file, an io.Reader, or a byte
// slice. Only OAS 3.x documents are accepted; anything else is reported as an
// [oaserrors.ParseError].
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Version, len(result.Document.Paths))
//
// # References
//
// $ref values are kept as written. [Resolver] looks them up on demand in the
// document's component table, so that callers can tell referenced values
// apart from inline ones:
//
//	r := parser.NewResolver(result.Document)
//	pet, err := r.SchemaByRef("#/components/schemas/Pet")
//
// Only local "#/components/..." references are supported. An unknown
// component, an external reference, or a chain of references that never
// reaches a value yields an [oaserrors.ReferenceError].
//
// # Specification Extensions
//
// Every object keeps its unrecognized keys in Extra. [Extensions] filters
// that map down to the "x-" keys.
package parser
