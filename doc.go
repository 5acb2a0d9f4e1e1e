// Package oascompat compares two versions of an OpenAPI 3.x contract and
// classifies every difference by its impact on existing clients.
//
// # Overview
//
// The module consists of these packages:
//
//   - parser: Load OAS 3.0 and 3.1 documents (YAML or JSON) and resolve local $ref pointers
//   - differ: Build a severity-classified change tree from a source and a target document
//   - oaserrors: Typed errors shared by parser and differ, usable with errors.Is and errors.As
//
// The command-line tool lives in cmd/oascompat and also serves the comparison
// engine to MCP (Model Context Protocol) clients.
//
// # Severity
//
// Every node of the change tree carries one of five ordered levels:
//
//	NoChanges < Metadata < Compatible < Unknown < Incompatible
//
// A node's severity is the worst of its own classification and its
// children's, so the root answers the question "can this contract ship
// without breaking clients?" in one value.
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/oascompat
//
// Install the CLI:
//
//	go install github.com/erraggy/oascompat/cmd/oascompat@latest
//
// # Quick Start
//
// Compare two files:
//
//	import "github.com/erraggy/oascompat/differ"
//
//	result, err := differ.DiffWithOptions(
//		differ.WithSourceFilePath("api-v1.yaml"),
//		differ.WithTargetFilePath("api-v2.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.IsCompatible() {
//		for _, entry := range result.Flatten() {
//			if entry.CoreSeverity == differ.Incompatible {
//				fmt.Println(entry.Path)
//			}
//		}
//	}
//
// Or from the command line:
//
//	oascompat diff api-v1.yaml api-v2.yaml
//
// See the differ package documentation for the classification rules.
package oascompat
