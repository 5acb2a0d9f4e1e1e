/*
Package differ compares two OpenAPI 3.x documents and classifies every
difference by how it affects existing clients.

# Overview

The result of a comparison is a change tree rooted at DiffResult. Each node
describes one contract element (path, operation, parameter, request body,
response, header, media type, schema, security requirement, vendor
extension) and satisfies ChangeNode. A node owns its own scalar
differences (CoreDeltas, classified by CoreSeverity) and a list of named
children. Severity is always the worst of the node's core severity and the
severities of its children, so the root reports the worst change in the
whole tree.

# Usage

The package provides two API styles:

 1. DiffWithOptions for one-off comparisons configured by functional options
 2. The Differ struct for reusable configuration

# Severity Levels

Severities are ordered from harmless to breaking:

  - NoChanges: the element is equivalent on both sides
  - Metadata: only documentation changed (titles, descriptions, defaults)
  - Compatible: existing clients keep working (added optional parameters,
    added responses, relaxed request constraints)
  - Unknown: the change could not be classified
  - Incompatible: existing clients may break (removed endpoints, new
    required parameters, type changes, tightened request constraints)

# Direction

Many schema rules depend on which side of the exchange a schema describes.
Request schemas may only become more permissive; response schemas may only
become more restrictive. Parameters and request bodies are compared in
request context; responses and their headers in response context. For
example, lowering maxLength from 10 to 5 is Incompatible for a request
parameter and Compatible for a response field.

# Matching

Elements are matched by identity before they are compared:

  - paths by template signature, so "/pets/{id}" and "/pets/{petId}" match
    and the rename is applied to path parameters
  - parameters by location and name
  - responses by status code and media types by name
  - security requirements by the types and locations of the schemes they
    require, ignoring scheme names

Two templates of one document with the same signature are a
PathCollisionError.

# References and Cycles

Referenced components are resolved against each document's components
table. Comparisons of two referenced components are memoized per session,
keyed by the reference pair and the direction and required flag they are
compared under. A pair already being compared further up the stack yields
no node, which terminates recursive schemas.

allOf members are merged into one effective schema before comparison. oneOf
and anyOf members are matched by discriminator mapping or by reference
name. Mapping values may be references or bare schema names. Inline anyOf
members are matched by position; an inline oneOf member is a
CompositionError.

# Extensions

Vendor extensions ("x-" keys) without a registered comparator are reported
as Metadata. Register an ExtensionDiff with WithExtension to classify an
extension yourself, or to hide added and removed operations that carry it.

# Example

	result, err := differ.DiffWithOptions(
		differ.WithSourceFilePath("api-v1.yaml"),
		differ.WithTargetFilePath("api-v2.yaml"),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Severity())
	for _, entry := range result.Flatten() {
		fmt.Printf("%-12s %s\n", entry.Severity, entry.Path)
	}

# Concurrency

A comparison is synchronous and performs no I/O beyond loading files. Each
call to Diff or DiffParsed creates its own session, so one Differ may be
used from multiple goroutines.
*/
package differ
