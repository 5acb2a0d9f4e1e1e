// Package oaserrors provides structured error types for the oascompat library.
//
// Import path: github.com/erraggy/oascompat/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between the fatal conditions that abort a
// document comparison.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON parsing failures, missing documents, unsupported versions
//   - [ReferenceError]: $ref resolution failures, self-looping $ref chains, non-local refs
//   - [PathCollisionError]: two path templates in one document share a signature
//   - [CompositionError]: a schema composition shape the differ cannot compare
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrPathCollision]: Matches any [PathCollisionError]
//   - [ErrComposition]: Matches any [CompositionError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Example
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithSourceFilePath("v1.yaml"),
//	    differ.WithTargetFilePath("v2.yaml"),
//	)
//	if err != nil {
//	    var collision *oaserrors.PathCollisionError
//	    if errors.As(err, &collision) {
//	        fmt.Println("ambiguous paths:", collision.First, collision.Second)
//	    }
//	}
//
// Reference cycles between schemas are not errors: the differ stops
// descending into a reference pair that is already being compared. Only a
// $ref chain that resolves back to itself without reaching a value is
// reported as circular.
package oaserrors
