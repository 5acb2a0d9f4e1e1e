// Package httputil provides HTTP-related constants and helpers shared by the
// parser, differ and command line.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
	DefaultResponse  = "default"
)

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// Methods lists the path item operation keys in document order.
var Methods = []string{
	MethodGet,
	MethodPut,
	MethodPost,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodPatch,
	MethodTrace,
}

// MethodIndex returns the document-order position of method, or len(Methods)
// for unknown methods.
func MethodIndex(method string) int {
	for i, m := range Methods {
		if m == method {
			return i
		}
	}
	return len(Methods)
}

// ValidateStatusCode checks if a status code string is valid according to OpenAPI spec.
// Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == DefaultResponse {
		return true
	}
	if strings.HasPrefix(code, "x-") {
		return true
	}
	if len(code) != StatusCodeLength {
		return false
	}
	if code[1] == WildcardChar && code[2] == WildcardChar {
		return code[0] >= '1' && code[0] <= '5'
	}
	n, err := strconv.Atoi(code)
	return err == nil && n >= MinStatusCode && n <= MaxStatusCode
}

// statusRank orders numeric codes first, then wildcard ranges, then default.
func statusRank(code string) (int, int) {
	if code == DefaultResponse {
		return 2, 0
	}
	if len(code) == StatusCodeLength && code[1] == WildcardChar {
		return 1, int(code[0] - '0')
	}
	if n, err := strconv.Atoi(code); err == nil {
		return 0, n
	}
	return 3, 0
}

// CompareStatusCodes orders response codes for stable reporting: numeric codes
// ascending, then "1XX".."5XX", then "default", then anything else
// lexicographically.
func CompareStatusCodes(a, b string) int {
	ra, na := statusRank(a)
	rb, nb := statusRank(b)
	if ra != rb {
		return ra - rb
	}
	if na != nb {
		return na - nb
	}
	return strings.Compare(a, b)
}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Handles wildcards (*/* and type/*) and prevents invalid combinations (*/subtype).
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}
	if strings.HasPrefix(mediaType, "*/") {
		return false
	}
	if typ, ok := strings.CutSuffix(mediaType, "/*"); ok {
		return typ != "" && typ != "*" && !strings.Contains(typ, "/")
	}
	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}
