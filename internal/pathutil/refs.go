// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strings"

// OAS 3.x reference prefixes
const (
	RefPrefixComponents      = "#/components/"
	RefPrefixSchemas         = "#/components/schemas/"
	RefPrefixParameters      = "#/components/parameters/"
	RefPrefixResponses       = "#/components/responses/"
	RefPrefixRequestBodies   = "#/components/requestBodies/"
	RefPrefixHeaders         = "#/components/headers/"
	RefPrefixSecuritySchemes = "#/components/securitySchemes/"
)

// Component table names as they appear in a $ref.
const (
	ComponentSchemas         = "schemas"
	ComponentParameters      = "parameters"
	ComponentResponses       = "responses"
	ComponentRequestBodies   = "requestBodies"
	ComponentHeaders         = "headers"
	ComponentSecuritySchemes = "securitySchemes"
)

// ComponentRef builds "#/components/{component}/{name}".
func ComponentRef(component, name string) string {
	return RefPrefixComponents + component + "/" + escapePointer(name)
}

// IsLocalRef reports whether ref points into the same document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#/")
}

// RefType classifies a reference as "local", "http", or "file".
func RefType(ref string) string {
	switch {
	case IsLocalRef(ref):
		return "local"
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return "http"
	default:
		return "file"
	}
}

// ComponentName extracts the component name from a local reference into the
// given component table. It returns false when ref does not point into that
// table or names a nested location below a component.
func ComponentName(ref, component string) (string, bool) {
	prefix := RefPrefixComponents + component + "/"
	name, ok := strings.CutPrefix(ref, prefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return unescapePointer(name), true
}

// RefName returns the last segment of a reference, unescaped.
// "#/components/schemas/Pet" yields "Pet".
func RefName(ref string) string {
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		return unescapePointer(ref[i+1:])
	}
	return ref
}

func escapePointer(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

func unescapePointer(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}
