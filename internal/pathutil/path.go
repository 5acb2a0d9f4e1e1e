package pathutil

import "regexp"

// PathParamRegex matches path template parameters like {paramName}.
// It captures the parameter name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// wildcard replaces every parameter placeholder in a signature.
const wildcard = "{}"

// Signature normalizes a path template so that parameter placeholders match
// by position regardless of their names. Literal text, including a trailing
// slash, is kept as is.
func Signature(template string) string {
	return PathParamRegex.ReplaceAllString(template, wildcard)
}

// ParamNames returns the parameter names of a path template in order.
func ParamNames(template string) []string {
	matches := PathParamRegex.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// RenameMap pairs the positional parameters of two templates that share a
// signature and returns old name -> new name for every renamed placeholder.
// Returns nil when no parameter was renamed.
func RenameMap(oldTemplate, newTemplate string) map[string]string {
	oldNames := ParamNames(oldTemplate)
	newNames := ParamNames(newTemplate)
	var renames map[string]string
	for i := 0; i < len(oldNames) && i < len(newNames); i++ {
		if oldNames[i] == newNames[i] {
			continue
		}
		if renames == nil {
			renames = make(map[string]string)
		}
		renames[oldNames[i]] = newNames[i]
	}
	return renames
}
