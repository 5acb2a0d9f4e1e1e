package differ

import "github.com/erraggy/oascompat/internal/severity"

// Severity is the ordinal classification of a change.
type Severity = severity.Severity

// Severity levels, ordered from harmless to breaking.
const (
	NoChanges    = severity.NoChanges
	Metadata     = severity.Metadata
	Compatible   = severity.Compatible
	Unknown      = severity.Unknown
	Incompatible = severity.Incompatible
)

// ParseSeverity parses a severity name such as "compatible" or "breaking".
func ParseSeverity(name string) (Severity, bool) {
	return severity.Parse(name)
}
