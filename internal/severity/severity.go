// Package severity provides the compatibility classification shared by the
// differ and its host surfaces.
//
// The levels are totally ordered from least to most severe:
//
//	NoChanges < Metadata < Compatible < Unknown < Incompatible
//
// Aggregation is always "max wins": a parent change record is at least as
// severe as its own core change and each of its children.
package severity

import (
	"fmt"
	"strings"
)

// Severity classifies a detected change from harmless to breaking.
type Severity int

const (
	// NoChanges indicates the compared elements are equivalent.
	NoChanges Severity = iota

	// Metadata indicates an informational change (descriptions, summaries, titles)
	// that never affects clients.
	Metadata

	// Compatible indicates a change that existing clients tolerate.
	Compatible

	// Unknown is the result of rules evaluated outside of a request
	// or response direction. It ranks above Compatible so it is never treated
	// as safe.
	Unknown

	// Incompatible indicates a breaking change.
	Incompatible
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case NoChanges:
		return "no_changes"
	case Metadata:
		return "metadata"
	case Compatible:
		return "compatible"
	case Unknown:
		return "unknown"
	case Incompatible:
		return "incompatible"
	default:
		return "invalid"
	}
}

// IsUnchanged reports whether s is NoChanges.
func (s Severity) IsUnchanged() bool { return s == NoChanges }

// IsMetadataOnly reports whether s is Metadata.
func (s Severity) IsMetadataOnly() bool { return s == Metadata }

// IsCompatible reports whether clients written against the old contract keep working.
func (s Severity) IsCompatible() bool { return s <= Compatible }

// IsIncompatible reports whether s is Incompatible.
func (s Severity) IsIncompatible() bool { return s == Incompatible }

// Max returns the most severe of the given levels, NoChanges when empty.
func Max(levels ...Severity) Severity {
	worst := NoChanges
	for _, l := range levels {
		if l > worst {
			worst = l
		}
	}
	return worst
}

// Parse converts a severity name back into a Severity.
// Accepts the String forms plus "none" and "breaking" aliases.
func Parse(name string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "no_changes", "none":
		return NoChanges, true
	case "metadata":
		return Metadata, true
	case "compatible":
		return Compatible, true
	case "unknown":
		return Unknown, true
	case "incompatible", "breaking":
		return Incompatible, true
	default:
		return NoChanges, false
	}
}

// MarshalText encodes the severity as its String form.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes any name accepted by Parse.
func (s *Severity) UnmarshalText(text []byte) error {
	level, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("unknown severity %q", text)
	}
	*s = level
	return nil
}
