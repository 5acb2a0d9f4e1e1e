package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		expected string
	}{
		{"no changes", NoChanges, "no_changes"},
		{"metadata", Metadata, "metadata"},
		{"compatible", Compatible, "compatible"},
		{"unknown", Unknown, "unknown"},
		{"incompatible", Incompatible, "incompatible"},

		// Edge cases: Invalid severity values
		{"invalid negative", Severity(-1), "invalid"},
		{"invalid large value", Severity(999), "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.severity.String())
		})
	}
}

// TestSeverityOrdering verifies the total order used by "max wins" aggregation.
func TestSeverityOrdering(t *testing.T) {
	ordered := []Severity{NoChanges, Metadata, Compatible, Unknown, Incompatible}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1], ordered[i], "%s should rank below %s", ordered[i-1], ordered[i])
	}
}

func TestSeverityPredicates(t *testing.T) {
	assert.True(t, NoChanges.IsUnchanged())
	assert.True(t, Metadata.IsMetadataOnly())

	assert.True(t, NoChanges.IsCompatible())
	assert.True(t, Metadata.IsCompatible())
	assert.True(t, Compatible.IsCompatible())
	assert.False(t, Unknown.IsCompatible())
	assert.False(t, Incompatible.IsCompatible())

	assert.True(t, Incompatible.IsIncompatible())
	assert.False(t, Unknown.IsIncompatible())
}

func TestMax(t *testing.T) {
	assert.Equal(t, NoChanges, Max())
	assert.Equal(t, Metadata, Max(NoChanges, Metadata))
	assert.Equal(t, Incompatible, Max(Compatible, Incompatible, Metadata))
	assert.Equal(t, Unknown, Max(Compatible, Unknown))
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Severity
		ok       bool
	}{
		{"incompatible", Incompatible, true},
		{"Breaking", Incompatible, true},
		{" compatible ", Compatible, true},
		{"metadata", Metadata, true},
		{"none", NoChanges, true},
		{"no_changes", NoChanges, true},
		{"unknown", Unknown, true},
		{"fatal", NoChanges, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTextMarshaling(t *testing.T) {
	text, err := Compatible.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "compatible", string(text))

	var s Severity
	assert.NoError(t, s.UnmarshalText([]byte("breaking")))
	assert.Equal(t, Incompatible, s)
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
}
