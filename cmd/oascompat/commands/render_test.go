package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oascompat/differ"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"no_changes", "No Changes"},
		{"incompatible", "Incompatible"},
		{"deprecated endpoints", "Deprecated Endpoints"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, title(tt.in))
	}
}

func TestRenderText_Unchanged(t *testing.T) {
	var buf bytes.Buffer
	RenderText(&buf, Report{
		Source:        "a.yaml",
		Target:        "b.yaml",
		SourceVersion: "3.0.3",
		TargetVersion: "3.1.0",
		Severity:      differ.NoChanges,
		Compatible:    true,
	}, false)

	out := buf.String()
	assert.Contains(t, out, "Source: a.yaml (OAS 3.0.3)\nTarget: b.yaml (OAS 3.1.0)\n")
	assert.NotContains(t, out, "Changes")
	assert.NotContains(t, out, "Endpoints")
	assert.Contains(t, out, "Result: No Changes\n")
	assert.Contains(t, out, "compatible with existing clients")
}

func TestRenderText_Endpoints(t *testing.T) {
	var buf bytes.Buffer
	RenderText(&buf, Report{
		Severity: differ.Incompatible,
		Missing:  []differ.Endpoint{{Path: "/pets/{id}", Method: "delete"}},
		Deprecated: []differ.Endpoint{
			{Path: "/pets", Method: "get", OperationID: "listPets"},
		},
	}, false)

	out := buf.String()
	assert.Contains(t, out, "Missing Endpoints (1)\n  DELETE /pets/{id}\n")
	assert.Contains(t, out, "Deprecated Endpoints (1)\n  GET /pets  (listPets)\n")
}
