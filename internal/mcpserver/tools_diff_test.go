package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oascompat/differ"
)

const diffBaseSpec = `openapi: "3.0.0"
info:
  title: Test API
  version: "1.0.0"
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: OK
`

const diffRevisedSpec = `openapi: "3.0.0"
info:
  title: Test API
  version: "2.0.0"
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: OK
    post:
      operationId: createPet
      responses:
        "201":
          description: Created
  /pets/{petId}:
    get:
      operationId: getPet
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: OK
`

const diffBreakingSpec = `openapi: "3.0.0"
info:
  title: Test API
  version: "2.0.0"
paths: {}
`

func runDiff(t *testing.T, input diffInput) (*mcp.CallToolResult, diffOutput) {
	t.Helper()
	result, output, err := handleDiff(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	return result, output
}

func TestDiffTool_DetectsChanges(t *testing.T) {
	result, output := runDiff(t, diffInput{
		Source: specInput{Content: diffBaseSpec},
		Target: specInput{Content: diffRevisedSpec},
	})
	require.Nil(t, result)

	assert.Equal(t, "compatible", output.Severity)
	assert.True(t, output.Compatible)
	assert.Greater(t, output.TotalChanges, 0)
	assert.Zero(t, output.IncompatibleCount)
	assert.Len(t, output.NewEndpoints, 2)
	assert.Empty(t, output.MissingEndpoints)
	assert.NotEmpty(t, output.Summary)

	for _, c := range output.Changes {
		assert.NotEmpty(t, c.Path)
		assert.NotEqual(t, "metadata", c.CoreSeverity, "metadata entries are hidden by default")
	}
}

func TestDiffTool_Breaking(t *testing.T) {
	_, output := runDiff(t, diffInput{
		Source:      specInput{Content: diffBaseSpec},
		Target:      specInput{Content: diffBreakingSpec},
		MinSeverity: "breaking",
	})

	assert.Equal(t, "incompatible", output.Severity)
	assert.False(t, output.Compatible)
	assert.Greater(t, output.IncompatibleCount, 0)
	require.Len(t, output.MissingEndpoints, 1)
	assert.Equal(t, differ.Endpoint{Path: "/pets", Method: "get", OperationID: "listPets"}, output.MissingEndpoints[0])
	for _, c := range output.Changes {
		assert.Equal(t, "incompatible", c.CoreSeverity)
	}
	assert.Contains(t, output.Summary, "Breaking changes detected.")
	assert.Contains(t, output.Summary, "1 removed endpoint.")
}

func TestDiffTool_NoChanges(t *testing.T) {
	_, output := runDiff(t, diffInput{
		Source: specInput{Content: diffBaseSpec},
		Target: specInput{Content: diffBaseSpec},
	})

	assert.Equal(t, "no_changes", output.Severity)
	assert.Equal(t, 0, output.TotalChanges)
	assert.Empty(t, output.Changes)
	assert.Equal(t, "No changes detected.", output.Summary)
}

func TestDiffTool_IncludeMetadata(t *testing.T) {
	_, output := runDiff(t, diffInput{
		Source:          specInput{Content: diffBaseSpec},
		Target:          specInput{Content: diffRevisedSpec},
		IncludeMetadata: true,
	})

	assert.Equal(t, 1, output.MetadataCount)
	var found bool
	for _, c := range output.Changes {
		if c.Path == "api.info.version" {
			found = true
			assert.Equal(t, []string{"version: 1.0.0 -> 2.0.0"}, c.Deltas)
		}
	}
	assert.True(t, found, "info version change should be listed")
}

func TestDiffTool_InputErrors(t *testing.T) {
	tests := []struct {
		name  string
		input diffInput
	}{
		{"invalid source", diffInput{Source: specInput{Content: "not valid yaml: ["}, Target: specInput{Content: diffBaseSpec}}},
		{"invalid target", diffInput{Source: specInput{Content: diffBaseSpec}, Target: specInput{Content: "not valid yaml: ["}}},
		{"missing source", diffInput{Target: specInput{Content: diffBaseSpec}}},
		{"both inputs set", diffInput{Source: specInput{File: "a.yaml", Content: diffBaseSpec}, Target: specInput{Content: diffBaseSpec}}},
		{"bad min_severity", diffInput{Source: specInput{Content: diffBaseSpec}, Target: specInput{Content: diffBaseSpec}, MinSeverity: "severe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, output := runDiff(t, tt.input)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			assert.Empty(t, output.Changes)
		})
	}
}

func TestDiffTool_Pagination(t *testing.T) {
	base := diffInput{
		Source:          specInput{Content: diffBaseSpec},
		Target:          specInput{Content: diffRevisedSpec},
		IncludeMetadata: true,
	}
	_, baseline := runDiff(t, base)
	require.GreaterOrEqual(t, baseline.TotalChanges, 3, "need at least 3 changes for pagination test")

	t.Run("limit", func(t *testing.T) {
		in := base
		in.Limit = 1
		_, output := runDiff(t, in)
		assert.Equal(t, baseline.TotalChanges, output.TotalChanges)
		assert.Equal(t, 1, output.Returned)
		assert.Equal(t, baseline.Changes[:1], output.Changes)
	})

	t.Run("offset", func(t *testing.T) {
		in := base
		in.Offset = 1
		_, output := runDiff(t, in)
		assert.Equal(t, baseline.TotalChanges-1, output.Returned)
		assert.Equal(t, baseline.Changes[1:], output.Changes)
	})

	t.Run("offset beyond total", func(t *testing.T) {
		in := base
		in.Offset = baseline.TotalChanges
		_, output := runDiff(t, in)
		assert.Equal(t, baseline.TotalChanges, output.TotalChanges)
		assert.Equal(t, 0, output.Returned)
		assert.Nil(t, output.Changes)
		assert.NotEmpty(t, output.Summary)
	})

	t.Run("counts unchanged by pagination", func(t *testing.T) {
		in := base
		in.Limit = 1
		_, output := runDiff(t, in)
		assert.Equal(t, baseline.CompatibleCount, output.CompatibleCount)
		assert.Equal(t, baseline.MetadataCount, output.MetadataCount)
	})
}

func TestDiffTool_IgnoreExtensions(t *testing.T) {
	source := diffBaseSpec + "x-audience: internal\n"
	target := diffBaseSpec + "x-audience: public\n"

	_, output := runDiff(t, diffInput{
		Source:          specInput{Content: source},
		Target:          specInput{Content: target},
		IncludeMetadata: true,
	})
	assert.Equal(t, "metadata", output.Severity)

	_, output = runDiff(t, diffInput{
		Source:           specInput{Content: source},
		Target:           specInput{Content: target},
		IgnoreExtensions: []string{"audience"},
	})
	assert.Equal(t, "no_changes", output.Severity)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1 change", formatCount(1, "change"))
	assert.Equal(t, "3 changes", formatCount(3, "change"))
	assert.Equal(t, "0 changes", formatCount(0, "change"))
}
