package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid text", FormatText, false},
		{"valid json", FormatJSON, false},
		{"valid yaml", FormatYAML, false},
		{"invalid format", "xml", true},
		{"empty format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestOutputStructured(t *testing.T) {
	data := map[string]string{"severity": "compatible"}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatJSON))
		assert.Equal(t, "{\n  \"severity\": \"compatible\"\n}\n", buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatYAML))
		assert.Equal(t, "severity: compatible\n", buf.String())
	})

	t.Run("text is not structured", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, OutputStructured(&buf, data, FormatText))
	})
}

func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "v1.yaml")
	require.NoError(t, os.WriteFile(input, []byte("openapi: 3.0.3"), 0o644))

	t.Run("new file", func(t *testing.T) {
		got, err := ValidateOutputPath(filepath.Join(dir, "report.json"), []string{input})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "report.json"), got)
	})

	t.Run("overwrites input", func(t *testing.T) {
		_, err := ValidateOutputPath(filepath.Join(dir, ".", "v1.yaml"), []string{input})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "would overwrite input file")
	})

	t.Run("symlink", func(t *testing.T) {
		link := filepath.Join(dir, "link.json")
		require.NoError(t, os.Symlink(input, link))
		_, err := ValidateOutputPath(link, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "symlink")
	})
}
