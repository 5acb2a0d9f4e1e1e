package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oascompat/differ"
	"github.com/erraggy/oascompat/oaserrors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_DefaultsWhenAbsent(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_DefaultFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `fail_on = "compatible"`)
	t.Chdir(dir)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, differ.Compatible, cfg.FailOn)
	assert.Equal(t, FormatText, cfg.Format, "unset keys keep their defaults")
}

func TestLoadConfig_AllKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
fail_on = "breaking"
format = "yaml"
include_metadata = true
ignore_extensions = ["x-internal", "audience"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		FailOn:           differ.Incompatible,
		Format:           FormatYAML,
		IncludeMetadata:  true,
		IgnoreExtensions: []string{"x-internal", "audience"},
	}, cfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad severity", `fail_on = "fatal"`, "unknown severity"},
		{"bad format", `format = "xml"`, "invalid format"},
		{"unknown key", `fail-on = "none"`, "unknown keys: fail-on"},
		{"invalid toml", `fail_on = `, "decoding TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadConfig_ExplicitPathMustExist(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_ShouldFail(t *testing.T) {
	tests := []struct {
		failOn differ.Severity
		level  differ.Severity
		want   bool
	}{
		{differ.Incompatible, differ.Incompatible, true},
		{differ.Incompatible, differ.Unknown, false},
		{differ.Compatible, differ.Unknown, true},
		{differ.Compatible, differ.Metadata, false},
		{differ.NoChanges, differ.Incompatible, false},
	}
	for _, tt := range tests {
		t.Run(tt.failOn.String()+"/"+tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Config{FailOn: tt.failOn}.shouldFail(tt.level))
		})
	}
}
