// Package commands provides the cobra command tree for the oascompat CLI.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascompat/internal/pathutil"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
		bytes = append(bytes, '\n')
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	if _, err := w.Write(bytes); err != nil {
		return fmt.Errorf("writing %s output: %w", format, err)
	}
	return nil
}

// ValidateOutputPath checks that outputPath is safe to write to and does not
// overwrite one of the inputs. It returns the cleaned absolute path.
func ValidateOutputPath(outputPath string, inputPaths []string) (string, error) {
	cleaned, err := pathutil.SanitizeOutputPath(outputPath)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return "", fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if cleaned == absInputPath {
			return "", fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}
	return cleaned, nil
}

// createOutput opens the report destination. An empty path means w itself.
func createOutput(path string, w io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path) //nolint:gosec // G304 - path is sanitized by ValidateOutputPath
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}
