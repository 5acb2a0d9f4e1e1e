package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascompat/internal/httputil"
	"github.com/erraggy/oascompat/oaserrors"
)

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// Parser handles OpenAPI document loading
type Parser struct {
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{}
}

func (p *Parser) log() Logger {
	if p.Logger == nil {
		return NopLogger{}
	}
	return p.Logger
}

// ParseResult contains a parsed document and its load metadata
type ParseResult struct {
	// SourcePath is the file path, or a synthetic name for in-memory input
	SourcePath string
	// SourceFormat is the detected format of the input
	SourceFormat SourceFormat
	// Version is the document's "openapi" field (e.g., "3.0.3")
	Version string
	// Document is the parsed OAS 3.x document
	Document *Document
	// Warnings contains non-fatal structural issues
	Warnings []string
	// LoadTime is the time taken to read and decode the input
	LoadTime time.Duration
	// SourceSize is the size of the input in bytes
	SourceSize int64
}

// Parse loads and decodes the document at path.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	format := detectFormatFromPath(path)
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	res, err := p.decode(data, path, format)
	if err != nil {
		return nil, err
	}
	res.LoadTime = time.Since(start)
	return res, nil
}

// ParseReader loads and decodes a document from r.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: "ParseReader", Message: "failed to read input", Cause: err}
	}
	res, err := p.parseData(data, "ParseReader")
	if err != nil {
		return nil, err
	}
	res.LoadTime = time.Since(start)
	return res, nil
}

// ParseBytes decodes a document held in memory.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	start := time.Now()
	res, err := p.parseData(data, "ParseBytes")
	if err != nil {
		return nil, err
	}
	res.LoadTime = time.Since(start)
	return res, nil
}

func (p *Parser) parseData(data []byte, method string) (*ParseResult, error) {
	format := detectFormatFromContent(data)
	ext := ".yaml"
	if format == SourceFormatJSON {
		ext = ".json"
	}
	return p.decode(data, method+ext, format)
}

// decode unmarshals data as YAML, which also accepts JSON input.
func (p *Parser) decode(data []byte, source string, format SourceFormat) (*ParseResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: source, Message: "document is empty"}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "failed to decode document", Cause: err}
	}
	if doc.OpenAPI == "" {
		return nil, &oaserrors.ParseError{Path: source, Message: "missing 'openapi' field"}
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		return nil, &oaserrors.ParseError{
			Path:    source,
			Message: fmt.Sprintf("unsupported OpenAPI version %q: only 3.x documents are supported", doc.OpenAPI),
		}
	}

	res := &ParseResult{
		SourcePath:   source,
		SourceFormat: format,
		Version:      doc.OpenAPI,
		Document:     &doc,
		SourceSize:   int64(len(data)),
	}
	res.Warnings = validateStructure(&doc)
	for _, w := range res.Warnings {
		p.log().Warn("structural issue", "source", source, "issue", w)
	}
	p.log().Debug("parsed document",
		"source", source,
		"version", doc.OpenAPI,
		"paths", len(doc.Paths),
		"bytes", len(data))
	return res, nil
}

// validateStructure reports issues that do not prevent comparison.
func validateStructure(doc *Document) []string {
	var warnings []string
	if doc.Info == nil {
		warnings = append(warnings, "missing required field 'info'")
	}
	for _, path := range SortedKeys(doc.Paths) {
		if !strings.HasPrefix(path, "/") {
			warnings = append(warnings, fmt.Sprintf("path %q must begin with '/'", path))
		}
		item := doc.Paths[path]
		if item == nil {
			continue
		}
		for _, method := range httputil.Methods {
			op := item.Operation(method)
			if op == nil {
				continue
			}
			for _, code := range SortedKeys(op.Responses) {
				if !httputil.ValidateStatusCode(code) {
					warnings = append(warnings, fmt.Sprintf("%s %s: invalid response code %q", strings.ToUpper(method), path, code))
				}
			}
			if op.RequestBody != nil {
				for _, mt := range SortedKeys(op.RequestBody.Content) {
					if !httputil.IsValidMediaType(mt) {
						warnings = append(warnings, fmt.Sprintf("%s %s: invalid media type %q", strings.ToUpper(method), path, mt))
					}
				}
			}
		}
	}
	return warnings
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes.
// JSON typically starts with '{' or '[', while YAML does not.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
