package differ

import (
	"fmt"

	"github.com/erraggy/oascompat/oaserrors"
	"github.com/erraggy/oascompat/parser"
)

// Option is a function that configures a diff operation
type Option func(*diffConfig) error

// diffConfig holds configuration for a diff operation
type diffConfig struct {
	// Input sources (exactly one source and one target must be set)
	sourceFilePath *string
	sourceParsed   *parser.ParseResult
	targetFilePath *string
	targetParsed   *parser.ParseResult

	logger            parser.Logger
	extensions        []ExtensionDiff
	extensionDefaults bool
	ignoreExtensions  []string
}

// DiffWithOptions compares two OpenAPI documents using functional options.
//
// Example:
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithSourceFilePath("api-v1.yaml"),
//	    differ.WithTargetFilePath("api-v2.yaml"),
//	)
func DiffWithOptions(opts ...Option) (*DiffResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("differ: invalid options: %w", err)
	}

	d := &Differ{
		Logger:            cfg.logger,
		Extensions:        cfg.extensions,
		ExtensionDefaults: cfg.extensionDefaults,
		IgnoreExtensions:  cfg.ignoreExtensions,
	}

	if cfg.sourceFilePath != nil && cfg.targetFilePath != nil {
		return d.Diff(*cfg.sourceFilePath, *cfg.targetFilePath)
	}

	var source parser.ParseResult
	if cfg.sourceFilePath != nil {
		result, err := parser.ParseWithOptions(parser.WithFilePath(*cfg.sourceFilePath), parser.WithLogger(d.logger()))
		if err != nil {
			return nil, fmt.Errorf("differ: failed to parse source: %w", err)
		}
		source = *result
	} else {
		source = *cfg.sourceParsed
	}

	var target parser.ParseResult
	if cfg.targetFilePath != nil {
		result, err := parser.ParseWithOptions(parser.WithFilePath(*cfg.targetFilePath), parser.WithLogger(d.logger()))
		if err != nil {
			return nil, fmt.Errorf("differ: failed to parse target: %w", err)
		}
		target = *result
	} else {
		target = *cfg.targetParsed
	}

	return d.DiffParsed(source, target)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*diffConfig, error) {
	cfg := &diffConfig{extensionDefaults: true}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sourceCount := 0
	if cfg.sourceFilePath != nil {
		sourceCount++
	}
	if cfg.sourceParsed != nil {
		sourceCount++
	}
	if sourceCount == 0 {
		return nil, &oaserrors.ConfigError{Option: "source", Message: "must specify a source (use WithSourceFilePath or WithSourceParsed)"}
	}
	if sourceCount > 1 {
		return nil, &oaserrors.ConfigError{Option: "source", Message: "must specify exactly one source"}
	}

	targetCount := 0
	if cfg.targetFilePath != nil {
		targetCount++
	}
	if cfg.targetParsed != nil {
		targetCount++
	}
	if targetCount == 0 {
		return nil, &oaserrors.ConfigError{Option: "target", Message: "must specify a target (use WithTargetFilePath or WithTargetParsed)"}
	}
	if targetCount > 1 {
		return nil, &oaserrors.ConfigError{Option: "target", Message: "must specify exactly one target"}
	}

	return cfg, nil
}

// WithSourceFilePath specifies a file path as the source document
func WithSourceFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceFilePath = &path
		return nil
	}
}

// WithSourceParsed specifies a parsed ParseResult as the source document
func WithSourceParsed(result parser.ParseResult) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceParsed = &result
		return nil
	}
}

// WithTargetFilePath specifies a file path as the target document
func WithTargetFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.targetFilePath = &path
		return nil
	}
}

// WithTargetParsed specifies a parsed ParseResult as the target document
func WithTargetParsed(result parser.ParseResult) Option {
	return func(cfg *diffConfig) error {
		cfg.targetParsed = &result
		return nil
	}
}

// WithLogger sets the logger used for parsing and comparison
// Default: parser.NopLogger
func WithLogger(l parser.Logger) Option {
	return func(cfg *diffConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithExtension registers a comparator for one vendor extension. Registering
// two comparators for the same name is a configuration error.
func WithExtension(ext ExtensionDiff) Option {
	return func(cfg *diffConfig) error {
		if ext == nil {
			return &oaserrors.ConfigError{Option: "extension", Message: "nil extension comparator"}
		}
		name := normalizeExtensionName(ext.Name())
		for _, existing := range cfg.extensions {
			if normalizeExtensionName(existing.Name()) == name {
				return &oaserrors.ConfigError{Option: "extension", Value: name, Message: "extension registered twice"}
			}
		}
		cfg.extensions = append(cfg.extensions, ext)
		return nil
	}
}

// WithExtensionDefaults controls whether changes to extensions without a
// registered comparator are reported as Metadata
// Default: true
func WithExtensionDefaults(enabled bool) Option {
	return func(cfg *diffConfig) error {
		cfg.extensionDefaults = enabled
		return nil
	}
}

// WithIgnoreExtensions excludes the named extensions from comparison. Names
// without the "x-" prefix get one.
func WithIgnoreExtensions(names ...string) Option {
	return func(cfg *diffConfig) error {
		cfg.ignoreExtensions = append(cfg.ignoreExtensions, names...)
		return nil
	}
}
