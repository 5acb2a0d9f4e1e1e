package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/erraggy/oascompat/differ"
	"github.com/erraggy/oascompat/oaserrors"
)

// DefaultConfigFile is read from the working directory when --config is not
// given and the file exists.
const DefaultConfigFile = ".oascompat.toml"

// Config holds the settings a project can pin in its config file. Command-line
// flags override every field.
type Config struct {
	// FailOn is the lowest overall severity that makes diff exit non-zero.
	// "none" disables the check.
	FailOn differ.Severity `toml:"fail_on"`
	// Format is the report format: text, json or yaml.
	Format string `toml:"format"`
	// IncludeMetadata lists metadata-only changes in the report.
	IncludeMetadata bool `toml:"include_metadata"`
	// IgnoreExtensions are x- extension names excluded from comparison.
	IgnoreExtensions []string `toml:"ignore_extensions"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		FailOn: differ.Incompatible,
		Format: FormatText,
	}
}

// LoadConfig reads the TOML config at path over the defaults. An empty path
// loads DefaultConfigFile if it exists; an explicit path must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &oaserrors.ConfigError{Option: "config", Value: path, Cause: err}
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, &oaserrors.ConfigError{Option: "config", Value: path, Message: "decoding TOML", Cause: err}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return cfg, &oaserrors.ConfigError{
			Option:  "config",
			Value:   path,
			Message: "unknown keys: " + strings.Join(keys, ", "),
		}
	}
	if meta.IsDefined("format") {
		if err := ValidateOutputFormat(cfg.Format); err != nil {
			return cfg, &oaserrors.ConfigError{Option: "format", Value: cfg.Format, Cause: err}
		}
	}
	return cfg, nil
}

// shouldFail reports whether an overall severity reaches the fail_on threshold.
func (c Config) shouldFail(level differ.Severity) bool {
	return c.FailOn > differ.NoChanges && level >= c.FailOn
}

// threshold is the lowest core severity listed in reports.
func (c Config) threshold() differ.Severity {
	if c.IncludeMetadata {
		return differ.Metadata
	}
	return differ.Compatible
}

func (c Config) String() string {
	return fmt.Sprintf("fail_on=%s format=%s include_metadata=%t ignore_extensions=%v",
		c.FailOn, c.Format, c.IncludeMetadata, c.IgnoreExtensions)
}
