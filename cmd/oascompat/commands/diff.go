package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/erraggy/oascompat/differ"
	"github.com/erraggy/oascompat/internal/cliutil"
	"github.com/erraggy/oascompat/parser"
)

// DiffFlags contains flags for the diff command
type DiffFlags struct {
	Config           string
	Format           string
	FailOn           string
	IncludeMetadata  bool
	IgnoreExtensions []string
	Output           string
	NoColor          bool
}

const diffExample = `  oascompat diff api-v1.yaml api-v2.yaml
  oascompat diff --fail-on compatible old.yaml new.yaml
  oascompat diff --format json api-v1.yaml api-v2.yaml | jq '.changes'
  oascompat diff --ignore-extension x-internal --output report.yaml --format yaml old.yaml new.yaml`

func newDiffCommand(root *rootOptions) *cobra.Command {
	flags := &DiffFlags{}

	cmd := &cobra.Command{
		Use:   "diff [flags] <source> <target>",
		Short: "Compare two OpenAPI documents and classify the changes",
		Long: `Compare a source (old) and target (new) OpenAPI 3.x document.

Every difference is classified by its impact on existing clients:
  no_changes    the documents are equivalent
  metadata      documentation-only changes (descriptions, summaries, titles)
  compatible    existing clients keep working
  unknown       impact cannot be decided from the documents alone
  incompatible  existing clients may break

Settings can be pinned in a TOML file (default ` + DefaultConfigFile + `):
  fail_on = "incompatible"
  format = "text"
  include_metadata = false
  ignore_extensions = ["x-internal"]

Exit Status:
  0    overall severity below fail_on
  1    overall severity at or above fail_on
  2    the documents could not be compared`,
		Example: diffExample,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			logger := root.logger(cmd.ErrOrStderr())
			logger.Debug("diff configuration", "config", cfg.String())
			return runDiff(cmd.OutOrStdout(), logger, cfg, flags, args[0], args[1])
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&flags.Config, "config", "c", "", "path to a TOML config file (default "+DefaultConfigFile+" when present)")
	fs.StringVarP(&flags.Format, "format", "f", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.FailOn, "fail-on", differ.Incompatible.String(), "exit 1 when the overall severity reaches this level (none disables)")
	fs.BoolVar(&flags.IncludeMetadata, "include-metadata", false, "list metadata-only changes")
	fs.StringSliceVar(&flags.IgnoreExtensions, "ignore-extension", nil, "extension name to exclude from comparison (repeatable)")
	fs.StringVarP(&flags.Output, "output", "o", "", "write the report to a file instead of stdout")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored text output")

	return cmd
}

// resolve loads the config file and applies explicitly set flags over it.
func (f *DiffFlags) resolve(cmd *cobra.Command) (Config, error) {
	cfg, err := LoadConfig(f.Config)
	if err != nil {
		return cfg, err
	}

	fs := cmd.Flags()
	if fs.Changed("format") {
		cfg.Format = f.Format
	}
	if err := ValidateOutputFormat(cfg.Format); err != nil {
		return cfg, err
	}
	if fs.Changed("fail-on") {
		if err := cfg.FailOn.UnmarshalText([]byte(f.FailOn)); err != nil {
			return cfg, fmt.Errorf("invalid --fail-on: %w", err)
		}
	}
	if fs.Changed("include-metadata") {
		cfg.IncludeMetadata = f.IncludeMetadata
	}
	if fs.Changed("ignore-extension") {
		cfg.IgnoreExtensions = append(cfg.IgnoreExtensions, f.IgnoreExtensions...)
	}
	return cfg, nil
}

func runDiff(stdout io.Writer, logger parser.Logger, cfg Config, flags *DiffFlags, sourcePath, targetPath string) (err error) {
	outputPath := ""
	if flags.Output != "" {
		outputPath, err = ValidateOutputPath(flags.Output, []string{sourcePath, targetPath})
		if err != nil {
			return err
		}
	}

	d := differ.New()
	d.Logger = logger
	d.IgnoreExtensions = cfg.IgnoreExtensions

	startTime := time.Now()
	result, err := d.Diff(sourcePath, targetPath)
	if err != nil {
		return err
	}
	logger.Debug("diff finished", "elapsed", time.Since(startTime), "severity", result.Severity().String())

	w, closeOutput, err := createOutput(outputPath, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	report := NewReport(result, cfg.threshold())
	if cfg.Format == FormatText {
		RenderText(w, report, !flags.NoColor && cliutil.IsTerminal(w))
	} else if err := OutputStructured(w, report, cfg.Format); err != nil {
		return err
	}

	if cfg.shouldFail(report.Severity) {
		return fmt.Errorf("%w: %s", ErrFailOn, report.Severity)
	}
	return nil
}
