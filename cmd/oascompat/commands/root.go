package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/erraggy/oascompat"
	"github.com/erraggy/oascompat/internal/cliutil"
	"github.com/erraggy/oascompat/parser"
)

// Exit codes returned by Execute.
const (
	ExitOK     = 0
	ExitFailOn = 1
	ExitError  = 2
)

// ErrFailOn is returned by the diff command when the overall severity
// reaches the configured fail_on threshold.
var ErrFailOn = errors.New("severity threshold reached")

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	verbose bool
}

// logger returns a text logger on w: debug level with --verbose, warnings
// only otherwise.
func (o *rootOptions) logger(w io.Writer) parser.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return parser.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// NewRootCommand builds the oascompat command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "oascompat",
		Short: "Classify the client impact of changes between two OpenAPI documents",
		Long: `oascompat compares two versions of an OpenAPI 3.x contract and classifies
every difference as no_changes, metadata, compatible, unknown or incompatible
from the point of view of existing clients.`,
		Version:       oascompat.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("oascompat {{.Version}}\n")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")

	root.AddCommand(newDiffCommand(opts))
	root.AddCommand(newMCPCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrFailOn):
		return ExitFailOn
	default:
		cliutil.Writef(stderr, "Error: %v\n", err)
		return ExitError
	}
}
