package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/erraggy/oascompat"
	"github.com/erraggy/oascompat/internal/cliutil"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			highlight := color.New(color.FgYellow, color.Bold)
			cliutil.Writef(w, "oascompat %s\n", highlight.Sprint(oascompat.Version()))
			cliutil.Writef(w, "  commit: %s\n", oascompat.Commit())
			cliutil.Writef(w, "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
