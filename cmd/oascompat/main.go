// Command oascompat compares two OpenAPI documents and reports how the
// changes affect existing clients.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/erraggy/oascompat/cmd/oascompat/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := commands.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
