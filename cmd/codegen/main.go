// Command codegen renders configuration snippets from the stock generators
// and any generators declared in a YAML manifest.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCommand().ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
