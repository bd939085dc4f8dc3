// Command endiangen generates fixed-layout binary codecs for annotated Go types.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/wippyai/endiangen/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "endiangen: %v\n", err)
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
