// Package main is the entrypoint for tsctl, a command-line front end to the
// timestamp library.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aelexs/timestamp/internal/cli"
	"github.com/aelexs/timestamp/internal/errmap"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		exit := errmap.ToExitError(err)
		fmt.Fprintf(os.Stderr, "tsctl: %v\n", exit)
		if exit.ShowUsage {
			fmt.Fprintf(os.Stderr, "%s\n", cli.Usage)
		}
		os.Exit(exit.Code)
	}
}

func run(ctx context.Context, args []string) error {
	return cli.Run(ctx, cli.Params{Args: args})
}
