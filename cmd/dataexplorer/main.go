// Command dataexplorer browses the user-records API from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/dataexplorer/internal/api"
	"github.com/rshade/dataexplorer/internal/cli"
	"github.com/rshade/dataexplorer/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	root.SilenceErrors = true
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", errorMessage(err))
		return 1
	}
	return 0
}

// errorMessage prefers the user-facing API message, keeping the command's
// context for everything else.
func errorMessage(err error) string {
	var (
		netErr    *api.NetworkError
		serverErr *api.ServerError
		decodeErr *api.DecodeError
	)
	if errors.As(err, &netErr) || errors.As(err, &serverErr) || errors.As(err, &decodeErr) {
		return api.UserMessage(err)
	}
	return err.Error()
}
