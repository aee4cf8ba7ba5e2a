package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/matzehuels/memestyle/internal/cli"
	"github.com/matzehuels/memestyle/pkg/errors"
)

// Exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitBadInput  = 2
	exitInterrupt = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line in args and returns the exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	root := cli.New(stderr, cli.LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	code := exitCode(err)
	if code != exitInterrupt {
		fmt.Fprintf(stderr, "memestyle: %v\n", err)
	}
	return code
}

// exitCode maps a command error to a process exit code: rejected input
// and unreadable documents exit 2, an interrupt 130.
func exitCode(err error) int {
	switch code := errors.GetCode(err); {
	case stderrors.Is(err, context.Canceled):
		return exitInterrupt
	case strings.HasPrefix(string(code), "INVALID_"), code == errors.ErrCodeParse, code == errors.ErrCodeTooLarge:
		return exitBadInput
	}
	return exitFailure
}
