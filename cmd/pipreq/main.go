package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/pipreq/internal/cli"
	"github.com/matzehuels/pipreq/pkg/buildinfo"
	pkgerrors "github.com/matzehuels/pipreq/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	buildinfo.Resolve()

	c := cli.New(os.Stderr, cli.LogInfo)
	err := c.RootCommand().ExecuteContext(ctx)
	if err == nil {
		return
	}
	code := pkgerrors.ExitCode(err)
	if code != 130 {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}
