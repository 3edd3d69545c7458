// Package main is the entry point for the rv CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"go.trai.ch/rv/cmd/rv/commands"
	"go.trai.ch/rv/internal/app"
	_ "go.trai.ch/rv/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	application, _, err := graft.ExecuteFor[*app.App](ctx)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}

	cli := commands.New(application)
	if err := cli.Execute(ctx); err != nil {
		application.Logger().Error(err)
		return 1
	}
	return 0
}
