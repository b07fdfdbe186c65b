package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/PolarWolf314/shroud/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		cmd.PrintError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
