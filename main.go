package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"

	"showcase/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Cancel the context on interrupt so the program and watcher shut down
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, cli.NewRootCmd(), fang.WithVersion(version)); err != nil {
		cancel()
		os.Exit(1)
	}
}
