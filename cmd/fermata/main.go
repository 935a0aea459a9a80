// Command fermata builds per-building feature tables from load and weather data.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fermata-energy/fermata/cmd"
	"github.com/fermata-energy/fermata/internal/iostore"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.SetStoreManager(iostore.Manager)
	defer iostore.CloseStores()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			fmt.Fprintf(os.Stderr, "Error stopping profiling: %v\n", err)
		}
	}()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
