package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/arthur-debert/gim/cmd/gim"
	"github.com/arthur-debert/gim/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := gim.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	_, _ = fmt.Fprintln(os.Stderr, style.Render("Error", fmt.Sprintf("Error: %v", err)))
	if gim.IsUsageError(err) {
		_, _ = fmt.Fprintln(os.Stderr)
		_ = rootCmd.Usage()
	}

	stop()
	os.Exit(gim.ExitCode(err))
}
