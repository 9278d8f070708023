package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/AntonStoeckl/focused-atoms-go/example/focusctl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := focusctl.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "focusctl:", err)
		stop()
		os.Exit(1)
	}
}
