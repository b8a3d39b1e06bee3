// Command pointctl inspects point charts and prices stays from chart files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/pointchart/internal/pointctl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := pointctl.Execute(ctx)
	stop()
	os.Exit(code)
}
