package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/recipe-app/recipe-api/internal/cli"
)

// @title                       Recipe API
// @version                     1.0
// @description                 User accounts, token authentication and owner-scoped recipes.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        Authorization
// @description                 Token <key> or Bearer <key>
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
