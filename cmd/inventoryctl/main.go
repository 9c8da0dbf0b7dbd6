package main

import (
	"context"
	"fmt"
	"os"

	"go-inventory-history/config"
	"go-inventory-history/internal/app"
	"go-inventory-history/internal/cli"
	"go-inventory-history/pkg/logger"
)

func main() {
	open := func() (*app.App, error) {
		cfg := config.Load()
		log, err := logger.New(cfg.Server.Env)
		if err != nil {
			return nil, err
		}
		return app.New(cfg, log)
	}

	if err := cli.NewRootCommand(open).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
