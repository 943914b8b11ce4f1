package main

import (
	"fmt"
	"os"

	"github.com/quicksplit/quicksplit/internal/cli"
	"github.com/quicksplit/quicksplit/internal/config"
	"github.com/quicksplit/quicksplit/internal/storage/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "quicksplit: %v\n", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quicksplit: failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	app := cli.NewApp(cfg, store)
	if err := cli.NewRootCommand(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "quicksplit: %v\n", err)
		os.Exit(1)
	}
}
