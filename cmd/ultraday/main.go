package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/ultraday/internal/config"
	"github.com/javiermolinar/ultraday/internal/db"
	"github.com/javiermolinar/ultraday/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	return ui.NewApp(repo, cfg).ExecuteContext(context.Background())
}
