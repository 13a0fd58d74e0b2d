package main

import (
	"context"
	"log/slog"
	"os"

	"ariga.io/atlas-go-sdk/atlasexec"

	"lastbite/internal/pkg/config"
)

// Applies the SQL migrations under migrations/ with the atlas CLI.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	workdir, err := os.Getwd()
	if err != nil {
		slog.Error("failed to resolve working directory", "error", err)
		os.Exit(1)
	}

	client, err := atlasexec.NewClient(workdir, "atlas")
	if err != nil {
		slog.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.BuildDSN(),
		DirURL: "file://migrations",
	})
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migrations applied",
		"target", res.Target,
		"applied", len(res.Applied),
	)
}
