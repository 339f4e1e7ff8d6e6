package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Migrate applies pending files from dir with the atlas binary found on PATH.
func Migrate(ctx context.Context, dir, databaseURL string) error {
	workdir, err := atlasexec.NewWorkingDir(
		atlasexec.WithMigrations(os.DirFS(dir)),
	)
	if err != nil {
		return fmt.Errorf("failed to load migrations from %s: %w", dir, err)
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), "atlas")
	if err != nil {
		return fmt.Errorf("failed to initialize atlas client: %w", err)
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL: databaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	slog.InfoContext(ctx, "migrations applied",
		slog.Int("applied", len(res.Applied)),
		slog.String("current", res.Current),
		slog.String("target", res.Target))
	return nil
}
