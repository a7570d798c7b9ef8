package main

import (
	"context"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	root "github.com/sonnq3591/plg-hsdt"
	"github.com/sonnq3591/plg-hsdt/internal/config"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
)

// migrateCommand constructs the 'migrate' subcommand that creates the fills
// table and the river queue tables.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates database to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			migrations, err := fs.Sub(root.Migrations, "migrations")
			if err != nil {
				logger.Fatal(ctx, "could not open embedded migrations", zap.Error(err))
			}
			if err := strg.Migrate(ctx, migrations); err != nil {
				logger.Fatal(ctx, "could not migrate database", zap.Error(err))
			}
			logger.Info(ctx, "database is up to date")
		},
	}

	return cmd
}
