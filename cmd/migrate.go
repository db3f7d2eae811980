package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/eslsoft/learnhub/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return a.Migrate(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
