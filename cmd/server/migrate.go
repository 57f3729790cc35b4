package main

import (
	"github.com/spf13/cobra"
	"github.com/yukikurage/task-report-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootstrap(); err != nil {
			return err
		}
		return database.Migrate(database.GetDB())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
