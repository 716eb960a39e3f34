package main

import (
	"fmt"

	"clothing-shop-api/internal/client"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}

		if err := client.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		fmt.Println("migrations applied")
		return nil
	},
}
