package main

import (
	"fmt"
	"os"

	"clothing-shop-api/internal/client"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Operator tool for the clothing shop backend",
	Long:  "shopctl runs schema migrations, seeds demo data and manages order payment PINs without going through the HTTP API.",
}

func main() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(pinCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB loads config the same way the API server does and connects.
func openDB() (*gorm.DB, error) {
	_ = godotenv.Load()

	cfg := &struct {
		DatabaseURL string `env:"DATABASE_URL" envDefault:"shop.db"`
	}{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return client.InitDBClient(cfg.DatabaseURL)
}
