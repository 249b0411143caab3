package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/database/postgres"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/migration/seed"
)

var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create and fill the orders tables for local development",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		conn, err := postgres.NewConnection(cmd.Context(), cfg.Database)
		if err != nil {
			return fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
		}
		defer conn.Close()

		summary, err := seed.Run(cmd.Context(), conn, seed.DefaultDataset(), seedReset)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d orders, %d products, %d order lines\n",
			summary.Orders, summary.Products, summary.OrderDetails)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "Delete existing order lines before inserting")
	rootCmd.AddCommand(seedCmd)
}
