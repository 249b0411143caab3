// Package main é a CLI do pipeline de receita diária
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/log"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "pipeline",
	Short:         "Daily sales revenue pipeline",
	Long:          "Extracts order lines from PostgreSQL, aggregates daily revenue, renders the revenue charts and answers the revenue question for the target date.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.NewConfig()
		if err != nil {
			return err
		}

		log.Configure(loaded.App.LogLevel)
		logrus.WithFields(logrus.Fields{
			"command":     cmd.Name(),
			"target_date": loaded.Pipeline.TargetDateRaw,
			"output_dir":  loaded.Pipeline.OutputDir,
		}).Debug("Configuração carregada")

		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("target-date", "", "Target date for the point answer (yyyy-mm-dd)")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory where the artifacts are written")

	// Flags só sobrescrevem a configuração quando informadas
	mustBind("PIPELINE_TARGET_DATE", "target-date")
	mustBind("PIPELINE_OUTPUT_DIR", "output-dir")
}

func mustBind(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("failed to bind flag %s: %v", flag, err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
