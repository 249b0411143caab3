package main

import (
	"github.com/spf13/cobra"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
)

// Um comando por etapa, executada uma vez e sem retry
var stageCommands = []struct {
	name  string
	short string
}{
	{name: domain.StageExtract, short: "Fetch order lines from PostgreSQL into the raw artifact"},
	{name: domain.StageAggregate, short: "Aggregate daily revenue and compute the point answer"},
	{name: domain.StageReport, short: "Render the base and annotated revenue charts"},
	{name: domain.StageAnswer, short: "Print the revenue answer for the target date"},
}

func init() {
	for _, stage := range stageCommands {
		name := stage.name
		rootCmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: stage.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := newApp(cfg, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				return a.runner.RunStage(cmd.Context(), name)
			},
		})
	}
}
