package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/daily-revenue-pipeline/internal/scheduler"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/utils"
)

var runPrintRecord bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the whole task graph once with the configured retry policy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		run, runErr := a.runner.Run(cmd.Context(), scheduler.TriggerManual)

		if runPrintRecord {
			record, err := utils.PrettyJSON(run)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), record)
		}

		return runErr
	},
}

func init() {
	runCmd.Flags().BoolVar(&runPrintRecord, "print-record", false, "Print the run record as JSON to stderr")
	rootCmd.AddCommand(runCmd)
}
