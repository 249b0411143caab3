package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/daily-revenue-pipeline/internal/api"
	"github.com/vfg2006/daily-revenue-pipeline/internal/scheduler"
	"github.com/vfg2006/daily-revenue-pipeline/internal/usecases/authenticating"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the daily scheduler and the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		pipelineService := scheduler.NewDailyRevenuePipelineService(a.runner, cfg)
		if err := pipelineService.Start(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao iniciar o agendador do pipeline de receita diária")
			return err
		}
		logrus.Info("Agendador do pipeline de receita diária iniciado com sucesso")

		server, err := api.New(cfg, authenticating.NewService(cfg.Auth), pipelineService, a.artifacts, a.answerer)
		if err != nil {
			return err
		}

		return server.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
