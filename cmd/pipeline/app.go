package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/artifact"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/chart"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/repository"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/pipeline"
	"github.com/vfg2006/daily-revenue-pipeline/internal/usecases/aggregating"
	"github.com/vfg2006/daily-revenue-pipeline/internal/usecases/answering"
	"github.com/vfg2006/daily-revenue-pipeline/internal/usecases/extracting"
	"github.com/vfg2006/daily-revenue-pipeline/internal/usecases/reporting"
)

// app reúne os serviços montados a partir da configuração
type app struct {
	artifacts artifact.Repository
	extractor *extracting.Service
	aggregate *aggregating.Service
	reporter  *reporting.Service
	answerer  *answering.Service
	runner    *pipeline.Runner
}

func newApp(cfg *config.Config, out io.Writer) (*app, error) {
	if out == nil {
		out = os.Stdout
	}

	artifacts, err := artifact.NewRepositoryFromConfig(cfg.Pipeline)
	if err != nil {
		return nil, err
	}

	a := &app{
		artifacts: artifacts,
		extractor: extracting.NewService(repository.NewSourceConnector(cfg.Database), artifacts, cfg.Pipeline).WithOutput(out),
		aggregate: aggregating.NewService(artifacts, cfg.Pipeline).WithOutput(out),
		reporter:  reporting.NewService(artifacts, chart.NewPNGRenderer(), cfg.Pipeline).WithOutput(out),
		answerer:  answering.NewService(artifacts, cfg.Pipeline).WithOutput(out),
	}

	a.runner = pipeline.NewRunner(a.stages(), pipeline.RetryPolicy{
		Retries: cfg.DailyRevenueSync.Retries,
		Delay:   time.Duration(cfg.DailyRevenueSync.RetryDelaySeconds) * time.Second,
	})

	return a, nil
}

func (a *app) stages() pipeline.Stages {
	return pipeline.Stages{
		Extract: func(ctx context.Context) error {
			_, err := a.extractor.Extract(ctx)
			return err
		},
		Aggregate: func(ctx context.Context) error {
			_, err := a.aggregate.Aggregate(ctx)
			return err
		},
		Report: func(ctx context.Context) error {
			_, err := a.reporter.Report(ctx)
			return err
		},
		Answer: func(ctx context.Context) error {
			_, err := a.answerer.Answer(ctx)
			return err
		},
	}
}
