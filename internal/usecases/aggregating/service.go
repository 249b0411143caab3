package aggregating

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/artifact"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/utils"
)

// Aggregator define a etapa que calcula a série diária e a resposta pontual
type Aggregator interface {
	Aggregate(ctx context.Context) (*Result, error)
}

type Result struct {
	Series []domain.DailyRevenue
	Answer domain.PointAnswer
}

type Service struct {
	artifacts artifact.Repository
	cfg       config.Pipeline
	out       io.Writer
}

func NewService(artifacts artifact.Repository, cfg config.Pipeline) *Service {
	return &Service{
		artifacts: artifacts,
		cfg:       cfg,
		out:       os.Stdout,
	}
}

// WithOutput troca o destino das mensagens de progresso
func (s *Service) WithOutput(out io.Writer) *Service {
	s.out = out
	return s
}

func (s *Service) Aggregate(ctx context.Context) (*Result, error) {
	items, err := s.artifacts.LoadSaleLineItems(ctx)
	if err != nil {
		return nil, domain.NewStageError(domain.StageAggregate, err, "")
	}

	series := AggregateDaily(items)
	if err := s.artifacts.SaveDailyRevenue(ctx, series); err != nil {
		return nil, domain.NewStageError(domain.StageAggregate, err, "erro ao gravar série diária")
	}

	answer := LookupTarget(series, s.cfg.TargetDate)
	if err := s.artifacts.SavePointAnswer(ctx, answer); err != nil {
		return nil, domain.NewStageError(domain.StageAggregate, err, "erro ao gravar resposta pontual")
	}

	targetDate := s.cfg.TargetDate.Format(time.DateOnly)
	if answer.Found {
		fmt.Fprintf(s.out, "TOTAL REVENUE ON %s: %s\n", targetDate, utils.FormatUSD(answer.Value))
	} else {
		fmt.Fprintf(s.out, "No sales data found for %s\n", targetDate)
	}
	fmt.Fprintln(s.out, "Daily revenue processed and saved")

	logrus.WithFields(logrus.Fields{
		"line_items":  len(items),
		"days":        len(series),
		"target_date": targetDate,
		"found":       answer.Found,
	}).Info("Receita diária agregada")

	return &Result{Series: series, Answer: answer}, nil
}

// AggregateDaily soma preço x quantidade por data de venda. Datas sem vendas não
// aparecem (sem preenchimento de lacunas) e a soma é exata, sem arredondamento.
// A série sai ordenada por data crescente.
func AggregateDaily(items []domain.SaleLineItem) []domain.DailyRevenue {
	totals := make(map[time.Time]decimal.Decimal)
	for _, item := range items {
		day := utils.TruncateToDate(item.SaleDate)
		totals[day] = totals[day].Add(item.Revenue())
	}

	series := make([]domain.DailyRevenue, 0, len(totals))
	for day, total := range totals {
		series = append(series, domain.DailyRevenue{
			SaleDate:     day,
			TotalRevenue: total,
		})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].SaleDate.Before(series[j].SaleDate)
	})

	return series
}

// LookupTarget procura a data alvo na série. Ausência não é erro: Found=false e o
// artefato recebe o sentinela "0".
func LookupTarget(series []domain.DailyRevenue, targetDate time.Time) domain.PointAnswer {
	answer := domain.PointAnswer{TargetDate: targetDate}

	if row, ok := domain.FindDailyRevenue(series, targetDate); ok {
		answer.Value = row.TotalRevenue
		answer.Found = true
	}

	return answer
}
