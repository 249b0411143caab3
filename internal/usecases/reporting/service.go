package reporting

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/artifact"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/utils"
)

const (
	chartTitle  = "Daily Sales Revenue Over Time"
	chartXLabel = "Date"
	chartYLabel = "Daily Revenue ($)"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// ChartRenderer é o backend de desenho: recebe a série e devolve a imagem
type ChartRenderer interface {
	Render(ctx context.Context, spec domain.ChartSpec) ([]byte, error)
}

// Reporter define a etapa que gera os gráficos da série diária
type Reporter interface {
	Report(ctx context.Context) (*Result, error)
}

type Result struct {
	BaseChart      string
	AnnotatedChart string // vazio quando a data alvo não está na série
}

type Service struct {
	artifacts artifact.Repository
	renderer  ChartRenderer
	cfg       config.Pipeline
	out       io.Writer
}

func NewService(artifacts artifact.Repository, renderer ChartRenderer, cfg config.Pipeline) *Service {
	return &Service{
		artifacts: artifacts,
		renderer:  renderer,
		cfg:       cfg,
		out:       os.Stdout,
	}
}

// WithOutput troca o destino das mensagens de progresso
func (s *Service) WithOutput(out io.Writer) *Service {
	s.out = out
	return s
}

func (s *Service) Report(ctx context.Context) (*Result, error) {
	series, err := s.artifacts.LoadDailyRevenue(ctx)
	if err != nil {
		return nil, domain.NewStageError(domain.StageReport, err, "")
	}

	// O eixo X depende da ordem; não confiar na ordenação feita pelo agregador
	series = sortByDate(series)

	spec := domain.ChartSpec{
		Title:        chartTitle,
		XLabel:       chartXLabel,
		YLabel:       chartYLabel,
		Series:       series,
		WidthInches:  s.cfg.ChartWidthInches,
		HeightInches: s.cfg.ChartHeightInches,
		DPI:          s.cfg.ChartDPI,
	}

	if err := s.renderAndSave(ctx, artifact.ChartBase, spec); err != nil {
		return nil, err
	}

	result := &Result{BaseChart: s.artifacts.Location(s.cfg.ChartFile)}
	fmt.Fprintf(s.out, "Revenue chart saved to %s\n", result.BaseChart)

	target, ok := domain.FindDailyRevenue(series, s.cfg.TargetDate)
	if !ok {
		// Sem a data alvo só existe o gráfico base; remove variante anotada de execução anterior
		if err := s.artifacts.RemoveChart(ctx, artifact.ChartAnnotated); err != nil {
			return nil, domain.NewStageError(domain.StageReport, err, "erro ao remover gráfico anotado antigo")
		}
		logrus.WithField("target_date", s.cfg.TargetDate.Format(time.DateOnly)).
			Info("Data alvo ausente na série, gráfico anotado não gerado")
		return result, nil
	}

	spec.Annotation = &domain.ChartAnnotation{
		Date:       target.SaleDate,
		Value:      target.TotalRevenue,
		Label:      fmt.Sprintf("%s: %s", target.SaleDate.Format(time.DateOnly), utils.FormatUSD(target.TotalRevenue)),
		OffsetDays: s.cfg.AnnotationOffsetDay,
	}

	if err := s.renderAndSave(ctx, artifact.ChartAnnotated, spec); err != nil {
		return nil, err
	}

	result.AnnotatedChart = s.artifacts.Location(s.cfg.AnnotatedChartFile)
	fmt.Fprintf(s.out, "Annotated revenue chart saved to %s\n", result.AnnotatedChart)

	logrus.WithFields(logrus.Fields{
		"days":            len(series),
		"base_chart":      result.BaseChart,
		"annotated_chart": result.AnnotatedChart,
	}).Info("Gráficos de receita gerados")

	return result, nil
}

func (s *Service) renderAndSave(ctx context.Context, kind artifact.ChartKind, spec domain.ChartSpec) error {
	image, err := s.renderer.Render(ctx, spec)
	if err != nil {
		return domain.NewStageError(domain.StageReport, err, fmt.Sprintf("erro ao renderizar gráfico %s", kind))
	}

	if err := s.artifacts.SaveChart(ctx, kind, image); err != nil {
		return domain.NewStageError(domain.StageReport, err, fmt.Sprintf("erro ao gravar gráfico %s", kind))
	}

	return nil
}

func sortByDate(series []domain.DailyRevenue) []domain.DailyRevenue {
	sorted := make([]domain.DailyRevenue, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SaleDate.Before(sorted[j].SaleDate)
	})
	return sorted
}
