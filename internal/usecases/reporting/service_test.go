package reporting_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/artifact"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
	"github.com/vfg2006/daily-revenue-pipeline/internal/usecases/reporting"
	"github.com/vfg2006/daily-revenue-pipeline/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func newPipelineConfig(t *testing.T) config.Pipeline {
	t.Helper()
	return config.Pipeline{
		OutputDir:           t.TempDir(),
		TargetDate:          time.Date(1996, 8, 8, 0, 0, 0, 0, time.UTC),
		SaleLineItemsFile:   "daily_sales_data.csv",
		DailyRevenueFile:    "daily_revenue.csv",
		PointAnswerFile:     "revenue_1996_08_08.txt",
		ChartFile:           "daily_revenue_plot.png",
		AnnotatedChartFile:  "daily_revenue_plot_annotated.png",
		ChartWidthInches:    12,
		ChartHeightInches:   6,
		ChartDPI:            300,
		AnnotationOffsetDay: 30,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// annotationIs casa specs cuja anotação é nil (want == nil) ou tem o rótulo informado
type annotationIs struct{ label *string }

func (a annotationIs) Matches(x any) bool {
	spec, ok := x.(domain.ChartSpec)
	if !ok {
		return false
	}
	if a.label == nil {
		return spec.Annotation == nil
	}
	return spec.Annotation != nil && spec.Annotation.Label == *a.label
}

func (a annotationIs) String() string {
	if a.label == nil {
		return "chart spec sem anotação"
	}
	return "chart spec anotado com " + *a.label
}

func withLabel(label string) annotationIs { return annotationIs{label: &label} }

func TestService_Report(t *testing.T) {
	tests := []struct {
		name     string
		series   []domain.DailyRevenue
		seed     func(t *testing.T, repo artifact.Repository)
		setup    func(renderer *mocks.MockChartRenderer)
		validate func(t *testing.T, repo artifact.Repository, result *reporting.Result, err error, out string)
	}{
		{
			name: "Data alvo presente - gera gráfico base e anotado",
			series: []domain.DailyRevenue{
				{SaleDate: day(1996, 8, 7), TotalRevenue: decimal.NewFromInt(10)},
				{SaleDate: day(1996, 8, 8), TotalRevenue: decimal.NewFromInt(40)},
			},
			setup: func(renderer *mocks.MockChartRenderer) {
				gomock.InOrder(
					renderer.EXPECT().Render(gomock.Any(), annotationIs{}).Return([]byte("base"), nil),
					renderer.EXPECT().Render(gomock.Any(), withLabel("1996-08-08: $40.00")).Return([]byte("anotado"), nil),
				)
			},
			validate: func(t *testing.T, repo artifact.Repository, result *reporting.Result, err error, out string) {
				require.NoError(t, err)
				assert.NotEmpty(t, result.BaseChart)
				assert.NotEmpty(t, result.AnnotatedChart)

				base, err := repo.LoadChart(context.Background(), artifact.ChartBase)
				require.NoError(t, err)
				assert.Equal(t, "base", string(base))

				annotated, err := repo.LoadChart(context.Background(), artifact.ChartAnnotated)
				require.NoError(t, err)
				assert.Equal(t, "anotado", string(annotated))

				assert.Contains(t, out, "Revenue chart saved to")
				assert.Contains(t, out, "Annotated revenue chart saved to")
			},
		},
		{
			name: "Data alvo ausente - só gráfico base e remove anotado antigo",
			series: []domain.DailyRevenue{
				{SaleDate: day(1996, 7, 4), TotalRevenue: decimal.NewFromInt(100)},
			},
			seed: func(t *testing.T, repo artifact.Repository) {
				require.NoError(t, repo.SaveChart(context.Background(), artifact.ChartAnnotated, []byte("velho")))
			},
			setup: func(renderer *mocks.MockChartRenderer) {
				renderer.EXPECT().Render(gomock.Any(), annotationIs{}).Return([]byte("base"), nil).Times(1)
			},
			validate: func(t *testing.T, repo artifact.Repository, result *reporting.Result, err error, out string) {
				require.NoError(t, err)
				assert.Empty(t, result.AnnotatedChart)

				_, err = repo.LoadChart(context.Background(), artifact.ChartAnnotated)
				assert.ErrorIs(t, err, domain.ErrDataNotFound)
				assert.NotContains(t, out, "Annotated")
			},
		},
		{
			name:   "Série vazia - gráfico base vazio, sem anotado",
			series: []domain.DailyRevenue{},
			setup: func(renderer *mocks.MockChartRenderer) {
				renderer.EXPECT().Render(gomock.Any(), annotationIs{}).Return([]byte("vazio"), nil).Times(1)
			},
			validate: func(t *testing.T, repo artifact.Repository, result *reporting.Result, err error, out string) {
				require.NoError(t, err)
				assert.Empty(t, result.AnnotatedChart)
			},
		},
		{
			name: "Erro do renderizador - falha da etapa sem gravar nada",
			series: []domain.DailyRevenue{
				{SaleDate: day(1996, 8, 8), TotalRevenue: decimal.NewFromInt(40)},
			},
			setup: func(renderer *mocks.MockChartRenderer) {
				renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil, errors.New("sem fonte"))
			},
			validate: func(t *testing.T, repo artifact.Repository, result *reporting.Result, err error, out string) {
				require.Error(t, err)
				var stageErr *domain.StageError
				require.True(t, errors.As(err, &stageErr))
				assert.Equal(t, domain.StageReport, stageErr.Stage)

				_, err = repo.LoadChart(context.Background(), artifact.ChartBase)
				assert.ErrorIs(t, err, domain.ErrDataNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			cfg := newPipelineConfig(t)
			repo, err := artifact.NewRepositoryFromConfig(cfg)
			require.NoError(t, err)
			require.NoError(t, repo.SaveDailyRevenue(context.Background(), tt.series))
			if tt.seed != nil {
				tt.seed(t, repo)
			}

			renderer := mocks.NewMockChartRenderer(ctrl)
			tt.setup(renderer)

			var out bytes.Buffer
			service := reporting.NewService(repo, renderer, cfg).WithOutput(&out)

			result, err := service.Report(context.Background())
			tt.validate(t, repo, result, err, out.String())
		})
	}
}

func TestService_Report_SortsSeriesBeforeRendering(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := newPipelineConfig(t)
	cfg.TargetDate = day(2000, 1, 1)
	repo, err := artifact.NewRepositoryFromConfig(cfg)
	require.NoError(t, err)
	require.NoError(t, repo.SaveDailyRevenue(context.Background(), []domain.DailyRevenue{
		{SaleDate: day(1996, 8, 9), TotalRevenue: decimal.NewFromInt(2)},
		{SaleDate: day(1996, 8, 7), TotalRevenue: decimal.NewFromInt(1)},
	}))

	renderer := mocks.NewMockChartRenderer(ctrl)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec domain.ChartSpec) ([]byte, error) {
			require.Len(t, spec.Series, 2)
			assert.True(t, spec.Series[0].SaleDate.Before(spec.Series[1].SaleDate))
			assert.Equal(t, "Daily Sales Revenue Over Time", spec.Title)
			assert.Equal(t, 300, spec.DPI)
			return []byte("png"), nil
		})

	_, err = reporting.NewService(repo, renderer, cfg).WithOutput(&bytes.Buffer{}).Report(context.Background())
	assert.NoError(t, err)
}

func TestService_Report_MissingSeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := newPipelineConfig(t)
	repo, err := artifact.NewRepositoryFromConfig(cfg)
	require.NoError(t, err)

	renderer := mocks.NewMockChartRenderer(ctrl)

	_, err = reporting.NewService(repo, renderer, cfg).WithOutput(&bytes.Buffer{}).Report(context.Background())
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}
