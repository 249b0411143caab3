package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Pipeline: config.Pipeline{
			OutputDir:           t.TempDir(),
			TargetDateRaw:       "1996-08-08",
			TargetDate:          time.Date(1996, 8, 8, 0, 0, 0, 0, time.UTC),
			SaleLineItemsFile:   "daily_sales_data.csv",
			DailyRevenueFile:    "daily_revenue.csv",
			PointAnswerFile:     "revenue_1996_08_08.txt",
			ChartFile:           "daily_revenue_plot.png",
			AnnotatedChartFile:  "daily_revenue_plot_annotated.png",
			ChartWidthInches:    4,
			ChartHeightInches:   2,
			ChartDPI:            50,
			AnnotationOffsetDay: 30,
		},
	}
}

func TestApp_StagesSemBanco(t *testing.T) {
	cfg := testConfig(t)
	raw := "sale_date,product_id,unit_price,quantity,order_id\n" +
		"1996-08-08,11,10,4,10248\n" +
		"1996-08-09,42,5,2,10249\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Pipeline.OutputDir, cfg.Pipeline.SaleLineItemsFile), []byte(raw), 0o644))

	var out bytes.Buffer
	a, err := newApp(cfg, &out)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, a.runner.RunStage(ctx, domain.StageAggregate))
	require.NoError(t, a.runner.RunStage(ctx, domain.StageReport))
	require.NoError(t, a.runner.RunStage(ctx, domain.StageAnswer))

	answer, err := os.ReadFile(filepath.Join(cfg.Pipeline.OutputDir, cfg.Pipeline.PointAnswerFile))
	require.NoError(t, err)
	assert.Equal(t, "40.0", string(answer))

	for _, name := range []string{cfg.Pipeline.ChartFile, cfg.Pipeline.AnnotatedChartFile} {
		assert.FileExists(t, filepath.Join(cfg.Pipeline.OutputDir, name))
	}

	assert.Contains(t, out.String(), "TOTAL REVENUE ON 1996-08-08: $40.00")
	assert.Contains(t, out.String(), "ANSWER: $40.00")
}

func TestApp_StageDesconhecido(t *testing.T) {
	a, err := newApp(testConfig(t), &bytes.Buffer{})
	require.NoError(t, err)

	err = a.runner.RunStage(context.Background(), "publish")
	assert.ErrorIs(t, err, domain.ErrUnknownStage)
}
