package extracting

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
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/repository/mocks"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_Extract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConnector := mocks.NewMockSourceConnector(ctrl)
	mockSource := mocks.NewMockSaleLineItemRepository(ctrl)

	saleDate := time.Date(1996, 8, 8, 0, 0, 0, 0, time.UTC)
	items := []domain.SaleLineItem{
		{SaleDate: saleDate, ProductID: 1, UnitPrice: decimal.NewFromInt(10), Quantity: 2, OrderID: 100},
		{SaleDate: saleDate, ProductID: 2, UnitPrice: decimal.NewFromInt(5), Quantity: 4, OrderID: 100},
	}

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, repo artifact.Repository, result *Result, err error, out string)
	}{
		{
			name: "Sucesso - grava uma linha por item de pedido",
			setup: func() {
				mockConnector.EXPECT().Connect(gomock.Any()).Return(mockSource, nil)
				mockSource.EXPECT().ListSaleLineItems(gomock.Any()).Return(items, nil)
				mockSource.EXPECT().Close().Return(nil)
			},
			validate: func(t *testing.T, repo artifact.Repository, result *Result, err error, out string) {
				require.NoError(t, err)
				assert.Equal(t, 2, result.Rows)

				loaded, err := repo.LoadSaleLineItems(context.Background())
				require.NoError(t, err)
				assert.Len(t, loaded, 2)
				assert.Equal(t, "Order data fetched and saved successfully (2 rows)\n", out)
			},
		},
		{
			name: "Fonte vazia - artefato só com cabeçalho",
			setup: func() {
				mockConnector.EXPECT().Connect(gomock.Any()).Return(mockSource, nil)
				mockSource.EXPECT().ListSaleLineItems(gomock.Any()).Return([]domain.SaleLineItem{}, nil)
				mockSource.EXPECT().Close().Return(nil)
			},
			validate: func(t *testing.T, repo artifact.Repository, result *Result, err error, out string) {
				require.NoError(t, err)
				assert.Equal(t, 0, result.Rows)

				loaded, err := repo.LoadSaleLineItems(context.Background())
				require.NoError(t, err)
				assert.Empty(t, loaded)
			},
		},
		{
			name: "Falha de conexão - SourceUnavailable sem artefato",
			setup: func() {
				mockConnector.EXPECT().Connect(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			validate: func(t *testing.T, repo artifact.Repository, result *Result, err error, out string) {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
				assert.Contains(t, err.Error(), "connection refused")

				_, err = repo.LoadSaleLineItems(context.Background())
				assert.ErrorIs(t, err, domain.ErrDataNotFound)
				assert.Empty(t, out)
			},
		},
		{
			name: "Falha na consulta - fecha a conexão e retorna SourceUnavailable",
			setup: func() {
				mockConnector.EXPECT().Connect(gomock.Any()).Return(mockSource, nil)
				mockSource.EXPECT().ListSaleLineItems(gomock.Any()).Return(nil, errors.New("relation \"orders\" does not exist"))
				mockSource.EXPECT().Close().Return(nil)
			},
			validate: func(t *testing.T, repo artifact.Repository, result *Result, err error, out string) {
				assert.ErrorIs(t, err, domain.ErrSourceUnavailable)

				var stageErr *domain.StageError
				require.True(t, errors.As(err, &stageErr))
				assert.Equal(t, domain.StageExtract, stageErr.Stage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Pipeline{
				OutputDir:         t.TempDir(),
				SaleLineItemsFile: "daily_sales_data.csv",
			}
			repo, err := artifact.NewRepositoryFromConfig(cfg)
			require.NoError(t, err)

			tt.setup()

			var out bytes.Buffer
			service := NewService(mockConnector, repo, cfg).WithOutput(&out)

			result, err := service.Extract(context.Background())
			tt.validate(t, repo, result, err, out.String())
		})
	}
}
