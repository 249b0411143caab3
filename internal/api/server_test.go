package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/artifact"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
	"github.com/vfg2006/daily-revenue-pipeline/internal/scheduler"
	"github.com/vfg2006/daily-revenue-pipeline/internal/scheduler/mocks"
	"github.com/vfg2006/daily-revenue-pipeline/internal/usecases/answering"
	"github.com/vfg2006/daily-revenue-pipeline/internal/usecases/authenticating"
	"go.uber.org/mock/gomock"
)

func TestServer_EndToEndAuthorization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{
		Server: config.Server{Host: "localhost", Port: "0"},
		Auth:   config.Auth{Secret: "segredo", TokenTTLHours: 1},
		Pipeline: config.Pipeline{
			OutputDir:       t.TempDir(),
			TargetDate:      time.Date(1996, 8, 8, 0, 0, 0, 0, time.UTC),
			PointAnswerFile: "revenue_1996_08_08.txt",
		},
		DailyRevenueSync: config.DailyRevenueSync{CronSchedule: "0 0 * * *", Enabled: false},
	}

	repo, err := artifact.NewRepositoryFromConfig(cfg.Pipeline)
	require.NoError(t, err)
	require.NoError(t, repo.SavePointAnswer(context.Background(), domain.PointAnswer{}))

	auth := authenticating.NewService(cfg.Auth)
	trigger := scheduler.NewDailyRevenuePipelineService(mocks.NewMockPipelineRunner(ctrl), cfg)
	lookup := answering.NewService(repo, cfg.Pipeline).WithOutput(&bytes.Buffer{})

	srv, err := New(cfg, auth, trigger, repo, lookup)
	require.NoError(t, err)

	viewer, err := auth.GenerateToken("painel", domain.RoleViewer, 0)
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{name: "Healthcheck sem token", method: http.MethodGet, path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "Resposta sem token", method: http.MethodGet, path: "/v1/revenue/answer", wantStatus: http.StatusUnauthorized},
		{name: "Resposta com token de leitor", method: http.MethodGet, path: "/v1/revenue/answer", token: viewer, wantStatus: http.StatusOK},
		{name: "Status exige operador", method: http.MethodGet, path: "/v1/pipeline/status", token: viewer, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			srv.Handler().ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(&config.Config{}, nil, nil, nil, nil)
	assert.Error(t, err)
}
