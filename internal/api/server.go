package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/daily-revenue-pipeline/internal/api/handler"
	"github.com/vfg2006/daily-revenue-pipeline/internal/api/handler/router"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/usecases/authenticating"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	cfg *config.Config,
	authenticator authenticating.Authenticator,
	trigger handler.PipelineTrigger,
	reader handler.RevenueReader,
	lookup handler.AnswerLookup,
) (*Server, error) {
	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("api: AUTH_SECRET é obrigatório para expor a API")
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Pipeline(trigger)...),
		router.WithRoutes(handler.Revenue(reader, lookup)...),
	)

	for _, route := range rt.Routes() {
		logrus.WithFields(logrus.Fields{
			"method": route.Method,
			"path":   route.Path,
		}).Debug("Rota registrada")
	}

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run atende até o contexto ser cancelado e então desliga o servidor
func (s Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logrus.WithError(err).Error("Erro durante a execução do servidor")
		return err
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
