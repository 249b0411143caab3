package extracting

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/artifact"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/repository"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
)

// Extractor define a etapa que copia as linhas de pedido da fonte para o artefato bruto
type Extractor interface {
	Extract(ctx context.Context) (*Result, error)
}

type Result struct {
	Rows     int
	Location string
}

type Service struct {
	connector repository.SourceConnector
	artifacts artifact.Repository
	cfg       config.Pipeline
	out       io.Writer
}

func NewService(connector repository.SourceConnector, artifacts artifact.Repository, cfg config.Pipeline) *Service {
	return &Service{
		connector: connector,
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

// Extract abre a conexão (escopo desta invocação), executa o join e grava o artefato.
// Falha de conexão ou de consulta é fatal; nova tentativa é responsabilidade do agendador.
func (s *Service) Extract(ctx context.Context) (*Result, error) {
	startTime := time.Now()

	source, err := s.connector.Connect(ctx)
	if err != nil {
		return nil, domain.NewStageError(domain.StageExtract, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err), "")
	}
	defer func() {
		if err := source.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão com a fonte de pedidos")
		}
	}()

	items, err := source.ListSaleLineItems(ctx)
	if err != nil {
		return nil, domain.NewStageError(domain.StageExtract, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err), "")
	}

	if err := s.artifacts.SaveSaleLineItems(ctx, items); err != nil {
		return nil, domain.NewStageError(domain.StageExtract, err, "erro ao gravar linhas de pedido")
	}

	location := s.artifacts.Location(s.cfg.SaleLineItemsFile)
	logrus.WithFields(logrus.Fields{
		"rows":     len(items),
		"artifact": location,
		"duration": time.Since(startTime).String(),
	}).Info("Linhas de pedido extraídas")

	fmt.Fprintf(s.out, "Order data fetched and saved successfully (%d rows)\n", len(items))

	return &Result{Rows: len(items), Location: location}, nil
}
