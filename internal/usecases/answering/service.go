package answering

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/artifact"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/utils"
)

const (
	bannerWidth    = 50
	missingMessage = "Revenue file not found. Run the aggregate stage first."
)

// Answerer define a etapa que apresenta a resposta pontual
type Answerer interface {
	Answer(ctx context.Context) (domain.AnswerResult, error)
	Lookup(ctx context.Context) (domain.AnswerResult, error)
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

// Lookup lê a resposta persistida sem imprimir nada. Artefato ausente não é erro:
// retorna Computed=false e valor zero.
func (s *Service) Lookup(ctx context.Context) (domain.AnswerResult, error) {
	result := domain.AnswerResult{
		TargetDate: s.cfg.TargetDate,
		Value:      decimal.Zero,
	}

	value, err := s.artifacts.LoadPointAnswer(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return result, nil
		}
		return result, domain.NewStageError(domain.StageAnswer, err, "")
	}

	result.Value = value
	result.Computed = true
	return result, nil
}

// Answer imprime o banner com a pergunta e a resposta formatada
func (s *Service) Answer(ctx context.Context) (domain.AnswerResult, error) {
	result, err := s.Lookup(ctx)
	if err != nil {
		return result, err
	}

	if !result.Computed {
		logrus.WithField("artifact", s.artifacts.Location(s.cfg.PointAnswerFile)).
			Warn("Resposta pontual ainda não calculada")
		fmt.Fprintln(s.out, missingMessage)
		return result, nil
	}

	separator := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(s.out, separator)
	fmt.Fprintln(s.out, "FINAL ANSWER:")
	fmt.Fprintf(s.out, "What is the total revenue on %s?\n", s.cfg.TargetDate.Format(time.DateOnly))
	fmt.Fprintf(s.out, "ANSWER: %s\n", utils.FormatUSD(result.Value))
	fmt.Fprintln(s.out, separator)

	return result, nil
}
