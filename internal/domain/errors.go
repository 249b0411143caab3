package domain

import (
	"errors"
	"fmt"
)

// Erros do pipeline de receita
var (
	// Fonte relacional inacessível ou consulta falhou (fatal para a execução)
	ErrSourceUnavailable = errors.New("source unavailable")

	// Artefato de uma etapa anterior não existe (pipeline invocado fora de ordem)
	ErrDataNotFound = errors.New("data not found")

	// Artefato existe mas não respeita o schema declarado
	ErrMalformedArtifact = errors.New("malformed artifact")

	// Já existe uma execução do pipeline em andamento
	ErrRunInProgress = errors.New("pipeline run already in progress")

	// Nome de etapa desconhecido
	ErrUnknownStage = errors.New("unknown stage")
)

// StageError é um erro com o contexto da etapa que falhou
type StageError struct {
	Stage   string // Nome da etapa
	Err     error  // Erro base
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *StageError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Stage, e.Err.Error(), e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Err.Error())
}

// Unwrap retorna o erro subjacente
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError cria um novo StageError
func NewStageError(stage string, err error, details string) *StageError {
	return &StageError{
		Stage:   stage,
		Err:     err,
		Details: details,
	}
}
