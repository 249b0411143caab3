package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação
	ErrInvalidRequest = "VAL_001" // Requisição inválida

	// Erros do pipeline
	ErrDataNotFound      = "PIPE_001" // Artefato ainda não calculado
	ErrMalformedArtifact = "PIPE_002" // Artefato fora do schema
	ErrRunInProgress     = "PIPE_003" // Já existe execução em andamento

	// Erros do servidor
	ErrInternalServer = "SRV_001" // Erro interno do servidor
)

var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrDataNotFound:          http.StatusNotFound,
	ErrMalformedArtifact:     http.StatusInternalServerError,
	ErrRunInProgress:         http.StatusConflict,
	ErrInternalServer:        http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	if status, exists := httpStatusMap[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// CodeFor traduz os erros do domínio para códigos da API
func CodeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrDataNotFound):
		return ErrDataNotFound
	case errors.Is(err, domain.ErrMalformedArtifact):
		return ErrMalformedArtifact
	case errors.Is(err, domain.ErrRunInProgress):
		return ErrRunInProgress
	default:
		return ErrInternalServer
	}
}

// WriteDomainError escreve um erro do domínio com o código correspondente
func WriteDomainError(w http.ResponseWriter, err error) {
	WriteError(w, CodeFor(err), err.Error(), nil)
}
