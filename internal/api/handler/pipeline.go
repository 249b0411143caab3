package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/apiErrors"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PipelineTrigger é o agendador visto pela API
type PipelineTrigger interface {
	TriggerManualSync() error
	GetStatus() map[string]any
}

// RunPipeline dispara uma execução manual em segundo plano
func RunPipeline(trigger PipelineTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunPipeline")

		subject := ""
		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			subject = claims.Subject
		}

		if err := trigger.TriggerManualSync(); err != nil {
			if errors.Is(err, domain.ErrRunInProgress) {
				apiErrors.WriteError(w, apiErrors.ErrRunInProgress, "Já existe uma execução do pipeline em andamento", nil)
				return
			}
			apiErrors.WriteDomainError(w, err)
			return
		}

		logrus.WithField("subject", subject).Info("Execução manual do pipeline solicitada")

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Execução do pipeline iniciada",
		})
	}
}

func GetPipelineStatus(trigger PipelineTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetPipelineStatus")
		writeJSON(w, http.StatusOK, trigger.GetStatus())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao serializar resposta")
	}
}
