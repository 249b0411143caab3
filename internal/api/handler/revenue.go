package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/artifact"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/apiErrors"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/utils"
)

// RevenueReader lê os artefatos publicados pelo pipeline
type RevenueReader interface {
	LoadDailyRevenue(ctx context.Context) ([]domain.DailyRevenue, error)
	LoadChart(ctx context.Context, kind artifact.ChartKind) ([]byte, error)
}

// AnswerLookup consulta a resposta pontual sem efeitos colaterais
type AnswerLookup interface {
	Lookup(ctx context.Context) (domain.AnswerResult, error)
}

type dailyRevenueItem struct {
	SaleDate     string          `json:"sale_date"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type dailyRevenueResponse struct {
	Days         []dailyRevenueItem `json:"days"`
	TotalRevenue decimal.Decimal    `json:"total_revenue"`
}

type answerResponse struct {
	TargetDate string          `json:"target_date"`
	Value      decimal.Decimal `json:"value"`
	Display    string          `json:"display"`
	Computed   bool            `json:"computed"`
}

func GetDailyRevenue(reader RevenueReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetDailyRevenue")

		series, err := reader.LoadDailyRevenue(r.Context())
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		response := dailyRevenueResponse{
			Days:         make([]dailyRevenueItem, 0, len(series)),
			TotalRevenue: decimal.Zero,
		}
		for _, day := range series {
			response.Days = append(response.Days, dailyRevenueItem{
				SaleDate:     day.SaleDate.Format(time.DateOnly),
				TotalRevenue: day.TotalRevenue,
			})
			response.TotalRevenue = response.TotalRevenue.Add(day.TotalRevenue)
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// GetAnswer responde 200 mesmo quando o pipeline ainda não rodou (computed=false)
func GetAnswer(lookup AnswerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetAnswer")

		result, err := lookup.Lookup(r.Context())
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, answerResponse{
			TargetDate: result.TargetDate.Format(time.DateOnly),
			Value:      result.Value,
			Display:    utils.FormatUSD(result.Value),
			Computed:   result.Computed,
		})
	}
}

func GetChart(reader RevenueReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetChart")

		kind := artifact.ChartBase
		if raw := r.URL.Query().Get("annotated"); raw != "" {
			annotated, err := strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro annotated inválido", map[string]string{"annotated": raw})
				return
			}
			if annotated {
				kind = artifact.ChartAnnotated
			}
		}

		image, err := reader.LoadChart(r.Context(), kind)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(image)))
		if _, err := w.Write(image); err != nil {
			logrus.WithError(err).Warn("Erro ao enviar gráfico")
		}
	}
}
