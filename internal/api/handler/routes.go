package handler

import (
	"net/http"

	"github.com/vfg2006/daily-revenue-pipeline/internal/api/handler/router"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Pipeline(trigger PipelineTrigger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/pipeline/run",
			Method:      http.MethodPost,
			Handler:     RunPipeline(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/pipeline/status",
			Method:      http.MethodGet,
			Handler:     GetPipelineStatus(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
	}
}

func Revenue(reader RevenueReader, lookup AnswerLookup) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/revenue/daily",
			Method:      http.MethodGet,
			Handler:     GetDailyRevenue(reader),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/revenue/answer",
			Method:      http.MethodGet,
			Handler:     GetAnswer(lookup),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/revenue/chart",
			Method:      http.MethodGet,
			Handler:     GetChart(reader),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
