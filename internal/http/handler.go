package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"pr-insights-service/internal/model"
	"pr-insights-service/internal/service"
)

// InsightsService описывает контракт бизнес-слоя для HTTP-обработчиков.
type InsightsService interface {
	Insights(ctx context.Context, repos []string, days int) (model.AggregateSummary, error)
}

// Handler инкапсулирует зависимости HTTP-слоя.
type Handler struct {
	Insights InsightsService
	Log      *slog.Logger
}

// NewHandler создаёт HTTP-обработчик поверх сервиса аналитики.
func NewHandler(insights InsightsService, log *slog.Logger) *Handler {
	return &Handler{
		Insights: insights,
		Log:      log,
	}
}

// Router собирает маршруты сервиса. CORS открыт полностью:
// результат потребляет браузерный дашборд с другого origin'а.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", h.handleHealth)
	r.Post("/insights", h.handleInsights)

	return r
}

func (h *Handler) writeError(w http.ResponseWriter, handlerName string, err error) {
	appErr, ok := err.(*service.AppError)
	if !ok {
		appErr = service.ErrInternal("internal error", err)
	}

	h.Log.Error("handler error",
		slog.String("handler", handlerName),
		slog.String("code", appErr.Code),
		slog.String("message", appErr.Message),
		slog.Any("err", appErr.Err),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)

	resp := errorResponse{}
	resp.Error.Code = appErr.Code
	resp.Error.Message = appErr.Message
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
