package http

import (
	"encoding/json"
	"net/http"

	"pr-insights-service/internal/service"
)

func (h *Handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	const handlerName = "insights"

	var req insightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, handlerName, service.ErrBadRequest("invalid JSON"))
		return
	}

	if err := ValidateInsightsRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	// Некорректные строки репозиториев внутри списка — не ошибка запроса:
	// конвейер пропускает их молча, остальные обрабатываются.
	summary, err := h.Insights.Insights(r.Context(), req.Repos, req.Days)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}
