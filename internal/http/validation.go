package http

import (
	"pr-insights-service/internal/service"
)

// ValidateInsightsRequest Валидация тела запроса для /insights.
// days == 0 означает «окно по умолчанию» и валиден; отрицательное окно — нет.
func ValidateInsightsRequest(req insightsRequest) error {
	if len(req.Repos) == 0 {
		return service.ErrBadRequest("repos must not be empty")
	}
	if req.Days < 0 {
		return service.ErrBadRequest("days must not be negative")
	}
	return nil
}
