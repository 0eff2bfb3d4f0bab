// Package http реализует HTTP-обработчики и DTO поверх сервиса аналитики.
package http

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type insightsRequest struct {
	Repos []string `json:"repos"`
	Days  int      `json:"days"`
}
