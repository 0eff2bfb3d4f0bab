// Package mocks содержит testify-моки интерфейсов HTTP-слоя для юнит-тестов.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pr-insights-service/internal/model"
)

// InsightsService — мок интерфейса http.InsightsService.
type InsightsService struct {
	mock.Mock
}

func (m *InsightsService) Insights(ctx context.Context, repos []string, days int) (model.AggregateSummary, error) {
	args := m.Called(ctx, repos, days)
	summary, _ := args.Get(0).(model.AggregateSummary)
	return summary, args.Error(1)
}
