// Package service содержит бизнес-логику конвейера аналитики pull request'ов:
// оконный фильтр, обогащение, агрегацию и оркестрацию с кэшированием.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"pr-insights-service/internal/model"
)

// defaultWindowDays — окно анализа по умолчанию, если клиент его не задал.
const defaultWindowDays = 30

// GitHubClient описывает контракт клиента GitHub для бизнес-слоя.
type GitHubClient interface {
	ListPullRequests(ctx context.Context, owner, repo string) ([]model.PullRequest, error)
	PullRequestDetail(ctx context.Context, owner, repo string, number int) (model.PullRequestDetail, error)
	PullRequestReviews(ctx context.Context, owner, repo string, number int) ([]model.Review, error)
}

// SummaryCache описывает контракт кэша готовых сводок. Ключ — набор
// репозиториев (порядок не важен) и длина окна в днях.
type SummaryCache interface {
	Get(repos []string, days int) (model.AggregateSummary, bool)
	Put(repos []string, days int, summary model.AggregateSummary)
}

// InsightsService — оркестратор конвейера: кэш → выборка → фильтр →
// обогащение → агрегация → запись в кэш.
type InsightsService struct {
	github GitHubClient
	cache  SummaryCache
	log    *slog.Logger
	now    func() time.Time
}

// NewInsightsService создаёт оркестратор аналитики pull request'ов.
func NewInsightsService(github GitHubClient, cache SummaryCache, log *slog.Logger) *InsightsService {
	return &InsightsService{
		github: github,
		cache:  cache,
		log:    log,
		now:    time.Now,
	}
}

// Insights строит сводку по списку репозиториев "owner/name" за окно days.
// Свежий кэш замыкает весь конвейер. Строка репозитория без разделителя
// пропускается; сбой выборки по одному репозиторию деградирует до пустого
// вклада этого репозитория и не валит запрос. Ошибки наружу не уходят:
// частичная аналитика ценнее отказа.
func (s *InsightsService) Insights(ctx context.Context, repos []string, days int) (model.AggregateSummary, error) {
	if days <= 0 {
		days = defaultWindowDays
	}

	if summary, ok := s.cache.Get(repos, days); ok {
		return summary, nil
	}

	var all []model.EnrichedPullRequest
	for _, full := range repos {
		owner, name, ok := strings.Cut(full, "/")
		if !ok || owner == "" || name == "" {
			s.log.Warn("skipping malformed repository", slog.String("repo", full))
			continue
		}

		prs, err := s.github.ListPullRequests(ctx, owner, name)
		if err != nil {
			s.log.Warn("failed to list pull requests",
				slog.String("repo", full),
				slog.Any("err", err),
			)
			continue
		}

		recent := recentPullRequests(prs, days, s.now())
		all = append(all, s.enrichAll(ctx, owner, name, recent)...)
	}

	summary := aggregate(all)
	s.cache.Put(repos, days, summary)

	return summary, nil
}
