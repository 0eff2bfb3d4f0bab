// Package mocks содержит testify-моки интерфейсов бизнес-слоя для юнит-тестов.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pr-insights-service/internal/model"
)

// GitHubClient — мок интерфейса service.GitHubClient.
type GitHubClient struct {
	mock.Mock
}

func (m *GitHubClient) ListPullRequests(ctx context.Context, owner, repo string) ([]model.PullRequest, error) {
	args := m.Called(ctx, owner, repo)
	prs, _ := args.Get(0).([]model.PullRequest)
	return prs, args.Error(1)
}

func (m *GitHubClient) PullRequestDetail(ctx context.Context, owner, repo string, number int) (model.PullRequestDetail, error) {
	args := m.Called(ctx, owner, repo, number)
	detail, _ := args.Get(0).(model.PullRequestDetail)
	return detail, args.Error(1)
}

func (m *GitHubClient) PullRequestReviews(ctx context.Context, owner, repo string, number int) ([]model.Review, error) {
	args := m.Called(ctx, owner, repo, number)
	reviews, _ := args.Get(0).([]model.Review)
	return reviews, args.Error(1)
}
