// Package github реализует клиент REST API GitHub для чтения pull request'ов,
// их деталей и ревью. Клиент возвращает ошибку на любой сбой транспорта,
// не-2xx статус или неразбираемое тело; решение о деградации до пустого
// результата принимает вызывающий слой.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pr-insights-service/internal/model"
)

const (
	// perPage — размер единственной запрашиваемой страницы списка PR.
	perPage = 50

	// requestTimeout — общий дедлайн на один исходящий запрос.
	requestTimeout = 30 * time.Second
)

// Client — HTTP-клиент GitHub API с bearer-авторизацией.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient создаёт клиент для baseURL (например, https://api.github.com).
// Пустой token допустим: запросы уходят без авторизации.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// ListPullRequests возвращает первую страницу PR репозитория (до 50 штук)
// во всех состояниях, отсортированную по дате создания от новых к старым.
func (c *Client) ListPullRequests(ctx context.Context, owner, repo string) ([]model.PullRequest, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls?state=all&per_page=%d&sort=created&direction=desc",
		c.baseURL, owner, repo, perPage)

	var prs []model.PullRequest
	if err := c.get(ctx, url, &prs); err != nil {
		return nil, fmt.Errorf("list pull requests %s/%s: %w", owner, repo, err)
	}
	return prs, nil
}

// PullRequestDetail возвращает полный объект PR ради размерных полей
// (additions, deletions, changed_files), которых нет в списке.
func (c *Client) PullRequestDetail(ctx context.Context, owner, repo string, number int) (model.PullRequestDetail, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", c.baseURL, owner, repo, number)

	var detail model.PullRequestDetail
	if err := c.get(ctx, url, &detail); err != nil {
		return model.PullRequestDetail{}, fmt.Errorf("pull request detail %s/%s#%d: %w", owner, repo, number, err)
	}
	return detail, nil
}

// PullRequestReviews возвращает список ревью PR.
func (c *Client) PullRequestReviews(ctx context.Context, owner, repo string, number int) ([]model.Review, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/reviews", c.baseURL, owner, repo, number)

	var reviews []model.Review
	if err := c.get(ctx, url, &reviews); err != nil {
		return nil, fmt.Errorf("pull request reviews %s/%s#%d: %w", owner, repo, number, err)
	}
	return reviews, nil
}

// get выполняет GET-запрос и декодирует JSON-ответ в out.
// Ответ с ошибочным статусом (в том числе объект {"message": ...} вместо
// списка) превращается в ошибку, а не в частично разобранные данные.
func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
