package service

import (
	"time"

	"pr-insights-service/internal/model"
)

// maxPRsPerRepo — жёсткий потолок числа PR на репозиторий после оконного
// фильтра. Обрезка отдаёт приоритет свежим PR и может занижать агрегаты,
// если за окно создано больше PR, чем потолок.
const maxPRsPerRepo = 30

// recentPullRequests возвращает префикс ленты PR, созданных не раньше
// now − days. Лента отсортирована от новых к старым, поэтому на первом PR
// старше границы обход останавливается. PR без created_at или с
// неразбираемым значением пропускается и не считается границей.
func recentPullRequests(prs []model.PullRequest, days int, now time.Time) []model.PullRequest {
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	var recent []model.PullRequest
	for _, pr := range prs {
		created, ok := parseTime(pr.CreatedAt)
		if !ok {
			continue
		}
		if created.Before(cutoff) {
			break
		}
		recent = append(recent, pr)
	}

	if len(recent) > maxPRsPerRepo {
		recent = recent[:maxPRsPerRepo]
	}
	return recent
}

// parseTime разбирает метку времени GitHub (RFC3339).
// Пустое или некорректное значение даёт ok == false.
func parseTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
