package service

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"pr-insights-service/internal/model"
)

const (
	// enrichConcurrency ограничивает пул одновременных обогащений PR.
	enrichConcurrency = 8

	// Пороги для классификации узких мест и высоковлиятельных PR.
	largeChangeThreshold = 500
	manyFilesThreshold   = 20
	slowReviewHours      = 24
	slowMergeHours       = 72
)

// enrichAll обогащает набор PR одного репозитория. Обогащения выполняются
// конкурентно в пуле из enrichConcurrency воркеров; порядок результата
// совпадает с порядком входа независимо от порядка завершения.
func (s *InsightsService) enrichAll(ctx context.Context, owner, repo string, prs []model.PullRequest) []model.EnrichedPullRequest {
	enriched := make([]model.EnrichedPullRequest, len(prs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i, pr := range prs {
		i, pr := i, pr
		g.Go(func() error {
			enriched[i] = s.enrichPullRequest(gctx, owner, repo, pr)
			return nil
		})
	}
	// Воркеры не возвращают ошибок: сбой под-запроса деградирует до пустого
	// результата внутри enrichPullRequest и не отменяет соседей.
	_ = g.Wait()

	return enriched
}

// enrichPullRequest конкурентно запрашивает детали и ревью одного PR
// и выводит из них производные метрики. Сбой любого из двух под-запросов
// даёт пустые детали/ревью для этого PR, но не прерывает обогащение.
func (s *InsightsService) enrichPullRequest(ctx context.Context, owner, repo string, pr model.PullRequest) model.EnrichedPullRequest {
	var (
		detail  model.PullRequestDetail
		reviews []model.Review
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.github.PullRequestDetail(gctx, owner, repo, pr.Number)
		if err != nil {
			s.log.Warn("pull request detail unavailable",
				slog.String("repo", owner+"/"+repo),
				slog.Int("number", pr.Number),
				slog.Any("err", err),
			)
			return nil
		}
		detail = d
		return nil
	})
	g.Go(func() error {
		r, err := s.github.PullRequestReviews(gctx, owner, repo, pr.Number)
		if err != nil {
			s.log.Warn("pull request reviews unavailable",
				slog.String("repo", owner+"/"+repo),
				slog.Int("number", pr.Number),
				slog.Any("err", err),
			)
			return nil
		}
		reviews = r
		return nil
	})
	_ = g.Wait()

	return model.EnrichedPullRequest{
		PullRequest: pr,
		Metrics:     deriveMetrics(pr, detail, reviews),
	}
}

// deriveMetrics вычисляет производные метрики PR из сырых данных.
// Функция чистая: никаких побочных эффектов и обращений к сети.
func deriveMetrics(pr model.PullRequest, detail model.PullRequestDetail, reviews []model.Review) model.PullRequestMetrics {
	m := model.PullRequestMetrics{
		Additions:          detail.Additions,
		Deletions:          detail.Deletions,
		ChangedFiles:       detail.ChangedFiles,
		TotalChanges:       detail.Additions + detail.Deletions,
		ReviewersRequested: len(pr.RequestedReviewers),
	}

	m.ReviewerLogins = reviewerLogins(reviews)
	m.ReviewersCommented = len(m.ReviewerLogins)
	for _, r := range reviews {
		if r.State == "APPROVED" {
			m.Approvals++
		}
	}

	m.CycleTimeHours = hoursBetween(pr.CreatedAt, pr.MergedAt)
	m.ReviewTimeHours = reviewTimeHours(pr.CreatedAt, reviews)

	m.Bottlenecks = detectBottlenecks(m)
	m.HighImpactReasons = highImpactReasons(m)

	return m
}

// reviewerLogins возвращает отсортированный список различных непустых
// логинов, оставивших хотя бы одно ревью.
func reviewerLogins(reviews []model.Review) []string {
	seen := make(map[string]struct{})
	for _, r := range reviews {
		if r.User == nil || r.User.Login == "" {
			continue
		}
		seen[r.User.Login] = struct{}{}
	}

	logins := make([]string, 0, len(seen))
	for login := range seen {
		logins = append(logins, login)
	}
	sort.Strings(logins)
	return logins
}

// hoursBetween возвращает разницу между двумя метками времени в часах
// или nil, если хотя бы одна из них отсутствует или не разбирается.
func hoursBetween(from, to string) *float64 {
	f, ok := parseTime(from)
	if !ok {
		return nil
	}
	t, ok := parseTime(to)
	if !ok {
		return nil
	}
	hours := t.Sub(f).Hours()
	return &hours
}

// reviewTimeHours возвращает часы от создания PR до самого раннего ревью.
// Ранним считается ревью с минимальной разобранной меткой submitted_at,
// а не первое по порядку в ответе API. Если ревью нет или ни одна метка
// не разбирается, возвращается nil.
func reviewTimeHours(createdAt string, reviews []model.Review) *float64 {
	created, ok := parseTime(createdAt)
	if !ok {
		return nil
	}

	var earliest *float64
	for _, r := range reviews {
		submitted, ok := parseTime(r.SubmittedAt)
		if !ok {
			continue
		}
		hours := submitted.Sub(created).Hours()
		if earliest == nil || hours < *earliest {
			earliest = &hours
		}
	}
	return earliest
}

// detectBottlenecks собирает список причин, по которым PR выглядит узким
// местом процесса. Причины независимы: фиксируются все подходящие.
func detectBottlenecks(m model.PullRequestMetrics) []string {
	var issues []string
	if m.TotalChanges > largeChangeThreshold {
		issues = append(issues, "Very large PR (>500 changes)")
	}
	if m.ChangedFiles > manyFilesThreshold {
		issues = append(issues, "Touches many files")
	}
	switch {
	case m.ReviewTimeHours == nil:
		issues = append(issues, "No review started")
	case *m.ReviewTimeHours > slowReviewHours:
		issues = append(issues, "First review took >24h")
	}
	switch {
	case m.CycleTimeHours == nil:
		issues = append(issues, "PR still open / not merged")
	case *m.CycleTimeHours > slowMergeHours:
		issues = append(issues, "PR took >72h to merge")
	}
	if m.ReviewersCommented == 0 {
		issues = append(issues, "No reviewers involved")
	}
	if m.Approvals == 0 {
		issues = append(issues, "No approvals")
	}
	return issues
}

// highImpactReasons собирает причины, по которым PR стоит подсветить как
// заметный. Набор условий пересекается с detectBottlenecks, но списки
// отвечают на разные вопросы («риск» и «заметность») и ведутся раздельно.
func highImpactReasons(m model.PullRequestMetrics) []string {
	var reasons []string
	if m.TotalChanges > largeChangeThreshold {
		reasons = append(reasons, "Large PR (>500 LOC changed)")
	}
	if m.ChangedFiles > manyFilesThreshold {
		reasons = append(reasons, "Touches many files")
	}
	if m.ReviewersCommented == 0 {
		reasons = append(reasons, "No reviewers commented")
	}
	if m.Approvals == 0 {
		reasons = append(reasons, "No approvals")
	}
	if m.CycleTimeHours != nil && *m.CycleTimeHours > slowMergeHours {
		reasons = append(reasons, "Open >72h")
	}
	if m.ReviewTimeHours == nil {
		reasons = append(reasons, "No review started")
	}
	return reasons
}
