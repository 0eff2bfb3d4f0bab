package service

import (
	"sort"

	"pr-insights-service/internal/model"
)

const (
	// burnoutTopShare — доля контрибьюторов, проверяемых на выгорание
	// (верхние 10% по авторским строкам кода, минимум один).
	burnoutTopShare = 0.10
	// burnoutLOCShare — минимальная доля авторских строк от общего объёма,
	// при которой контрибьютор попадает в список риска.
	burnoutLOCShare = 0.40
)

// aggregate сводит обогащённые PR всех репозиториев в итоговую сводку
// за один проход плюс отдельный проход для выгорания.
// Результат детерминирован: порядок списков не зависит от порядка
// завершения обогащений.
func aggregate(prs []model.EnrichedPullRequest) model.AggregateSummary {
	summary := model.AggregateSummary{
		Contributors:         map[string]int{},
		ReviewsByContributor: map[string]int{},
		Delivery: model.Delivery{
			BottleneckPRs: []model.BottleneckPR{},
		},
		HighImpact: map[string]int{},
		Workload: model.Workload{
			PerContributor: map[string]model.ContributorWorkload{},
		},
		Activity: model.Activity{
			ContributionsPerRepo: map[string]int{},
			ActivePRs:            []model.ActivePR{},
			Timeline:             []model.ActivityEvent{},
		},
	}

	var reviewTimes, mergeTimes []float64
	workload := summary.Workload.PerContributor

	for _, pr := range prs {
		repo := pr.Base.Repo.FullName
		author := pr.User.Login

		summary.Activity.ContributionsPerRepo[repo]++

		// Активный PR: не закрыт и не имеет метки влития.
		if pr.State != "closed" && pr.MergedAt == "" {
			summary.Activity.ActivePRs = append(summary.Activity.ActivePRs, model.ActivePR{
				Repo:      repo,
				Number:    pr.Number,
				Title:     pr.Title,
				Author:    author,
				CreatedAt: pr.CreatedAt,
			})
		}

		summary.Activity.Timeline = append(summary.Activity.Timeline, model.ActivityEvent{
			Timestamp: pr.CreatedAt,
			Type:      "pr_opened",
			User:      author,
			Repo:      repo,
		})

		w := workload[author]
		w.OpenedPRs++
		w.AuthoredLOC += pr.Metrics.Additions
		workload[author] = w

		if pr.Metrics.CycleTimeHours != nil {
			mergeTimes = append(mergeTimes, *pr.Metrics.CycleTimeHours)
		}
		if pr.Metrics.ReviewTimeHours != nil {
			reviewTimes = append(reviewTimes, *pr.Metrics.ReviewTimeHours)
		}

		if pr.MergedAt != "" {
			summary.Contributors[author]++
		}

		for _, reviewer := range pr.Metrics.ReviewerLogins {
			summary.ReviewsByContributor[reviewer]++

			w := workload[reviewer]
			w.ReviewedPRs++
			w.ReviewedLOC += pr.Metrics.TotalChanges
			workload[reviewer] = w
		}

		if len(pr.Metrics.HighImpactReasons) > 0 {
			summary.HighImpact[repo]++
		}

		if len(pr.Metrics.Bottlenecks) > 0 {
			summary.Delivery.BottleneckPRs = append(summary.Delivery.BottleneckPRs, model.BottleneckPR{
				Title:       pr.Title,
				Author:      author,
				Repo:        repo,
				URL:         pr.HTMLURL,
				Bottlenecks: pr.Metrics.Bottlenecks,
			})
		}
	}

	summary.Delivery.MedianReviewTimeHours = median(reviewTimes)
	summary.Delivery.MedianMergeTimeHours = median(mergeTimes)
	summary.Bottlenecks = summary.Delivery.BottleneckPRs
	summary.Workload.BurnoutRisk = detectBurnout(workload)

	return summary
}

// detectBurnout возвращает логины контрибьюторов с риском выгорания:
// верхние 10% рейтинга по авторским строкам кода (минимум один),
// чья доля в общем объёме авторских строк не меньше 40%.
func detectBurnout(workload map[string]model.ContributorWorkload) []string {
	type contributor struct {
		login string
		loc   int
	}

	ranked := make([]contributor, 0, len(workload))
	total := 0
	for login, w := range workload {
		ranked = append(ranked, contributor{login: login, loc: w.AuthoredLOC})
		total += w.AuthoredLOC
	}
	if len(ranked) == 0 || total == 0 {
		return []string{}
	}

	// При равных объёмах порядок фиксируется логином, чтобы сводка
	// была воспроизводимой от запуска к запуску.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].loc != ranked[j].loc {
			return ranked[i].loc > ranked[j].loc
		}
		return ranked[i].login < ranked[j].login
	})

	top := int(float64(len(ranked)) * burnoutTopShare)
	if top < 1 {
		top = 1
	}

	risk := []string{}
	for _, c := range ranked[:top] {
		if float64(c.loc) >= burnoutLOCShare*float64(total) {
			risk = append(risk, c.login)
		}
	}
	return risk
}

// median возвращает медиану выборки или nil для пустой выборки.
// Для чётного размера берётся среднее двух средних значений.
func median(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	var m float64
	if len(sorted)%2 == 1 {
		m = sorted[mid]
	} else {
		m = (sorted[mid-1] + sorted[mid]) / 2
	}
	return &m
}
