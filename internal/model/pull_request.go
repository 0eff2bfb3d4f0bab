// Package model содержит доменные структуры: сырые данные GitHub API,
// производные метрики pull request'ов и итоговые агрегаты.
package model

// User описывает пользователя GitHub (в ответах API нам нужен только логин).
type User struct {
	Login string `json:"login"`
}

// Repo описывает репозиторий в формате owner/name.
type Repo struct {
	FullName string `json:"full_name"`
}

// Base описывает базовую ветку PR; через неё API отдаёт репозиторий.
type Base struct {
	Repo Repo `json:"repo"`
}

// PullRequest — сырой pull request из списка PR GitHub API.
// Метки времени хранятся строками и разбираются в местах использования:
// некорректное значение одного поля не должно ронять разбор всего объекта.
type PullRequest struct {
	Number             int    `json:"number"`
	Title              string `json:"title"`
	State              string `json:"state"`
	HTMLURL            string `json:"html_url"`
	CreatedAt          string `json:"created_at"`
	MergedAt           string `json:"merged_at"`
	User               User   `json:"user"`
	Base               Base   `json:"base"`
	RequestedReviewers []User `json:"requested_reviewers"`
}

// PullRequestDetail — размерные поля из полного ответа по одному PR.
type PullRequestDetail struct {
	Additions    int `json:"additions"`
	Deletions    int `json:"deletions"`
	ChangedFiles int `json:"changed_files"`
}

// Review — одно ревью из списка ревью PR.
type Review struct {
	User        *User  `json:"user"`
	State       string `json:"state"`
	SubmittedAt string `json:"submitted_at"`
}

// PullRequestMetrics — производные метрики, вычисленные при обогащении PR.
// Временные поля равны nil, если исходные метки времени отсутствуют
// или не разбираются; отрицательных и синтетических значений не бывает.
type PullRequestMetrics struct {
	Additions          int      `json:"additions"`
	Deletions          int      `json:"deletions"`
	ChangedFiles       int      `json:"changed_files"`
	TotalChanges       int      `json:"total_changes"`
	ReviewerLogins     []string `json:"reviewer_logins"`
	ReviewersRequested int      `json:"reviewers_requested"`
	ReviewersCommented int      `json:"reviewers_commented"`
	Approvals          int      `json:"approvals"`

	CycleTimeHours  *float64 `json:"cycle_time_hours"`
	ReviewTimeHours *float64 `json:"review_time_hours"`

	Bottlenecks       []string `json:"bottlenecks"`
	HighImpactReasons []string `json:"high_impact_reasons"`
}

// EnrichedPullRequest — сырой PR вместе с производными метриками.
type EnrichedPullRequest struct {
	PullRequest
	Metrics PullRequestMetrics `json:"metrics"`
}
