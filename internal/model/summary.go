package model

// ContributorWorkload — нагрузка одного контрибьютора: сколько PR он открыл
// и отревьюировал и сколько строк кода прошло через него в обеих ролях.
type ContributorWorkload struct {
	OpenedPRs   int `json:"opened_prs"`
	ReviewedPRs int `json:"reviewed_prs"`
	AuthoredLOC int `json:"authored_loc"`
	ReviewedLOC int `json:"reviewed_loc"`
}

// BottleneckPR — PR с непустым списком причин-узких мест.
type BottleneckPR struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Repo        string   `json:"repo"`
	URL         string   `json:"url"`
	Bottlenecks []string `json:"bottlenecks"`
}

// ActivePR — открытый (не закрытый и не влитый) pull request.
type ActivePR struct {
	Repo      string `json:"repo"`
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// ActivityEvent — событие хронологической ленты активности.
type ActivityEvent struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	User      string `json:"user"`
	Repo      string `json:"repo"`
}

// Delivery — метрики скорости доставки: медианы и список узких мест.
// Медианы считаются только по непустым выборкам; nil означает,
// что ни одного пригодного значения не было.
type Delivery struct {
	MedianReviewTimeHours *float64       `json:"median_review_time_hours"`
	MedianMergeTimeHours  *float64       `json:"median_merge_time_hours"`
	BottleneckPRs         []BottleneckPR `json:"bottleneck_prs"`
}

// Workload — таблица нагрузки по контрибьюторам и список риска выгорания.
type Workload struct {
	PerContributor map[string]ContributorWorkload `json:"per_contributor"`
	BurnoutRisk    []string                       `json:"burnout_risk"`
}

// Activity — картина активности: вклад по репозиториям, открытые PR, лента.
type Activity struct {
	ContributionsPerRepo map[string]int  `json:"contributions_per_repo"`
	ActivePRs            []ActivePR      `json:"active_prs"`
	Timeline             []ActivityEvent `json:"activity_timeline"`
}

// AggregateSummary — итог работы конвейера по всем запрошенным репозиториям.
// Строится заново на каждом промахе кэша и после этого не мутирует.
type AggregateSummary struct {
	Contributors         map[string]int `json:"contributors"`
	ReviewsByContributor map[string]int `json:"reviews_by_contributor"`
	Delivery             Delivery       `json:"delivery"`
	HighImpact           map[string]int `json:"high_impact"`
	Bottlenecks          []BottleneckPR `json:"bottlenecks"`
	Workload             Workload       `json:"workload"`
	Activity             Activity       `json:"activity"`
}
