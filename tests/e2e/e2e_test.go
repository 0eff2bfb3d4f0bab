package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pr-insights-service/internal/cache"
	"pr-insights-service/internal/github"
	httpapi "pr-insights-service/internal/http"
	"pr-insights-service/internal/service"
)

// fakeGitHub поднимает httptest-сервер с одним репозиторием acme/widgets:
// один влитый PR #7 (создан 10 дней назад, влит через 48 часов,
// ревью через 24 часа, 600 добавленных строк, 25 файлов).
func fakeGitHub(t *testing.T, listCalls *int64) *httptest.Server {
	t.Helper()

	created := time.Now().UTC().Add(-10 * 24 * time.Hour)
	merged := created.Add(48 * time.Hour)
	reviewed := created.Add(24 * time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/pulls", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(listCalls, 1)
		writeJSON(t, w, []map[string]any{
			{
				"number":     7,
				"title":      "Big refactor",
				"state":      "closed",
				"html_url":   "https://example.com/acme/widgets/pull/7",
				"created_at": created.Format(time.RFC3339),
				"merged_at":  merged.Format(time.RFC3339),
				"user":       map[string]any{"login": "alice"},
				"base": map[string]any{
					"repo": map[string]any{"full_name": "acme/widgets"},
				},
				"requested_reviewers": []map[string]any{{"login": "bob"}},
			},
		})
	})
	mux.HandleFunc("/repos/acme/widgets/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"additions":     600,
			"deletions":     0,
			"changed_files": 25,
		})
	})
	mux.HandleFunc("/repos/acme/widgets/pulls/7/reviews", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{
				"user":         map[string]any{"login": "bob"},
				"state":        "APPROVED",
				"submitted_at": reviewed.Format(time.RFC3339),
			},
		})
	})

	return httptest.NewServer(mux)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode fake response: %v", err)
	}
}

type insightsResponse struct {
	Contributors         map[string]int `json:"contributors"`
	ReviewsByContributor map[string]int `json:"reviews_by_contributor"`
	Delivery             struct {
		MedianReviewTimeHours *float64 `json:"median_review_time_hours"`
		MedianMergeTimeHours  *float64 `json:"median_merge_time_hours"`
	} `json:"delivery"`
	HighImpact  map[string]int `json:"high_impact"`
	Bottlenecks []struct {
		Title       string   `json:"title"`
		Author      string   `json:"author"`
		Repo        string   `json:"repo"`
		Bottlenecks []string `json:"bottlenecks"`
	} `json:"bottlenecks"`
	Workload struct {
		PerContributor map[string]struct {
			OpenedPRs   int `json:"opened_prs"`
			ReviewedPRs int `json:"reviewed_prs"`
			AuthoredLOC int `json:"authored_loc"`
			ReviewedLOC int `json:"reviewed_loc"`
		} `json:"per_contributor"`
		BurnoutRisk []string `json:"burnout_risk"`
	} `json:"workload"`
}

func TestE2E_InsightsFlow(t *testing.T) {
	var listCalls int64
	gh := fakeGitHub(t, &listCalls)
	defer gh.Close()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	githubClient := github.NewClient(gh.URL, "e2e-token")
	summaryCache := cache.NewMemoryStore(cache.DefaultTTL)
	insightsService := service.NewInsightsService(githubClient, summaryCache, logger)
	api := httptest.NewServer(httpapi.NewHandler(insightsService, logger).Router())
	defer api.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	t.Log("Step 1: Request insights (malformed repo in the list must be skipped)")
	body := []byte(`{"repos": ["acme/widgets", "invalidrepo"], "days": 30}`)

	resp, err := client.Post(api.URL+"/insights", "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Step 1 Failed: Expected 200, got %d", resp.StatusCode)
	}

	var first insightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&first); err != nil {
		t.Fatal("Failed to decode insights response:", err)
	}

	if first.Delivery.MedianMergeTimeHours == nil || *first.Delivery.MedianMergeTimeHours < 47 || *first.Delivery.MedianMergeTimeHours > 49 {
		t.Errorf("Expected median merge time ~48h, got %v", first.Delivery.MedianMergeTimeHours)
	}
	if first.Delivery.MedianReviewTimeHours == nil || *first.Delivery.MedianReviewTimeHours < 23 || *first.Delivery.MedianReviewTimeHours > 25 {
		t.Errorf("Expected median review time ~24h, got %v", first.Delivery.MedianReviewTimeHours)
	}
	if first.Contributors["alice"] != 1 {
		t.Errorf("Expected 1 merged PR for alice, got %d", first.Contributors["alice"])
	}
	if first.ReviewsByContributor["bob"] != 1 {
		t.Errorf("Expected 1 review by bob, got %d", first.ReviewsByContributor["bob"])
	}
	if first.HighImpact["acme/widgets"] != 1 {
		t.Errorf("Expected 1 high-impact PR in acme/widgets, got %d", first.HighImpact["acme/widgets"])
	}
	if len(first.Bottlenecks) != 1 {
		t.Fatalf("Expected 1 bottleneck PR, got %d", len(first.Bottlenecks))
	}
	if !containsReason(first.Bottlenecks[0].Bottlenecks, "Very large PR (>500 changes)") ||
		!containsReason(first.Bottlenecks[0].Bottlenecks, "Touches many files") {
		t.Errorf("Unexpected bottleneck reasons: %v", first.Bottlenecks[0].Bottlenecks)
	}
	if len(first.Workload.BurnoutRisk) != 1 || first.Workload.BurnoutRisk[0] != "alice" {
		t.Errorf("Expected burnout risk [alice], got %v", first.Workload.BurnoutRisk)
	}
	if w := first.Workload.PerContributor["alice"]; w.OpenedPRs != 1 || w.AuthoredLOC != 600 {
		t.Errorf("Unexpected workload for alice: %+v", w)
	}
	if w := first.Workload.PerContributor["bob"]; w.ReviewedPRs != 1 || w.ReviewedLOC != 600 {
		t.Errorf("Unexpected workload for bob: %+v", w)
	}
	t.Log("Step 1: Success")

	t.Log("Step 2: Repeat request, expect cache hit without GitHub calls")
	callsBefore := atomic.LoadInt64(&listCalls)

	resp2, err := client.Post(api.URL+"/insights", "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp2.Body.Close()

	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("Step 2 Failed: Expected 200, got %d", resp2.StatusCode)
	}

	var second insightsResponse
	if err := json.NewDecoder(resp2.Body).Decode(&second); err != nil {
		t.Fatal("Failed to decode insights response:", err)
	}

	if got := atomic.LoadInt64(&listCalls); got != callsBefore {
		t.Errorf("Expected no new GitHub list calls on cache hit, got %d extra", got-callsBefore)
	}
	if second.Contributors["alice"] != first.Contributors["alice"] {
		t.Errorf("Cached response differs from original")
	}
	t.Log("Step 2: Success")

	t.Log("Step 3: Health check")
	resp3, err := client.Get(api.URL + "/health")
	if err != nil {
		t.Fatalf("Failed to get health: %v", err)
	}
	defer resp3.Body.Close()

	if resp3.StatusCode != http.StatusOK {
		t.Fatalf("Step 3 Failed: Expected 200, got %d", resp3.StatusCode)
	}
	t.Log("Step 3: Success")
}

func containsReason(reasons []string, want string) bool {
	for _, r := range reasons {
		if r == want {
			return true
		}
	}
	return false
}
