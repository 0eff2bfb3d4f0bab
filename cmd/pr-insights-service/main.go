// Package main запускает HTTP-сервис аналитики pull request'ов
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pr-insights-service/internal/cache"
	"pr-insights-service/internal/config"
	"pr-insights-service/internal/github"
	httpapi "pr-insights-service/internal/http"
	"pr-insights-service/internal/service"
)

func main() {
	// Инициализация логгера (JSON)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Чтение конфигурации из ENV / .env
	cfg := config.Load()
	if cfg.GitHubToken == "" {
		logger.Warn("GITHUB_TOKEN is not set, using unauthenticated GitHub requests")
	}

	// 1. Клиент GitHub API
	githubClient := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken)

	// 2. Кэш готовых сводок
	summaryCache := cache.NewMemoryStore(cache.DefaultTTL)

	// 3. Сервис-оркестратор конвейера аналитики
	insightsService := service.NewInsightsService(githubClient, summaryCache, logger)

	// 4. HTTP-обработчик
	handler := httpapi.NewHandler(insightsService, logger)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Router(),
	}

	// Запуск сервера в горутине
	go func() {
		logger.Info("starting http server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("err", err))
		}
	}()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server shutdown error", slog.Any("err", err))
	}

	logger.Info("server stopped")
}
