// Package config загружает конфигурацию сервиса из переменных окружения
// с поддержкой файла .env.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config содержит все настройки сервиса.
type Config struct {
	// HTTPAddr — адрес, на котором слушает HTTP-сервер.
	HTTPAddr string
	// GitHubToken — bearer-токен GitHub API. Пустое значение допустимо:
	// запросы уходят без авторизации (с низкими лимитами GitHub).
	GitHubToken string
	// GitHubAPIURL — базовый URL GitHub API (переопределяется в тестах).
	GitHubAPIURL string
}

// Load читает конфигурацию из окружения. Файл .env, если он есть,
// подхватывается перед чтением переменных.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		GitHubAPIURL: getEnv("GITHUB_API_URL", "https://api.github.com"),
	}
}

// getEnv возвращает значение переменной окружения или fallback, если она не задана.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
