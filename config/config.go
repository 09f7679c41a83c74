package config

import (
	"os"
	"strings"
)

// Config holds every value the application reads from its environment.
// It is loaded once in main and handed to constructors explicitly, so
// request-handling code never touches the process environment.
type Config struct {
	Port         string
	SerpAPIKey   string
	GeminiAPIKey string
	GeminiModel  string
	FrontendURLs []string
}

func Load() Config {
	return Config{
		Port:         getEnv("PORT", "8080"),
		SerpAPIKey:   os.Getenv("SERP_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-pro"),
		FrontendURLs: splitList(os.Getenv("FRONTEND_URL")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
