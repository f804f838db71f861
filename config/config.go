package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr   string
	DatabasePath string
	JWTSecret    string
	TokenTTL     time.Duration

	// Provider settings
	NewsAPIKey      string
	NewsAPIBaseURL  string
	GuardianKey     string
	GuardianBaseURL string
	NYTimesKey      string
	NYTimesBaseURL  string
	RequestTimeout  time.Duration

	// Cache settings
	ArticlesCacheTTL time.Duration
	ArticleCacheTTL  time.Duration
	FeedCacheTTL     time.Duration
}

func Load() *Config {
	cfg := &Config{
		// Default values
		ListenAddr:       ":8080",
		DatabasePath:     "news.db",
		JWTSecret:        "insecure-dev-secret",
		TokenTTL:         30 * 24 * time.Hour,
		NewsAPIBaseURL:   "https://newsapi.org/v2",
		GuardianBaseURL:  "https://content.guardianapis.com",
		NYTimesBaseURL:   "https://api.nytimes.com/svc",
		RequestTimeout:   30 * time.Second,
		ArticlesCacheTTL: 600 * time.Second,
		ArticleCacheTTL:  1800 * time.Second,
		FeedCacheTTL:     300 * time.Second,
	}

	// Load from environment
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	cfg.NewsAPIKey = os.Getenv("NEWSAPI_KEY")
	cfg.GuardianKey = os.Getenv("GUARDIAN_KEY")
	cfg.NYTimesKey = os.Getenv("NYTIMES_KEY")
	if v := os.Getenv("NEWSAPI_BASE_URL"); v != "" {
		cfg.NewsAPIBaseURL = v
	}
	if v := os.Getenv("GUARDIAN_BASE_URL"); v != "" {
		cfg.GuardianBaseURL = v
	}
	if v := os.Getenv("NYTIMES_BASE_URL"); v != "" {
		cfg.NYTimesBaseURL = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TokenTTL = time.Duration(n) * time.Hour
		}
	}

	return cfg
}
