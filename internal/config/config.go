package config

import (
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	Port            string
	Env             string
	DatabaseDSN     string
	TestDatabaseDSN string

	// HashSecret is mixed into every password hash. It is configuration,
	// not a random value: hashes must survive process restarts.
	HashSecret string

	// PublicBaseURL is the externally visible base of this server, used
	// when building permanent image URLs.
	PublicBaseURL string

	StaticDir   string
	TmpDir      string
	UploadLimit int64

	EmailEnabled bool
	EmailFrom    string
	ResendAPIKey string
}

func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/showcase?parseTime=true"),
		TestDatabaseDSN: getEnv("TEST_DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/showcase_test?parseTime=true"),
		HashSecret:      getEnv("HASH_SECRET", "dev-secret-change-in-production"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		StaticDir:       getEnv("STATIC_DIR", "static"),
		TmpDir:          getEnv("TMP_DIR", os.TempDir()),
		UploadLimit:     getEnvInt64("UPLOAD_LIMIT", 10<<20),
		EmailEnabled:    getEnv("EMAIL_ENABLED", "false") == "true",
		EmailFrom:       getEnv("EMAIL_FROM", "noreply@showcase.local"),
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
	}

	if cfg.Env == "production" && cfg.HashSecret == "dev-secret-change-in-production" {
		slog.Error("HASH_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("ignoring invalid value", "key", key, "value", v)
		return fallback
	}
	return n
}
