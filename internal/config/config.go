package config

import (
	"os"
	"strings"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env            string
	HTTPPort       string
	MongoURI       string
	MongoDB        string
	RedisAddr      string
	QueueBackend   string
	AllowedOrigins []string
	BlobBackend    string
	UploadDir      string
}

// Load returns application config populated from environment variables with sensible defaults.
func Load() App {
	return App{
		Env:            getEnv("APP_ENV", "dev"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "bootcamp"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		QueueBackend:   getEnv("QUEUE_BACKEND", "memory"),
		AllowedOrigins: listEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		BlobBackend:    getEnv("BLOB_BACKEND", "disk"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// listEnv parses a comma-separated env var into a slice, trimming whitespace.
func listEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
