package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the blog service.
type Config struct {
	Addr        string
	BadgerPath  string
	JWTSecret   string
	JWTTTL      time.Duration
	LogLevel    string
	AllowedTags []string

	// Media storage. Backend selects the implementation: "s3" or "local".
	MediaBackend   string
	S3Region       string
	S3Bucket       string
	LocalMediaPath string
	LocalMediaURL  string
}

// defaultTags is the tag vocabulary used when GRIDDLE_TAGS is unset.
var defaultTags = []string{
	"tech", "life", "travel", "food", "health",
	"science", "culture", "sports", "finance",
}

// Load reads configuration from .env (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Addr:           getEnv("GRIDDLE_ADDR", ":8080"),
		BadgerPath:     getEnv("GRIDDLE_DB_PATH", "data/badger"),
		JWTSecret:      getEnv("GRIDDLE_JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:         24 * time.Hour,
		LogLevel:       getEnv("GRIDDLE_LOG_LEVEL", "info"),
		AllowedTags:    defaultTags,
		MediaBackend:   getEnv("GRIDDLE_MEDIA_BACKEND", "local"),
		S3Region:       getEnv("GRIDDLE_S3_REGION", "us-east-1"),
		S3Bucket:       os.Getenv("GRIDDLE_S3_BUCKET"),
		LocalMediaPath: getEnv("GRIDDLE_MEDIA_PATH", "data/media"),
		LocalMediaURL:  getEnv("GRIDDLE_MEDIA_URL", "http://localhost:8080/media"),
	}

	if ttl := os.Getenv("GRIDDLE_JWT_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.JWTTTL = d
		}
	}
	if tags := os.Getenv("GRIDDLE_TAGS"); tags != "" {
		cfg.AllowedTags = nil
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				cfg.AllowedTags = append(cfg.AllowedTags, tag)
			}
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
