package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

type AppConfig struct {
	Name           string
	Env            string
	Port           string
	BaseURL        string
	LogLevel       string
	LogFormat      string
	MaxUploadBytes int64
	SessionTTL     time.Duration
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		name := os.Getenv("APP_NAME")
		if name == "" {
			name = "Pitch Deck Evaluator"
		}
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = ":8080"
		}
		appConfig = &AppConfig{
			Name:           name,
			Env:            env,
			Port:           port,
			BaseURL:        os.Getenv("APP_URL"),
			LogLevel:       os.Getenv("LOG_LEVEL"),
			LogFormat:      os.Getenv("LOG_FORMAT"),
			MaxUploadBytes: int64(intEnv("MAX_UPLOAD_MB", 5)) * 1024 * 1024,
			SessionTTL:     time.Duration(intEnv("SESSION_TTL_MINUTES", 120)) * time.Minute,
		}
	})
	return appConfig
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

func floatEnv(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		log.Printf("Warning: invalid %s=%q, using %v", key, raw, fallback)
		return fallback
	}
	return v
}

func boolEnv(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %t", key, raw, fallback)
		return fallback
	}
	return v
}
