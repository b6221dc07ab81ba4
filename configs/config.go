package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type R2 struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicBaseURL string
}

type Config struct {
	PostgresURI      string
	RedisURI         string
	ListenAddr       string
	SecretKey        string
	InternalAPIKey   string
	IGPollInterval   time.Duration
	IGProcessingWait time.Duration
	R2               R2
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI:      getEnv("POSTGRES_URI", ""),
		RedisURI:         getEnv("REDIS_URI", "localhost:6379"),
		ListenAddr:       getEnv("LISTEN_ADDR", ":3000"),
		SecretKey:        getEnv("SECRET_KEY", ""),
		InternalAPIKey:   getEnv("INTERNAL_API_KEY", ""),
		IGPollInterval:   getDurationEnv("IG_POLL_INTERVAL", 2*time.Second),
		IGProcessingWait: getDurationEnv("IG_PROCESSING_WAIT", 25*time.Second),
		R2: R2{
			AccountID:     getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:     getEnv("R2_ACCESS_KEY", ""),
			SecretKey:     getEnv("R2_SECRET_KEY", ""),
			BucketName:    getEnv("R2_BUCKET_NAME", ""),
			PublicBaseURL: getEnv("R2_PUBLIC_BASE_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	log.Printf("Invalid %s value %q, using default %s", key, value, defaultValue)
	return defaultValue
}
