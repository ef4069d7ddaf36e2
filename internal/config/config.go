package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	MarketID       string
	JWTSecret      string
	AccessTokenTTL time.Duration

	// Object storage (R2 or any S3-compatible endpoint).
	StorageEndpoint  string
	StorageRegion    string
	StorageBucket    string
	StorageAccessKey string
	StorageSecretKey string
	PublicBaseURL    string

	// Local disk fallback when no bucket is configured.
	LocalUploadDir string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "kisekka"),
		MarketID:       getEnvOrDefault("MARKET_ID", "kisekka"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 24, time.Hour),

		StorageEndpoint:  getEnvOrDefault("STORAGE_ENDPOINT", ""),
		StorageRegion:    getEnvOrDefault("STORAGE_REGION", "auto"),
		StorageBucket:    getEnvOrDefault("STORAGE_BUCKET", ""),
		StorageAccessKey: getEnvOrDefault("STORAGE_ACCESS_KEY_ID", ""),
		StorageSecretKey: getEnvOrDefault("STORAGE_SECRET_ACCESS_KEY", ""),
		PublicBaseURL:    strings.TrimRight(getEnvOrDefault("STORAGE_PUBLIC_URL", ""), "/"),

		LocalUploadDir: getEnvOrDefault("LOCAL_UPLOAD_DIR", "./public/uploads"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
