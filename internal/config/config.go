package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	SecretKey      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string
	RedisAddr      string
	RedisPassword  string
	AMQPURL        string
	CORSOrigin     string
}

func Load() *Config {
	// Optional .env for local development; a missing file is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getenv("PORT", "8000"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getenv("MONGO_DB", "rozgar"),
		SecretKey:      getenv("SECRET_KEY", ""),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "minio:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "rozgar-uploads"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
		MinioPublicURL: getenv("MINIO_PUBLIC_URL", "http://localhost:9000"),
		RedisAddr:      getenv("REDIS_ADDR", ""),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		AMQPURL:        getenv("AMQP_URL", ""),
		CORSOrigin:     getenv("CORS_ORIGIN", "http://localhost:5173"),
	}

	// The token signer cannot run without a secret; absence is a
	// deployment misconfiguration.
	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY must be set")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
