package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv                 string
	AppURL                 string
	LogLevel               string
	DatabaseDriver         string
	DatabaseDSN            string
	RedisAddr              string
	RedisJobKey            string
	NatsURL                string
	JWTSecret              string
	JWTTTL                 time.Duration
	BcryptCost             int
	RateLimit              int
	CompletionDelay        time.Duration
	CompletionPollInterval time.Duration
	CompletionWorkers      int
	CompletionQueueSize    int
	CompletionLease        time.Duration
	StripeSecretKey        string
	PaymentSuccessURL      string
	PaymentCancelURL       string
	PaymentCurrency        string
	S3Bucket               string
	S3Region               string
	S3PublicBaseURL        string
	CacheMaxBytes          int64
	ShutdownTimeoutSeconds int
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppEnv:                 getEnv("APP_ENV", "development"),
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		DatabaseDriver:         getEnv("DB_DRIVER", "sqlite"),
		DatabaseDSN:            getEnv("DATABASE_DSN", "petsitter.db"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisJobKey:            getEnv("REDIS_JOB_KEY", "order_completion_jobs"),
		NatsURL:                getEnv("NATS_URL", ""),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		JWTTTL:                 time.Duration(getEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,
		BcryptCost:             getEnvAsInt("BCRYPT_COST", 12),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		CompletionDelay:        time.Duration(getEnvAsInt("COMPLETION_DELAY_HOURS", 7*24)) * time.Hour,
		CompletionPollInterval: time.Duration(getEnvAsInt("COMPLETION_POLL_INTERVAL_SECONDS", 60)) * time.Second,
		CompletionWorkers:      getEnvAsInt("COMPLETION_WORKERS", 4),
		CompletionQueueSize:    getEnvAsInt("COMPLETION_QUEUE_SIZE", 100),
		CompletionLease:        time.Duration(getEnvAsInt("COMPLETION_LEASE_SECONDS", 300)) * time.Second,
		StripeSecretKey:        getEnv("STRIPE_SECRET_KEY", ""),
		PaymentSuccessURL:      getEnv("PAYMENT_SUCCESS_URL", "http://localhost:3000/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		PaymentCancelURL:       getEnv("PAYMENT_CANCEL_URL", "http://localhost:3000/payment/cancel"),
		PaymentCurrency:        getEnv("PAYMENT_CURRENCY", "usd"),
		S3Bucket:               getEnv("S3_BUCKET", ""),
		S3Region:               getEnv("S3_REGION", "us-east-1"),
		S3PublicBaseURL:        getEnv("S3_PUBLIC_BASE_URL", ""),
		CacheMaxBytes:          int64(getEnvAsInt("CACHE_MAX_BYTES", 16<<20)),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres" {
		log.Fatal("DB_DRIVER must be sqlite or postgres")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		log.Fatal("JWT_TTL_HOURS must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.CompletionDelay <= 0 {
		log.Fatal("COMPLETION_DELAY_HOURS must be greater than 0")
	}
	if cfg.CompletionPollInterval <= 0 {
		log.Fatal("COMPLETION_POLL_INTERVAL_SECONDS must be greater than 0")
	}
	if cfg.CompletionWorkers <= 0 {
		log.Fatal("COMPLETION_WORKERS must be greater than 0")
	}
	if cfg.CompletionQueueSize <= 0 {
		log.Fatal("COMPLETION_QUEUE_SIZE must be greater than 0")
	}
	if cfg.CompletionLease <= 0 {
		log.Fatal("COMPLETION_LEASE_SECONDS must be greater than 0")
	}
	if cfg.CacheMaxBytes <= 0 {
		log.Fatal("CACHE_MAX_BYTES must be greater than 0")
	}
	if cfg.IsProduction() && cfg.StripeSecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY must be set in production")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
