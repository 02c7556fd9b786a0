package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DBConfig struct {
		DBHost     string `env:"SOFTGLOW_DB_HOST"`
		DBPort     string `env:"SOFTGLOW_DB_PORT"`
		DBUser     string `env:"SOFTGLOW_DB_USER"`
		DBPassword string `env:"SOFTGLOW_DB_PASSWORD"`
		DBName     string `env:"SOFTGLOW_DB_NAME"`
		DBSSLMode  string `env:"SOFTGLOW_DB_SSLMODE"`
	}

	HTTPPort      int    `env:"SOFTGLOW_HTTP_PORT"`
	CORSOrigin    string `env:"SOFTGLOW_CORS_ORIGIN"`
	MigrationsURL string `env:"SOFTGLOW_MIGRATIONS_URL"`

	JWTSecret string        `env:"SOFTGLOW_JWT_SECRET"`
	JWTTTL    time.Duration `env:"SOFTGLOW_JWT_TTL"`

	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET"`
	RazorpayBaseURL   string `env:"RAZORPAY_BASE_URL"`
	Currency          string `env:"SOFTGLOW_CURRENCY"`

	KafkaURL              string `env:"KAFKA_BROKER_URL"`
	KafkaOrderEventsTopic string `env:"KAFKA_ORDER_EVENTS_TOPIC"`
	KafkaEmailsTopic      string `env:"KAFKA_EMAILS_TOPIC"`
	KafkaConsumerGroup    string `env:"KAFKA_CONSUMER_GROUP"`

	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL"`
	OutboxPollTimeout  time.Duration `env:"OUTBOX_POLL_TIMEOUT"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}

	cfg.DBConfig.DBHost = getEnvOrDefault("SOFTGLOW_DB_HOST", "localhost")
	cfg.DBConfig.DBPort = getEnvOrDefault("SOFTGLOW_DB_PORT", "5432")
	cfg.DBConfig.DBUser = getEnvOrDefault("SOFTGLOW_DB_USER", "postgres")
	cfg.DBConfig.DBPassword = getEnvOrDefault("SOFTGLOW_DB_PASSWORD", "postgres")
	cfg.DBConfig.DBName = getEnvOrDefault("SOFTGLOW_DB_NAME", "softglow_db")
	cfg.DBConfig.DBSSLMode = getEnvOrDefault("SOFTGLOW_DB_SSLMODE", "disable")

	cfg.HTTPPort = 8080
	if portStr, ok := os.LookupEnv("SOFTGLOW_HTTP_PORT"); ok {
		if _, err := fmt.Sscanf(portStr, "%d", &cfg.HTTPPort); err != nil {
			return nil, fmt.Errorf("invalid SOFTGLOW_HTTP_PORT: %w", err)
		}
	}
	cfg.CORSOrigin = getEnvOrDefault("SOFTGLOW_CORS_ORIGIN", "http://localhost:5173")
	cfg.MigrationsURL = getEnvOrDefault("SOFTGLOW_MIGRATIONS_URL", "file://migrations")

	cfg.JWTSecret = getEnvOrDefault("SOFTGLOW_JWT_SECRET", "")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("SOFTGLOW_JWT_SECRET must be set")
	}
	jwtTTLStr := getEnvOrDefault("SOFTGLOW_JWT_TTL", "24h")
	ttl, err := time.ParseDuration(jwtTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SOFTGLOW_JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	cfg.RazorpayKeyID = getEnvOrDefault("RAZORPAY_KEY_ID", "")
	cfg.RazorpayKeySecret = getEnvOrDefault("RAZORPAY_KEY_SECRET", "")
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		return nil, fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set")
	}
	cfg.RazorpayBaseURL = getEnvOrDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1")
	cfg.Currency = getEnvOrDefault("SOFTGLOW_CURRENCY", "INR")

	cfg.KafkaURL = getEnvOrDefault("KAFKA_BROKER_URL", "localhost:9092")
	cfg.KafkaOrderEventsTopic = getEnvOrDefault("KAFKA_ORDER_EVENTS_TOPIC", "order_events")
	cfg.KafkaEmailsTopic = getEnvOrDefault("KAFKA_EMAILS_TOPIC", "emails")
	cfg.KafkaConsumerGroup = getEnvOrDefault("KAFKA_CONSUMER_GROUP", "softglow-api-group")

	outboxPollIntervalStr := getEnvOrDefault("OUTBOX_POLL_INTERVAL", "5s")
	interval, err := time.ParseDuration(outboxPollIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid OUTBOX_POLL_INTERVAL: %w", err)
	}
	cfg.OutboxPollInterval = interval

	outboxPollTimeoutStr := getEnvOrDefault("OUTBOX_POLL_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(outboxPollTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid OUTBOX_POLL_TIMEOUT: %w", err)
	}
	cfg.OutboxPollTimeout = timeout

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func (c *Config) GetDBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBConfig.DBHost, c.DBConfig.DBPort, c.DBConfig.DBUser, c.DBConfig.DBPassword, c.DBConfig.DBName, c.DBConfig.DBSSLMode)
}

func (c *Config) GetDBMigrationConnectionString() string {
	return fmt.Sprintf("%s:%s@%s:%s/%s?sslmode=%s",
		c.DBConfig.DBUser, c.DBConfig.DBPassword, c.DBConfig.DBHost, c.DBConfig.DBPort, c.DBConfig.DBName, c.DBConfig.DBSSLMode)
}

func (c *Config) GetKafkaBrokers() []string {
	return []string{c.KafkaURL}
}
