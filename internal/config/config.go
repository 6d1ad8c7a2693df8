package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string
	AppEnv      string

	JWTSecret string
	TokenTTL  time.Duration

	SentimentAPIURL      string
	SentimentAPIKey      string
	SentimentTimeout     time.Duration
	SentimentMaxAttempts int
	SentimentBaseDelay   time.Duration

	AMQPURL           string
	EventsExchange    string
	EventPollInterval time.Duration
	WorkerPoolSize    int
	MaxEventsBatch    int

	ShutdownTimeout    time.Duration
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string
}

const (
	defaultRunAddress           = ":8080"
	defaultAppEnv               = "production"
	defaultJWTSecret            = "change-me-in-production"
	defaultTokenTTL             = 7 * 24 * time.Hour
	defaultSentimentAPIURL      = "https://api-inference.huggingface.co/models/cardiffnlp/twitter-xlm-roberta-base-sentiment"
	defaultSentimentTimeout     = 10 * time.Second
	defaultSentimentMaxAttempts = 3
	defaultSentimentBaseDelay   = time.Second
	defaultEventsExchange       = "campusfood.orders"
	defaultEventPollInterval    = 3 * time.Second
	defaultWorkerPoolSize       = 4
	defaultMaxEventsBatch       = 32
	defaultShutdownTimeout      = 10 * time.Second
	defaultRateLimitRPS         = 10
	defaultRateLimitBurst       = 20
	defaultCORSAllowedOrigins   = "*"
)

// Load reads an optional .env file, then parses configuration from flags and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		AppEnv:               getString(lookup, "APP_ENV", defaultAppEnv),
		JWTSecret:            getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:             getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		SentimentAPIURL:      getString(lookup, "SENTIMENT_API_URL", defaultSentimentAPIURL),
		SentimentAPIKey:      getString(lookup, "SENTIMENT_API_KEY", getString(lookup, "HUGGINGFACE_API_KEY", "")),
		SentimentTimeout:     getDuration(lookup, "SENTIMENT_TIMEOUT", defaultSentimentTimeout),
		SentimentMaxAttempts: getInt(lookup, "SENTIMENT_MAX_ATTEMPTS", defaultSentimentMaxAttempts),
		SentimentBaseDelay:   getDuration(lookup, "SENTIMENT_BASE_DELAY", defaultSentimentBaseDelay),
		AMQPURL:              getString(lookup, "AMQP_URL", ""),
		EventsExchange:       getString(lookup, "EVENTS_EXCHANGE", defaultEventsExchange),
		EventPollInterval:    getDuration(lookup, "EVENT_POLL_INTERVAL", defaultEventPollInterval),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		MaxEventsBatch:       getInt(lookup, "POLL_BATCH_SIZE", defaultMaxEventsBatch),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		RateLimitRPS:         getFloat(lookup, "RATE_LIMIT_RPS", defaultRateLimitRPS),
		RateLimitBurst:       getInt(lookup, "RATE_LIMIT_BURST", defaultRateLimitBurst),
	}
	corsOrigins := getString(lookup, "CORS_ALLOWED_ORIGINS", defaultCORSAllowedOrigins)

	fs := flag.NewFlagSet("campusfood", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.EventPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		tokenTTLStr        = cfg.TokenTTL.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SentimentAPIURL, "s", cfg.SentimentAPIURL, "Sentiment classification endpoint")
	fs.StringVar(&cfg.AMQPURL, "amqp", cfg.AMQPURL, "RabbitMQ URL for order events")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Auth token lifetime")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent event publishers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between outbox polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxEventsBatch, "poll-batch", cfg.MaxEventsBatch, "Maximum events per polling batch")
	fs.StringVar(&corsOrigins, "cors-origins", corsOrigins, "Comma separated list of allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.EventPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.CORSAllowedOrigins = splitList(corsOrigins)

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxEventsBatch <= 0 {
		cfg.MaxEventsBatch = defaultMaxEventsBatch
	}

	if cfg.EventPollInterval <= 0 {
		cfg.EventPollInterval = defaultEventPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.SentimentTimeout <= 0 {
		cfg.SentimentTimeout = defaultSentimentTimeout
	}

	if cfg.SentimentMaxAttempts <= 0 {
		cfg.SentimentMaxAttempts = defaultSentimentMaxAttempts
	}

	if cfg.SentimentBaseDelay < 0 {
		cfg.SentimentBaseDelay = defaultSentimentBaseDelay
	}

	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = defaultRateLimitRPS
	}

	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = defaultRateLimitBurst
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.SentimentAPIURL == "" {
		return nil, fmt.Errorf("sentiment api url must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
