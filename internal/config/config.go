package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores dispatch-pipeline service settings.
type Config struct {
	Port      int
	DB        DB
	Lifecycle Lifecycle
	SSE       SSE
	Kafka     Kafka
	RateLimit RateLimit
}

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Lifecycle stores transition-engine bounds.
type Lifecycle struct {
	// OperationTimeout is the outer bound on a whole transition, commit included.
	OperationTimeout time.Duration
}

// SSE stores notification-bus and dashboard-cache timings.
type SSE struct {
	Debounce           time.Duration
	CacheTimeout       time.Duration
	QueryTimeout       time.Duration
	CacheSweepInterval time.Duration
	StaleSweepInterval time.Duration
	StaleThreshold     time.Duration
	HeartbeatInterval  time.Duration
}

// Kafka stores assignment-event consumer settings. Empty brokers disable the worker.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// RateLimit stores per-caller request budget settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Lifecycle: DefaultLifecycle(),
		SSE:       DefaultSSE(),
		Kafka:     DefaultKafka(),
		RateLimit: DefaultRateLimit(),
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}

	envStr(&cfg.DB.Host, "POSTGRES_HOST")
	envStr(&cfg.DB.Port, "POSTGRES_PORT")
	envStr(&cfg.DB.User, "POSTGRES_USER")
	envStr(&cfg.DB.Pass, "POSTGRES_PASSWORD")
	envStr(&cfg.DB.Name, "POSTGRES_DB")

	envDur(&cfg.Lifecycle.OperationTimeout, "LIFECYCLE_OPERATION_TIMEOUT")
	envDur(&cfg.SSE.Debounce, "SSE_DEBOUNCE")
	envDur(&cfg.SSE.CacheTimeout, "SSE_CACHE_TIMEOUT")
	envDur(&cfg.SSE.QueryTimeout, "SSE_QUERY_TIMEOUT")
	envDur(&cfg.SSE.CacheSweepInterval, "SSE_CACHE_SWEEP_INTERVAL")
	envDur(&cfg.SSE.StaleSweepInterval, "SSE_STALE_SWEEP_INTERVAL")
	envDur(&cfg.SSE.StaleThreshold, "SSE_STALE_THRESHOLD")
	envDur(&cfg.SSE.HeartbeatInterval, "SSE_HEARTBEAT_INTERVAL")

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitBrokers(v)
	}
	envStr(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	envStr(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		cfg.RateLimit.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("RATE_LIMIT_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RateLimit.Rate = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimit.Burst = n
		}
	}
	envDur(&cfg.RateLimit.TTL, "RATE_LIMIT_TTL")

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.Parse()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	return cfg, nil
}

func envStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envDur(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func splitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
