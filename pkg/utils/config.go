package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Mongo     MongoConfig
	Database  DatabaseConfig
	Booking   BookingConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Name               string
	Port               string
	Debug              bool
	LogPath            string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

type StoreConfig struct {
	Driver string
}

type MongoConfig struct {
	URI          string
	Database     string
	Transactions bool
}

// DatabaseConfig holds the PostgreSQL settings.
type DatabaseConfig struct {
	URL      string
	MaxConns int32
}

type BookingConfig struct {
	TxTimeout time.Duration
}

type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers      []string
	BookingTopic string
}

type TelemetryConfig struct {
	Enabled       bool
	Endpoint      string
	SamplingRatio float64
}

// LoadConfig reads the optional .env file in the working directory and then
// the process environment, which takes precedence.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "venue-booking")
	v.SetDefault("PORT", "5000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("TRUST_PROXY_HEADERS", false)
	v.SetDefault("STORE_DRIVER", StoreDriverMongo)
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "venue_booking")
	v.SetDefault("MONGODB_TRANSACTIONS", true)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("BOOKING_TX_TIMEOUT", "5s")
	v.SetDefault("RATE_LIMIT_PER_MIN", 120)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_BOOKING_TOPIC", "booking.created")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_SAMPLING_RATIO", 1.0)

	if _, err := os.Stat(".env"); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:               v.GetString("APP_NAME"),
			Port:               v.GetString("PORT"),
			Debug:              v.GetBool("DEBUG"),
			LogPath:            v.GetString("LOG_PATH"),
			CORSAllowedOrigins: SplitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
			TrustProxyHeaders:  v.GetBool("TRUST_PROXY_HEADERS"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		},
		Mongo: MongoConfig{
			URI:          v.GetString("MONGODB_URI"),
			Database:     v.GetString("MONGODB_DATABASE"),
			Transactions: v.GetBool("MONGODB_TRANSACTIONS"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Booking: BookingConfig{
			TxTimeout: v.GetDuration("BOOKING_TX_TIMEOUT"),
		},
		RateLimit: RateLimitConfig{
			PerMinute: v.GetInt("RATE_LIMIT_PER_MIN"),
			Burst:     v.GetInt("RATE_LIMIT_BURST"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Brokers:      SplitList(v.GetString("KAFKA_BROKERS")),
			BookingTopic: v.GetString("KAFKA_BOOKING_TOPIC"),
		},
		Telemetry: TelemetryConfig{
			Enabled:       v.GetBool("OTEL_ENABLED"),
			Endpoint:      v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			SamplingRatio: v.GetFloat64("OTEL_SAMPLING_RATIO"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGODB_URI is required for store driver %q", c.Store.Driver)
		}
	case StoreDriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for store driver %q", c.Store.Driver)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Booking.TxTimeout <= 0 {
		return fmt.Errorf("BOOKING_TX_TIMEOUT must be positive")
	}
	if c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLING_RATIO must be within [0, 1]")
	}
	return nil
}

// SplitList splits a comma separated value and drops empty entries.
func SplitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
