package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	platformstrings "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/strings"
)

// Config is the full process configuration.
type Config struct {
	Server     Server
	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Log        LogConfig
	Pagination PaginationConfig
	SeedPath   string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	JWTSigningKey   string
	JWTIssuer       string
	JWTAudience     string
	ShutdownTimeout time.Duration
}

// DatabaseConfig selects the SQL backend. An empty URL runs the in-memory stores.
type DatabaseConfig struct {
	URL             string
	Driver          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	TxTimeout       time.Duration
}

// RedisConfig configures the document read cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// KafkaConfig configures the audit sink. No brokers keeps audit in-process.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
	Partitions int32
}

type LogConfig struct {
	Level string
}

// PaginationConfig bounds page sizes accepted at the HTTP edge.
type PaginationConfig struct {
	DefaultSize int
	MaxSize     int
}

// FromEnv builds the configuration from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		Server: Server{
			Addr:            getEnv("RESPONSES_ADDR", ":8080"),
			JWTSigningKey:   getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:       getEnv("JWT_ISSUER", "ethicalsoft"),
			JWTAudience:     getEnv("JWT_AUDIENCE", "compliance-responses"),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Driver:          getEnv("DATABASE_DRIVER", "pgx"),
			MaxOpenConns:    getInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
			TxTimeout:       getDuration("DATABASE_TX_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     getDuration("REDIS_CACHE_TTL", 10*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:    platformstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic: getEnv("KAFKA_AUDIT_TOPIC", "compliance.audit"),
			Partitions: int32(getInt("KAFKA_AUDIT_PARTITIONS", 3)),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
		Pagination: PaginationConfig{
			DefaultSize: getInt("PAGE_SIZE_DEFAULT", 10),
			MaxSize:     getInt("PAGE_SIZE_MAX", 100),
		},
		SeedPath: os.Getenv("SEED_PATH"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
