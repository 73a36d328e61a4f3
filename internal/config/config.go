package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Events   EventsConfig
	Auth     AuthConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
	LogSQL     bool
}

type CacheConfig struct {
	Driver string // "redis" or "memory"
	TTL    time.Duration
	Prefix string
}

type EventsConfig struct {
	SubjectPrefix string // NATS subjects are <prefix>.<EVENT_TYPE>
	StreamName    string
	CatalogTopic  string // in-process topic for catalog changes
	ConsumerName  string // durable NATS consumer, one per instance
}

type AuthConfig struct {
	Enabled   bool
	JwtSecret string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:4200"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			LogSQL:     getEnvAsBool("DB_LOG_SQL", false),
		},
		Cache: CacheConfig{
			Driver: getEnv("CACHE_DRIVER", "memory"),
			TTL:    getEnvAsDuration("CACHE_TTL", 5*time.Minute),
			Prefix: getEnv("CACHE_PREFIX", "plan_features"),
		},
		Events: EventsConfig{
			SubjectPrefix: getEnv("EVENTS_SUBJECT_PREFIX", "events"),
			StreamName:    getEnv("EVENTS_STREAM_NAME", "EVENTS"),
			CatalogTopic:  getEnv("CATALOG_TOPIC_NAME", "CATALOG_CHANGED"),
			ConsumerName:  getEnv("EVENTS_CONSUMER_NAME", defaultConsumerName()),
		},
		Auth: AuthConfig{
			Enabled:   getEnvAsBool("AUTH_ENABLED", false),
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "saas-manager-backend"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if seconds := getEnvAsInt(key, -1); seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

// defaultConsumerName derives a durable name from the host name.
// NATS durable names may not contain '.', '*' or '>'.
func defaultConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "local"
	}
	return "saas-manager-" + strings.NewReplacer(".", "-", "*", "-", ">", "-").Replace(host)
}
