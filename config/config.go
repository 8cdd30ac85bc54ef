package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	LogLevel  string
	LogFormat string
	LogFile   string

	PerProviderLimit int
	MaxConcurrency   int
	ProviderTimeout  time.Duration
	MaxRetries       int
	RetryBaseDelay   time.Duration
	ProviderSeed     int64
	ProviderLatency  time.Duration

	APIPort       string
	APITimeout    time.Duration
	CSVOutputPath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	ArchiveEnabled   bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	RabbitMQURL      string
	RabbitMQExchange string

	BrowserProvider  string
	BrowserSearchURL string
	ChromeBin        string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_FILE", "")

	v.SetDefault("PER_PROVIDER_LIMIT", 20)
	v.SetDefault("MAX_CONCURRENCY", 0)
	v.SetDefault("PROVIDER_TIMEOUT_MS", 0)
	v.SetDefault("MAX_RETRIES", 1)
	v.SetDefault("RETRY_BASE_DELAY_MS", 250)
	v.SetDefault("PROVIDER_SEED", 0)
	v.SetDefault("SIMULATED_LATENCY_MS", 0)

	v.SetDefault("API_PORT", "8080")
	v.SetDefault("API_TIMEOUT_SECONDS", 30)
	v.SetDefault("CSV_OUTPUT_PATH", "./output/ranked_listings.csv")

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "aggregator")
	v.SetDefault("POSTGRES_PASSWORD", "aggregator123")
	v.SetDefault("POSTGRES_DB", "car_search")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("ARCHIVE_ENABLED", false)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL_SECONDS", 300)

	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "car-search")

	v.SetDefault("BROWSER_PROVIDER", "")
	v.SetDefault("BROWSER_SEARCH_URL", "")
	v.SetDefault("CHROME_BIN", "")
	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
		LogFile:   v.GetString("LOG_FILE"),

		PerProviderLimit: v.GetInt("PER_PROVIDER_LIMIT"),
		MaxConcurrency:   v.GetInt("MAX_CONCURRENCY"),
		ProviderTimeout:  time.Duration(v.GetInt("PROVIDER_TIMEOUT_MS")) * time.Millisecond,
		MaxRetries:       v.GetInt("MAX_RETRIES"),
		RetryBaseDelay:   time.Duration(v.GetInt("RETRY_BASE_DELAY_MS")) * time.Millisecond,
		ProviderSeed:     v.GetInt64("PROVIDER_SEED"),
		ProviderLatency:  time.Duration(v.GetInt("SIMULATED_LATENCY_MS")) * time.Millisecond,

		APIPort:       v.GetString("API_PORT"),
		APITimeout:    time.Duration(v.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
		CSVOutputPath: v.GetString("CSV_OUTPUT_PATH"),

		PostgresHost:     v.GetString("POSTGRES_HOST"),
		PostgresPort:     v.GetString("POSTGRES_PORT"),
		PostgresUser:     v.GetString("POSTGRES_USER"),
		PostgresPassword: v.GetString("POSTGRES_PASSWORD"),
		PostgresDB:       v.GetString("POSTGRES_DB"),
		PostgresSSLMode:  v.GetString("POSTGRES_SSLMODE"),
		ArchiveEnabled:   v.GetBool("ARCHIVE_ENABLED"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		CacheTTL:      time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,

		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RabbitMQExchange: v.GetString("RABBITMQ_EXCHANGE"),

		BrowserProvider:  strings.ToLower(strings.TrimSpace(v.GetString("BROWSER_PROVIDER"))),
		BrowserSearchURL: v.GetString("BROWSER_SEARCH_URL"),
		ChromeBin:        v.GetString("CHROME_BIN"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
