// Package config loads typed configuration for the gateway, scraper and
// loader binaries via spf13/viper, generalizing the teacher's scattered
// os.Getenv-with-default getters (KafkaConsumerConfig.go,
// KafkaProducerConfig.go, RedisConfig.go) into one struct per binary. Each
// binary's cobra root command calls Load; no command-line flags are bound.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting any of the three binaries might need. Each
// binary only reads the fields relevant to its role.
type Config struct {
	Environment string // "dev" | "prod"

	KafkaBrokerURL string
	DatabaseURL    string
	GoogleAPIKey   string

	RedisHost string
	RedisPort int

	RateLimitEnabled       bool
	RateLimitMaxRequests   int
	RateLimitWindowSeconds int

	HTTPAddr string

	DataDir string

	ScraperPageDelayMin   time.Duration
	ScraperPageDelayMax   time.Duration
	ScraperDetailDelayMin time.Duration
	ScraperDetailDelayMax time.Duration
	ScraperFetchTimeout   time.Duration
	LLMRequestTimeout     time.Duration
}

// Load reads configuration from an optional config.yaml (searched in the
// working directory, then /etc/job-ingestion-pipeline) plus environment
// variables, which take
// precedence over file values. Defaults mirror the teacher's hard-coded
// fallbacks and the spec's documented constants.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/job-ingestion-pipeline")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "dev")
	v.SetDefault("kafka_broker_url", "localhost:9092")
	v.SetDefault("database_url", "")
	v.SetDefault("google_api_key", "")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit_max_requests", 100)
	v.SetDefault("rate_limit_window_seconds", 60)
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("data_dir", "/app/data")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	return Config{
		Environment: v.GetString("environment"),

		KafkaBrokerURL: v.GetString("kafka_broker_url"),
		DatabaseURL:    v.GetString("database_url"),
		GoogleAPIKey:   v.GetString("google_api_key"),

		RedisHost: v.GetString("redis_host"),
		RedisPort: v.GetInt("redis_port"),

		RateLimitEnabled:       v.GetBool("rate_limit_enabled"),
		RateLimitMaxRequests:   v.GetInt("rate_limit_max_requests"),
		RateLimitWindowSeconds: v.GetInt("rate_limit_window_seconds"),

		HTTPAddr: v.GetString("http_addr"),

		DataDir: v.GetString("data_dir"),

		ScraperPageDelayMin:   3 * time.Second,
		ScraperPageDelayMax:   7 * time.Second,
		ScraperDetailDelayMin: 1500 * time.Millisecond,
		ScraperDetailDelayMax: 5 * time.Second,
		ScraperFetchTimeout:   30 * time.Second,
		LLMRequestTimeout:     60 * time.Second,
	}, nil
}
