package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	// Remote lake backend. When set, document store, vector index, and
	// completion all go through the lake API.
	LakeAPIURL    string `envconfig:"LAKE_API_URL"`
	LakeAPIKey    string `envconfig:"LAKE_API_KEY"`
	LakeAccountID string `envconfig:"LAKE_ACCOUNT_ID"`

	// Local backend: OpenAI for embeddings/completions, Postgres+pgvector
	// for storage, HTTP/S3 for document fetching.
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	DatabaseURL  string `envconfig:"DATABASE_URL"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	ChunkSize     int `envconfig:"CHUNK_SIZE" default:"500"`
	SearchTopK    int `envconfig:"SEARCH_TOP_K" default:"4"`
	IngestWorkers int `envconfig:"INGEST_WORKERS" default:"4"`

	// Embedding request throttle. Zero or negative disables throttling.
	EmbedRateLimit float64 `envconfig:"EMBED_RATE_LIMIT" default:"10"`
	EmbedRateBurst int     `envconfig:"EMBED_RATE_BURST" default:"5"`

	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("RAGLINE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasLake() bool {
	return c.LakeAPIURL != "" && c.LakeAPIKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
