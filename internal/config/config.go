package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds everything the engine reads from the environment.
// AWS credentials and region are resolved by the SDK itself.
type Config struct {
	HTTP    HTTPConfig
	Tables  TableConfig
	Storage StorageConfig
	Mail    MailConfig
	Queue   QueueConfig
	Groq    GroqConfig
}

type HTTPConfig struct {
	Addr     string `env:"HTTP_ADDR,default=:8080"`
	RunLocal bool   `env:"RUN_LOCAL,default=false"`
}

type TableConfig struct {
	Orders   string `env:"ORDERS_TABLE,default=optistyle-orders"`
	Counters string `env:"COUNTERS_TABLE,default=optistyle-counters"`
}

type StorageConfig struct {
	InvoiceBucket string `env:"INVOICE_BUCKET,required"`
}

type MailConfig struct {
	Sender     string `env:"MAIL_SENDER,required"`
	AdminEmail string `env:"ADMIN_EMAIL,required"`
}

type QueueConfig struct {
	NotificationsURL string `env:"NOTIFICATIONS_QUEUE_URL,required"`
	// WorkerConcurrency bounds parallel dispatch in the local polling worker.
	WorkerConcurrency int `env:"WORKER_CONCURRENCY,default=4"`
}

type GroqConfig struct {
	APIKey  string `env:"GROQ_API_KEY"`
	BaseURL string `env:"GROQ_BASE_URL,default=https://api.groq.com/openai/v1"`
	Model   string `env:"GROQ_MODEL,default=llama-3.1-8b-instant"`
}

// Load reads .env (if present) and decodes the environment into Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
