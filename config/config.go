// Package config loads process configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every knob the process entry point needs.
type Config struct {
	// GRPCAddr is the listen address for the gRPC facade.
	GRPCAddr string `env:"MATCHCORE_GRPC_ADDR" envDefault:":50051"`

	// MetricsAddr is the listen address for the Prometheus /metrics
	// endpoint.
	MetricsAddr string `env:"MATCHCORE_METRICS_ADDR" envDefault:":9090"`

	// IntentSource selects the Intent Decoder transport: "stdin" or
	// "kafka".
	IntentSource string `env:"MATCHCORE_INTENT_SOURCE" envDefault:"stdin"`

	KafkaBrokers      []string `env:"MATCHCORE_KAFKA_BROKERS" envSeparator:","`
	KafkaIntentTopic  string   `env:"MATCHCORE_KAFKA_INTENT_TOPIC" envDefault:"matchcore.intents"`
	KafkaGroupID      string   `env:"MATCHCORE_KAFKA_GROUP_ID" envDefault:"matchcore-engine"`
	KafkaEventTopic   string   `env:"MATCHCORE_KAFKA_EVENT_TOPIC" envDefault:"matchcore.events"`
	EnableKafkaSink   bool     `env:"MATCHCORE_ENABLE_KAFKA_SINK" envDefault:"false"`
	EnableAuditJournal bool    `env:"MATCHCORE_ENABLE_AUDIT_JOURNAL" envDefault:"true"`

	AuditDir   string `env:"MATCHCORE_AUDIT_DIR" envDefault:"./data/audit"`
	BookDumpDir string `env:"MATCHCORE_BOOKDUMP_DIR" envDefault:"./data/bookdump"`
	DumpEvery  int    `env:"MATCHCORE_DUMP_EVERY" envDefault:"100"`
}

// Load reads a .env file if present (ignored if absent) and then
// overlays real environment variables on top of the struct tags'
// defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}
