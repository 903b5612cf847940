package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Almacenes de saludos soportados (GREETING_STORE).
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMongoDB  = "mongodb"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development" validate:"oneof=development production test"`
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080" validate:"required,numeric"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	GreetingStore string `envconfig:"GREETING_STORE" default:"memory" validate:"oneof=memory sqlite postgres mongodb"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"./hexagreet.db"`
	PostgresDSN   string `envconfig:"POSTGRES_DSN" validate:"required_if=GreetingStore postgres"`
	MongoURI      string `envconfig:"MONGO_URI" validate:"required_if=GreetingStore mongodb"`
	MongoDB       string `envconfig:"MONGO_DB" default:"hexagreet"`

	RedisAddr string        `envconfig:"REDIS_ADDR"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"5m" validate:"gt=0"`

	UseKafka     bool     `envconfig:"USE_KAFKA" default:"false"`
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092" validate:"required_if=UseKafka true,dive,hostname_port"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"greeting"`

	ClickHouseAddr string `envconfig:"CLICKHOUSE_ADDR"`
	ClickHouseDB   string `envconfig:"CLICKHOUSE_DB" default:"default"`

	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"100" validate:"gt=0"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m" validate:"gt=0"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`

	MemoryLimitMB   uint64        `envconfig:"MEMORY_LIMIT_MB" default:"512" validate:"gt=0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
}

var validate = validator.New()

// LoadConfig lee un .env opcional (los paths indicados, o ".env") y después el entorno.
// Las variables del entorno tienen prioridad sobre las del fichero.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	cfg.KafkaBrokers = trimAll(cfg.KafkaBrokers)
	cfg.AllowedOrigins = trimAll(cfg.AllowedOrigins)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// IsProduction indica si APP_ENV=production.
func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

// Addr es la dirección de escucha del servidor HTTP.
func (c *Config) Addr() string { return ":" + c.HTTPPort }

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
