package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerPort      string        `envconfig:"SERVER_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	DBDriver    string `envconfig:"DB_DRIVER" default:"pgx"` // "pgx" for pgx/stdlib, "postgres" for lib/pq
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      int    `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"valet"`
	DBPassword  string `envconfig:"DB_PASSWORD" default:"valet"`
	DBName      string `envconfig:"DB_NAME" default:"valet_db"`
	DBSslMode   string `envconfig:"DB_SSLMODE" default:"disable"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"false"`

	JWTSecret     string        `envconfig:"JWT_SECRET" default:"change-me-valet-secret"`
	JWTExpiration time.Duration `envconfig:"JWT_EXPIRATION" default:"168h"`
	BcryptCost    int           `envconfig:"BCRYPT_COST" default:"10"`

	AWSRegion             string `envconfig:"AWS_REGION" default:"ap-south-1"`
	PaymentEventsQueueURL string `envconfig:"PAYMENT_EVENTS_QUEUE_URL"`
	LPREnabled            bool   `envconfig:"LPR_ENABLED" default:"false"`

	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"valet.events"`
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Config: could not load .env file: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.DBDriver != "pgx" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return &cfg, nil
}

// DSN prefers DATABASE_URL and falls back to the discrete DB_* keys.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
