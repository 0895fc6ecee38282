package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Env         string        `env:"ENV" envDefault:"local"` // local, dev, prod
	Address     string        `env:"ADDRESS" envDefault:":8080"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"5s"`
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	Version     string        `env:"LAMBDA_VERSION" envDefault:"dev"`
	CORSOrigins []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080"`
}

type StorageConfig struct {
	Driver       string `env:"STORAGE_DRIVER" envDefault:"postgres"` // postgres, memory
	PostgresConn string `env:"POSTGRES_CONN"`
	Migrate      bool   `env:"MIGRATE" envDefault:"true"`
}

type JWTConfig struct {
	Secret                  string `env:"JWT_SECRET,required"`
	AccessExpirationMinutes int    `env:"ACCESS_EXPIRATION_MINUTES" envDefault:"15"`
	RefreshExpirationDays   int    `env:"REFRESH_EXPIRATION_DAYS" envDefault:"7"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// RaffleConfig holds the accrual table. Instruments are "label:entries" pairs,
// e.g. RAFFLE_INSTRUMENTS="Citibank:1,Citibank Paylite:2".
type RaffleConfig struct {
	Threshold    string         `env:"RAFFLE_THRESHOLD" envDefault:"3000"`
	Instruments  map[string]int `env:"RAFFLE_INSTRUMENTS" envSeparator:"," envKeyValSeparator:":" envDefault:"Citibank:1,Citibank Paylite:2"`
	CampaignID   string         `env:"CAMPAIGN_ID" envDefault:"502ab6e7a856b67323a7206d74739118"`
	CampaignName string         `env:"CAMPAIGN_NAME" envDefault:"30thingstodoatmega"`
	Timezone     string         `env:"TIMEZONE" envDefault:"Asia/Manila"`
}

type Config struct {
	Stage   string `env:"STAGE" envDefault:"dev"`
	Server  ServerConfig
	Storage StorageConfig
	JWT     JWTConfig
	Redis   RedisConfig
	Raffle  RaffleConfig
}

const (
	local = ".env.local"
	dev   = ".env.dev"
	prod  = ".env.prod"
)

var ErrMissingPostgresConn = errors.New("POSTGRES_CONN is required for the postgres storage driver")

// Load reads the first env file that exists and then parses the process
// environment. Variables already set in the environment win over the file.
func Load() (*Config, error) {
	for _, file := range []string{local, dev, prod} {
		err := godotenv.Load(file)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	if cfg.Storage.Driver == "postgres" && cfg.Storage.PostgresConn == "" {
		return nil, fmt.Errorf("config.Load: %w", ErrMissingPostgresConn)
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}

// Location resolves the configured timezone, falling back to UTC for an
// unknown name. Zone data is embedded, so this does not depend on the host.
func (c RaffleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}
