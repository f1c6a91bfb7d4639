package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "FAZENDA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Store driver names accepted by StoreConfig.Driver.
const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"
	StoreDriverRedis  = "redis"
)

type Config struct {
	App     AppConfig
	Store   StoreConfig
	Redis   RedisConfig
	Plans   PlansConfig
	Seed    SeedConfig
	Tracker TrackerConfig
	Cron    CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FAZENDA_APP_ENV" default:"dev"`
	Port         string `envconfig:"FAZENDA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FAZENDA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FAZENDA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StoreConfig struct {
	Driver     string `envconfig:"FAZENDA_STORE_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"FAZENDA_STORE_SQLITE_PATH" default:"fazenda.db"`
	Namespace  string `envconfig:"FAZENDA_STORE_NAMESPACE" default:"fazenda"`
}

func (s StoreConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Driver)) {
	case StoreDriverMemory, StoreDriverSQLite, StoreDriverRedis:
		return nil
	}
	return fmt.Errorf("unknown store driver %q", s.Driver)
}

type RedisConfig struct {
	URL          string        `envconfig:"FAZENDA_REDIS_URL"`
	Address      string        `envconfig:"FAZENDA_REDIS_ADDR"`
	Password     string        `envconfig:"FAZENDA_REDIS_PASSWORD"`
	DB           int           `envconfig:"FAZENDA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FAZENDA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FAZENDA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FAZENDA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FAZENDA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FAZENDA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PlansConfig carries the default commercial terms applied by the lifecycle
// engine when an operation does not specify its own.
type PlansConfig struct {
	TrialDays          int `envconfig:"FAZENDA_PLAN_TRIAL_DAYS" default:"15"`
	ReactivationMonths int `envconfig:"FAZENDA_PLAN_REACTIVATION_MONTHS" default:"3"`
}

type SeedConfig struct {
	Enabled bool `envconfig:"FAZENDA_SEED_ENABLED" default:"true"`
}

type CronConfig struct {
	Enabled  bool          `envconfig:"FAZENDA_CRON_ENABLED" default:"true"`
	Interval time.Duration `envconfig:"FAZENDA_CRON_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"FAZENDA_CRON_LOCK_TTL" default:"2h"`
}

type TrackerConfig struct {
	// Position deltas below this distance are treated as GPS noise and do
	// not accrue to a worker's travelled distance.
	NoiseFloorMeters float64 `envconfig:"FAZENDA_TRACKER_NOISE_FLOOR_METERS" default:"5"`
}
