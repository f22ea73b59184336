package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverBolt     = "bolt"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type HTTPConfig struct {
	Addr string
}

type LogConfig struct {
	Level string
	File  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type PostgresConfig struct {
	DSN string
}

type BoltConfig struct {
	Path string
}

type StorageConfig struct {
	Driver   string
	Bolt     BoltConfig
	Redis    RedisConfig
	Postgres PostgresConfig
}

// LatencyConfig is the simulated delay of each mock backend call.
type LatencyConfig struct {
	Login    time.Duration
	Register time.Duration
	Products time.Duration
	Product  time.Duration
	Search   time.Duration
	Filter   time.Duration
	Suggest  time.Duration
	Checkout time.Duration
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	HashPasswords bool          `mapstructure:"hash_passwords"`
}

type MetricsConfig struct {
	Enabled bool
	Token   string
}

type AppConfig struct {
	Environment    string
	HTTP           HTTPConfig
	Log            LogConfig
	Storage        StorageConfig
	Latency        LatencyConfig
	Auth           AuthConfig
	Metrics        MetricsConfig
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads config.yaml from the usual places, then EDUCOM_* environment
// variables, e.g. EDUCOM_STORAGE_DRIVER=bolt.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	return load(v)
}

// LoadFile reads an explicit config file; environment variables still win.
func LoadFile(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	return load(v)
}

func load(v *viper.Viper) (*AppConfig, error) {
	v.SetEnvPrefix("EDUCOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverBolt:
		if c.Storage.Bolt.Path == "" {
			return errors.New("config: storage.bolt.path is required for the bolt driver")
		}
	case DriverRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.New("config: storage.redis.addr is required for the redis driver")
		}
	case DriverPostgres:
		if c.Storage.Postgres.DSN == "" {
			return errors.New("config: storage.postgres.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret is required")
	}
	if c.Environment == "production" && c.Auth.JWTSecret == devSecret {
		return errors.New("config: auth.jwt_secret must be set in production")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("config: auth.token_ttl must be positive")
	}
	return nil
}

const devSecret = "dev-secret"

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.addr", ":8080")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("storage.driver", DriverBolt)
	v.SetDefault("storage.bolt.path", "educom.db")
	v.SetDefault("storage.redis.addr", "127.0.0.1:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "educom:")
	v.SetDefault("storage.postgres.dsn", "")

	v.SetDefault("latency.login", "1s")
	v.SetDefault("latency.register", "1s")
	v.SetDefault("latency.products", "800ms")
	v.SetDefault("latency.product", "500ms")
	v.SetDefault("latency.search", "600ms")
	v.SetDefault("latency.filter", "700ms")
	v.SetDefault("latency.suggest", "1500ms")
	v.SetDefault("latency.checkout", "1200ms")

	v.SetDefault("auth.jwt_secret", devSecret)
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.hash_passwords", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.token", "")

	v.SetDefault("allowed_origins", []string{})
}
