package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads .env, then config.yaml from ./configs or the working
// directory, then environment overrides (SERVER_ADDRESS, RATESHEET_PATH, ...).
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	return load(v)
}

// LoadFile reads the given yaml file plus environment overrides.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys
// that are absent from the yaml file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("ratelimit.requests", 5)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("ratesheet.source", SourceFile)
	v.SetDefault("ratesheet.path", "data/daily_rate_sheet.csv")
	v.SetDefault("ratesheet.s3.bucket", "")
	v.SetDefault("ratesheet.s3.key", "")
	v.SetDefault("ratesheet.s3.region", "us-east-1")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.backend", CacheRedis)
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.cli_level", "warn")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.RateSheet.Source == "" {
		cfg.RateSheet.Source = SourceFile
	}
	cfg.RateSheet.Source = strings.ToLower(cfg.RateSheet.Source)
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = CacheRedis
	}
	cfg.Cache.Backend = strings.ToLower(cfg.Cache.Backend)
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = 10 * time.Minute
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.CLILevel == "" {
		cfg.Logging.CLILevel = "warn"
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.RateSheet.Source {
	case SourceFile:
		if cfg.RateSheet.Path == "" {
			return errors.New("ratesheet.path is required for the file source")
		}
	case SourceS3:
		if cfg.RateSheet.S3.Bucket == "" || cfg.RateSheet.S3.Key == "" {
			return errors.New("ratesheet.s3.bucket and ratesheet.s3.key are required for the s3 source")
		}
	default:
		return fmt.Errorf("unknown ratesheet.source %q", cfg.RateSheet.Source)
	}

	switch cfg.Cache.Backend {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown cache.backend %q", cfg.Cache.Backend)
	}

	if cfg.RateLimit.Requests <= 0 {
		return errors.New("ratelimit.requests must be positive")
	}
	if cfg.RateLimit.Window <= 0 {
		return errors.New("ratelimit.window must be positive")
	}
	return nil
}
