package config

import "time"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	RateSheet RateSheetConfig `mapstructure:"ratesheet"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Address        string        `mapstructure:"address"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// Rate sheet sources.
const (
	SourceFile = "file"
	SourceS3   = "s3"
)

type RateSheetConfig struct {
	Source string   `mapstructure:"source"`
	Path   string   `mapstructure:"path"`
	S3     S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket string `mapstructure:"bucket"`
	Key    string `mapstructure:"key"`
	Region string `mapstructure:"region"`
}

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	// CLILevel applies to the interactive qualify command, whose prompts
	// share the terminal with the log output.
	CLILevel string `mapstructure:"cli_level"`
}
