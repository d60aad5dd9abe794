package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int    `mapstructure:"max_conns"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// AuthConfig holds token signing configuration
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"`
	JWTAlgorithm    string `mapstructure:"jwt_algorithm"`
	TokenTTLSeconds int    `mapstructure:"token_ttl_seconds"`
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint     string `mapstructure:"endpoint"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	Region       string `mapstructure:"region"`
	Bucket       string `mapstructure:"bucket"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
}

// BootstrapConfig holds the superuser credentials used for first-boot seeding
type BootstrapConfig struct {
	SuperuserUsername string `mapstructure:"superuser_username"`
	SuperuserPassword string `mapstructure:"superuser_password"`
}

// CacheConfig holds cache configuration for the public short-link lookup
type CacheConfig struct {
	Type       string           `mapstructure:"type"` // "none", "memory", "redis"
	Enabled    bool             `mapstructure:"enabled"`
	TTLSeconds int              `mapstructure:"ttl_seconds"`
	MaxSize    int              `mapstructure:"max_size"`
	Redis      RedisCacheConfig `mapstructure:"redis"`
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Address    string `mapstructure:"address"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file details
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/registry")

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and env vars
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("REGISTRY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind all environment variables explicitly
	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the options that have no sane default.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret must be set")
	}
	switch c.Auth.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("auth.jwt_algorithm must be one of HS256, HS384, HS512, got %q", c.Auth.JWTAlgorithm)
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket must be set")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.port", 8080)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "registry_db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 25)
	v.SetDefault("database.max_idle", 5)

	// Auth defaults
	v.SetDefault("auth.jwt_algorithm", "HS256")
	v.SetDefault("auth.token_ttl_seconds", 3600)

	// Storage defaults
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.use_path_style", true)

	// Bootstrap defaults
	v.SetDefault("bootstrap.superuser_username", "superuser")
	v.SetDefault("bootstrap.superuser_password", "superuser")

	// Cache defaults (stateless by default)
	v.SetDefault("cache.type", "none")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl_seconds", 60)
	v.SetDefault("cache.max_size", 10000)

	// Redis cache defaults
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.ttl_seconds", 60)
}

func bindEnvVariables(v *viper.Viper) {
	// Server
	v.BindEnv("server.address")
	v.BindEnv("server.port")

	// Database
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("database.max_conns")
	v.BindEnv("database.max_idle")

	// Auth
	v.BindEnv("auth.jwt_secret")
	v.BindEnv("auth.jwt_algorithm")
	v.BindEnv("auth.token_ttl_seconds")

	// Storage
	v.BindEnv("storage.endpoint")
	v.BindEnv("storage.access_key")
	v.BindEnv("storage.secret_key")
	v.BindEnv("storage.region")
	v.BindEnv("storage.bucket")
	v.BindEnv("storage.use_path_style")

	// Bootstrap
	v.BindEnv("bootstrap.superuser_username")
	v.BindEnv("bootstrap.superuser_password")

	// Cache
	v.BindEnv("cache.type")
	v.BindEnv("cache.enabled")
	v.BindEnv("cache.ttl_seconds")
	v.BindEnv("cache.max_size")

	// Redis Cache
	v.BindEnv("cache.redis.address")
	v.BindEnv("cache.redis.password")
	v.BindEnv("cache.redis.db")
	v.BindEnv("cache.redis.ttl_seconds")
}
