package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field maps 1:1 to a documented env var.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Supabase backend
	SupabaseURL     string `mapstructure:"SUPABASE_URL"`
	SupabaseAnonKey string `mapstructure:"SUPABASE_ANON_KEY"`

	// Catalog
	PageSize int `mapstructure:"PAGE_SIZE"`

	// Storage
	StorageBucket string `mapstructure:"STORAGE_BUCKET"`
	StorageFolder string `mapstructure:"STORAGE_FOLDER"`

	// Client-side deadlines, in seconds. Storage uploads from tablets on
	// mobile networks are the slow path, hence the generous default.
	UploadTimeoutSecs  int `mapstructure:"UPLOAD_TIMEOUT_SECS"`
	AuthTimeoutSecs    int `mapstructure:"AUTH_TIMEOUT_SECS"`
	ConnectTimeoutSecs int `mapstructure:"CONNECT_TIMEOUT_SECS"`
}

// UploadTimeout returns the storage upload deadline as a duration.
func (c *Config) UploadTimeout() time.Duration {
	return time.Duration(c.UploadTimeoutSecs) * time.Second
}

// AuthTimeout returns the auth probe deadline as a duration.
func (c *Config) AuthTimeout() time.Duration {
	return time.Duration(c.AuthTimeoutSecs) * time.Second
}

// ConnectTimeout returns the connectivity probe deadline as a duration.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSecs) * time.Second
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SUPABASE_URL", "http://localhost:54321")
	viper.SetDefault("SUPABASE_ANON_KEY", "")
	viper.SetDefault("PAGE_SIZE", 10)
	viper.SetDefault("STORAGE_BUCKET", "product-images")
	viper.SetDefault("STORAGE_FOLDER", "productos")
	viper.SetDefault("UPLOAD_TIMEOUT_SECS", 60)
	viper.SetDefault("AUTH_TIMEOUT_SECS", 10)
	viper.SetDefault("CONNECT_TIMEOUT_SECS", 5)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
