package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string   `mapstructure:"PORT"`
	Env                string   `mapstructure:"ENV"`
	CORSOrigins        []string `mapstructure:"CORS_ORIGINS"`
	PoolMinSize        int      `mapstructure:"POOL_MIN_SIZE"`
	PoolMaxSize        int      `mapstructure:"POOL_MAX_SIZE"`
	DefaultResultLimit int      `mapstructure:"DEFAULT_RESULT_LIMIT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("POOL_MIN_SIZE", 20)
	v.SetDefault("POOL_MAX_SIZE", 50)
	v.SetDefault("DEFAULT_RESULT_LIMIT", 10)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("POOL_MIN_SIZE")
	v.BindEnv("POOL_MAX_SIZE")
	v.BindEnv("DEFAULT_RESULT_LIMIT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. The candidate pool
// bounds drive every generated response, so a misordered or non-positive
// range would make the simulator produce empty or unbounded result sets.
func (c *Config) Validate() error {
	if c.PoolMinSize <= 0 {
		return fmt.Errorf("POOL_MIN_SIZE must be positive, got %d", c.PoolMinSize)
	}
	if c.PoolMaxSize < c.PoolMinSize {
		return fmt.Errorf("POOL_MAX_SIZE (%d) must be >= POOL_MIN_SIZE (%d)", c.PoolMaxSize, c.PoolMinSize)
	}
	if c.DefaultResultLimit <= 0 {
		return fmt.Errorf("DEFAULT_RESULT_LIMIT must be positive, got %d", c.DefaultResultLimit)
	}
	return nil
}
