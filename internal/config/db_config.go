package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	MaxOpenConns     int    `mapstructure:"max_open_conns"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("db.connection_string", "DB_CONNECTION_STRING")
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// Enabled is false when no url is configured; rate limiting then stays in memory.
func (config RedisConfig) Enabled() bool {
	return config.URL != ""
}

func (config RedisConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("redis.url", "REDIS_URL")
}
