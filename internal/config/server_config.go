package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	ApplyRateLimit float64  `mapstructure:"apply_rate_limit"`
}

func (config ServerConfig) Address() string {
	return fmt.Sprintf(":%d", config.Port)
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.Port <= 0 || config.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", config.Port))
	}

	switch strings.ToLower(config.Mode) {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("invalid mode: %q", config.Mode))
	}

	if config.ApplyRateLimit < 0 {
		errs = append(errs, fmt.Errorf("apply_rate_limit must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error
	if err := v.BindEnv("server.port", "PORT"); err != nil {
		errs = append(errs, err)
	}

	if err := v.BindEnv("server.mode", "GIN_MODE"); err != nil {
		errs = append(errs, err)
	}

	if err := v.BindEnv("server.apply_rate_limit", "APPLY_RATE_LIMIT"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
