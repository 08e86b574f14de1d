package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	Issuer    string        `mapstructure:"issuer"`
}

const minSecretLength = 16

func (config AuthConfig) validate() error {
	var errs []error

	if config.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("missing variable: jwt_secret"))
	} else if len(config.JWTSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("jwt_secret must be at least %d characters", minSecretLength))
	}

	if config.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("token_ttl must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func (config AuthConfig) bindEnvironmentVariables(v *viper.Viper) error {
	if err := v.BindEnv("auth.jwt_secret", "JWT_SECRET"); err != nil {
		return err
	}
	return v.BindEnv("auth.token_ttl", "TOKEN_TTL")
}
