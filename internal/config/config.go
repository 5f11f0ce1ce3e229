package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ADMIN"

type Config interface {
	EnvConfig
	UpstreamConfig
	SessionConfig
	RateLimitConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	IsDevelopment() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Upstream
	Session
	RateLimit
	Cors
}

// Option customises the viper instance before the configuration is read.
type Option func(v *viper.Viper) error

// WithConfigFile reads settings from an explicit file instead of searching for config.yaml.
func WithConfigFile(path string) Option {
	return func(v *viper.Viper) error {
		if path == "" {
			return nil
		}
		v.SetConfigFile(path)
		return nil
	}
}

// WithFlags binds command line flags to configuration keys of the same name.
func WithFlags(flags *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		return v.BindPFlags(flags)
	}
}

// WithValues overrides individual keys. Mostly useful in tests.
func WithValues(values map[string]any) Option {
	return func(v *viper.Viper) error {
		for k, val := range values {
			v.Set(k, val)
		}
		return nil
	}
}

// New returns the configuration built from defaults and environment variables.
func New() Config {
	c, err := Load()
	if err != nil {
		panic("config: " + err.Error())
	}
	return c
}

// Load builds the configuration from defaults, an optional config.yaml, ADMIN_* environment
// variables and any supplied options, in increasing order of precedence.
func Load(opts ...Option) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("[config Load] applying option: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && v.ConfigFileUsed() != "" {
			return nil, fmt.Errorf("[config Load] reading %s: %w", v.ConfigFileUsed(), err)
		}
	}

	return mainConfig{
		EnvVars:   EnvVars{v: v},
		Upstream:  Upstream{v: v},
		Session:   Session{v: v},
		RateLimit: RateLimit{v: v},
		Cors:      Cors{v: v},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyPort, "8080")
	v.SetDefault(keyAppName, "Admin Console")
	v.SetDefault(keyEnv, "DEV")
	v.SetDefault(keyLogLevel, "info")

	v.SetDefault(keyUpstreamBaseURL, "http://localhost:4550")
	v.SetDefault(keyUpstreamTimeout, "10s")

	v.SetDefault(keySessionSecret, DefaultSessionSecret)
	v.SetDefault(keySessionStore, SessionStoreMemory)
	v.SetDefault(keySessionMaxAge, "30m")
	v.SetDefault(keyRedisAddr, "localhost:6379")
	v.SetDefault(keyRedisPassword, "")
	v.SetDefault(keyRedisDB, 0)

	v.SetDefault(keyRateLimitPerSecond, 1.0)
	v.SetDefault(keyRateLimitBurst, 10)

	v.SetDefault(keyAllowedOrigins, []string{})
}
