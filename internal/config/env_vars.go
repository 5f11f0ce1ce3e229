package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	keyPort     = "port"
	keyAppName  = "app_name"
	keyEnv      = "env"
	keyLogLevel = "log_level"
)

type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.v.GetString(keyPort)
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.v.GetString(keyAppName)
}

// GetEnv returns the deployment environment, "DEV" unless configured otherwise.
func (e EnvVars) GetEnv() string {
	env := strings.ToUpper(strings.TrimSpace(e.v.GetString(keyEnv)))
	if env == "" {
		return "DEV"
	}
	return env
}

func (e EnvVars) GetLogLevel() string {
	return e.v.GetString(keyLogLevel)
}

func (e EnvVars) IsDevelopment() bool {
	return e.GetEnv() == "DEV"
}
