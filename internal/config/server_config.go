package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port                 int     `mapstructure:"port"`
	MetricsPort          int     `mapstructure:"metrics_port"`
	MaxRequestsPerSecond float32 `mapstructure:"max_requests_per_second"`
	ShutdownTimeoutSec   int     `mapstructure:"shutdown_timeout_sec"`
}

func (config ServerConfig) validate() error {

	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Port)
	}

	if config.MetricsPort <= 0 || config.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", config.MetricsPort)
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {

	if err := viper.BindEnv("server.port", "PORT"); err != nil {
		return err
	}

	return viper.BindEnv("server.metrics_port", "METRICS_PORT")
}
