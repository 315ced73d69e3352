package config

import (
	"fmt"
	"github.com/spf13/viper"
)

// CleanerConfig controls retention of completed jobs.
// RetentionInDays == 0 disables the cleaner entirely.
type CleanerConfig struct {
	RetentionInDays int `mapstructure:"retention_in_days"`
}

func (config CleanerConfig) validate() error {
	if config.RetentionInDays < 0 {
		return fmt.Errorf("retention in days cannot be negative: %d", config.RetentionInDays)
	}
	return nil
}

func (config CleanerConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("cleaner.retention_in_days", "JOB_RETENTION_DAYS")
}
