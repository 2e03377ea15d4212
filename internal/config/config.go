package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds CLI defaults; flags override whatever is loaded here
type Config struct {
	DefaultFormat   string  `mapstructure:"default_format"`
	PreserveIndexes bool    `mapstructure:"preserve_indexes"`
	MinDurationSec  float64 `mapstructure:"min_duration_sec"`
	MaxDurationSec  float64 `mapstructure:"max_duration_sec"`
}

// Load reads an optional .subcue.yaml from the working directory or the
// home directory, plus SUBCUE_* environment variables. A missing config
// file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".subcue")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix("SUBCUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("default_format", "srt")
	v.SetDefault("preserve_indexes", false)
	v.SetDefault("min_duration_sec", 1.0)
	v.SetDefault("max_duration_sec", 7.0)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}
