// Package settings holds bookcfg's own preferences: where to find the
// manifest, where the pages live, and how to log. Values come from an
// optional bookcfg.yaml, then BOOKCFG_* environment variables; command-line
// flags override both.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	FileName  = "bookcfg"
	EnvPrefix = "BOOKCFG"
)

// Settings are the resolved tool preferences.
type Settings struct {
	Source      string `mapstructure:"source"`
	ContentRoot string `mapstructure:"content_root"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	Output      string `mapstructure:"output"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source", "")
	v.SetDefault("content_root", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "pretty")
	v.SetDefault("output", "text")
}

// Load reads settings from dir/bookcfg.yaml (if present) and the environment.
func Load(dir string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("settings: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate rejects values the tool cannot act on.
func (s *Settings) Validate() error {
	switch s.Output {
	case "text", "json":
	default:
		return fmt.Errorf("settings: output must be text or json, got %q", s.Output)
	}
	switch s.LogFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("settings: log_format must be pretty or json, got %q", s.LogFormat)
	}
	return nil
}
