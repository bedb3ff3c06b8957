package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "TRANSLEVEL"

// Settings are the user defaults read from the config file and environment.
// Command-line flags take precedence over them.
type Settings struct {
	Format      string `mapstructure:"format"`
	Limit       string `mapstructure:"limit"`
	Concurrency int    `mapstructure:"concurrency"`
	Indent      bool   `mapstructure:"indent"`
	NoColor     bool   `mapstructure:"no_color"`
}

// RegisterDefaults registers the setting keys and their defaults on v, which
// also makes them visible to AutomaticEnv.
func RegisterDefaults(v *viper.Viper) {
	v.SetDefault("format", "xmgrace")
	v.SetDefault("limit", "")
	v.SetDefault("concurrency", runtime.NumCPU())
	v.SetDefault("indent", true)
	v.SetDefault("no_color", false)
}

// ConfigureEnv binds TRANSLEVEL_* environment variables on v.
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// LoadSettings reads Settings from v.
func LoadSettings(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks setting values.
func (s Settings) Validate() error {
	if s.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", s.Concurrency)
	}
	if strings.TrimSpace(s.Format) == "" {
		return fmt.Errorf("format must not be empty")
	}
	return nil
}
