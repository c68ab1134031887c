// Package settings resolves CLI settings from flags, SEQCHECK_* environment
// variables and an optional .seqcheck.yaml, in that order of precedence.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are the resolved run settings.
type Settings struct {
	LogLevel string `mapstructure:"log_level"`
	Preset   string `mapstructure:"preset"`
	Profile  string `mapstructure:"profile"`
}

// flag name -> settings key
var bindings = map[string]string{
	"log-level": "log_level",
	"preset":    "preset",
	"profile":   "profile",
}

// Load resolves settings. cfgFile, when set, must exist; otherwise
// .seqcheck.yaml is looked up in the working directory and skipped if absent.
func Load(cfgFile string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetDefault("log_level", "warn")
	v.SetDefault("preset", "ramp")
	v.SetDefault("profile", "")

	v.SetEnvPrefix("SEQCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range bindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(".seqcheck")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &s, nil
}

// Level parses LogLevel (debug, info, warn, error).
func (s *Settings) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}
