// Package config reads the game options. From lowest to highest priority:
// defaults, the config file, a .env file, environment variables prefixed
// with TETRIS_ and command line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"srstetris/tetris"

	"github.com/joho/godotenv"
	"github.com/kirsle/configdir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName   = "srstetris"
	envPrefix = "TETRIS"
)

type Options struct {
	NoGhost  bool   `mapstructure:"no-ghost"`
	Level    int    `mapstructure:"level"`
	LogFile  string `mapstructure:"log-file"`
	LogLevel string `mapstructure:"log-level"`
}

// Dir is where the config file and the logs live by default.
func Dir() string { return configdir.LocalConfig(appName) }

// Flags registers the flags read by Load.
func Flags(fs *pflag.FlagSet) {
	fs.Bool("no-ghost", false, "don't render the ghost piece")
	fs.Int("level", 0, fmt.Sprintf("starting level (0-%d)", tetris.MaxStartLevel))
	fs.String("log-file", filepath.Join(Dir(), "tetris.log"), "file to write the logs to")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("config", "", "config file (default is "+filepath.Join(Dir(), "config.yaml")+")")
}

// Load reads the options. fs should have been registered with Flags() and parsed.
func Load(fs *pflag.FlagSet) (*Options, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env file: %w", err)
	}

	v := viper.New()
	v.SetDefault("no-ghost", false)
	v.SetDefault("level", 0)
	v.SetDefault("log-file", filepath.Join(Dir(), "tetris.log"))
	v.SetDefault("log-level", "info")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("unable to bind flags: %w", err)
		}
	}

	configFile := v.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(Dir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// the default config file is optional.
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	o := &Options{}
	if err := v.Unmarshal(o); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if o.Level < 0 || o.Level > tetris.MaxStartLevel {
		return nil, fmt.Errorf("level must be between 0 and %d, got %d", tetris.MaxStartLevel, o.Level)
	}
	if _, err := o.SlogLevel(); err != nil {
		return nil, err
	}
	return o, nil
}

// SlogLevel parses LogLevel.
func (o *Options) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", o.LogLevel, err)
	}
	return l, nil
}
