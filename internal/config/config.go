// Package config loads hexkit settings from defaults, a YAML file, HEXKIT_
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/joshuapare/hexkit/internal/hexfmt"
	"github.com/joshuapare/hexkit/internal/logger"
	"github.com/joshuapare/hexkit/internal/mmfile"
	"github.com/joshuapare/hexkit/window"
)

// EnvPrefix prefixes environment overrides, e.g. HEXKIT_WINDOW_CAPACITY.
const EnvPrefix = "HEXKIT"

// Keys.
const (
	KeyWindowCapacity = "window_capacity"
	KeyBytesPerLine   = "bytes_per_line"
	KeyEncoding       = "encoding"
	KeyLogEnabled     = "log.enabled"
	KeyLogDir         = "log.dir"
	KeyLogLevel       = "log.level"
)

// flagKeys maps command-line flag names onto keys.
var flagKeys = map[string]string{
	"window-capacity": KeyWindowCapacity,
	"width":           KeyBytesPerLine,
	"encoding":        KeyEncoding,
	"debug":           KeyLogEnabled,
	"log-level":       KeyLogLevel,
}

// Config holds the resolved settings.
type Config struct {
	WindowCapacity int    `mapstructure:"window_capacity"`
	BytesPerLine   int    `mapstructure:"bytes_per_line"`
	Encoding       string `mapstructure:"encoding"`
	Log            Log    `mapstructure:"log"`

	// File is the config file that was read, or "" when none was.
	File string `mapstructure:"-"`
}

// Log configures the file logger.
type Log struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
	Level   string `mapstructure:"level"`
}

// DefaultPath returns $HOME/.hexkit/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hexkit", "config.yaml")
}

// Load resolves the configuration. An explicit path must exist; otherwise
// the default path is read when present. Flags in fs that were set on the
// command line override everything else; fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyWindowCapacity, window.DefaultCapacity)
	v.SetDefault(KeyBytesPerLine, hexfmt.DefaultBytesPerLine)
	v.SetDefault(KeyEncoding, "ascii")
	v.SetDefault(KeyLogEnabled, false)
	v.SetDefault(KeyLogDir, "")
	v.SetDefault(KeyLogLevel, "debug")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := path
	if file == "" {
		if def := DefaultPath(); def != "" {
			if _, err := os.Stat(def); err == nil {
				file = def
			}
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = file
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	var errs []error
	if c.WindowCapacity <= 0 || c.WindowCapacity%mmfile.Granularity != 0 {
		errs = append(errs, fmt.Errorf("%s: %d is not a positive multiple of %d",
			KeyWindowCapacity, c.WindowCapacity, mmfile.Granularity))
	}
	if c.BytesPerLine < 1 || c.BytesPerLine > hexfmt.MaxBytesPerLine {
		errs = append(errs, fmt.Errorf("%s: %d not in [1,%d]",
			KeyBytesPerLine, c.BytesPerLine, hexfmt.MaxBytesPerLine))
	}
	if _, err := hexfmt.Lookup(c.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyEncoding, err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ReaderOptions returns window reader options for this configuration.
func (c *Config) ReaderOptions(log *slog.Logger) window.Options {
	return window.Options{
		WindowCapacity: c.WindowCapacity,
		Logger:         log,
	}
}

// Layout returns a row layout for a file of fileLength bytes.
func (c *Config) Layout(fileLength int64) hexfmt.Layout {
	cs, _ := hexfmt.Lookup(c.Encoding)
	return hexfmt.NewLayout(fileLength, c.BytesPerLine, cs)
}

// LoggerOptions returns file logger options for this configuration.
func (c *Config) LoggerOptions(prefix string) logger.Options {
	return logger.Options{
		Enabled: c.Log.Enabled,
		LogDir:  c.Log.Dir,
		Level:   logger.ParseLevel(c.Log.Level),
		Prefix:  prefix,
	}
}
