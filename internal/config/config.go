package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "HOURS"
	defaultConfigFile = ".hours.yaml"
	defaultAddr       = ":8080"
	defaultLogFormat  = "text"
)

// Config keys. Command-line flags use the same names with dashes.
const (
	KeyArchive   = "archive"
	KeyAddr      = "addr"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
	KeyConfig    = "config"
)

// Config holds resolved configuration for the archive and the server. An
// empty LogLevel leaves the choice to the running command.
type Config struct {
	Archive    string `json:"archive"`
	Addr       string `json:"addr"`
	LogLevel   string `json:"log_level"`
	LogFormat  string `json:"log_format"`
	ConfigFile string `json:"config_file"`
	FileLoaded bool   `json:"config_file_loaded"`
}

// Resolve builds the configuration from defaults, the optional YAML config
// file, HOURS_* environment variables and flags, later sources winning. flags
// may be nil; only flags present in the set are bound.
func Resolve(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault(KeyAddr, defaultAddr)
	v.SetDefault(KeyLogFormat, defaultLogFormat)
	v.SetDefault(KeyConfig, defaultConfigFile)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{KeyArchive, KeyAddr, KeyLogLevel, KeyLogFormat, KeyConfig} {
			if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", f.Name, err)
				}
			}
		}
	}

	cfg := &Config{ConfigFile: v.GetString(KeyConfig)}
	if cfg.ConfigFile != "" {
		v.SetConfigFile(cfg.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", cfg.ConfigFile, err)
			}
		} else {
			cfg.FileLoaded = true
		}
	}

	cfg.Archive = v.GetString(KeyArchive)
	cfg.Addr = v.GetString(KeyAddr)
	cfg.LogLevel = strings.ToLower(v.GetString(KeyLogLevel))
	cfg.LogFormat = strings.ToLower(v.GetString(KeyLogFormat))

	if cfg.Archive != "" {
		abs, err := filepath.Abs(cfg.Archive)
		if err != nil {
			return nil, err
		}
		cfg.Archive = abs
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be text or json", cfg.LogFormat)
	}
	return cfg, nil
}

// ArchiveExists checks if the configured archive is set and present on disk.
// It returns an error for non-existence failures (e.g. permission errors).
func (c *Config) ArchiveExists() (bool, error) {
	if c.Archive == "" {
		return false, nil
	}
	info, err := os.Stat(c.Archive)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("archive %s is a directory", c.Archive)
	}
	return true, nil
}
