package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/resultscope/internal/utils"
)

// Global configuration structure.
type Global struct {
	// Upload history (SQLite)
	HistoryPath     string `mapstructure:"history_path" yaml:"history_path"`
	HistoryDisabled bool   `mapstructure:"history_disabled" yaml:"history_disabled"`

	// Pipeline
	PassThreshold float64 `mapstructure:"pass_threshold" yaml:"pass_threshold"`
	PreviewRows   int     `mapstructure:"preview_rows" yaml:"preview_rows"`
	MaxRows       int     `mapstructure:"max_rows" yaml:"max_rows"`
	DefaultFormat string  `mapstructure:"default_format" yaml:"default_format"`

	// HTTP API
	ServerAddr     string   `mapstructure:"server_addr" yaml:"server_addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// Keys lists the settable configuration keys.
var Keys = []string{
	"history_path", "history_disabled", "pass_threshold", "preview_rows",
	"max_rows", "default_format", "server_addr", "allowed_origins",
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.resultscope/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := utils.AppDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from .env, env, file, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
// A .env file in the working directory seeds the environment without
// overriding variables that are already set.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("RESULTSCOPE")
	v.AutomaticEnv()

	v.SetDefault("history_path", "")
	v.SetDefault("history_disabled", false)
	v.SetDefault("pass_threshold", 33.0)
	v.SetDefault("preview_rows", 50)
	v.SetDefault("max_rows", 0)
	v.SetDefault("default_format", "markdown")
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("allowed_origins", []string{"*"})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := utils.AppDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.HistoryPath == "" {
		dir, err := utils.AppDir()
		if err != nil {
			return nil, err
		}
		c.HistoryPath = filepath.Join(dir, "history.db")
	} else {
		p, err := utils.ExpandHome(c.HistoryPath)
		if err != nil {
			return nil, err
		}
		c.HistoryPath = p
	}
	return &c, nil
}
