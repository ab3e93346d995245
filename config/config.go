// Package config loads server configuration from environment variables and
// an optional YAML file. Precedence: flags > env (PDFSCHOLAR_*) > config
// file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Transport names accepted in Config.Transport.
const (
	TransportSSE   = "sse"
	TransportStdio = "stdio"
)

// Config holds all server settings.
type Config struct {
	Transport    string `mapstructure:"transport" yaml:"transport"`
	ListenAddr   string `mapstructure:"listen_addr" yaml:"listen_addr"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	LogFile      string `mapstructure:"log_file" yaml:"log_file"`
	DefaultDPI   int    `mapstructure:"default_dpi" yaml:"default_dpi"`
	ChunkSize    int    `mapstructure:"chunk_size" yaml:"chunk_size"`
	PreviewBytes int    `mapstructure:"preview_bytes" yaml:"preview_bytes"`
}

// Load loads configuration from file, env, and defaults. An empty cfgFile
// falls back to ~/.pdfscholar/config.yaml; a missing file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PDFSCHOLAR")
	v.AutomaticEnv()

	v.SetDefault("transport", TransportSSE)
	v.SetDefault("listen_addr", ":8000")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("default_dpi", 150)
	v.SetDefault("chunk_size", 1000)
	v.SetDefault("preview_bytes", 200)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".pdfscholar"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Transport != TransportSSE && c.Transport != TransportStdio {
		return nil, fmt.Errorf("config: unknown transport %q", c.Transport)
	}
	return &c, nil
}

// Save writes the configuration to cfgFile. If cfgFile is empty it writes
// to ~/.pdfscholar/config.yaml, creating the directory if necessary.
func Save(c *Config, cfgFile string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".pdfscholar")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
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
