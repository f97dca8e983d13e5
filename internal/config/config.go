// Package config loads pantry-gui settings: browser defaults, remote catalog
// credentials, and the token file location.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	Browse BrowseConfig `mapstructure:"browse" yaml:"browse"`
	Remote RemoteConfig `mapstructure:"remote" yaml:"remote"`
	// TokenFile holds an optional API token for authenticated catalog hosts.
	TokenFile string `mapstructure:"token_file" yaml:"token_file"`
}

// BrowseConfig controls the local path browser.
type BrowseConfig struct {
	// StartDir is the initial directory; empty means the process working dir.
	StartDir string `mapstructure:"start_dir" yaml:"start_dir"`
	// Suffixes lists accepted catalog file suffixes.
	Suffixes []string `mapstructure:"suffixes" yaml:"suffixes"`
}

// RemoteConfig holds credentials for remote catalog locations.
type RemoteConfig struct {
	S3Region     string `mapstructure:"s3_region" yaml:"s3_region"`
	S3AccessKey  string `mapstructure:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey  string `mapstructure:"s3_secret_key" yaml:"s3_secret_key"`
	AzureAccount string `mapstructure:"azure_account" yaml:"azure_account"`
}

// DefaultSuffixes are the catalog file suffixes shown by default.
var DefaultSuffixes = []string{"yaml", "yml"}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Browse: BrowseConfig{
			Suffixes: append([]string(nil), DefaultSuffixes...),
		},
	}
}

// DefaultConfigPath returns ~/.config/pantry-gui/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "pantry-gui.yaml")
	}
	return filepath.Join(home, ".config", "pantry-gui", "config.yaml")
}

// DefaultTokenPath returns ~/.config/pantry-gui/token.
func DefaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "pantry-gui.token")
	}
	return filepath.Join(home, ".config", "pantry-gui", "token")
}

// Load reads configuration from path, falling back to DefaultConfigPath.
// A missing file is not an error: defaults plus PANTRY_* environment
// overrides apply.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PANTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("browse.start_dir", cfg.Browse.StartDir)
	v.SetDefault("browse.suffixes", cfg.Browse.Suffixes)
	v.SetDefault("remote.s3_region", cfg.Remote.S3Region)
	v.SetDefault("remote.s3_access_key", cfg.Remote.S3AccessKey)
	v.SetDefault("remote.s3_secret_key", cfg.Remote.S3SecretKey)
	v.SetDefault("remote.azure_account", cfg.Remote.AzureAccount)
	v.SetDefault("token_file", cfg.TokenFile)

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		// No config file: defaults and environment only.
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(cfg.Browse.Suffixes) == 0 {
		cfg.Browse.Suffixes = append([]string(nil), DefaultSuffixes...)
	}
	return cfg, nil
}

// ReadTokenFile reads a stored API token, trimming surrounding whitespace.
func ReadTokenFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteTokenFile stores an API token with owner-only permissions.
func WriteTokenFile(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0600)
}
