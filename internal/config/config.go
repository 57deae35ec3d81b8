package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Nomadcxx/bakus/internal/paths"
	"github.com/Nomadcxx/bakus/internal/rename"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server" toml:"server"`
	Rename   RenameConfig   `mapstructure:"rename" toml:"rename"`
	API      APIConfig      `mapstructure:"api" toml:"api"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging"`
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
}

// ServerConfig points at the Bakus download server
type ServerConfig struct {
	URL            string `mapstructure:"url" toml:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration
func (s ServerConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// RenameConfig holds defaults applied when a rename session starts
type RenameConfig struct {
	// DefaultLanguage is an ISO 639-1 code or language name.
	DefaultLanguage string `mapstructure:"default_language" toml:"default_language"`
	DeleteUntouched bool   `mapstructure:"delete_untouched" toml:"delete_untouched"`
}

// Language resolves DefaultLanguage, falling back to English
func (r RenameConfig) Language() rename.Language {
	if l, ok := rename.LookupLanguage(r.DefaultLanguage); ok {
		return l
	}
	return rename.English
}

// SessionOptions returns the rename options for a new session
func (r RenameConfig) SessionOptions() rename.Options {
	return rename.Options{
		DefaultLanguage: r.Language(),
		DeleteUntouched: r.DeleteUntouched,
	}
}

// APIConfig configures the local HTTP API served by `bakus serve`
type APIConfig struct {
	Addr           string   `mapstructure:"addr" toml:"addr"`
	Token          string   `mapstructure:"token" toml:"token"`
	AllowedOrigins []string `mapstructure:"allowed_origins" toml:"allowed_origins"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level" toml:"level"`
	File       string `mapstructure:"file" toml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
}

type DatabaseConfig struct {
	// Path of the SQLite database. Empty means ~/.config/bakus/bakus.db.
	Path string `mapstructure:"path" toml:"path"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:            "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Rename: RenameConfig{
			DefaultLanguage: "en",
			DeleteUntouched: false,
		},
		API: APIConfig{
			Addr:           "127.0.0.1:8686",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults. BAKUS_SERVER_URL and
// BAKUS_API_TOKEN override the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		p, err := paths.ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("unable to get config path: %w", err)
		}
		path = p
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetEnvPrefix("bakus")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{"server.url", "api.token"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("unable to bind env for %s: %w", key, err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.URL) == "" {
		return fmt.Errorf("invalid config: server.url is required")
	}
	if c.Rename.DefaultLanguage != "" {
		if _, ok := rename.LookupLanguage(c.Rename.DefaultLanguage); !ok {
			return fmt.Errorf("invalid config: unknown rename.default_language %q", c.Rename.DefaultLanguage)
		}
	}
	return nil
}

// DatabasePath returns the configured database path or the default one
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return paths.ExpandHome(c.Database.Path)
	}
	return paths.DatabasePath()
}

// Save writes the configuration to path, or the default location when
// path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}

	content, err := c.ToTOML()
	if err != nil {
		return err
	}
	// The API token lives in this file.
	return os.WriteFile(path, []byte(content), 0600)
}

func ConfigPath() (string, error) {
	return paths.ConfigPath()
}

func ConfigExists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

const configHeader = `# Bakus Configuration
# Generated by: bakus config init
#
# [server]    Bakus download server and request timeout
# [rename]    defaults for new rename sessions
# [api]       local API served by "bakus serve"
# [logging]   level is one of debug, info, warn, error
# [database]  empty path means ~/.config/bakus/bakus.db

`

// ToTOML renders the configuration as a commented TOML document
func (c *Config) ToTOML() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("unable to encode config: %w", err)
	}
	return configHeader + string(data), nil
}
