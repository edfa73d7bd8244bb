// Package config loads settings from defaults, an optional .env file, an
// optional TOML file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Bot       BotConfig       `mapstructure:"bot"`
	Developer DeveloperConfig `mapstructure:"developer"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Shell     ShellConfig     `mapstructure:"shell"`
}

// BotConfig holds Telegram settings.
type BotConfig struct {
	Token       string        `mapstructure:"token"`
	PollTimeout time.Duration `mapstructure:"poll_timeout"`
}

// DeveloperConfig is what /developerinfo replies with.
type DeveloperConfig struct {
	Name    string `mapstructure:"name"`
	Contact string `mapstructure:"contact"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ShellConfig controls the interactive terminal.
type ShellConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Title   string `mapstructure:"title"`
}

// Options locate the configuration sources. Empty fields use defaults.
type Options struct {
	// ConfigFile is a TOML file. When empty, $CLARITY_CONFIG is used, then
	// ~/.config/claritybot/config.toml if it exists.
	ConfigFile string
	// EnvFile is a dotenv file, ".env" by default. A missing file is ignored.
	EnvFile string
}

// keys lists every setting; each maps to an environment variable named by
// upper-casing the key and replacing dots with underscores.
var keys = []string{
	"bot.token",
	"bot.poll_timeout",
	"developer.name",
	"developer.contact",
	"database.path",
	"log.level",
	"shell.enabled",
	"shell.title",
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.token", "")
	v.SetDefault("bot.poll_timeout", 10*time.Second)
	v.SetDefault("developer.name", "Tsubasa")
	v.SetDefault("developer.contact", "https://t.me/tsulinks")
	v.SetDefault("database.path", "./clarity.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("shell.enabled", true)
	v.SetDefault("shell.title", "Clarity Terminal")
}

// Load reads configuration.
func Load(opts Options) (Config, error) {
	v := viper.New()
	setDefaults(v)

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := loadDotEnv(v, envFile); err != nil {
		return Config{}, err
	}

	v.SetConfigType("toml")
	cfgPath := opts.ConfigFile
	if cfgPath == "" {
		cfgPath = os.Getenv("CLARITY_CONFIG")
	}
	explicit := cfgPath != ""
	if explicit {
		v.SetConfigFile(cfgPath)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "claritybot"))
		}
		v.SetConfigName("config")
	}

	// Explicit bindings: AutomaticEnv would let $SHELL shadow shell.*.
	for _, key := range keys {
		if err := v.BindEnv(key, EnvName(key)); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// loadDotEnv seeds v with the values of a dotenv file. They rank below the
// config file and the real environment.
func loadDotEnv(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	d := viper.New()
	d.SetConfigFile(path)
	d.SetConfigType("env")
	if err := d.ReadInConfig(); err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	for _, key := range keys {
		name := strings.ToLower(EnvName(key))
		if d.IsSet(name) {
			v.SetDefault(key, d.Get(name))
		}
	}
	return nil
}
