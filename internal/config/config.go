package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, with "." in keys mapped to
// "_": SPORTSBOT_CACHE_BACKEND overrides cache.backend.
const EnvPrefix = "SPORTSBOT"

// Cache backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendDynamoDB = "dynamodb"
)

// Config is the resolved bot configuration.
type Config struct {
	BaseURL  string         `mapstructure:"base_url"`
	DataDir  string         `mapstructure:"data_dir"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
	Discord  DiscordConfig  `mapstructure:"discord"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Twitter  TwitterConfig  `mapstructure:"twitter"`

	// Empty means the public endpoints.
	WeatherURL    string `mapstructure:"weather_url"`
	ConditionsURL string `mapstructure:"conditions_url"`
}

type CacheConfig struct {
	Backend       string `mapstructure:"backend"`
	RedisURL      string `mapstructure:"redis_url"`
	DynamoDBTable string `mapstructure:"dynamodb_table"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type DiscordConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
	Username   string `mapstructure:"username"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

type TwitterConfig struct {
	APIKey       string `mapstructure:"api_key"`
	APISecret    string `mapstructure:"api_secret"`
	AccessToken  string `mapstructure:"access_token"`
	AccessSecret string `mapstructure:"access_secret"`
}

var defaults = map[string]interface{}{
	"base_url":              "https://plaintextsports.com",
	"data_dir":              "~/.sportsbot",
	"cache.backend":         BackendFile,
	"cache.redis_url":       "",
	"cache.dynamodb_table":  "",
	"log.level":             "info",
	"log.file":              "",
	"discord.webhook_url":   "",
	"discord.username":      "PlainTextSports",
	"telegram.bot_token":    "",
	"telegram.chat_id":      "",
	"twitter.api_key":       "",
	"twitter.api_secret":    "",
	"twitter.access_token":  "",
	"twitter.access_secret": "",
	"weather_url":           "",
	"conditions_url":        "",
}

// DefaultDir returns ~/.config/sportsbot.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "sportsbot"), nil
}

// Load reads configuration from path, or from config.yaml in DefaultDir when
// path is empty. A missing default file is not an error; a missing explicit
// file is. Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else if dir, err := DefaultDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the selected backends have what they need.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New("cache.redis_url is required for the redis backend")
		}
	case BackendDynamoDB:
		if c.Cache.DynamoDBTable == "" {
			return errors.New("cache.dynamodb_table is required for the dynamodb backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q (want file, memory, redis, or dynamodb)", c.Cache.Backend)
	}
	if c.BaseURL == "" {
		return errors.New("base_url must not be empty")
	}
	return nil
}
