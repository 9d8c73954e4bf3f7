package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:3001"
	defaultEnv           = "local"
	defaultConfigDir     = ".mindful-steps"
	defaultSyncInterval  = 30
	defaultTimeout       = 30
	defaultRateLimit     = 4
	defaultRateBurst     = 8
)

type Config struct {
	Env            string `mapstructure:"app_env"`
	ServerAddress  string `mapstructure:"server_address"`
	EnableTLS      bool   `mapstructure:"enable_tls"`
	ConfigDir      string `mapstructure:"config_dir"`
	TokenPath      string `mapstructure:"token_path"`
	DeviceIDPath   string `mapstructure:"device_id_path"`
	DataPath       string `mapstructure:"data_path"`
	LogFile        string `mapstructure:"log_file"`
	SyncInterval   int    `mapstructure:"sync_interval_seconds"`
	RequestTimeout int    `mapstructure:"request_timeout_seconds"`
	// RateLimit запросов в секунду к API; 0 снимает ограничение
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// MustLoad загружает конфигурацию клиента
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает .env и переменные окружения, создает каталог данных
func Load() (*Config, error) {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("SYNC_INTERVAL_SECONDS", defaultSyncInterval)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", defaultTimeout)
	viper.SetDefault("ENABLE_TLS", false)
	viper.SetDefault("RATE_LIMIT", defaultRateLimit)
	viper.SetDefault("RATE_BURST", defaultRateBurst)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	cfg := &Config{
		Env:            viper.GetString("APP_ENV"),
		ServerAddress:  viper.GetString("SERVER_ADDRESS"),
		EnableTLS:      viper.GetBool("ENABLE_TLS"),
		LogFile:        viper.GetString("LOG_FILE"),
		SyncInterval:   viper.GetInt("SYNC_INTERVAL_SECONDS"),
		RequestTimeout: viper.GetInt("REQUEST_TIMEOUT_SECONDS"),
		RateLimit:      viper.GetFloat64("RATE_LIMIT"),
		RateBurst:      viper.GetInt("RATE_BURST"),
	}
	cfg.SetDir(configDir)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetDir переносит все файлы клиента в каталог dir
func (c *Config) SetDir(dir string) {
	c.ConfigDir = dir
	c.TokenPath = filepath.Join(dir, "token")
	c.DeviceIDPath = filepath.Join(dir, "device-id")
	c.DataPath = filepath.Join(dir, "data.db")
}

// EnsureDir создает каталог данных клиента
func (c *Config) EnsureDir() error {
	if err := os.MkdirAll(c.ConfigDir, 0700); err != nil {
		return fmt.Errorf("ошибка создания директории конфигурации: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.SyncInterval <= 0 {
		return fmt.Errorf("sync_interval_seconds должен быть положительным")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit не может быть отрицательным")
	}
	return nil
}

// BaseURL адрес сервера со схемой
func (c *Config) BaseURL() string {
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + c.ServerAddress
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.SyncInterval) * time.Second
}

func (c *Config) Timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return defaultTimeout * time.Second
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
