package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultExchangeRatesURL = "https://api.coingecko.com/api/v3/exchange_rates"

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c HTTPClient) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ExchangeRateAPI struct {
	URL string `mapstructure:"url"`
}

type Scheduler struct {
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec"`
}

type Notifications struct {
	Limit       int `mapstructure:"limit"`
	AutoCloseMs int `mapstructure:"auto_close_ms"`
}

func (n Notifications) AutoClose() time.Duration {
	return time.Duration(n.AutoCloseMs) * time.Millisecond
}

type Table struct {
	DefaultPerPage int   `mapstructure:"default_per_page"`
	PerPageOptions []int `mapstructure:"per_page_options"`
}

type Cache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	ExchangeRateAPI ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	Scheduler       Scheduler       `mapstructure:"scheduler"`
	Notifications   Notifications   `mapstructure:"notifications"`
	Table           Table           `mapstructure:"table"`
	Cache           Cache           `mapstructure:"cache"`
	Logging         Logging         `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	return Load("config.yaml")
}

// Load reads configFile (optional) and overlays environment variables.
// A missing .env file is not an error.
func Load(configFile string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("exchange_rate_api.url", DefaultExchangeRatesURL)
	v.SetDefault("scheduler.refresh_interval_sec", 0)
	v.SetDefault("notifications.limit", 1)
	v.SetDefault("notifications.auto_close_ms", 5000)
	v.SetDefault("table.default_per_page", 10)
	v.SetDefault("table.per_page_options", []int{5, 10, 25, 50})
	v.SetDefault("cache.max_items", 256)
	v.SetDefault("logging.level", "info")

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// http env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")
	_ = v.BindEnv("exchange_rate_api.url", "EXCHANGE_RATE_API_URL")

	// scheduler / ui env vars
	_ = v.BindEnv("scheduler.refresh_interval_sec", "SCHEDULER_REFRESH_INTERVAL_SEC")
	_ = v.BindEnv("notifications.limit", "NOTIFICATIONS_LIMIT")
	_ = v.BindEnv("notifications.auto_close_ms", "NOTIFICATIONS_AUTO_CLOSE_MS")
	_ = v.BindEnv("table.default_per_page", "TABLE_DEFAULT_PER_PAGE")
	_ = v.BindEnv("cache.max_items", "CACHE_MAX_ITEMS")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	if c.ExchangeRateAPI.URL == "" {
		return errors.New("exchange rate api url is required")
	}
	if c.Notifications.Limit < 1 {
		return fmt.Errorf("notifications.limit must be positive, got %d", c.Notifications.Limit)
	}
	if c.Notifications.AutoCloseMs < 0 {
		return fmt.Errorf("notifications.auto_close_ms must not be negative, got %d", c.Notifications.AutoCloseMs)
	}
	if len(c.Table.PerPageOptions) == 0 {
		return errors.New("table.per_page_options must not be empty")
	}
	for _, opt := range c.Table.PerPageOptions {
		if opt <= 0 {
			return fmt.Errorf("table.per_page_options must be positive, got %d", opt)
		}
	}
	return nil
}
