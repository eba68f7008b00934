package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Scraper   ScraperConfig
	Redis     RedisConfig
	Server    ServerConfig
	Data      DataConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

// DatabaseConfig holds corpus store configuration.
// Driver selects the backend: "sqlite" (embedded file) or "postgres"
// (networked store, connection parameters from the environment).
type DatabaseConfig struct {
	Driver   string
	Path     string // sqlite file path
	Host     string
	Name     string
	User     string
	Password string
}

// DSN builds the postgres connection string. Empty credentials are not
// validated eagerly; a misconfigured environment surfaces as a connection
// failure when the store is opened.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Name)
}

// ScraperConfig holds tweet scraper configuration
type ScraperConfig struct {
	BaseURL       string
	ListID        string
	RateLimitWait time.Duration
	PageSize      int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
	Host string
}

// DataConfig holds the paths of the snapshot documents exchanged with the
// surrounding scripts and the dashboard.
type DataConfig struct {
	MembersFile        string
	TopicsFile         string
	TranslationFile    string
	OffensiveFile      string
	OffensiveThreshold float64
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled           bool
	JaegerURL         string
	PrometheusEnabled bool
	PrometheusPort    int
	ServiceName       string
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix("BTW")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.bundestweets")
	viper.AddConfigPath("/etc/bundestweets")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; this is OK if we have env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Driver:   getString("db_driver", "sqlite"),
			Path:     getString("db_path", "data/tweets_data.db"),
			Host:     getString("db_host", "127.0.0.1"),
			Name:     getString("db_name", ""),
			User:     getString("db_user", ""),
			Password: getString("db_pass", ""),
		},
		Scraper: ScraperConfig{
			BaseURL:       getString("scraper_url", "https://api.twitter.com"),
			ListID:        getString("scraper_list_id", "912241909002833921"),
			RateLimitWait: time.Duration(getInt("rate_limit_wait_seconds", 300)) * time.Second,
			PageSize:      getInt("scraper_page_size", 200),
		},
		Redis: RedisConfig{
			URL:     getString("redis_url", ""),
			Enabled: getString("redis_url", "") != "",
		},
		Server: ServerConfig{
			Port: getInt("http_server_port", 8080),
			Host: getString("http_server_host", "0.0.0.0"),
		},
		Data: DataConfig{
			MembersFile:        getString("members_file", "data/twitter_members.json"),
			TopicsFile:         getString("topics_file", "data/nmf_topics.json"),
			TranslationFile:    getString("translation_file", "data/translation_set.json"),
			OffensiveFile:      getString("offensive_file", "data/offensive_proba.json"),
			OffensiveThreshold: getFloat("offensive_threshold", 0.8),
		},
		Logging: LoggingConfig{
			Level:  getString("log_level", "INFO"),
			Format: getString("log_format", "json"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           getBool("telemetry_enabled", false),
			JaegerURL:         getString("jaeger_url", ""),
			PrometheusEnabled: getBool("prometheus_enabled", false),
			PrometheusPort:    getInt("prometheus_port", 9090),
			ServiceName:       getString("service_name", "bundestweets"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("db_driver", "sqlite")
	viper.SetDefault("db_path", "data/tweets_data.db")
	viper.SetDefault("db_host", "127.0.0.1")
	viper.SetDefault("http_server_port", 8080)
	viper.SetDefault("http_server_host", "0.0.0.0")
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("log_format", "json")
	viper.SetDefault("rate_limit_wait_seconds", 300)
	viper.SetDefault("scraper_page_size", 200)
	viper.SetDefault("offensive_threshold", 0.8)
	viper.SetDefault("service_name", "bundestweets")
}

func getString(key, defaultValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	// Also check environment variable directly
	if val := os.Getenv("BTW_" + toEnvKey(key)); val != "" {
		return val
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if val := os.Getenv("BTW_" + toEnvKey(key)); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	if val := os.Getenv("BTW_" + toEnvKey(key)); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	if val := os.Getenv("BTW_" + toEnvKey(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

func toEnvKey(key string) string {
	// Convert snake_case to UPPER_SNAKE_CASE
	result := ""
	for i, r := range key {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result += "_"
		}
		if r == '-' || r == '_' {
			result += "_"
		} else {
			result += string(r)
		}
	}
	return result
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("db_driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		return fmt.Errorf("db_path is required for the sqlite backend")
	}
	if c.Scraper.RateLimitWait <= 0 {
		return fmt.Errorf("rate_limit_wait_seconds must be positive")
	}
	if c.Scraper.PageSize <= 0 || c.Scraper.PageSize > 1000 {
		return fmt.Errorf("scraper_page_size must be between 1 and 1000")
	}
	if c.Data.OffensiveThreshold < 0 || c.Data.OffensiveThreshold > 1 {
		return fmt.Errorf("offensive_threshold must be in [0,1]")
	}
	return nil
}

// GetDuration returns a duration from config key, with default
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return defaultValue
}
