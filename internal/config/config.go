package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultEnv                = "development"
	defaultLogLevel           = "info"
	defaultHTTPHost           = "0.0.0.0"
	defaultHTTPPort           = 8080
	defaultScannerURL         = "https://scanner.tradingview.com/options/scan2"
	defaultScannerExchange    = "NSE"
	defaultScannerTimeout     = 15
	defaultRedisDB            = 0
	defaultCacheTTLSeconds    = 30
	defaultSummariesExchange  = "options.summaries"
	defaultPrefetch           = 50
	defaultBatchSize          = 100
	defaultBatchTimeoutMS     = 2000
	defaultRefreshCron        = "0 */5 * * * *"
	defaultRefreshConcurrency = 4
	defaultRefreshTimeout     = 20
)

// CronParser accepts six-field (with seconds) expressions and descriptors such as @every 1m.
var CronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Config keeps the runtime configuration for the service.
type Config struct {
	Env      string         `yaml:"env"`
	LogLevel string         `yaml:"log_level"`
	HTTP     HTTPConfig     `yaml:"http"`
	Scanner  ScannerConfig  `yaml:"scanner"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Cache    CacheConfig    `yaml:"cache"`
	History  HistoryConfig  `yaml:"history"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Refresh  RefreshConfig  `yaml:"refresh"`
}

// HTTPConfig holds HTTP server related settings.
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr renders the listen address in host:port form.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// ScannerConfig points at the upstream options scanner.
type ScannerConfig struct {
	BaseURL        string `yaml:"base_url"`
	Exchange       string `yaml:"exchange"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (s ScannerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// PostgresConfig stores the underlyings registry connection. Empty DSN disables it.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// RedisConfig stores Redis connection parameters. Empty Addr disables caching.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CacheConfig stores cache behavior.
type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// HistoryConfig selects the summary history backend. DSN wins over SQLitePath.
type HistoryConfig struct {
	DSN        string `yaml:"dsn"`
	SQLitePath string `yaml:"sqlite_path"`
}

func (h HistoryConfig) Enabled() bool {
	return h.DSN != "" || h.SQLitePath != ""
}

// RabbitMQConfig stores broker settings. Empty URL disables publishing and consuming.
type RabbitMQConfig struct {
	URL               string `yaml:"url"`
	SummariesExchange string `yaml:"summaries_exchange"`
	Prefetch          int    `yaml:"prefetch"`
	BatchSize         int    `yaml:"batch_size"`
	BatchTimeoutMS    int    `yaml:"batch_timeout_ms"`
}

func (r RabbitMQConfig) BatchTimeout() time.Duration {
	return time.Duration(r.BatchTimeoutMS) * time.Millisecond
}

// RefreshConfig drives the scheduled refresher.
type RefreshConfig struct {
	Cron           string   `yaml:"cron"`
	Symbols        []string `yaml:"symbols"`
	Concurrency    int      `yaml:"concurrency"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

func (r RefreshConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

func defaults() *Config {
	return &Config{
		Env:      defaultEnv,
		LogLevel: defaultLogLevel,
		HTTP:     HTTPConfig{Host: defaultHTTPHost, Port: defaultHTTPPort},
		Scanner: ScannerConfig{
			BaseURL:        defaultScannerURL,
			Exchange:       defaultScannerExchange,
			TimeoutSeconds: defaultScannerTimeout,
		},
		Redis: RedisConfig{DB: defaultRedisDB},
		Cache: CacheConfig{TTLSeconds: defaultCacheTTLSeconds},
		RabbitMQ: RabbitMQConfig{
			SummariesExchange: defaultSummariesExchange,
			Prefetch:          defaultPrefetch,
			BatchSize:         defaultBatchSize,
			BatchTimeoutMS:    defaultBatchTimeoutMS,
		},
		Refresh: RefreshConfig{
			Cron:           defaultRefreshCron,
			Concurrency:    defaultRefreshConcurrency,
			TimeoutSeconds: defaultRefreshTimeout,
		},
	}
}

// Load builds Config from, in increasing precedence: defaults, the YAML file
// named by CONFIG_PATH, a .env file (ENV_FILE, default ".env") and the process
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(getString("ENV_FILE", ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := defaults()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var err error
	cfg.Env = getString("APP_ENV", cfg.Env)
	cfg.LogLevel = getString("LOG_LEVEL", cfg.LogLevel)

	cfg.HTTP.Host = getString("HTTP_HOST", cfg.HTTP.Host)
	if cfg.HTTP.Port, err = getInt("HTTP_PORT", cfg.HTTP.Port); err != nil {
		return err
	}

	cfg.Scanner.BaseURL = getString("SCANNER_BASE_URL", cfg.Scanner.BaseURL)
	cfg.Scanner.Exchange = strings.ToUpper(getString("SCANNER_EXCHANGE", cfg.Scanner.Exchange))
	if cfg.Scanner.TimeoutSeconds, err = getInt("SCANNER_TIMEOUT_SECONDS", cfg.Scanner.TimeoutSeconds); err != nil {
		return err
	}

	cfg.Postgres.DSN = getString("DATABASE_DSN", cfg.Postgres.DSN)

	cfg.Redis.Addr = getString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getString("REDIS_PASSWORD", cfg.Redis.Password)
	if cfg.Redis.DB, err = getInt("REDIS_DB", cfg.Redis.DB); err != nil {
		return err
	}
	if cfg.Cache.TTLSeconds, err = getInt("CACHE_TTL_SECONDS", cfg.Cache.TTLSeconds); err != nil {
		return err
	}

	cfg.History.DSN = getString("HISTORY_DSN", cfg.History.DSN)
	cfg.History.SQLitePath = getString("HISTORY_SQLITE_PATH", cfg.History.SQLitePath)

	cfg.RabbitMQ.URL = getString("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.SummariesExchange = getString("RABBITMQ_SUMMARIES_EXCHANGE", cfg.RabbitMQ.SummariesExchange)
	if cfg.RabbitMQ.Prefetch, err = getInt("RABBITMQ_PREFETCH", cfg.RabbitMQ.Prefetch); err != nil {
		return err
	}
	if cfg.RabbitMQ.BatchSize, err = getInt("BATCH_SIZE", cfg.RabbitMQ.BatchSize); err != nil {
		return err
	}
	if cfg.RabbitMQ.BatchTimeoutMS, err = getInt("BATCH_TIMEOUT_MS", cfg.RabbitMQ.BatchTimeoutMS); err != nil {
		return err
	}

	cfg.Refresh.Cron = getString("REFRESH_CRON", cfg.Refresh.Cron)
	cfg.Refresh.Symbols = getList("REFRESH_SYMBOLS", cfg.Refresh.Symbols)
	if cfg.Refresh.Concurrency, err = getInt("REFRESH_CONCURRENCY", cfg.Refresh.Concurrency); err != nil {
		return err
	}
	if cfg.Refresh.TimeoutSeconds, err = getInt("REFRESH_TIMEOUT_SECONDS", cfg.Refresh.TimeoutSeconds); err != nil {
		return err
	}
	return nil
}

// Validate checks value ranges after all sources are applied.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT out of range: %d", c.HTTP.Port))
	}
	if c.Scanner.BaseURL == "" {
		errs = append(errs, errors.New("SCANNER_BASE_URL is required"))
	}
	if c.Scanner.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SCANNER_TIMEOUT_SECONDS must be positive"))
	}
	if c.Cache.TTLSeconds < 0 {
		errs = append(errs, errors.New("CACHE_TTL_SECONDS must not be negative"))
	}
	if c.RabbitMQ.BatchSize <= 0 {
		errs = append(errs, errors.New("BATCH_SIZE must be positive"))
	}
	if c.RabbitMQ.BatchTimeoutMS < 0 {
		errs = append(errs, errors.New("BATCH_TIMEOUT_MS must not be negative"))
	}
	if c.Refresh.Concurrency <= 0 {
		errs = append(errs, errors.New("REFRESH_CONCURRENCY must be positive"))
	}
	if c.Refresh.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("REFRESH_TIMEOUT_SECONDS must be positive"))
	}
	if _, err := CronParser.Parse(c.Refresh.Cron); err != nil {
		errs = append(errs, fmt.Errorf("REFRESH_CRON: %w", err))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	return errors.Join(errs...)
}

// NewLogger returns a JSON logrus logger at the configured level.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

func getString(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to int: %w", key, value, err)
	}
	return parsed, nil
}

func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.ToUpper(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}
