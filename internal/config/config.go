// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Драйверы хранилища.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string        `yaml:"env" env:"ENV" env-default:"local"`
	CacheTTL        time.Duration `yaml:"cache_ttl" env-default:"10m"`
	Storage         `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	RabbitMQ        `yaml:"rabbitmq"`
	SMTP            `yaml:"smtp"`
	Scheduler       `yaml:"scheduler"`
}

// Storage настройки хранилища счетов
type Storage struct {
	Driver                  string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	StorageConnectionString string `yaml:"connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP        string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP        time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout        time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RateLimitRPS       float64       `yaml:"rate_limit_rps" env-default:"50"`
	RateLimitBurst     int           `yaml:"rate_limit_burst" env-default:"100"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеш.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// RabbitMQ настройки подключения к брокеру
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// SMTP настройки почтового сервера
type SMTP struct {
	SMTPHost string `yaml:"host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `yaml:"user" env:"SMTP_USER"`
	SMTPPass string `yaml:"pass" env:"SMTP_PASS"`
}

// Scheduler настройки планировщика поздравлений
type Scheduler struct {
	Interval time.Duration `yaml:"interval" env-default:"1h"`
	Timezone string        `yaml:"timezone" env-default:"UTC"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH, и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Load читает конфиг по пути и проверяет согласованность настроек.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read config: %w", op, err)
	}

	switch cfg.Driver {
	case DriverMemory:
	case DriverPostgres:
		if cfg.StorageConnectionString == "" {
			return nil, fmt.Errorf("%s: storage connection string is required for driver %s", op, cfg.Driver)
		}
	default:
		return nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Driver)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("%s: invalid scheduler timezone: %w", op, err)
	}

	return &cfg, nil
}

// Location возвращает часовой пояс планировщика. Load уже проверил его корректность.
func (s Scheduler) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"CacheTTL: %s\n"+
			"Scheduler:\n"+
			"  Interval: %s\n"+
			"  Timezone: %s\n",
		c.Env,
		c.Driver,
		c.MigrationsPath,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.CacheTTL,
		c.Interval,
		c.Timezone,
	)
}
