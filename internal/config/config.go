// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Окружения, влияющие на уровень логирования.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwt"`
	RedisConnection         `yaml:"redis"`
	RateLimit               `yaml:"rate_limit"`
	CORS                    `yaml:"cors"`
	RabbitMQ                `yaml:"rabbitmq"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":3001"`
	TimeoutHTTP time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает распределённый лимит на авторизацию.
type RedisConnection struct {
	AddressRedis string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB           int           `yaml:"db"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeout" env-default:"3s"`
}

// RateLimit лимиты запросов: общий token bucket на клиента и
// окно попыток авторизации.
type RateLimit struct {
	GeneralRPS   float64       `yaml:"general_rps" env-default:"10"`
	GeneralBurst int           `yaml:"general_burst" env-default:"100"`
	AuthRequests int           `yaml:"auth_requests" env-default:"5"`
	AuthWindow   time.Duration `yaml:"auth_window" env-default:"15m"`
}

// CORS список разрешённых источников фронтенда.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

// RabbitMQ настройки публикации доменных событий. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"store-rating.events"`
	MaxRetries int           `yaml:"max_retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Load читает конфиг из YAML-файла, переменные окружения имеют приоритет.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	if configPath == "" {
		return nil, fmt.Errorf("%s: CONFIG_PATH is not set", op)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH, завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"MigrationsPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWT:\n"+
			"  TokenTTL: %s\n"+
			"Redis:\n"+
			"  Address: %s\n"+
			"  DB: %d\n"+
			"RateLimit:\n"+
			"  General: %.1f rps, burst %d\n"+
			"  Auth: %d per %s\n"+
			"CORS: %v\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n",
		c.Env,
		c.MigrationsPath,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.TokenTTL,
		c.AddressRedis,
		c.DB,
		c.GeneralRPS,
		c.GeneralBurst,
		c.AuthRequests,
		c.AuthWindow,
		c.AllowedOrigins,
		c.RabbitMQ.URL != "",
		c.Exchange,
	)
}
