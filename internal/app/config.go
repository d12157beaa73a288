package app

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultConfigPath = "config/config.yaml"
	DefaultStorageKey = "user-store"
)

type Config struct {
	// Режим разработки и явное включение моков, моки работают только если оба true
	Dev        bool `yaml:"dev"`
	EnableMock bool `yaml:"enable_mock"`

	API     ConfigAPI     `yaml:"api"`
	Storage ConfigStorage `yaml:"storage"`
	Mock    ConfigMock    `yaml:"mock"`
	Log     ConfigLog     `yaml:"log"`

	ServerPort string `yaml:"srv_port"`

	mockEnabled bool
}

type ConfigAPI struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"` // запросов в секунду, 0 - без ограничения
	Burst     int           `yaml:"burst"`
}

type ConfigStorage struct {
	Driver    string `yaml:"driver"` // memory, file, sqlite, postgres, redis
	Dir       string `yaml:"dir"`
	DSN       string `yaml:"dsn"`
	Key       string `yaml:"key"`
	RedisAddr string `yaml:"redis_addr"`
	RedisPass string `yaml:"redis_password"`
	RedisDB   int    `yaml:"redis_db"`
	Prefix    string `yaml:"prefix"`
}

type ConfigMock struct {
	DelayScale float64 `yaml:"delay_scale"`
	VerifyCode string  `yaml:"verify_code"`
	Secret     string  `yaml:"secret"`
	LedgerSize int     `yaml:"ledger_size"`
}

type ConfigLog struct {
	Level string `yaml:"level"`
}

func defaultConfig() Config {
	return Config{
		API: ConfigAPI{
			BaseURL: "http://localhost:8080",
			Burst:   1,
		},
		Storage: ConfigStorage{
			Driver: "file",
			Dir:    ".bounty",
			Key:    DefaultStorageKey,
			Prefix: "bounty:",
		},
		Mock: ConfigMock{
			DelayScale: 1,
			VerifyCode: "123456",
			Secret:     "bounty-mock-secret",
			LedgerSize: 60,
		},
		Log: ConfigLog{
			Level: "info",
		},
		ServerPort: ":8080",
	}
}

/*
Порядок сборки конфига:
  - значения по умолчанию
  - yaml файл (если его нет по дефолтному пути - не страшно)
  - .env файл
  - переменные окружения

Режим моков вычисляется один раз здесь и дальше не меняется.
*/
func NewConfig(configPath string) (*Config, error) {
	c := defaultConfig()

	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err = yaml.Unmarshal(cfg, &c); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist) && configPath == DefaultConfigPath:
		// работаем на дефолтах и env
	default:
		return nil, err
	}

	if err = godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	overrideWithEnv(&c)

	if c.Storage.Key == "" {
		c.Storage.Key = DefaultStorageKey
	}

	c.mockEnabled = c.Dev && c.EnableMock

	return &c, nil
}

// Включены ли моки, значение зафиксировано при загрузке конфига
func (c *Config) MockEnabled() bool {
	return c.mockEnabled
}
