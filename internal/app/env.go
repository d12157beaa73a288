package app

import (
	"os"
	"strconv"
	"time"
)

// Переменные окружения
const (
	EnvDev        = "BOUNTY_DEV"
	EnvEnableMock = "BOUNTY_ENABLE_MOCK"

	EnvAPIBaseURL = "BOUNTY_API_BASE_URL"
	EnvAPITimeout = "BOUNTY_API_TIMEOUT"

	EnvStorageDriver = "BOUNTY_STORAGE_DRIVER"
	EnvStorageDir    = "BOUNTY_STORAGE_DIR"
	EnvStorageDSN    = "BOUNTY_STORAGE_DSN"
	EnvRedisAddr     = "BOUNTY_REDIS_ADDR"
	EnvRedisPassword = "BOUNTY_REDIS_PASSWORD"

	EnvMockDelayScale = "BOUNTY_MOCK_DELAY_SCALE"
	EnvLogLevel       = "BOUNTY_LOG_LEVEL"
	EnvServerPort     = "BOUNTY_SRV_PORT"
)

func overrideWithEnv(c *Config) {
	if v, ok := envBool(EnvDev); ok {
		c.Dev = v
	}
	if v, ok := envBool(EnvEnableMock); ok {
		c.EnableMock = v
	}

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvAPITimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.Timeout = d
		}
	}

	if v := os.Getenv(EnvStorageDriver); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv(EnvStorageDir); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv(EnvStorageDSN); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Storage.RedisAddr = v
	}
	if v := os.Getenv(EnvRedisPassword); v != "" {
		c.Storage.RedisPass = v
	}

	if v := os.Getenv(EnvMockDelayScale); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.Mock.DelayScale = f
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		c.ServerPort = v
	}
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
