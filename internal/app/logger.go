package app

import (
	"go.uber.org/zap"
)

// NewLogger собирает zap логгер: в режиме разработки человекочитаемый вывод,
// иначе json как в проде.
func NewLogger(c *Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	// stdout оставляем под вывод команд
	zc.OutputPaths = []string{"stderr"}

	if c.Log.Level != "" {
		lvl, err := zap.ParseAtomicLevel(c.Log.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = lvl
	}

	return zc.Build()
}
