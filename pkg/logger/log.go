package logger

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger создает логгер, который пишет одновременно в stdout и в файл.
// Уровень логирования можно переопределить через переменную окружения LOG_LEVEL.
func NewLogger() *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.DebugLevel)
	if lvlStr := os.Getenv("LOG_LEVEL"); lvlStr != "" {
		if parsed, err := zap.ParseAtomicLevel(lvlStr); err == nil {
			level = parsed
		}
	}

	dualConfig := zap.Config{
		Encoding:         "console",
		Level:            level,
		OutputPaths:      []string{"stdout", "./logs/app.log"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	dualLogger, err := dualConfig.Build()
	if err != nil {
		panic(err)
	}

	return dualLogger
}

// NewTestLogger — упрощенный логгер для тестов, пишет только в stdout.
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}
