package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Init(env string) (*zap.Logger, error) {
	return build(env, zapcore.InvalidLevel)
}

// InitCLI builds a logger for one-shot commands: warnings and errors only, on stderr.
func InitCLI(env string) (*zap.Logger, error) {
	return build(env, zapcore.WarnLevel)
}

func build(env string, level zapcore.Level) (*zap.Logger, error) {
	var cfg zap.Config

	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if level != zapcore.InvalidLevel {
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.OutputPaths = []string{"stderr"}
	}

	return cfg.Build()
}
