// Package logging holds the process-wide zap logger. Call Init once in main;
// before that the package logs nowhere, which keeps tests quiet.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar = zap.NewNop().Sugar()

// Init builds the global logger. Production environments get JSON encoding;
// everything else gets a developer console encoder.
func Init(level, environment string) {
	logLevel := zap.NewAtomicLevel()
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel.SetLevel(zap.InfoLevel)
	}

	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = logLevel
	cfg.OutputPaths = []string{"stdout"}

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	sugar = logger.Sugar()
}

func Info(msg string) {
	sugar.Info(msg)
}

func Infof(template string, args ...any) {
	sugar.Infof(template, args...)
}

// Infow logs with key-value context; preferred for request-scoped detail.
func Infow(msg string, keysAndValues ...any) {
	sugar.Infow(msg, keysAndValues...)
}

func Warnf(template string, args ...any) {
	sugar.Warnf(template, args...)
}

func Errorw(msg string, keysAndValues ...any) {
	sugar.Errorw(msg, keysAndValues...)
}

func Errorf(template string, args ...any) {
	sugar.Errorf(template, args...)
}

func Fatalf(template string, args ...any) {
	sugar.Fatalf(template, args...)
}

// Sync flushes buffered entries; defer it in main.
func Sync() {
	_ = sugar.Sync()
}
