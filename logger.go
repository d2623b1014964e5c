package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logLevelNone = "none"

// getLogger returns a zap logger writing to stderr at the given level.
func getLogger(logLevel string) (*zap.Logger, error) {
	if logLevel == logLevelNone {
		return zap.NewNop(), nil
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, err
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	return zapConfig.Build()
}
