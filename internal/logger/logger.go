// Package logger holds the process-wide zap logger.
package logger

import "go.uber.org/zap"

var Log *zap.Logger

func Init() {
	Log = zap.Must(zap.NewProduction())
}

// InitDevelopment swaps in a human-readable logger, used by tests.
func InitDevelopment() {
	Log = zap.Must(zap.NewDevelopment())
}
