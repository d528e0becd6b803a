package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

// logger is a singleton, same lifecycle pattern as the Firestore client.
var (
	logger     *zap.SugaredLogger
	loggerOnce sync.Once
)

// L returns the process-wide sugared logger. Development encoding when
// APP_ENV=dev, JSON production encoding otherwise.
func L() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		var (
			zl  *zap.Logger
			err error
		)
		if os.Getenv("APP_ENV") == "dev" {
			zl, err = zap.NewDevelopment()
		} else {
			zl, err = zap.NewProduction()
		}
		if err != nil {
			zl = zap.NewNop()
		}
		logger = zl.Sugar()
	})
	return logger
}

// Sync flushes buffered entries. Called on shutdown.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
