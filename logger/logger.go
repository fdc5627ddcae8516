package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// New builds a production logger when env is "production", otherwise a
// development logger, and installs it as the process logger.
func New(env string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	mu.Lock()
	global = l
	mu.Unlock()
	return l, nil
}

// L returns the process logger. It is a no-op logger until New is called.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Sync flushes buffered entries; call it before exit.
func Sync() {
	_ = L().Sync()
}
