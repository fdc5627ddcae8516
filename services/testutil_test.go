package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"healthtrack/config"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, config.Migrate(db))
	return db
}

type fakeGenerator struct {
	mu        sync.Mutex
	reply     string
	err       error
	panicWith string
	delay     time.Duration

	calls      int
	lastPrompt string
	lastTokens int
	lastTemp   float32
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	f.mu.Lock()
	f.calls++
	f.lastPrompt = prompt
	f.lastTokens = maxTokens
	f.lastTemp = temperature
	f.mu.Unlock()

	if f.panicWith != "" {
		panic(f.panicWith)
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}
