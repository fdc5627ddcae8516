package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_TIMEOUT", "")
	t.Setenv("DB_DRIVER", "")

	cfg := Load()
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.False(t, cfg.AWSEnabled())
	assert.EqualValues(t, 19, cfg.Scheduler.DigestHour)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("S3_REGION", "")
	t.Setenv("LLM_PROVIDER", "HuggingFace")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("DIGEST_HOUR", "not-a-number")

	cfg := Load()
	assert.True(t, cfg.AWSEnabled())
	assert.Equal(t, "eu-west-1", cfg.AWS.S3Region)
	assert.Equal(t, "huggingface", cfg.LLM.Provider)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.EqualValues(t, 19, cfg.Scheduler.DigestHour)
}
