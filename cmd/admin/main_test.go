package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-gin-blog/internal/core/config"
)

func testConfig() *config.Config {
	return &config.Config{
		DB: config.DB{
			Driver:       "sqlite",
			DSN:          fmt.Sprintf("file:admin_%d?mode=memory&cache=shared", time.Now().UnixNano()),
			MaxOpenConns: 1,
			LogLevel:     "silent",
		},
		Seed: config.Seed{
			AdminName:     "Admin User",
			AdminEmail:    "admin@example.com",
			AdminPassword: "admin123",
			SamplePosts:   true,
		},
	}
}

func TestRun_SeedLogsSummaryOnce(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	require.NoError(t, run(context.Background(), "seed", testConfig(), zap.New(core)))

	assert.Equal(t, 1, logs.FilterMessage("migrate done").Len())
	assert.Equal(t, 1, logs.FilterMessage("seed done").Len())
}

func TestRun_MigrateDoesNotSeed(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	require.NoError(t, run(context.Background(), "migrate", testConfig(), zap.New(core)))

	assert.Equal(t, 1, logs.FilterMessage("migrate done").Len())
	assert.Zero(t, logs.FilterMessage("seed done").Len())
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run(context.Background(), "drop", testConfig(), zap.NewNop())
	assert.EqualError(t, err, `unknown command "drop"`)
}
