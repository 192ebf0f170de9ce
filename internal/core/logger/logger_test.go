package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-gin-blog/internal/core/config"
)

func TestNew_JSONLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, done := New(Options{Level: "warn", JSON: true, Out: &buf})
	l.Info("dropped")
	l.Warn("kept", zap.String("rid", "r1"))
	done()

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "r1", line["rid"])
	assert.Contains(t, line, "ts")
}

func TestToWriter(t *testing.T) {
	var buf bytes.Buffer
	l, done := New(Options{Level: "debug", JSON: true, Out: &buf})
	n, err := ToWriter(l, zapcore.InfoLevel).Write([]byte("[GIN-debug] GET /api\n"))
	done()

	require.NoError(t, err)
	assert.Equal(t, 21, n)
	assert.Contains(t, buf.String(), `"msg":"[GIN-debug] GET /api"`)
}

func TestFromConfig_ProductionForcesJSON(t *testing.T) {
	c := &config.Config{App: config.App{Env: "production"}, Log: config.Log{Level: "info"}}
	o := FromConfig(c)
	assert.True(t, o.JSON)
	assert.False(t, o.Development)
}
