package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThiagoSantosOFC/starship/internal/adapters/logging"
	"github.com/ThiagoSantosOFC/starship/internal/ports"
)

func newBufLogger(opts ...logging.Option) (*logging.ConsoleLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	opts = append([]logging.Option{
		logging.WithOutput(buf),
		logging.WithTimestamps(false),
	}, opts...)
	return logging.NewConsoleLogger(opts...), buf
}

func TestConsoleLogger_TextFormat(t *testing.T) {
	t.Parallel()

	logger, buf := newBufLogger()
	logger.Info(context.Background(), "host probed", ports.F("manager", "apt"))

	assert.Equal(t, "[info] host probed manager=apt\n", buf.String())
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	logger, buf := newBufLogger(logging.WithLevel(ports.LevelWarn))
	logger.Debug(context.Background(), "noise")
	logger.Info(context.Background(), "noise")
	logger.Warn(context.Background(), "degraded")
	logger.Error(context.Background(), "broken")

	out := buf.String()
	assert.NotContains(t, out, "noise")
	assert.Contains(t, out, "[warn] degraded")
	assert.Contains(t, out, "[error] broken")
}

func TestConsoleLogger_SetLevel(t *testing.T) {
	t.Parallel()

	logger, buf := newBufLogger()
	logger.Debug(context.Background(), "hidden")
	logger.SetLevel(ports.LevelDebug)
	logger.Debug(context.Background(), "visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestConsoleLogger_JSONFormat(t *testing.T) {
	t.Parallel()

	logger, buf := newBufLogger(logging.WithJSONFormat(true))
	logger.Info(context.Background(), "step finished", ports.F("step", "clone:dotfiles"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "step finished", entry["msg"])
	assert.Equal(t, "clone:dotfiles", entry["step"])
}

func TestConsoleLogger_WithCarriesBaseFields(t *testing.T) {
	t.Parallel()

	logger, buf := newBufLogger()
	child := logger.With(ports.F("run", "abc"))
	child.Info(context.Background(), "started", ports.F("steps", 3))

	assert.Contains(t, buf.String(), "run=abc")
	assert.Contains(t, buf.String(), "steps=3")
}

func TestNopLogger_DiscardsEverything(t *testing.T) {
	t.Parallel()

	logger := logging.NewNopLogger()
	logger.Info(context.Background(), "anything")
	logger.Error(context.Background(), "anything")
	assert.NotNil(t, logger.With(ports.F("k", "v")))
}
