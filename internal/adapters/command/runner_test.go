package command_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThiagoSantosOFC/starship/internal/adapters/command"
)

func TestRealRunner_CapturesStdout(t *testing.T) {
	t.Parallel()

	runner := command.NewRealRunner()
	result, err := runner.Run(context.Background(), "sh", "-c", "echo hello")

	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "hello\n", result.Stdout)
}

func TestRealRunner_NonZeroExitIsNotAnError(t *testing.T) {
	t.Parallel()

	runner := command.NewRealRunner()
	result, err := runner.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")

	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "oops\n", result.Stderr)
}

func TestRealRunner_MissingBinaryIsAnError(t *testing.T) {
	t.Parallel()

	runner := command.NewRealRunner()
	_, err := runner.Run(context.Background(), "definitely-not-a-binary-7f3a")
	assert.Error(t, err)
}

func TestRealRunner_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	runner := command.NewRealRunner()
	start := time.Now()
	_, err := runner.Run(ctx, "sleep", "10")

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRealRunner_LookPath(t *testing.T) {
	t.Parallel()

	runner := command.NewRealRunner()
	assert.True(t, runner.LookPath("sh"))
	assert.False(t, runner.LookPath("definitely-not-a-binary-7f3a"))
}
