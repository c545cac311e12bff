package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSCommandRunner(t *testing.T) {
	runner := NewOSCommandRunner()

	t.Run("LookPath", func(t *testing.T) {
		path, err := runner.LookPath("echo")
		require.NoError(t, err)
		assert.NotEmpty(t, path)

		// second lookup is served from the cache
		cached, err := runner.LookPath("echo")
		require.NoError(t, err)
		assert.Equal(t, path, cached)

		_, err = runner.LookPath("nonexistentcommand123")
		assert.Error(t, err)
		assert.True(t, IsCommandNotFound(err))
	})

	t.Run("RunCommandWithOutput", func(t *testing.T) {
		ctx := context.Background()
		stdout, stderr, err := runner.RunCommandWithOutput(ctx, "echo", "hello")
		assert.NoError(t, err)
		assert.Contains(t, stdout, "hello")
		assert.Empty(t, stderr)
	})

	t.Run("RunCommandWithOutput keeps output on failure", func(t *testing.T) {
		ctx := context.Background()
		_, stderr, err := runner.RunCommandWithOutput(ctx, "sh", "-c", "echo broken >&2; exit 3")
		require.Error(t, err)
		assert.Contains(t, stderr, "broken")
		assert.Equal(t, 3, runner.GetExitCode(err))
		assert.False(t, IsCommandNotFound(err))
	})

	t.Run("RunCommandWithOutput missing binary", func(t *testing.T) {
		ctx := context.Background()
		_, _, err := runner.RunCommandWithOutput(ctx, "nonexistentcommand123")
		require.Error(t, err)
		assert.True(t, IsCommandNotFound(err))
		assert.Equal(t, -1, runner.GetExitCode(err))
	})

	t.Run("RunCommandWithOutput timeout exceeded", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, _, err := runner.RunCommandWithOutput(ctx, "sleep", "5")
		assert.Error(t, err)
	})

	t.Run("GetExitCode nil", func(t *testing.T) {
		assert.Equal(t, 0, runner.GetExitCode(nil))
	})
}

func TestCommandRunnerInterface(_ *testing.T) {
	var _ CommandRunner = &OSCommandRunner{}
	var _ CommandRunner = &MockCommandRunner{}
}
