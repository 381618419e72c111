package cli

import (
	"context"
	"testing"
	"time"

	"metronome/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndCommand_ByName(t *testing.T) {
	app := setupTestAppWithMockBusinessAPI(t)
	older := app.mock.addTask("Review", "Work", 3*time.Hour, 0)
	newer := app.mock.addTask("Review", "Work", time.Hour+2*time.Minute+3*time.Second, 0)

	err := NewEndCommand(app.App).Execute(context.Background(), []string{"Review"}, EndOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Task \"Review\" ended after 1h 2m 3s\n", app.out.String())
	assert.True(t, newer.IsComplete())
	assert.True(t, older.IsActive())
}

func TestEndCommand_Last(t *testing.T) {
	app := setupTestAppWithMockBusinessAPI(t)
	app.mock.addTask("First", "Misc", 2*time.Hour, 0)
	app.mock.addTask("Second", "Misc", 30*time.Minute, 0)

	err := NewEndCommand(app.App).Execute(context.Background(), nil, EndOptions{Last: true})
	require.NoError(t, err)
	assert.Equal(t, "Task \"Second\" ended after 0h 30m 0s\n", app.out.String())
}

func TestEndCommand_All(t *testing.T) {
	app := setupTestAppWithMockBusinessAPI(t)
	app.mock.addTask("One", "Misc", 2*time.Hour, 0)
	app.mock.addTask("Two", "Misc", time.Hour, 0)
	app.mock.addTask("Done", "Misc", 3*time.Hour, time.Hour)

	err := NewEndCommand(app.App).Execute(context.Background(), nil, EndOptions{All: true})
	require.NoError(t, err)
	assert.Equal(t, "Ended 2 active tasks at 2024-03-01 09:00:00.\n", app.out.String())

	for _, task := range app.mock.tasks {
		assert.True(t, task.IsComplete(), task.Name)
	}
}

func TestEndCommand_ClampedWarning(t *testing.T) {
	app := setupTestAppWithMockBusinessAPI(t)
	app.mock.addTask("Future", "Misc", -time.Minute, 0)

	err := NewEndCommand(app.App).Execute(context.Background(), []string{"Future"}, EndOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Task \"Future\" ended after 0h 0m 0s\n", app.out.String())
	assert.Contains(t, app.errOut.String(), "ended before it started")
}

func TestEndCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		opts     EndOptions
		contains string
		exitCode int
	}{
		{
			name:     "nothing to end",
			contains: "usage: metronome end",
			exitCode: errors.ExitInvalidInput,
		},
		{
			name:     "last and all",
			opts:     EndOptions{Last: true, All: true},
			contains: "--last and --all cannot be combined",
			exitCode: errors.ExitInvalidInput,
		},
		{
			name:     "name with last",
			args:     []string{"Task"},
			opts:     EndOptions{Last: true},
			contains: "cannot be combined with --last or --all",
			exitCode: errors.ExitInvalidInput,
		},
		{
			name:     "unknown name",
			args:     []string{"Ghost"},
			contains: "failed to end task: task not found: Ghost",
			exitCode: errors.ExitNotFound,
		},
		{
			name:     "no active task for last",
			opts:     EndOptions{Last: true},
			contains: "failed to end last task: no active tasks to end",
			exitCode: errors.ExitNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestAppWithMockBusinessAPI(t)

			err := NewEndCommand(app.App).Execute(context.Background(), tt.args, tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Equal(t, tt.exitCode, NewErrorHandler().ExitCode(err))
			assert.Empty(t, app.out.String())
		})
	}
}
