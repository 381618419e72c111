package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentCommand_Execute(t *testing.T) {
	t.Run("no active tasks", func(t *testing.T) {
		app := setupTestAppWithMockBusinessAPI(t)
		app.mock.addTask("Done", "Misc", 2*time.Hour, time.Hour)

		err := NewCurrentCommand(app.App).Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "No active tasks\n", app.out.String())
	})

	t.Run("shows running time of each active task", func(t *testing.T) {
		app := setupTestAppWithMockBusinessAPI(t)
		app.mock.addTask("Deploy", "Ops", 2*time.Hour, 0)
		app.mock.addTask("Email", "Misc", 90*time.Second, 0)
		app.mock.addTask("Done", "Misc", 3*time.Hour, time.Hour)

		err := NewCurrentCommand(app.App).Execute(context.Background())
		require.NoError(t, err)

		assert.Equal(t,
			"Deploy [Ops] running for 2h 0m 0s (started 2 hours ago)\n"+
				"Email [Misc] running for 0h 1m 30s (started 1 minute ago)\n",
			app.out.String())
	})
}
