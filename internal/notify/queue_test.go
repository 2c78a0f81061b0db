package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aims-ops/aims-console/internal/notify"
)

func TestQueueKeepsNotificationsUntilTheyExpire(t *testing.T) {
	q := notify.NewQueue()
	q.Success("host created")
	q.Error("request failed")

	active := q.Active(time.Now())
	require.Len(t, active, 2)
	assert.Equal(t, notify.LevelSuccess, active[0].Level)
	assert.Equal(t, "host created", active[0].Message)
	assert.Equal(t, notify.LevelError, active[1].Level)

	// Both were pushed just now, so they are gone once the visible
	// duration has fully elapsed.
	assert.Empty(t, q.Active(time.Now().Add(notify.DefaultTTL+time.Second)))
	assert.Empty(t, q.Active(time.Now()), "expired notifications are dropped, not hidden")
}

func TestQueueDismiss(t *testing.T) {
	q := notify.NewQueue()
	first := q.Success("kept")
	second := q.Success("dismissed")

	q.Dismiss(second.ID)

	active := q.Active(time.Now())
	require.Len(t, active, 1)
	assert.Equal(t, first.ID, active[0].ID)

	q.Dismiss("no-such-id")
	assert.Len(t, q.Active(time.Now()), 1)
}

func TestQueueAssignsUniqueIDs(t *testing.T) {
	q := notify.NewQueue()
	a := q.Error("one")
	b := q.Error("two")
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}
