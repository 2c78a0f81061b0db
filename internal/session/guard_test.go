package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aims-ops/aims-console/internal/session"
)

func validSession() session.Session {
	return session.Session{ExpiresAt: time.Now().Add(time.Hour).UnixMilli()}
}

func expiredSession() session.Session {
	return session.Session{ExpiresAt: time.Now().Add(-time.Minute).UnixMilli()}
}

func TestGuardDecide(t *testing.T) {
	tests := []struct {
		name    string
		session *session.Session
		page    string
		want    session.Decision
	}{
		{"no session, login page", nil, session.LoginPage, session.Allow},
		{"no session, other page", nil, "dashboard", session.RedirectToLogin},
		{"valid session, login page", ptr(validSession()), session.LoginPage, session.RedirectToDashboard},
		{"valid session, other page", ptr(validSession()), "hosts", session.Allow},
		{"expired session, login page", ptr(expiredSession()), session.LoginPage, session.Allow},
		{"expired session, other page", ptr(expiredSession()), "incidents", session.RedirectToLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewMemoryStore()
			if tt.session != nil {
				require.NoError(t, store.Set(*tt.session))
			}

			guard := session.NewGuard(store)
			assert.Equal(t, tt.want, guard.Decide(tt.page))
		})
	}
}

func TestGuardClearsExpiredSessionOnDetection(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(expiredSession()))

	guard := session.NewGuard(store)
	assert.Equal(t, session.RedirectToLogin, guard.Decide("dashboard"))

	_, ok := store.Get()
	assert.False(t, ok, "an expired record is cleared the moment it is seen")
}

func TestGuardInvalidate(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(validSession()))

	guard := session.NewGuard(store)
	guard.Invalidate()

	assert.Equal(t, session.RedirectToLogin, guard.Decide("dashboard"))
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := session.Session{ExpiresAt: now.Add(time.Second).UnixMilli()}
	assert.False(t, s.Expired(now))

	s.ExpiresAt = now.UnixMilli()
	assert.True(t, s.Expired(now), "a session expiring exactly now is expired")

	s.ExpiresAt = now.Add(-time.Second).UnixMilli()
	assert.True(t, s.Expired(now))
}

func TestMemoryStoreIsValid(t *testing.T) {
	store := session.NewMemoryStore()
	now := time.Now()

	assert.False(t, store.IsValid(now))
	require.NoError(t, store.Set(session.Session{ExpiresAt: now.Add(time.Hour).UnixMilli()}))
	assert.True(t, store.IsValid(now))
	require.NoError(t, store.Clear())
	assert.False(t, store.IsValid(now))
}

func ptr[T any](v T) *T { return &v }
