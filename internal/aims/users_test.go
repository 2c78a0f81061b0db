package aims

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aims-ops/aims-console/internal/session"
)

const meBody = `{"uuid":"u-1","name":"Jamie","email":"jamie@example.com","admin":false,"teams":[{"uuid":"t-1","name":"Platform"}]}`

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func loginHandler(token string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		if token != "" {
			w.Header().Set("Authorization", "Bearer "+token)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, meBody)
	})
	return mux
}

func TestLoginStoresSessionWithTokenExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"sub": "u-1", "exp": exp.Unix()})

	client, store, _ := newTestClient(t, loginHandler(token))

	user, err := client.Login(context.Background(), "jamie@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "Jamie", user.Name)

	s, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "jamie@example.com", s.User.Email)
	assert.Equal(t, exp.UnixMilli(), s.ExpiresAt)
}

func TestLoginFallsBackToDayExpiryWithoutExpClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "u-1"})

	client, store, _ := newTestClient(t, loginHandler(token))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return now }

	_, err := client.Login(context.Background(), "jamie@example.com", "hunter2")
	require.NoError(t, err)

	s, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, now.Add(24*time.Hour).UnixMilli(), s.ExpiresAt)
}

func TestLoginFailureLeavesNoSession(t *testing.T) {
	client, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid credentials"}`)
	}))

	_, err := client.Login(context.Background(), "jamie@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsAuth(err))

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestMeCachesProfileIntoExistingSession(t *testing.T) {
	client, store, _ := newTestClient(t, loginHandler(""))
	require.NoError(t, store.Set(session.Session{ExpiresAt: 1234567890}))

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jamie", user.Name)

	s, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "Jamie", s.User.Name)
	assert.Equal(t, int64(1234567890), s.ExpiresAt, "a cached profile must not move the expiry")
}

func TestMeCreatesSessionWhenNonePresent(t *testing.T) {
	client, store, _ := newTestClient(t, loginHandler(""))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return now }

	_, err := client.Me(context.Background())
	require.NoError(t, err)

	s, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, now.Add(24*time.Hour).UnixMilli(), s.ExpiresAt)
}

func TestLogoutClearsSession(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(session.Session{ExpiresAt: 1}))

	client := New("http://localhost", store)
	require.NoError(t, client.Logout())

	_, ok := store.Get()
	assert.False(t, ok)
}
