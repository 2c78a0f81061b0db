package aims

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aims-ops/aims-console/internal/models"
	"github.com/aims-ops/aims-console/internal/session"
	"github.com/aims-ops/aims-console/internal/validate"
)

// sessionTTL is the advisory session lifetime used when the backend's
// token does not carry a usable expiry.
const sessionTTL = 24 * time.Hour

// Me fetches the current user and caches the profile into the session
// record.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	user, err := getJSON[models.User](ctx, c, "/me", nil)
	if err != nil {
		return models.User{}, err
	}

	if s, ok := c.store.Get(); ok {
		s.User = user
		_ = c.store.Set(s)
	} else {
		_ = c.store.Set(session.Session{
			User:      user,
			ExpiresAt: c.now().Add(sessionTTL).UnixMilli(),
		})
	}
	return user, nil
}

// Login authenticates, then establishes the session via GET /me. The
// login itself returns 204; the credential arrives as a bearer token in
// the Authorization header (and as a cookie the jar keeps for us). The
// session expiry is taken from the token's exp claim when present, else
// login time + 24h. Either way it is advisory; the 401 path is the
// authoritative invalidation trigger.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	req := models.LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: strings.TrimSpace(password),
	}
	if err := validate.Struct(req); err != nil {
		return models.User{}, validationError(err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/users/login", nil, req, http.StatusNoContent)
	if err != nil {
		return models.User{}, err
	}
	token := bearerToken(resp.Header.Get("Authorization"))
	resp.Body.Close()

	user, err := getJSON[models.User](ctx, c, "/me", nil)
	if err != nil {
		return models.User{}, err
	}

	expires := c.now().Add(sessionTTL)
	if exp, ok := tokenExpiry(token); ok {
		expires = exp
	}
	if err := c.store.Set(session.Session{User: user, ExpiresAt: expires.UnixMilli()}); err != nil {
		return models.User{}, transportError(err)
	}
	return user, nil
}

// Logout discards the local session record. The backend keeps no session
// state of its own to tear down.
func (c *Client) Logout() error {
	return c.store.Clear()
}

func bearerToken(header string) string {
	return strings.TrimPrefix(header, "Bearer ")
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client has no signing key and only needs the timestamp as a hint.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
