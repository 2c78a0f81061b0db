// Package session holds the client-side session record and the guard that
// decides, on every page entry, whether the user may proceed.
package session

import (
	"time"

	"github.com/aims-ops/aims-console/internal/models"
)

// Session asserts that a user is authenticated until ExpiresAt. The expiry
// is client-computed and advisory only; a 401 from the backend is the
// authoritative invalidation signal.
type Session struct {
	User      models.User `json:"user"`
	ExpiresAt int64       `json:"expiresAt"` // epoch millis
}

// Expired reports whether the session expiry has passed at the given time.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt <= now.UnixMilli()
}

// Store is the single source of truth for the session record. Writes
// replace the whole record.
type Store interface {
	Get() (Session, bool)
	Set(s Session) error
	Clear() error
	IsValid(now time.Time) bool
}
