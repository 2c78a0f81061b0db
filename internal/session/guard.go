package session

import "time"

// Decision is the outcome of a guard check on page entry.
type Decision int

const (
	// Allow lets the navigation proceed.
	Allow Decision = iota
	// RedirectToLogin means there is no usable session and the user must
	// authenticate.
	RedirectToLogin
	// RedirectToDashboard means an authenticated user tried to open the
	// login page.
	RedirectToDashboard
)

// LoginPage is the page name the guard treats as the login surface.
const LoginPage = "login"

// Guard decides on every navigation whether a plausibly-valid session
// exists. An expired record is treated exactly like a missing one and is
// cleared on detection.
type Guard struct {
	store Store
	now   func() time.Time
}

// NewGuard creates a guard over the given store.
func NewGuard(store Store) *Guard {
	return &Guard{store: store, now: time.Now}
}

// Decide runs the guard state machine for entry to the named page.
func (g *Guard) Decide(page string) Decision {
	s, ok := g.store.Get()
	if ok && s.Expired(g.now()) {
		// Local expiry detection; server-confirmed invalidation comes
		// through the 401 path independently.
		_ = g.store.Clear()
		ok = false
	}

	if !ok {
		if page == LoginPage {
			return Allow
		}
		return RedirectToLogin
	}

	if page == LoginPage {
		return RedirectToDashboard
	}
	return Allow
}

// Invalidate clears the session record. Called by the API client before
// it surfaces an authentication error, so callers never observe a 401
// with a session still in place.
func (g *Guard) Invalidate() {
	_ = g.store.Clear()
}
