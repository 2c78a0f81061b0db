package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aims-ops/aims-console/internal/aims"
	"github.com/aims-ops/aims-console/internal/notify"
	"github.com/aims-ops/aims-console/internal/session"
)

// app bundles the pieces every command needs: the typed client, the
// session guard, and the notification queue that stands in for toasts.
type appState struct {
	client *aims.Client
	store  *session.FileStore
	guard  *session.Guard
	notes  *notify.Queue
}

var app appState

var rootCmd = &cobra.Command{
	Use:           "aimsctl",
	Short:         "Operator console for the A.I.M.S incident management system",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		flushNotifications()
		if app.store != nil {
			app.store.Close()
		}
	},
}

func setup() error {
	sessionPath := os.Getenv("AIMS_SESSION_PATH")
	if sessionPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		sessionPath = filepath.Join(home, ".aims", "session.db")
	}
	if err := os.MkdirAll(filepath.Dir(sessionPath), 0o700); err != nil {
		return err
	}

	store, err := session.NewFileStore(sessionPath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	baseURL := os.Getenv("AIMS_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000/api"
	}

	app = appState{
		store: store,
		guard: session.NewGuard(store),
		notes: notify.NewQueue(),
	}
	app.client = aims.New(baseURL, store, aims.WithInvalidateHook(func() {
		fmt.Fprintln(os.Stderr, "Session expired. Run 'aimsctl login' to sign in again.")
	}))
	return nil
}

// requireSession is the page-mount check: every protected command runs
// it before touching the network.
func requireSession() error {
	if app.guard.Decide("dashboard") == session.RedirectToLogin {
		return fmt.Errorf("no active session, run 'aimsctl login'")
	}
	return nil
}

// flushNotifications renders the queued toasts. In a terminal they are
// printed once instead of auto-dismissing.
func flushNotifications() {
	if app.notes == nil {
		return
	}
	for _, n := range app.notes.Active(time.Now()) {
		switch n.Level {
		case notify.LevelError:
			fmt.Fprintf(os.Stderr, "✗ %s\n", n.Message)
		default:
			fmt.Printf("✓ %s\n", n.Message)
		}
	}
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, dashboardCmd, hostsCmd, incidentsCmd, teamsCmd, providersCmd)
}
