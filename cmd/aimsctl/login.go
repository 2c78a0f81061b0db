package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aims-ops/aims-console/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the backend and store a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.guard.Decide(session.LoginPage) == session.RedirectToDashboard {
			fmt.Println("Already logged in. Run 'aimsctl logout' first to switch accounts.")
			return nil
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		reader := bufio.NewReader(os.Stdin)
		if email == "" {
			fmt.Print("Email: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			email = strings.TrimSpace(line)
		}
		if password == "" {
			fmt.Print("Password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			password = strings.TrimSpace(line)
		}

		user, err := app.client.Login(cmd.Context(), email, password)
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		app.notes.Success(fmt.Sprintf("Logged in as %s <%s>", user.Name, user.Email))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.client.Logout(); err != nil {
			return err
		}
		app.notes.Success("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		user, err := app.client.Me(cmd.Context())
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		if user.Admin {
			fmt.Println("Role: admin")
		}
		for _, team := range user.Teams {
			fmt.Printf("Team: %s\n", team.Name)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prompted when omitted)")
}
