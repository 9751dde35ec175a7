package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mercadito/storefront/internal/app"
)

func newLoginCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Authenticate and persist the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.API.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := a.Session.Login(u); err != nil {
				return err
			}
			fmt.Printf("Welcome, %s!\n", u.Name)
			return nil
		},
	}
}

func newLogoutCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Local state is cleared even when the server call fails,
			// matching how the browser client logs out.
			if err := a.API.Logout(cmd.Context()); err != nil {
				a.Log.Warn("Server logout failed", zap.Error(err))
			}
			if err := a.Session.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			u := a.Session.Current()
			if u == nil {
				fmt.Println("Not logged in.")
				return nil
			}
			fmt.Printf("%s %s <%s> (%s)\n", u.Name, u.LastName, u.Email, u.Role)
			return nil
		},
	}
}
