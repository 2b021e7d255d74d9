package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"vsphere-events-cli/internal/client"
	"vsphere-events-cli/internal/config"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the vSphere server",
	Long: `Authenticates using the provided credentials and saves the session id
locally for future commands.

Example:
  vsphere-events-cli login --url "https://vc.example.com/sdk" --username administrator@vsphere.local --password pass`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Load()
		if !s.HasCredentials() {
			return errors.New("login requires --username and --password")
		}

		// 1. Initialize Client
		api := client.New(client.ClientConfig{
			URL:      s.URL,
			Username: s.Username,
			Password: s.Password,
			Insecure: s.Insecure,
			Release:  s.APIRelease,
			Logger:   logrus.NewEntry(logrus.StandardLogger()),
		})

		fmt.Fprintf(cmd.OutOrStdout(), "Authenticating against %s as user '%s'...\n", s.URL, s.Username)

		// 2. Perform Login
		if err := api.Connect(cmd.Context()); err != nil {
			return err
		}
		sessionID, err := api.Login(cmd.Context())
		if err != nil {
			return errors.Wrap(err, "login failed")
		}

		// 3. Persist Session and URL so subsequent commands know where to connect
		if err := config.SaveSession(s.URL, sessionID); err != nil {
			return errors.Wrap(err, "failed to save configuration file")
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Session saved. You can now run commands like 'vsphere-events-cli monitor'.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Load()
		if s.URL == "" || s.SessionID == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved session.")
			return nil
		}

		api := client.New(client.ClientConfig{
			URL:      s.URL,
			Insecure: s.Insecure,
			Release:  s.APIRelease,
		})
		api.SetSession(s.SessionID)

		var logoutErr error
		if err := api.Connect(cmd.Context()); err != nil {
			logoutErr = err
		} else {
			logoutErr = api.Logout(cmd.Context())
		}
		if logoutErr != nil {
			// The session may already have expired server side; forget it anyway.
			logrus.WithError(logoutErr).Warn("Server side logout failed")
		}

		if err := config.ClearSession(); err != nil {
			return errors.Wrap(err, "failed to save configuration file")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	addConnectionFlags(loginCmd)
	_ = loginCmd.MarkFlagRequired("url")

	logoutCmd.Flags().Bool("insecure", false, "Skip TLS certificate verification")
}
