package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Nomadcxx/bakus/internal/bakus"
	"github.com/Nomadcxx/bakus/internal/logging"
	"github.com/Nomadcxx/bakus/internal/ui"
)

func newLoginCmd() *cobra.Command {
	var (
		username      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Bakus server and store the token",
		Long: `Log in to the Bakus server. The returned token is stored in the local
database and sent with every later request.

Examples:
  bakus login -u ada
  echo "$PASSWORD" | bakus login -u ada --password-stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			in := bufio.NewReader(cmd.InOrStdin())
			if username == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Username: ")
				line, err := in.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read username: %w", err)
				}
				username = strings.TrimSpace(line)
			}
			if username == "" {
				return errors.New("username is required")
			}

			password, err := readPassword(cmd, in, passwordStdin)
			if err != nil {
				return err
			}

			res, err := a.client.Login(cmd.Context(), username, password)
			if err != nil {
				a.logger.Error("auth", "login failed", err, logging.F("username", username))
				return fmt.Errorf("login failed: %w", err)
			}

			if err := a.store.SaveToken(username, res.Token, res.Expiry); err != nil {
				return fmt.Errorf("failed to store token: %w", err)
			}
			a.logger.Info("auth", "logged in", logging.F("username", username))

			ui.SuccessMsg("Logged in as %s", username)
			if !res.Expiry.IsZero() {
				fmt.Println(ui.Dim("Token expires " + ui.Ago(res.Expiry)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")

	return cmd
}

func readPassword(cmd *cobra.Command, in *bufio.Reader, fromStdin bool) (string, error) {
	if !fromStdin {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", errors.New("no terminal to prompt for a password (use --password-stdin)")
		}
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("empty password on stdin")
	}
	return password, nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the token on the server and forget it locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if a.client.LoggedIn() {
				// A token the server already rejects is still forgotten locally.
				if err := a.client.Logout(cmd.Context()); err != nil && !errors.Is(err, bakus.ErrUnauthorized) {
					return fmt.Errorf("logout failed: %w", err)
				}
			}
			if err := a.store.ClearToken(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}
			a.logger.Info("auth", "logged out")
			ui.SuccessMsg("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireLogin(); err != nil {
				return err
			}
			profile, err := a.client.Profile(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch account: %w", err)
			}

			name := strings.TrimSpace(profile.FirstName + " " + profile.LastName)
			fmt.Printf("Username: %s\n", profile.Username)
			if name != "" {
				fmt.Printf("Name:     %s\n", name)
			}
			if profile.Email != "" {
				fmt.Printf("Email:    %s\n", profile.Email)
			}
			fmt.Printf("Server:   %s\n", a.cfg.Server.URL)
			return nil
		},
	}
}
