package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/wire"
)

// readPassword returns the password from stdin when --password-stdin is set,
// otherwise from SPRINTDESK_PASSWORD.
func readPassword(cmd *cobra.Command, stdin io.Reader) (string, error) {
	fromStdin, _ := cmd.Flags().GetBool("password-stdin")
	if fromStdin {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return "", fmt.Errorf("empty password on stdin")
		}
		return line, nil
	}

	if pw := wire.Config().Password; pw != "" {
		return pw, nil
	}
	return "", fmt.Errorf("no password given\nHint: set SPRINTDESK_PASSWORD or pipe it with --password-stdin")
}

// emailFlag returns --email or the configured email.
func emailFlag(cmd *cobra.Command) (string, error) {
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		email = wire.Config().Email
	}
	if email == "" {
		return "", fmt.Errorf("--email is required (or set email in config)")
	}
	return email, nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend",
	Long: `Log in with email and password. The session cookies are saved in the
local cache so later commands stay logged in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := emailFlag(cmd)
		if err != nil {
			return err
		}
		password, err := readPassword(cmd, os.Stdin)
		if err != nil {
			return err
		}
		return wire.SessionAdapter().Login(NewContext(), email, password)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup [username]",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := emailFlag(cmd)
		if err != nil {
			return err
		}
		password, err := readPassword(cmd, os.Stdin)
		if err != nil {
			return err
		}
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")

		return wire.SessionAdapter().Signup(NewContext(), models.Signup{
			Username:  args[0],
			Email:     email,
			Password:  password,
			FirstName: firstName,
			LastName:  lastName,
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SessionAdapter().Logout(NewContext())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SessionAdapter().WhoAmI(NewContext())
	},
}

// SessionCmds returns the login, signup, logout and whoami commands.
func SessionCmds() []*cobra.Command {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringP("email", "e", "", "Account email (defaults to config email)")
		c.Flags().Bool("password-stdin", false, "Read the password from stdin")
	}
	signupCmd.Flags().String("first-name", "", "First name")
	signupCmd.Flags().String("last-name", "", "Last name")

	return []*cobra.Command{loginCmd, signupCmd, logoutCmd, whoamiCmd}
}
