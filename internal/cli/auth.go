package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkehler/worldscope/pkg/errors"
)

// userError reduces a structured error to its user-facing message so the
// shell sees a clean single line.
func userError(err error) error {
	return fmt.Errorf("%s", errors.UserMessage(err))
}

// registerCommand creates the register command.
func (c *CLI) registerCommand() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a local account",
		Long: `Create a local worldscope account and sign in.

Accounts live entirely on this machine; they exist so favorites can be
kept per user. Registration signs you in immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(false)
			if err != nil {
				return err
			}
			defer app.Close()

			if name == "" {
				name = promptLine("Name: ")
			}
			if email == "" {
				email = promptLine("Email: ")
			}
			if password == "" {
				password = promptLine("Password: ")
			}

			sess, err := app.auth.Register(cmd.Context(), name, email, password)
			if err != nil {
				return userError(err)
			}

			printSuccess("Account created")
			printKeyValue("Name", sess.Name)
			printKeyValue("Email", sess.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

// loginCommand creates the login command.
func (c *CLI) loginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to a local account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(false)
			if err != nil {
				return err
			}
			defer app.Close()

			if email == "" {
				email = promptLine("Email: ")
			}
			if password == "" {
				password = promptLine("Password: ")
			}

			sess, err := app.auth.Login(cmd.Context(), email, password)
			if err != nil {
				return userError(err)
			}

			printSuccess("Signed in as %s", sess.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

// logoutCommand creates the logout command.
func (c *CLI) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out of the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(false)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.auth.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			printSuccess("Signed out")
			return nil
		},
	}
}

// whoamiCommand creates the whoami command.
func (c *CLI) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(false)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			sess := app.auth.CurrentUser(ctx)
			if sess == nil {
				printInfo("Not signed in")
				printDetail("Run 'worldscope login' or 'worldscope register' first")
				return nil
			}

			printSuccess("Signed in")
			printKeyValue("Name", sess.Name)
			printKeyValue("Email", sess.Email)
			printKeyValue("Favorites", fmt.Sprintf("%d", app.favs.Count(ctx)))
			return nil
		},
	}
}

// promptLine reads a single line from stdin after printing the prompt.
func promptLine(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
