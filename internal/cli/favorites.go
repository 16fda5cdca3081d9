package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	wserrors "github.com/mkehler/worldscope/pkg/errors"
	"github.com/mkehler/worldscope/pkg/integrations"
)

// favoritesCommand creates the favorites command with subcommands.
func (c *CLI) favoritesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage your saved countries",
		Long: `Manage the favorites list of the signed-in user.

Favorites are stored per account; sign in with 'worldscope login' first.`,
	}

	cmd.AddCommand(c.favoritesListCommand())
	cmd.AddCommand(c.favoritesAddCommand())
	cmd.AddCommand(c.favoritesRemoveCommand())

	return cmd
}

// favoritesListCommand creates the "favorites list" subcommand.
func (c *CLI) favoritesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your saved countries",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(false)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if !app.auth.IsAuthenticated(ctx) {
				printInfo("Not signed in")
				printDetail("Run 'worldscope login' to see your favorites")
				return nil
			}

			list := app.favs.List(ctx)
			if len(list) == 0 {
				printInfo("No favorites yet")
				printDetail("Add one with 'worldscope favorites add <code>'")
				return nil
			}

			printCountryTable(list)
			return nil
		},
	}
}

// favoritesAddCommand creates the "favorites add" subcommand.
func (c *CLI) favoritesAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <code>",
		Short: "Save a country by its three-letter code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])
			if err := wserrors.ValidateCountryCode(code); err != nil {
				return userError(err)
			}

			app, err := c.newApp(false)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			list, err := app.client.FetchByCode(ctx, code, false)
			if err != nil {
				if errors.Is(err, integrations.ErrNotFound) {
					return fmt.Errorf("unknown country code %s", code)
				}
				return userError(err)
			}
			if len(list) == 0 {
				return fmt.Errorf("unknown country code %s", code)
			}
			country := list[0]

			if app.favs.IsFavorite(ctx, country.Code) {
				printInfo("%s is already in your favorites", country.CommonName())
				return nil
			}
			if err := app.favs.Add(ctx, country); err != nil {
				return userError(err)
			}

			printSuccess("Added %s to favorites", country.CommonName())
			return nil
		},
	}
}

// favoritesRemoveCommand creates the "favorites remove" subcommand.
func (c *CLI) favoritesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <code>",
		Short: "Remove a saved country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])
			if err := wserrors.ValidateCountryCode(code); err != nil {
				return userError(err)
			}

			app, err := c.newApp(false)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if !app.favs.IsFavorite(ctx, code) {
				printInfo("%s is not in your favorites", code)
				return nil
			}
			if err := app.favs.Remove(ctx, code); err != nil {
				return userError(err)
			}

			printSuccess("Removed %s from favorites", code)
			return nil
		},
	}
}
