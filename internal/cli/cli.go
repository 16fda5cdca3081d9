// Package cli implements the worldscope command-line interface.
//
// This package provides commands for browsing the world country catalog,
// looking up countries by name, region, or code, managing per-user
// favorites, and handling the local account session. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - browse: Interactive catalog with search and filters
//   - show: Detailed view of a single country
//   - lookup: Direct name or region queries against the API
//   - favorites: Manage the signed-in user's saved countries
//   - register/login/logout/whoami: Local account session
//   - cache: Manage the API response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkehler/worldscope/pkg/auth"
	"github.com/mkehler/worldscope/pkg/buildinfo"
	"github.com/mkehler/worldscope/pkg/favorites"
	"github.com/mkehler/worldscope/pkg/integrations/restcountries"
	"github.com/mkehler/worldscope/pkg/storage"
)

// appName is the application name used for directories and display.
const appName = "worldscope"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Worldscope explores country data from your terminal",
		Long:         `Worldscope is a CLI for exploring countries of the world: browse and filter the full catalog, inspect details like languages and currencies, and keep a personal favorites list tied to a local account.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.browseCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.favoritesCommand())
	root.AddCommand(c.registerCommand())
	root.AddCommand(c.loginCommand())
	root.AddCommand(c.logoutCommand())
	root.AddCommand(c.whoamiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// app bundles the wired components a command needs: configuration, the
// storage backend, the auth manager, the favorites store, and the API
// client. Commands build one per invocation and close it when done.
type app struct {
	cfg    *Config
	store  storage.Store
	auth   *auth.Manager
	favs   *favorites.Store
	client *restcountries.Client
}

// newApp loads configuration and wires the application components.
func (c *CLI) newApp(noCache bool) (*app, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	mgr := auth.NewManager(auth.NewCredentialStore(store, c.Logger), c.Logger)
	favs := favorites.NewStore(store, mgr, c.Logger)

	client, err := newCountriesClient(cfg, noCache)
	if err != nil {
		favs.Close()
		_ = store.Close()
		return nil, err
	}

	return &app{cfg: cfg, store: store, auth: mgr, favs: favs, client: client}, nil
}

func (a *app) Close() {
	a.favs.Close()
	_ = a.store.Close()
}
