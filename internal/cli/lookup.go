package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mkehler/worldscope/pkg/countries"
	"github.com/mkehler/worldscope/pkg/integrations"
)

// lookupCommand creates the lookup command with subcommands.
func (c *CLI) lookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Query countries directly from the API",
		Long: `Query the countries API by name or region.

Unlike 'browse', which filters a locally loaded catalog, lookup sends the
query upstream and prints the raw result set.`,
	}

	cmd.AddCommand(c.lookupNameCommand())
	cmd.AddCommand(c.lookupRegionCommand())

	return cmd
}

// lookupNameCommand creates the "lookup name" subcommand.
func (c *CLI) lookupNameCommand() *cobra.Command {
	var refresh, noCache bool

	cmd := &cobra.Command{
		Use:   "name <term>",
		Short: "Find countries whose name matches a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLookup(cmd.Context(), noCache, fmt.Sprintf("Searching for %q...", args[0]),
				func(ctx context.Context, app *app) ([]countries.Country, error) {
					return app.client.FetchByName(ctx, args[0], refresh)
				})
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached responses for this query")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache entirely")
	return cmd
}

// lookupRegionCommand creates the "lookup region" subcommand.
func (c *CLI) lookupRegionCommand() *cobra.Command {
	var refresh, noCache bool

	cmd := &cobra.Command{
		Use:   "region <region>",
		Short: "List the countries of a region",
		Long: `List the countries of a region (Africa, Americas, Asia, Europe, Oceania,
or Antarctic).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLookup(cmd.Context(), noCache, fmt.Sprintf("Loading %s...", args[0]),
				func(ctx context.Context, app *app) ([]countries.Country, error) {
					return app.client.FetchByRegion(ctx, args[0], refresh)
				})
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached responses for this query")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache entirely")
	return cmd
}

// runLookup wires an app, runs the query under a spinner, and prints the
// result table.
func (c *CLI) runLookup(ctx context.Context, noCache bool, message string, fetch func(context.Context, *app) ([]countries.Country, error)) error {
	app, err := c.newApp(noCache)
	if err != nil {
		return err
	}
	defer app.Close()

	spinner := newSpinnerWithContext(ctx, message)
	spinner.Start()

	track := newProgress(c.Logger)
	list, err := fetch(ctx, app)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			spinner.Stop()
			printInfo("No countries found")
			return nil
		}
		spinner.StopWithError("Lookup failed")
		return userError(err)
	}
	spinner.Stop()
	track.done(fmt.Sprintf("Fetched %d countries", len(list)))

	countries.SortByName(list)
	printCountryTable(list)
	return nil
}

// printCountryTable renders countries as a bordered table.
func printCountryTable(list []countries.Country) {
	if len(list) == 0 {
		printInfo("No countries found")
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Code", "Name", "Region", "Capital", "Population")

	for _, country := range list {
		t.Row(
			country.Code,
			country.CommonName(),
			country.Region,
			country.DisplayCapital(),
			formatPopulation(country.Population),
		)
	}

	fmt.Println(t)
	printDetail("%d countries", len(list))
}

// formatPopulation renders a population count with thousands separators.
func formatPopulation(n int64) string {
	if n <= 0 {
		return countries.Placeholder
	}
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
