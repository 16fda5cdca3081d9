package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkehler/worldscope/pkg/countries"
	wserrors "github.com/mkehler/worldscope/pkg/errors"
	"github.com/mkehler/worldscope/pkg/integrations"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var refresh, noCache bool

	cmd := &cobra.Command{
		Use:   "show <code>",
		Short: "Show details for a single country",
		Long: `Show the full details of a country identified by its three-letter code
(e.g. BEL, CAN, JPN): name, capital, population, languages, currencies,
and neighbouring countries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])
			if err := wserrors.ValidateCountryCode(code); err != nil {
				return userError(err)
			}

			app, err := c.newApp(noCache)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Loading %s...", code))
			spinner.Start()

			list, err := app.client.FetchByCode(ctx, code, refresh)
			if err != nil {
				if errors.Is(err, integrations.ErrNotFound) {
					spinner.Stop()
					printError("No country with code %s", code)
					return fmt.Errorf("unknown country code %s", code)
				}
				spinner.StopWithError("Load failed")
				return userError(err)
			}
			if len(list) == 0 {
				spinner.Stop()
				printError("No country with code %s", code)
				return fmt.Errorf("unknown country code %s", code)
			}
			country := list[0]

			borders := resolveBorders(ctx, app, country.Borders)
			spinner.Stop()

			printNewline()
			fmt.Println(StyleTitle.Render(country.CommonName()) + " " + StyleDim.Render("("+country.Code+")"))
			if official := country.OfficialName(); official != country.CommonName() {
				printDetail("%s", official)
			}
			printNewline()

			printKeyValue("Region", country.Region)
			if country.Subregion != "" {
				printKeyValue("Subregion", country.Subregion)
			}
			printKeyValue("Capital", country.DisplayCapital())
			printKeyValue("Population", formatPopulation(country.Population))
			if country.Area > 0 {
				printKeyValue("Area", fmt.Sprintf("%.0f km²", country.Area))
			}
			printKeyValue("Languages", joinOrPlaceholder(country.LanguageNames()))
			printKeyValue("Currencies", joinOrPlaceholder(country.CurrencyNames()))
			if len(country.TLD) > 0 {
				printKeyValue("Domain", strings.Join(country.TLD, ", "))
			}
			printKeyValue("Borders", joinOrPlaceholder(borders))
			if flag := country.FlagURL(); flag != "" {
				printKeyValue("Flag", StyleLink.Render(flag))
			}

			if app.favs.IsFavorite(ctx, country.Code) {
				printNewline()
				fmt.Println(styleFavorite.Render(iconFavorite) + " " + StyleDim.Render("In your favorites"))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached responses for this query")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache entirely")
	return cmd
}

// resolveBorders maps border codes to display names. A code that cannot be
// resolved is shown as-is rather than failing the whole view.
func resolveBorders(ctx context.Context, app *app, codes []string) []string {
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		list, err := app.client.FetchByCode(ctx, code, false)
		if err != nil || len(list) == 0 {
			names = append(names, code)
			continue
		}
		names = append(names, list[0].CommonName())
	}
	return names
}

// joinOrPlaceholder joins values with commas, or returns the placeholder
// when there are none.
func joinOrPlaceholder(values []string) string {
	if len(values) == 0 {
		return countries.Placeholder
	}
	return strings.Join(values, ", ")
}
