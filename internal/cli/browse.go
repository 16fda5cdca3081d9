package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkehler/worldscope/pkg/catalog"
	"github.com/mkehler/worldscope/pkg/countries"
	"github.com/mkehler/worldscope/pkg/favorites"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var refresh, noCache bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the country catalog interactively",
		Long: `Open the interactive catalog.

Type / to search by name, r to cycle regions, l to filter by language,
f to toggle a favorite, enter to open details, and q to quit. Search,
region, and language filters combine; x clears them all.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.newApp(noCache)
			if err != nil {
				return err
			}
			defer app.Close()

			model := newBrowseModel(cmd.Context(), app, loggerFromContext(cmd.Context()), refresh)
			program := tea.NewProgram(model, tea.WithAltScreen())
			defer model.deb.Stop()
			defer model.cat.Close()

			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached responses when loading")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache entirely")
	return cmd
}

// inputMode says what keystrokes currently edit.
type inputMode int

const (
	modeList inputMode = iota
	modeSearch
	modeLanguage
)

// catalogMsg carries a fresh catalog snapshot into the model.
type catalogMsg struct {
	state catalog.State
}

// browseModel is the bubbletea model for the interactive catalog.
type browseModel struct {
	ctx     context.Context
	cat     *catalog.Catalog
	favs    *favorites.Store
	deb     *catalog.Debouncer
	updates chan catalog.State
	refresh bool

	state   catalog.State
	regions []string

	mode   inputMode
	input  string
	cursor int
	offset int
	height int

	detail *countries.Country
}

// newBrowseModel wires the catalog, the favorites store, and the debounced
// search input into a fresh model.
func newBrowseModel(ctx context.Context, app *app, logger *log.Logger, refresh bool) *browseModel {
	cat := catalog.New(app.client, logger)
	updates := make(chan catalog.State, 16)
	cat.OnChange(func(s catalog.State) {
		// Keep the newest snapshot when the update loop falls behind.
		for {
			select {
			case updates <- s:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})

	m := &browseModel{
		ctx:     ctx,
		cat:     cat,
		favs:    app.favs,
		updates: updates,
		refresh: refresh,
		height:  15,
	}
	m.deb = catalog.NewDebouncer(app.cfg.Debounce(), func(term string) {
		cat.SearchCountries(term)
	})
	return m
}

func (m *browseModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.waitCmd())
}

// loadCmd fetches the full catalog in the background.
func (m *browseModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		m.cat.Load(m.ctx, m.refresh)
		return catalogMsg{state: m.cat.Snapshot()}
	}
}

// waitCmd relays asynchronous catalog changes (debounced search commits)
// into the update loop.
func (m *browseModel) waitCmd() tea.Cmd {
	return func() tea.Msg {
		return catalogMsg{state: <-m.updates}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogMsg:
		m.state = msg.state
		if len(m.regions) == 0 && len(m.state.Countries) > 0 {
			m.regions = countries.Regions(m.state.Countries)
		}
		m.clampCursor()
		return m, m.waitCmd()

	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		if m.detail != nil {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

// updateList handles keys in the main list view.
func (m *browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
	case "down", "j":
		if m.cursor < len(m.state.Filtered)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case "enter":
		if country, ok := m.current(); ok {
			m.detail = &country
		}
	case "/":
		m.mode = modeSearch
		m.input = m.state.SearchTerm
	case "l":
		m.mode = modeLanguage
		m.input = m.state.SelectedLanguage
	case "r":
		m.cat.FilterByRegion(m.nextRegion())
	case "x":
		m.deb.Cancel()
		m.input = ""
		m.cat.ResetFilters()
	case "f":
		if country, ok := m.current(); ok {
			_, _ = m.favs.Toggle(m.ctx, country)
		}
	case "R":
		return m, m.loadCmd()
	}
	return m, nil
}

// updateDetail handles keys in the detail view.
func (m *browseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "enter", "backspace":
		m.detail = nil
	case "f":
		if m.detail != nil {
			_, _ = m.favs.Toggle(m.ctx, *m.detail)
		}
	}
	return m, nil
}

// updateInput handles keys while editing the search or language field.
func (m *browseModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.deb.Cancel()
		m.input = ""
		m.commitInput()
		m.mode = modeList
	case "enter":
		m.deb.Cancel()
		m.commitInput()
		m.mode = modeList
	case "backspace":
		if m.input != "" {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
			m.changedInput()
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.input += string(msg.Runes)
			m.changedInput()
		case tea.KeySpace:
			m.input += " "
			m.changedInput()
		}
	}
	return m, nil
}

// changedInput reacts to a keystroke: search commits are debounced, the
// language filter waits for enter.
func (m *browseModel) changedInput() {
	if m.mode == modeSearch {
		m.deb.Update(m.input)
	}
}

// commitInput applies the edited field immediately.
func (m *browseModel) commitInput() {
	switch m.mode {
	case modeSearch:
		m.cat.SearchCountries(m.input)
	case modeLanguage:
		m.cat.FilterByLanguage(m.input)
	}
}

// nextRegion cycles through the regions present in the loaded list, ending
// on "no filter".
func (m *browseModel) nextRegion() string {
	if len(m.regions) == 0 {
		return ""
	}
	current := m.state.SelectedRegion
	if current == "" {
		return m.regions[0]
	}
	for i, region := range m.regions {
		if region == current {
			if i+1 < len(m.regions) {
				return m.regions[i+1]
			}
			return ""
		}
	}
	return ""
}

func (m *browseModel) current() (countries.Country, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Filtered) {
		return countries.Country{}, false
	}
	return m.state.Filtered[m.cursor], true
}

func (m *browseModel) clampCursor() {
	if m.cursor >= len(m.state.Filtered) {
		m.cursor = len(m.state.Filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m *browseModel) View() string {
	if m.detail != nil {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m *browseModel) viewList() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Worldscope"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  / search  r region  l language  f favorite  x clear  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.filterLine())
	b.WriteString("\n\n")

	switch {
	case m.state.Loading:
		b.WriteString(StyleDim.Render("Loading countries..."))
		b.WriteString("\n")
	case m.state.Err != "":
		b.WriteString(styleIconError.Render(iconError) + " " + m.state.Err)
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("Press R to retry"))
		b.WriteString("\n")
	case len(m.state.Filtered) == 0:
		b.WriteString(StyleDim.Render("No countries match"))
		b.WriteString("\n")
	default:
		m.writeRows(&b)
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d of %d countries", len(m.state.Filtered), len(m.state.Countries))))
	return b.String()
}

// filterLine renders the search box and active filters.
func (m *browseModel) filterLine() string {
	var parts []string

	search := m.state.SearchTerm
	if m.mode == modeSearch {
		search = m.input + "▌"
	}
	if search != "" {
		parts = append(parts, StyleDim.Render("search: ")+StyleHighlight.Render(search))
	}

	if region := m.state.SelectedRegion; region != "" {
		parts = append(parts, StyleDim.Render("region: ")+StyleHighlight.Render(region))
	}

	lang := m.state.SelectedLanguage
	if m.mode == modeLanguage {
		lang = m.input + "▌"
	}
	if lang != "" {
		parts = append(parts, StyleDim.Render("language: ")+StyleHighlight.Render(lang))
	}

	if len(parts) == 0 {
		return StyleDim.Render("no filters")
	}
	return strings.Join(parts, StyleDim.Render("  ·  "))
}

func (m *browseModel) writeRows(b *strings.Builder) {
	end := m.offset + m.height
	if end > len(m.state.Filtered) {
		end = len(m.state.Filtered)
	}

	for i := m.offset; i < end; i++ {
		country := m.state.Filtered[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		star := "  "
		if m.favs.IsFavorite(m.ctx, country.Code) {
			star = styleFavorite.Render(iconFavorite) + " "
		}

		line := fmt.Sprintf("%s%s%-40s %s", cursor, star, style.Render(country.CommonName()), listDimStyle.Render(country.Region))
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func (m *browseModel) viewDetail() string {
	country := *m.detail
	var b strings.Builder

	b.WriteString(StyleTitle.Render(country.CommonName()) + " " + listDimStyle.Render("("+country.Code+")"))
	b.WriteString("\n")
	if official := country.OfficialName(); official != country.CommonName() {
		b.WriteString(listDimStyle.Render(official))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	row := func(key, value string) {
		b.WriteString(lipgloss.NewStyle().Foreground(colorGray).Width(12).Render(key))
		b.WriteString(" ")
		b.WriteString(StyleValue.Render(value))
		b.WriteString("\n")
	}

	row("Region", country.Region)
	if country.Subregion != "" {
		row("Subregion", country.Subregion)
	}
	row("Capital", country.DisplayCapital())
	row("Population", formatPopulation(country.Population))
	row("Languages", joinOrPlaceholder(country.LanguageNames()))
	row("Currencies", joinOrPlaceholder(country.CurrencyNames()))
	if len(country.Borders) > 0 {
		row("Borders", strings.Join(country.Borders, ", "))
	}

	b.WriteString("\n")
	if m.favs.IsFavorite(m.ctx, country.Code) {
		b.WriteString(styleFavorite.Render(iconFavorite) + " " + listDimStyle.Render("favorite (press f to remove)"))
	} else {
		b.WriteString(listDimStyle.Render("press f to add to favorites"))
	}
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	return b.String()
}
