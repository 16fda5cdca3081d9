package cli

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkehler/worldscope/pkg/auth"
	"github.com/mkehler/worldscope/pkg/catalog"
	"github.com/mkehler/worldscope/pkg/countries"
	"github.com/mkehler/worldscope/pkg/favorites"
	"github.com/mkehler/worldscope/pkg/storage"
)

type stubFetcher struct {
	list []countries.Country
}

func (s stubFetcher) FetchAll(ctx context.Context, refresh bool) ([]countries.Country, error) {
	return s.list, nil
}

func browseSample() []countries.Country {
	return []countries.Country{
		{Code: "BEL", Name: countries.Name{Common: "Belgium"}, Region: "Europe", Languages: map[string]string{"fra": "French"}},
		{Code: "CAN", Name: countries.Name{Common: "Canada"}, Region: "Americas", Languages: map[string]string{"eng": "English"}},
		{Code: "JPN", Name: countries.Name{Common: "Japan"}, Region: "Asia", Languages: map[string]string{"jpn": "Japanese"}},
	}
}

func testBrowseModel(t *testing.T) *browseModel {
	t.Helper()

	st := storage.NewMemoryStore()
	mgr := auth.NewManager(auth.NewCredentialStore(st, nil), nil)
	favs := favorites.NewStore(st, mgr, nil)
	t.Cleanup(favs.Close)

	cat := catalog.New(stubFetcher{list: browseSample()}, nil)
	t.Cleanup(cat.Close)
	m := &browseModel{
		ctx:     context.Background(),
		cat:     cat,
		favs:    favs,
		updates: make(chan catalog.State, 16),
		height:  15,
	}
	m.deb = catalog.NewDebouncer(20*time.Millisecond, cat.SearchCountries)
	t.Cleanup(m.deb.Stop)

	cat.Load(context.Background(), false)
	m.state = cat.Snapshot()
	m.regions = countries.Regions(m.state.Countries)
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBrowseModel_CursorNavigation(t *testing.T) {
	m := testBrowseModel(t)

	m.Update(key("down"))
	m.Update(key("j"))
	assert.Equal(t, 2, m.cursor)

	// Cursor stops at the last entry.
	m.Update(key("down"))
	assert.Equal(t, 2, m.cursor)

	m.Update(key("up"))
	assert.Equal(t, 1, m.cursor)
}

func TestBrowseModel_RegionCycling(t *testing.T) {
	m := testBrowseModel(t)
	require.Equal(t, []string{"Americas", "Asia", "Europe"}, m.regions)

	m.Update(key("r"))
	m.state = m.cat.Snapshot()
	assert.Equal(t, "Americas", m.state.SelectedRegion)

	m.Update(key("r"))
	m.state = m.cat.Snapshot()
	m.Update(key("r"))
	m.state = m.cat.Snapshot()
	assert.Equal(t, "Europe", m.state.SelectedRegion)

	// One more step clears the filter.
	m.Update(key("r"))
	m.state = m.cat.Snapshot()
	assert.Empty(t, m.state.SelectedRegion)
	assert.Len(t, m.state.Filtered, 3)
}

func TestBrowseModel_SearchCommitsAfterDebounce(t *testing.T) {
	m := testBrowseModel(t)

	m.Update(key("/"))
	require.Equal(t, modeSearch, m.mode)

	for _, r := range []string{"j", "a", "p"} {
		m.Update(key(r))
	}
	assert.Equal(t, "jap", m.input)

	// Nothing committed until the debounce delay passes.
	assert.Empty(t, m.cat.Snapshot().SearchTerm)

	time.Sleep(80 * time.Millisecond)
	state := m.cat.Snapshot()
	assert.Equal(t, "jap", state.SearchTerm)
	require.Len(t, state.Filtered, 1)
	assert.Equal(t, "JPN", state.Filtered[0].Code)
}

func TestBrowseModel_EscClearsSearch(t *testing.T) {
	m := testBrowseModel(t)

	m.Update(key("/"))
	m.Update(key("x"))
	m.Update(key("esc"))

	assert.Equal(t, modeList, m.mode)
	time.Sleep(80 * time.Millisecond)
	state := m.cat.Snapshot()
	assert.Empty(t, state.SearchTerm, "pending keystrokes discarded on esc")
	assert.Len(t, state.Filtered, 3)
}

func TestBrowseModel_DetailToggle(t *testing.T) {
	m := testBrowseModel(t)

	m.Update(key("enter"))
	require.NotNil(t, m.detail)
	assert.Equal(t, "BEL", m.detail.Code)

	m.Update(key("esc"))
	assert.Nil(t, m.detail)
}

func TestBrowseModel_ClearFilters(t *testing.T) {
	m := testBrowseModel(t)

	m.Update(key("r"))
	m.state = m.cat.Snapshot()
	require.Len(t, m.state.Filtered, 1)

	m.Update(key("x"))
	m.state = m.cat.Snapshot()
	assert.Len(t, m.state.Filtered, 3)
}
