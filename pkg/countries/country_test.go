package countries

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountry_DecodesAPIShape(t *testing.T) {
	// Trimmed restcountries.com/v3.1 payload.
	payload := `{
		"name": {"common": "Belgium", "official": "Kingdom of Belgium"},
		"cca3": "BEL",
		"capital": ["Brussels"],
		"region": "Europe",
		"subregion": "Western Europe",
		"languages": {"deu": "German", "fra": "French", "nld": "Dutch"},
		"currencies": {"EUR": {"name": "Euro", "symbol": "€"}},
		"borders": ["FRA", "DEU", "LUX", "NLD"],
		"area": 30528.0,
		"population": 11555997,
		"tld": [".be"],
		"flags": {"png": "https://flagcdn.com/w320/be.png", "svg": "https://flagcdn.com/be.svg"},
		"coatOfArms": {"svg": "https://mainfacts.com/media/images/coats_of_arms/be.svg"}
	}`

	var c Country
	require.NoError(t, json.Unmarshal([]byte(payload), &c))

	assert.Equal(t, "BEL", c.Code)
	assert.Equal(t, "Belgium", c.CommonName())
	assert.Equal(t, "Kingdom of Belgium", c.OfficialName())
	assert.Equal(t, "Brussels", c.DisplayCapital())
	assert.Equal(t, "https://flagcdn.com/be.svg", c.FlagURL())
	assert.Equal(t, []string{"Dutch", "French", "German"}, c.LanguageNames())
	assert.Equal(t, []string{"Euro (€)"}, c.CurrencyNames())
	assert.Equal(t, int64(11555997), c.Population)
	assert.Len(t, c.Borders, 4)
}

func TestCountry_MissingFieldsDegrade(t *testing.T) {
	var c Country
	require.NoError(t, json.Unmarshal([]byte(`{"cca3":"XXX"}`), &c))

	assert.Equal(t, Placeholder, c.CommonName())
	assert.Equal(t, Placeholder, c.OfficialName())
	assert.Equal(t, Placeholder, c.DisplayCapital())
	assert.Empty(t, c.FlagURL())
	assert.Nil(t, c.LanguageNames())
	assert.Nil(t, c.CurrencyNames())
}

func TestCountry_Predicates(t *testing.T) {
	c := Country{
		Name:      Name{Common: "Belgium"},
		Region:    "Europe",
		Languages: map[string]string{"fra": "French", "nld": "Dutch"},
	}

	assert.True(t, c.InRegion("europe"))
	assert.False(t, c.InRegion("Asia"))

	assert.True(t, c.SpeaksLanguage("french"))
	assert.False(t, c.SpeaksLanguage("German"))
	assert.False(t, Country{}.SpeaksLanguage("French"))

	assert.True(t, c.MatchesName("bel"))
	assert.True(t, c.MatchesName("GIU"))
	assert.False(t, c.MatchesName("fra"))
}

func TestSortByName(t *testing.T) {
	list := []Country{
		{Name: Name{Common: "France"}},
		{Name: Name{Common: "Belgium"}},
		{Name: Name{Common: "Denmark"}},
	}
	SortByName(list)

	assert.Equal(t, "Belgium", list[0].Name.Common)
	assert.Equal(t, "Denmark", list[1].Name.Common)
	assert.Equal(t, "France", list[2].Name.Common)
}

func TestRegionsAndLanguages(t *testing.T) {
	list := []Country{
		{Region: "Europe", Languages: map[string]string{"fra": "French"}},
		{Region: "Asia", Languages: map[string]string{"jpn": "Japanese"}},
		{Region: "Europe", Languages: map[string]string{"fra": "French", "deu": "German"}},
		{},
	}

	assert.Equal(t, []string{"Asia", "Europe"}, Regions(list))
	assert.Equal(t, []string{"French", "German", "Japanese"}, LanguagesOf(list))
}
