// Package countries defines the country model returned by the
// restcountries.com v3.1 API and the helpers the rest of the application
// uses to read it.
//
// The upstream shape is not normalized or validated: fields the API omits
// stay zero-valued and the accessor helpers degrade to placeholder text
// instead of failing. Only the fields the application actually reads are
// declared; unknown JSON fields are ignored on decode.
package countries

import (
	"sort"
	"strings"
)

// Placeholder is the display text used when a field is absent upstream.
const Placeholder = "N/A"

// Name holds the country's naming structure.
type Name struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

// Flags holds references to the flag images.
type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt"`
}

// Currency is one entry of the currencies mapping.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// CoatOfArms holds references to the coat-of-arms images.
type CoatOfArms struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
}

// Country is a single country record. The unique key is Code (cca3).
type Country struct {
	Code       string              `json:"cca3"`
	Name       Name                `json:"name"`
	Flags      Flags               `json:"flags"`
	Population int64               `json:"population"`
	Region     string              `json:"region"`
	Subregion  string              `json:"subregion"`
	Capital    []string            `json:"capital"`
	Languages  map[string]string   `json:"languages"`
	Currencies map[string]Currency `json:"currencies"`
	Borders    []string            `json:"borders"`
	Area       float64             `json:"area"`
	TLD        []string            `json:"tld"`
	CoatOfArms CoatOfArms          `json:"coatOfArms"`
}

// CommonName returns the common display name, or the placeholder when the
// record carries no name at all.
func (c Country) CommonName() string {
	if c.Name.Common == "" {
		return Placeholder
	}
	return c.Name.Common
}

// OfficialName returns the official name, falling back to the common name.
func (c Country) OfficialName() string {
	if c.Name.Official != "" {
		return c.Name.Official
	}
	return c.CommonName()
}

// DisplayCapital returns the first capital, or the placeholder if absent.
func (c Country) DisplayCapital() string {
	if len(c.Capital) == 0 || c.Capital[0] == "" {
		return Placeholder
	}
	return c.Capital[0]
}

// FlagURL returns the SVG flag reference, falling back to PNG, then empty.
func (c Country) FlagURL() string {
	if c.Flags.SVG != "" {
		return c.Flags.SVG
	}
	return c.Flags.PNG
}

// LanguageNames returns the language display names sorted alphabetically.
// Returns nil when the record has no language data.
func (c Country) LanguageNames() []string {
	if len(c.Languages) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.Languages))
	for _, name := range c.Languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CurrencyNames returns "Name (Symbol)" strings sorted alphabetically.
// Returns nil when the record has no currency data.
func (c Country) CurrencyNames() []string {
	if len(c.Currencies) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.Currencies))
	for _, cur := range c.Currencies {
		if cur.Symbol != "" {
			names = append(names, cur.Name+" ("+cur.Symbol+")")
		} else {
			names = append(names, cur.Name)
		}
	}
	sort.Strings(names)
	return names
}

// SpeaksLanguage reports whether any of the country's language values
// matches lang case-insensitively.
func (c Country) SpeaksLanguage(lang string) bool {
	for _, name := range c.Languages {
		if strings.EqualFold(name, lang) {
			return true
		}
	}
	return false
}

// InRegion reports whether the country's region matches region
// case-insensitively.
func (c Country) InRegion(region string) bool {
	return strings.EqualFold(c.Region, region)
}

// MatchesName reports whether the common name contains term as a
// case-insensitive substring.
func (c Country) MatchesName(term string) bool {
	return strings.Contains(strings.ToLower(c.Name.Common), strings.ToLower(term))
}

// SortByName sorts countries by common name in place, for stable listings.
func SortByName(list []Country) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Name.Common < list[j].Name.Common
	})
}

// Regions lists the distinct regions present in list, sorted.
func Regions(list []Country) []string {
	seen := make(map[string]struct{})
	for _, c := range list {
		if c.Region != "" {
			seen[c.Region] = struct{}{}
		}
	}
	regions := make([]string, 0, len(seen))
	for r := range seen {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

// LanguagesOf lists the distinct language names present in list, sorted.
func LanguagesOf(list []Country) []string {
	seen := make(map[string]struct{})
	for _, c := range list {
		for _, name := range c.Languages {
			seen[name] = struct{}{}
		}
	}
	langs := make([]string, 0, len(seen))
	for l := range seen {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}
