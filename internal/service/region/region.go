// Package region resolves two-letter country codes to a display name and flag.
package region

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/domain"
)

const (
	unknownName = "Unknown"
	unknownFlag = "🌐"

	regionalIndicatorA = 0x1F1E6
)

var namer = display.English.Regions()

// Unknown is returned for any code that is not an ISO 3166 country.
var Unknown = domain.RegionDisplay{Name: unknownName, Flag: unknownFlag}

// Lookup returns the English country name and flag emoji for code.
// Unrecognized, user-assigned and grouping codes resolve to Unknown.
func Lookup(code string) domain.RegionDisplay {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !isAlpha2(code) {
		return Unknown
	}

	r, err := language.ParseRegion(code)
	if err != nil || !r.IsCountry() {
		return Unknown
	}

	name := namer.Name(r)
	if name == "" {
		return Unknown
	}

	return domain.RegionDisplay{Name: name, Flag: flag(r.String())}
}

func isAlpha2(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// flag builds the regional indicator pair for an alpha-2 code.
func flag(code string) string {
	var sb strings.Builder
	for _, c := range code {
		sb.WriteRune(rune(regionalIndicatorA) + c - 'A')
	}
	return sb.String()
}
