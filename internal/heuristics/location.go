package heuristics

import (
	"slices"
	"strings"
	"unicode"
)

// DefaultSearchLocation is used when no location hint is available.
const DefaultSearchLocation = "remote"

type locationTerm struct {
	match  string
	search string
}

// Country terms are checked before city terms. A term matches only as a
// whole run of words, so "uk" does not match "Fukuoka".
var countryTerms = []locationTerm{
	{"united states", "United States"},
	{"usa", "United States"},
	{"ukraine", "Ukraine"},
	{"united kingdom", "United Kingdom"},
	{"england", "United Kingdom"},
	{"scotland", "United Kingdom"},
	{"uk", "United Kingdom"},
	{"canada", "Canada"},
	{"germany", "Germany"},
	{"deutschland", "Germany"},
	{"france", "France"},
	{"netherlands", "Netherlands"},
	{"ireland", "Ireland"},
	{"spain", "Spain"},
	{"portugal", "Portugal"},
	{"poland", "Poland"},
	{"sweden", "Sweden"},
	{"india", "India"},
	{"nigeria", "Nigeria"},
	{"kenya", "Kenya"},
	{"south africa", "South Africa"},
	{"brazil", "Brazil"},
	{"australia", "Australia"},
	{"singapore", "Singapore"},
	{"japan", "Japan"},
}

var cityTerms = []locationTerm{
	{"remote", DefaultSearchLocation},
	{"san francisco", "San Francisco"},
	{"new york", "New York"},
	{"seattle", "Seattle"},
	{"austin", "Austin"},
	{"london", "London"},
	{"manchester", "Manchester"},
	{"berlin", "Berlin"},
	{"munich", "Munich"},
	{"paris", "Paris"},
	{"amsterdam", "Amsterdam"},
	{"dublin", "Dublin"},
	{"toronto", "Toronto"},
	{"vancouver", "Vancouver"},
	{"bengaluru", "Bangalore"},
	{"bangalore", "Bangalore"},
	{"lagos", "Lagos"},
	{"nairobi", "Nairobi"},
	{"sydney", "Sydney"},
	{"tokyo", "Tokyo"},
}

// ResolveSearchLocation turns a free-form profile location into a search
// location understood by the job-search source.
func ResolveSearchLocation(hint string) string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return DefaultSearchLocation
	}

	words := locationWords(hint)
	for _, table := range [][]locationTerm{countryTerms, cityTerms} {
		for _, term := range table {
			if containsWords(words, locationWords(term.match)) {
				return term.search
			}
		}
	}

	if idx := strings.LastIndex(hint, ","); idx >= 0 {
		if last := strings.TrimSpace(hint[idx+1:]); last != "" {
			return last
		}
	}

	return hint
}

func locationWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func containsWords(words, seq []string) bool {
	if len(seq) == 0 {
		return false
	}
	for i := 0; i+len(seq) <= len(words); i++ {
		if slices.Equal(words[i:i+len(seq)], seq) {
			return true
		}
	}
	return false
}
