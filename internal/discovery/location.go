package discovery

import (
	"regexp"
	"strings"
)

var (
	nonLocationChars = regexp.MustCompile(`[^\w\s,]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	commaSpacing     = regexp.MustCompile(`\s*,\s*`)
)

// abbreviations maps lower-cased regional abbreviations to full names.
// Two-letter codes shared between a US state and a country (ca, de, ne,
// sd, il) resolve to the country.
var abbreviations = map[string]string{
	// US states
	"al": "alabama",
	"ak": "alaska",
	"az": "arizona",
	"ar": "arkansas",
	"co": "colorado",
	"ct": "connecticut",
	"fl": "florida",
	"ga": "georgia",
	"hi": "hawaii",
	"id": "idaho",
	"in": "indiana",
	"ia": "iowa",
	"ks": "kansas",
	"ky": "kentucky",
	"la": "louisiana",
	"me": "maine",
	"md": "maryland",
	"ma": "massachusetts",
	"mi": "michigan",
	"mn": "minnesota",
	"ms": "mississippi",
	"mo": "missouri",
	"mt": "montana",
	"nv": "nevada",
	"nh": "new hampshire",
	"nj": "new jersey",
	"nm": "new mexico",
	"ny": "new york",
	"nc": "north carolina",
	"nd": "north dakota",
	"oh": "ohio",
	"ok": "oklahoma",
	"or": "oregon",
	"pa": "pennsylvania",
	"ri": "rhode island",
	"sc": "south carolina",
	"tn": "tennessee",
	"tx": "texas",
	"ut": "utah",
	"vt": "vermont",
	"va": "virginia",
	"wa": "washington",
	"wv": "west virginia",
	"wi": "wisconsin",
	"wy": "wyoming",
	"dc": "district of columbia",

	// countries
	"us":  "united states",
	"usa": "united states",
	"uk":  "united kingdom",
	"gb":  "great britain",
	"uae": "united arab emirates",
	"ca":  "canada",
	"au":  "australia",
	"de":  "germany",
	"fr":  "france",
	"it":  "italy",
	"es":  "spain",
	"pt":  "portugal",
	"nl":  "netherlands",
	"be":  "belgium",
	"ch":  "switzerland",
	"se":  "sweden",
	"no":  "norway",
	"dk":  "denmark",
	"fi":  "finland",
	"pl":  "poland",
	"cz":  "czech republic",
	"at":  "austria",
	"hu":  "hungary",
	"ro":  "romania",
	"bg":  "bulgaria",
	"gr":  "greece",
	"tr":  "turkey",
	"ru":  "russia",
	"ua":  "ukraine",
	"il":  "israel",
	"sa":  "saudi arabia",
	"ae":  "united arab emirates",
	"eg":  "egypt",
	"za":  "south africa",
	"ng":  "nigeria",
	"gh":  "ghana",
	"ke":  "kenya",
	"et":  "ethiopia",
	"tz":  "tanzania",
	"ug":  "uganda",
	"mw":  "malawi",
	"zm":  "zambia",
	"zw":  "zimbabwe",
	"bw":  "botswana",
	"na":  "namibia",
	"mz":  "mozambique",
	"ao":  "angola",
	"cm":  "cameroon",
	"ci":  "ivory coast",
	"sn":  "senegal",
	"ml":  "mali",
	"ne":  "niger",
	"td":  "chad",
	"sd":  "sudan",
}

// Normalize canonicalizes a free-text location string: lower case, word
// characters, whitespace and commas only, single spaces, segments joined as
// "part, part". Idempotent; empty or garbage input yields an empty or
// near-empty string and simply matches nothing downstream.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = nonLocationChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	s = commaSpacing.ReplaceAllString(s, ", ")
	return s
}

// ExpandAbbreviations normalizes the input and replaces every comma-separated
// segment found in the abbreviation table with its full name. Unknown
// segments pass through unchanged.
func ExpandAbbreviations(raw string) string {
	parts := strings.Split(Normalize(raw), ",")
	expanded := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		key := strings.ReplaceAll(part, ".", "")
		if full, ok := abbreviations[key]; ok {
			expanded = append(expanded, full)
			continue
		}
		expanded = append(expanded, part)
	}
	return strings.Join(expanded, ", ")
}

// Segments splits a normalized location into its ordered hierarchy parts,
// most specific first. Empty segments are dropped.
func Segments(normalized string) []string {
	raw := strings.Split(normalized, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
