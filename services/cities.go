package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// cityCodes maps folded city names (lowercase, no accents) to IATA city or
// airport codes. Spanish and English spellings share a code.
var cityCodes = map[string]string{
	// South America
	"lima": "LIM", "cusco": "CUZ", "cuzco": "CUZ", "arequipa": "AQP",
	"buenos aires": "BUE", "santiago": "SCL",
	"bogota": "BOG", "medellin": "MDE", "cartagena": "CTG",
	"quito": "UIO", "guayaquil": "GYE",
	"rio de janeiro": "GIG", "sao paulo": "GRU", "brasilia": "BSB",
	"montevideo": "MVD", "asuncion": "ASU",
	"la paz": "LPB", "caracas": "CCS",

	// North America
	"new york": "NYC", "nueva york": "NYC", "miami": "MIA",
	"los angeles": "LAX", "chicago": "CHI", "houston": "HOU",
	"san francisco": "SFO", "washington": "WAS", "boston": "BOS",
	"las vegas": "LAS", "orlando": "MCO", "seattle": "SEA",
	"mexico": "MEX", "ciudad de mexico": "MEX", "mexico city": "MEX",
	"cancun": "CUN", "guadalajara": "GDL",
	"toronto": "YYZ", "vancouver": "YVR", "montreal": "YUL",

	// Europe
	"madrid": "MAD", "barcelona": "BCN", "sevilla": "SVQ", "seville": "SVQ",
	"paris": "PAR",
	"londres": "LON", "london": "LON",
	"roma": "ROM", "rome": "ROM",
	"milan": "MIL", "milano": "MIL",
	"berlin": "BER",
	"amsterdam": "AMS",
	"bruselas": "BRU", "brussels": "BRU",
	"viena": "VIE", "vienna": "VIE",
	"praga": "PRG", "prague": "PRG",
	"lisboa": "LIS", "lisbon": "LIS",
	"dublin": "DUB",
	"atenas": "ATH", "athens": "ATH",
	"estambul": "IST", "istanbul": "IST",
	"moscu": "MOW", "moscow": "MOW",
	"zurich": "ZRH",

	// Asia
	"tokyo": "TYO", "tokio": "TYO", "toquio": "TYO",
	"bangkok": "BKK",
	"singapur": "SIN", "singapore": "SIN",
	"hong kong": "HKG",
	"dubai": "DXB",
	"delhi": "DEL", "nueva delhi": "DEL", "new delhi": "DEL",
	"mumbai": "BOM", "bombay": "BOM",
	"shanghai": "SHA",
	"beijing": "BJS", "pekin": "BJS",
	"seul": "SEL", "seoul": "SEL",
	"taipei": "TPE",
	"manila": "MNL",

	// Oceania
	"sydney": "SYD", "melbourne": "MEL", "auckland": "AKL",
}

// SupportedCityExamples is shown to the user when a city cannot be resolved.
var SupportedCityExamples = []string{
	"Lima", "Madrid", "Barcelona", "París", "Londres", "New York", "Miami", "Cancún",
}

// FoldCityName lowercases, strips diacritics and collapses whitespace.
func FoldCityName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// ResolveCity returns the route code for a free-text city name.
func ResolveCity(name string) (string, bool) {
	code, ok := cityCodes[FoldCityName(name)]
	return code, ok
}

// ResolveRoute resolves both ends of a route. When neither resolves, the
// error names both cities.
func ResolveRoute(origin, destination string) (string, string, error) {
	from, okFrom := ResolveCity(origin)
	to, okTo := ResolveCity(destination)

	var missing []string
	if !okFrom {
		missing = append(missing, origin)
	}
	if !okTo {
		missing = append(missing, destination)
	}
	if len(missing) > 0 {
		return "", "", UnknownCityError{Names: missing, Supported: SupportedCityExamples}
	}
	return from, to, nil
}
