package services

import (
	"context"
	"log"
	"math"
	"regexp"
	"strings"
)

const (
	maxDescriptionRunes = 500
	truncationMarker    = "..."
	minDescriptionRunes = 100
)

// langPattern limits language codes to what can safely become a Wikipedia
// subdomain.
var langPattern = regexp.MustCompile(`^[a-z]{2,3}(-[a-z]+)?$`)

type ClimateBand string

const (
	Tropical  ClimateBand = "tropical"
	Temperate ClimateBand = "temperate"
	Cold      ClimateBand = "cold"
)

// ClimateForLatitude bands by absolute latitude: tropics below 23.5°, polar
// circles from 66.5°.
func ClimateForLatitude(lat float64) ClimateBand {
	switch a := math.Abs(lat); {
	case a < 23.5:
		return Tropical
	case a < 66.5:
		return Temperate
	default:
		return Cold
	}
}

type BriefStatus string

const (
	BriefComplete BriefStatus = "complete"
	BriefPartial  BriefStatus = "partial"
)

type DestinationBrief struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Country     string      `json:"country,omitempty"`
	Population  *int64      `json:"population,omitempty"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Climate     ClimateBand `json:"climate_band,omitempty"`
	Status      BriefStatus `json:"status"`
}

type DestinationAggregator struct {
	summaries SummaryLookup
	geocoder  Geocoder
}

func NewDestinationAggregator(summaries SummaryLookup, geocoder Geocoder) *DestinationAggregator {
	return &DestinationAggregator{summaries: summaries, geocoder: geocoder}
}

// Describe merges the encyclopedic summary and the geocoding result for city.
// Either half may be missing; only when both are empty does it fail.
func (a *DestinationAggregator) Describe(ctx context.Context, city, lang string) (*DestinationBrief, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ValidationError{Field: "city", Msg: "destination name is required"}
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = "es"
	}
	if !langPattern.MatchString(lang) {
		return nil, ValidationError{Field: "lang", Msg: "language must be a code such as es, en or zh-yue"}
	}

	brief := &DestinationBrief{}
	hasText := a.fillSummary(ctx, brief, city, lang)
	hasGeo := a.fillGeo(ctx, brief, city)

	switch {
	case hasText && hasGeo:
		brief.Status = BriefComplete
	case hasText || hasGeo:
		brief.Status = BriefPartial
	default:
		return nil, NotFoundError{Resource: "destination", Name: city}
	}
	return brief, nil
}

func (a *DestinationAggregator) fillSummary(ctx context.Context, brief *DestinationBrief, city, lang string) bool {
	if a.summaries == nil {
		return false
	}

	s, err := a.summaries.Summary(ctx, city, lang)
	if err != nil {
		log.Printf("⚠️  Summary lookup for %q failed: %v", city, err)
		return false
	}

	if needsDisambiguation(s.Extract) {
		if better := a.disambiguate(ctx, city, lang); better != nil {
			s = better
		}
	}

	if s.Extract == "" {
		return false
	}
	brief.Title = s.Title
	brief.Description = TruncateDescription(s.Extract)
	return true
}

// disambiguate searches "<city> <qualifier>" and re-fetches the top title.
func (a *DestinationAggregator) disambiguate(ctx context.Context, city, lang string) *Summary {
	titles, err := a.summaries.SearchTitles(ctx, city+" "+cityQualifier(lang), lang, 1)
	if err != nil || len(titles) == 0 {
		if err != nil {
			debugf("disambiguation search for %q failed: %v", city, err)
		}
		return nil
	}

	s, err := a.summaries.Summary(ctx, titles[0], lang)
	if err != nil {
		debugf("summary for %q failed: %v", titles[0], err)
		return nil
	}
	return s
}

func (a *DestinationAggregator) fillGeo(ctx context.Context, brief *DestinationBrief, city string) bool {
	if a.geocoder == nil {
		return false
	}

	place, err := a.geocoder.Lookup(ctx, city)
	if err != nil {
		log.Printf("⚠️  Geocoding %q failed: %v", city, err)
		return false
	}
	if place == nil {
		return false
	}

	brief.Country = place.Country
	if place.Population > 0 {
		pop := place.Population
		brief.Population = &pop
	}
	lat := place.Latitude
	brief.Latitude = &lat
	brief.Climate = ClimateForLatitude(lat)
	return true
}

var disambiguationMarkers = []string{"mitolog", "mytholog", "disambiguation", "desambiguación"}

func needsDisambiguation(extract string) bool {
	if len([]rune(extract)) < minDescriptionRunes {
		return true
	}
	lower := strings.ToLower(extract)
	for _, m := range disambiguationMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func cityQualifier(lang string) string {
	switch lang {
	case "es":
		return "ciudad"
	case "pt":
		return "cidade"
	default:
		return "city"
	}
}

// TruncateDescription caps text at 500 characters plus the "..." marker.
func TruncateDescription(s string) string {
	r := []rune(s)
	if len(r) <= maxDescriptionRunes {
		return s
	}
	return string(r[:maxDescriptionRunes]) + truncationMarker
}
