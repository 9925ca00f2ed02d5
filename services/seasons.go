package services

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"
)

type Hemisphere string

const (
	North Hemisphere = "north"
	South Hemisphere = "south"
)

type Season string

const (
	Summer   Season = "summer"
	Winter   Season = "winter"
	Shoulder Season = "shoulder"
)

type SeasonalPlan struct {
	Destination string     `json:"destination"`
	Month       string     `json:"month"`
	Hemisphere  Hemisphere `json:"hemisphere"`
	Season      Season     `json:"season"`
	Activities  []string   `json:"activities"`
	Tip         string     `json:"tip"`
}

type seasonBundle struct {
	activities []string
	tip        string
}

var seasonBundles = map[Season]seasonBundle{
	Summer: {
		activities: []string{
			"Beaches and water sports",
			"Walking tours and hiking",
			"Terraces and open-air activities",
			"Landscape photography",
			"Festivals and cultural events",
		},
		tip: "Bring sunscreen, light clothing and stay hydrated",
	},
	Winter: {
		activities: []string{
			"Museums and historic sites",
			"Local gastronomy",
			"Theatre and cultural events",
			"Shopping and local markets",
			"Cafés and food experiences",
		},
		tip: "Pack warm clothing, plan around short daylight and book ahead",
	},
	Shoulder: {
		activities: []string{
			"Parks and gardens",
			"Cycling and moderate outdoor activities",
			"Cultural events",
			"Historic and cultural tours",
			"Food and wine experiences",
		},
		tip: "Dress in layers, the weather is changeable",
	},
}

var monthNames = map[string]time.Month{
	"enero": time.January, "january": time.January, "jan": time.January,
	"febrero": time.February, "february": time.February, "feb": time.February,
	"marzo": time.March, "march": time.March, "mar": time.March,
	"abril": time.April, "april": time.April, "apr": time.April,
	"mayo": time.May, "may": time.May,
	"junio": time.June, "june": time.June, "jun": time.June,
	"julio": time.July, "july": time.July, "jul": time.July,
	"agosto": time.August, "august": time.August, "aug": time.August,
	"septiembre": time.September, "setiembre": time.September, "september": time.September, "sep": time.September,
	"octubre": time.October, "october": time.October, "oct": time.October,
	"noviembre": time.November, "november": time.November, "nov": time.November,
	"diciembre": time.December, "december": time.December, "dec": time.December,
}

// ParseMonth accepts Spanish or English month names and 1-12. It returns 0
// for anything else.
func ParseMonth(s string) time.Month {
	s = FoldCityName(s)
	if m, ok := monthNames[s]; ok {
		return m
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 12 {
		return time.Month(n)
	}
	return 0
}

// SeasonFor maps a month to the season in the given hemisphere. Months outside
// the summer and winter sets, including 0, are shoulder season.
func SeasonFor(h Hemisphere, m time.Month) Season {
	northSummer := m == time.June || m == time.July || m == time.August
	northWinter := m == time.December || m == time.January || m == time.February

	switch {
	case h == South && northSummer, h != South && northWinter:
		return Winter
	case h == South && northWinter, h != South && northSummer:
		return Summer
	default:
		return Shoulder
	}
}

type SeasonalAdvisor struct {
	geocoder Geocoder
}

func NewSeasonalAdvisor(geocoder Geocoder) *SeasonalAdvisor {
	return &SeasonalAdvisor{geocoder: geocoder}
}

// Recommend never fails on lookup problems; the hemisphere defaults to north.
func (s *SeasonalAdvisor) Recommend(ctx context.Context, destination, month string) (*SeasonalPlan, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, ValidationError{Field: "destination", Msg: "destination is required"}
	}

	hemisphere := North
	if s.geocoder != nil {
		place, err := s.geocoder.Lookup(ctx, destination)
		switch {
		case err != nil:
			log.Printf("⚠️  Geocoding %q failed: %v — assuming northern hemisphere", destination, err)
		case place == nil:
			debugf("no geocoding match for %q, assuming northern hemisphere", destination)
		case place.Latitude < 0:
			hemisphere = South
		}
	}

	season := SeasonFor(hemisphere, ParseMonth(month))
	bundle := seasonBundles[season]

	activities := make([]string, len(bundle.activities))
	copy(activities, bundle.activities)

	return &SeasonalPlan{
		Destination: destination,
		Month:       strings.TrimSpace(month),
		Hemisphere:  hemisphere,
		Season:      season,
		Activities:  activities,
		Tip:         bundle.tip,
	}, nil
}
