package services

import (
	"math"
	"strings"

	"travelpro/travelers"
)

const (
	childFlightDiscount  = 0.25
	infantFlightDiscount = 0.85
)

type BudgetBreakdown struct {
	Destination string           `json:"destination"`
	Tier        Tier             `json:"tier"`
	Days        int              `json:"days"`
	Travelers   travelers.Counts `json:"travelers"`
	Flights     float64          `json:"flights"`
	Lodging     float64          `json:"lodging"`
	Food        float64          `json:"food"`
	Activities  float64          `json:"activities"`
	Transport   float64          `json:"transport"`
	Incidentals float64          `json:"incidentals"`
	Total       float64          `json:"total"`
	PerPerson   float64          `json:"per_person"`
}

// EstimateBudget prices a trip for the group in reg. The flight base applies
// to every traveler with child and infant discounts taken off it; lodging is
// one shared cost per night; everything else is per day per person.
func EstimateBudget(reg *travelers.Registry, destination string, days int, tierName string) (*BudgetBreakdown, error) {
	if days < 1 {
		return nil, ValidationError{Field: "days", Msg: "trip must last at least one day"}
	}

	tier, _ := ParseTier(tierName)
	p := CostProfileFor(tier)

	counts := travelers.Counts{}
	if reg != nil {
		counts = reg.Counts()
	}
	people := counts.Total()
	if people == 0 {
		people = 1
		counts.Adults = 1
	}

	flights := p.FlightBase * float64(people)
	flights -= p.FlightBase * childFlightDiscount * float64(counts.Children)
	flights -= p.FlightBase * infantFlightDiscount * float64(counts.Infants)
	flights = math.Max(flights, 0)

	perDay := float64(days * people)
	b := &BudgetBreakdown{
		Destination: strings.TrimSpace(destination),
		Tier:        tier,
		Days:        days,
		Travelers:   counts,
		Flights:     flights,
		Lodging:     p.NightlyRate * float64(days),
		Food:        p.FoodPerDay * perDay,
		Activities:  p.ActivitiesPerDay * perDay,
		Transport:   p.TransportPerDay * perDay,
		Incidentals: p.OtherPerDay * perDay,
	}
	b.Total = b.Flights + b.Lodging + b.Food + b.Activities + b.Transport + b.Incidentals
	b.PerPerson = round2(b.Total / float64(people))
	return b, nil
}
