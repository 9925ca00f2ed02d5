package services

import (
	"math/rand"
	"strings"
	"sync"

	"travelpro/travelers"
)

type DayRole string

const (
	RoleArrival   DayRole = "arrival"
	RoleDeparture DayRole = "departure"
	RoleRegular   DayRole = "regular"
)

type ItineraryDay struct {
	DayNumber              int      `json:"day_number"`
	Role                   DayRole  `json:"role"`
	Activities             []string `json:"activities"`
	EstimatedCostPerPerson float64  `json:"estimated_cost_per_person"`
}

type Itinerary struct {
	Destination    string         `json:"destination"`
	Tier           Tier           `json:"tier"`
	Travelers      int            `json:"travelers"`
	Days           []ItineraryDay `json:"days"`
	PerPersonTotal float64        `json:"per_person_total"`
	GroupTotal     float64        `json:"group_total"`
}

var (
	arrivalActivities  = []string{"Historic centre stroll", "Orientation tour", "Welcome dinner"}
	farewellActivities = []string{"Last-minute shopping", "Farewell walk", "Quick final visit"}
)

const (
	checkInActivity  = "Arrival and hotel check-in"
	checkOutActivity = "Check-out and return flight"
)

type ItineraryBuilder struct {
	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

func NewItineraryBuilder(rng *rand.Rand) *ItineraryBuilder {
	if rng == nil {
		rng = newTimeSeededRand()
	}
	return &ItineraryBuilder{rng: rng}
}

// Build plans days of activities for the group in reg. Day 1 is always the
// arrival day, so a one-day trip has no departure day.
func (b *ItineraryBuilder) Build(reg *travelers.Registry, destination string, days int, tierName string) (*Itinerary, error) {
	if days < 1 {
		return nil, ValidationError{Field: "days", Msg: "trip must last at least one day"}
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, ValidationError{Field: "destination", Msg: "destination is required"}
	}

	tier, _ := ParseTier(tierName)
	profile := itineraryProfiles[tier]
	daily := profile.dailyCost()

	it := &Itinerary{
		Destination: destination,
		Tier:        tier,
		Travelers:   groupSize(reg),
		Days:        make([]ItineraryDay, 0, days),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for n := 1; n <= days; n++ {
		day := ItineraryDay{DayNumber: n, EstimatedCostPerPerson: daily}

		switch {
		case n == 1:
			day.Role = RoleArrival
			day.Activities = []string{checkInActivity, b.pick(arrivalActivities)}
		case n == days:
			day.Role = RoleDeparture
			day.Activities = []string{b.pick(farewellActivities), checkOutActivity}
		default:
			day.Role = RoleRegular
			day.Activities = []string{b.pick(profile.activities), b.pick(profile.activities)}
		}

		it.PerPersonTotal += daily
		it.Days = append(it.Days, day)
	}

	it.GroupTotal = it.PerPersonTotal * float64(it.Travelers)
	return it, nil
}

func (b *ItineraryBuilder) pick(options []string) string {
	return options[b.rng.Intn(len(options))]
}

// groupSize counts registered travelers, treating an empty session as one.
func groupSize(reg *travelers.Registry) int {
	if reg == nil {
		return 1
	}
	return max(reg.Len(), 1)
}
