package services

// Tier is a budget level. Tables below are keyed by every Tier value.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// DefaultTier is used for any unrecognized tier name.
const DefaultTier = TierMedium

var tierAliases = map[string]Tier{
	"low": TierLow, "bajo": TierLow, "economico": TierLow, "budget": TierLow,
	"medium": TierMedium, "medio": TierMedium, "mid": TierMedium,
	"high": TierHigh, "alto": TierHigh, "lujo": TierHigh, "luxury": TierHigh,
}

// ParseTier resolves a tier name, reporting whether it was recognized.
func ParseTier(s string) (Tier, bool) {
	t, ok := tierAliases[FoldCityName(s)]
	if !ok {
		return DefaultTier, false
	}
	return t, true
}

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierHigh:
		return "high"
	default:
		return "medium"
	}
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ─── Itinerary profile ────────────────────────────────────────────────────────

type itineraryProfile struct {
	activities   []string
	foodPerDay   float64
	activityDay  float64
	transportDay float64
}

func (p itineraryProfile) dailyCost() float64 {
	return p.foodPerDay + p.activityDay + p.transportDay
}

var itineraryProfiles = [...]itineraryProfile{
	TierLow: {
		activities:   []string{"Free walking tour", "Local markets", "Public parks", "Free museums", "Scenic walks"},
		foodPerDay:   25,
		activityDay:  15,
		transportDay: 10,
	},
	TierMedium: {
		activities:   []string{"Guided tours", "Museums", "Local restaurants", "Cultural activities", "Shopping"},
		foodPerDay:   50,
		activityDay:  40,
		transportDay: 20,
	},
	TierHigh: {
		activities:   []string{"Premium tours", "Exclusive experiences", "Fine dining", "Spa", "Private tours"},
		foodPerDay:   120,
		activityDay:  100,
		transportDay: 40,
	},
}

// ─── Budget profile ───────────────────────────────────────────────────────────

type CostProfile struct {
	FlightBase       float64 `json:"flight_base"`
	NightlyRate      float64 `json:"nightly_rate"`
	FoodPerDay       float64 `json:"food_per_day"`
	ActivitiesPerDay float64 `json:"activities_per_day"`
	TransportPerDay  float64 `json:"transport_per_day"`
	OtherPerDay      float64 `json:"other_per_day"`
}

var costProfiles = [...]CostProfile{
	TierLow:    {FlightBase: 400, NightlyRate: 40, FoodPerDay: 25, ActivitiesPerDay: 15, TransportPerDay: 10, OtherPerDay: 10},
	TierMedium: {FlightBase: 700, NightlyRate: 80, FoodPerDay: 50, ActivitiesPerDay: 40, TransportPerDay: 20, OtherPerDay: 20},
	TierHigh:   {FlightBase: 1500, NightlyRate: 200, FoodPerDay: 120, ActivitiesPerDay: 100, TransportPerDay: 40, OtherPerDay: 50},
}

// CostProfileFor returns the budget constants of a tier.
func CostProfileFor(t Tier) CostProfile {
	return costProfiles[t]
}
