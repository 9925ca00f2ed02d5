package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"travelpro/travelers"
)

const (
	dateLayout = "2006-01-02"

	childFareFactor  = 0.75
	infantFareFactor = 0.15

	maxFareOffers = 3
)

type FareSource string

const (
	SourceLive      FareSource = "live"
	SourceEstimated FareSource = "estimated"
)

// ─── Types ────────────────────────────────────────────────────────────────────

type FareRequest struct {
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string
}

type FareOffer struct {
	Carrier        string  `json:"carrier"`
	CarrierCode    string  `json:"carrier_code,omitempty"`
	DepartureTime  string  `json:"departure_time"`
	ArrivalTime    string  `json:"arrival_time,omitempty"`
	Duration       string  `json:"duration"`
	Stops          int     `json:"stops"`
	PricePerAdult  float64 `json:"price_per_adult"`
	PricePerChild  float64 `json:"price_per_child"`
	PricePerInfant float64 `json:"price_per_infant"`
	ChildrenTotal  float64 `json:"children_total"`
	InfantsTotal   float64 `json:"infants_total"`
	GroupTotal     float64 `json:"group_total"`
	Currency       string  `json:"currency"`
}

type PurchaseLink struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

type FareSearchResult struct {
	OriginCity      string           `json:"origin_city"`
	DestinationCity string           `json:"destination_city"`
	OriginCode      string           `json:"origin_code"`
	DestinationCode string           `json:"destination_code"`
	DepartDate      string           `json:"depart_date"`
	ReturnDate      string           `json:"return_date,omitempty"`
	RoundTrip       bool             `json:"round_trip"`
	Travelers       travelers.Counts `json:"travelers"`
	Offers          []FareOffer      `json:"offers"`
	Links           []PurchaseLink   `json:"links"`
	Source          FareSource       `json:"source"`
}

// ─── Estimator ────────────────────────────────────────────────────────────────

type FareEstimator struct {
	quoter FareQuoter
	now    func() time.Time

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

type FareOption func(*FareEstimator)

// WithClock replaces time.Now for past-date checks.
func WithClock(now func() time.Time) FareOption {
	return func(e *FareEstimator) { e.now = now }
}

// NewFareEstimator builds an estimator. quoter may be nil, in which case only
// estimated fares are produced. rng drives the synthetic generator.
func NewFareEstimator(quoter FareQuoter, rng *rand.Rand, opts ...FareOption) *FareEstimator {
	if rng == nil {
		rng = newTimeSeededRand()
	}
	e := &FareEstimator{quoter: quoter, rng: rng, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search validates dates and cities, then prices the route for the group in
// reg. It falls back to estimated fares whenever live quotes are unavailable
// or empty, so a successful call always carries offers and links.
func (e *FareEstimator) Search(ctx context.Context, reg *travelers.Registry, req FareRequest) (*FareSearchResult, error) {
	if err := e.validateDates(req); err != nil {
		return nil, err
	}

	from, to, err := ResolveRoute(req.Origin, req.Destination)
	if err != nil {
		return nil, err
	}

	counts := travelers.Counts{}
	if reg != nil {
		counts = reg.Counts()
	}
	adults := max(counts.Adults, 1)

	result := &FareSearchResult{
		OriginCity:      strings.TrimSpace(req.Origin),
		DestinationCity: strings.TrimSpace(req.Destination),
		OriginCode:      from,
		DestinationCode: to,
		DepartDate:      req.DepartDate,
		ReturnDate:      req.ReturnDate,
		RoundTrip:       req.ReturnDate != "",
		Travelers:       travelers.Counts{Adults: adults, Children: counts.Children, Infants: counts.Infants},
	}

	var live []QuotedFare
	if e.quoter != nil {
		live, err = e.quoter.SearchFlights(ctx, FareQuery{
			Origin:      from,
			Destination: to,
			DepartDate:  req.DepartDate,
			ReturnDate:  req.ReturnDate,
			Adults:      adults,
		})
	}

	switch {
	case e.quoter == nil:
		result.Offers = e.syntheticOffers(from, to, result.RoundTrip, result.Travelers)
		result.Source = SourceEstimated
	case err != nil:
		log.Printf("⚠️  Live fare search failed: %v — using estimated fares", err)
		result.Offers = e.syntheticOffers(from, to, result.RoundTrip, result.Travelers)
		result.Source = SourceEstimated
	case len(live) == 0:
		log.Println("⚠️  Live fare search returned 0 offers — using estimated fares")
		result.Offers = e.syntheticOffers(from, to, result.RoundTrip, result.Travelers)
		result.Source = SourceEstimated
	default:
		log.Printf("✅ Live fare search: %d offers for %s -> %s", len(live), from, to)
		result.Offers = liveOffers(live, result.Travelers)
		result.Source = SourceLive
	}

	result.Links = PurchaseLinks(from, to, req.DepartDate, req.ReturnDate, result.Travelers)
	return result, nil
}

func (e *FareEstimator) validateDates(req FareRequest) error {
	now := e.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	suggested := today.AddDate(0, 0, 30).Format(dateLayout)

	depart, err := time.Parse(dateLayout, strings.TrimSpace(req.DepartDate))
	if err != nil {
		return DateError{Kind: InvalidDate, Value: req.DepartDate, Suggested: suggested}
	}
	if depart.Before(today) {
		return DateError{Kind: DateInPast, Value: req.DepartDate, Suggested: suggested}
	}

	if req.ReturnDate == "" {
		return nil
	}
	ret, err := time.Parse(dateLayout, strings.TrimSpace(req.ReturnDate))
	if err != nil {
		return DateError{Kind: InvalidDate, Value: req.ReturnDate, Suggested: depart.AddDate(0, 0, 7).Format(dateLayout)}
	}
	if ret.Before(depart) {
		return ValidationError{Field: "return_date", Msg: "return date must not be before departure date"}
	}
	return nil
}

// ─── Live path ────────────────────────────────────────────────────────────────

func liveOffers(fares []QuotedFare, c travelers.Counts) []FareOffer {
	if len(fares) > maxFareOffers {
		fares = fares[:maxFareOffers]
	}

	offers := make([]FareOffer, 0, len(fares))
	for _, f := range fares {
		adult := f.PricePerAdult
		childTotal := adult * childFareFactor * float64(c.Children)
		infantTotal := adult * infantFareFactor * float64(c.Infants)

		offers = append(offers, FareOffer{
			Carrier:        f.Carrier,
			CarrierCode:    f.CarrierCode,
			DepartureTime:  f.DepartureTime,
			ArrivalTime:    f.ArrivalTime,
			Duration:       f.Duration,
			Stops:          f.Stops,
			PricePerAdult:  round2(adult),
			PricePerChild:  round2(adult * childFareFactor),
			PricePerInfant: round2(adult * infantFareFactor),
			ChildrenTotal:  round2(childTotal),
			InfantsTotal:   round2(infantTotal),
			GroupTotal:     round2(adult*float64(c.Adults) + childTotal + infantTotal),
			Currency:       f.Currency,
		})
	}
	return offers
}

// ─── Estimated (fallback) path ────────────────────────────────────────────────

type routeKey struct{ from, to string }

var knownRoutePrices = map[routeKey]float64{
	{"LIM", "CUZ"}: 150,
	{"LIM", "MAD"}: 800,
	{"MAD", "BCN"}: 120,
	{"BUE", "GIG"}: 350,
	{"MIA", "LIM"}: 600,
	{"BOG", "CTG"}: 180,
}

const defaultRoutePrice = 500

type fallbackAirline struct {
	name string
	code string
}

var fallbackAirlines = []fallbackAirline{
	{"LATAM Airlines", "LA"},
	{"Avianca", "AV"},
	{"Copa Airlines", "CM"},
	{"Iberia", "IB"},
	{"American Airlines", "AA"},
	{"Air Europa", "UX"},
}

var (
	fallbackDepartures = []string{"06:30", "10:15", "14:45", "18:30", "22:00"}
	fallbackDurations  = []string{"2h 30m", "3h 15m", "5h 45m", "8h 20m"}
)

// BaseRoutePrice looks the route up in both directions.
func BaseRoutePrice(from, to string) float64 {
	if p, ok := knownRoutePrices[routeKey{from, to}]; ok {
		return p
	}
	if p, ok := knownRoutePrices[routeKey{to, from}]; ok {
		return p
	}
	return defaultRoutePrice
}

func (e *FareEstimator) syntheticOffers(from, to string, roundTrip bool, c travelers.Counts) []FareOffer {
	base := BaseRoutePrice(from, to)
	multiplier := 1.0
	if roundTrip {
		multiplier = 2
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	offers := make([]FareOffer, 0, maxFareOffers)
	for _, idx := range e.rng.Perm(len(fallbackAirlines))[:maxFareOffers] {
		airline := fallbackAirlines[idx]
		variation := 0.85 + e.rng.Float64()*0.40

		adult := math.Floor(base * variation * multiplier)
		child := math.Floor(adult * childFareFactor)
		infant := math.Floor(adult * infantFareFactor)
		childTotal := child * float64(c.Children)
		infantTotal := infant * float64(c.Infants)

		total := adult*float64(c.Adults) + childTotal + infantTotal
		if total == 0 {
			total = adult
		}

		offers = append(offers, FareOffer{
			Carrier:        airline.name,
			CarrierCode:    airline.code,
			DepartureTime:  fallbackDepartures[e.rng.Intn(len(fallbackDepartures))],
			Duration:       fallbackDurations[e.rng.Intn(len(fallbackDurations))],
			PricePerAdult:  adult,
			PricePerChild:  child,
			PricePerInfant: infant,
			ChildrenTotal:  childTotal,
			InfantsTotal:   infantTotal,
			GroupTotal:     total,
			Currency:       "USD",
		})
	}
	return offers
}

// ─── Purchase links ───────────────────────────────────────────────────────────

// PurchaseLinks builds the Google Flights, Skyscanner and Kayak search URLs.
func PurchaseLinks(from, to, depart, ret string, c travelers.Counts) []PurchaseLink {
	google := fmt.Sprintf("https://www.google.com/flights?hl=es#flt=%s.%s.%s", from, to, depart)
	if ret != "" {
		google += fmt.Sprintf("*%s.%s.%s", to, from, ret)
	}
	google += ";c:EUR;e:1;sd:1;t:f"

	sky := fmt.Sprintf("https://www.skyscanner.com/transport/flights/%s/%s/%s",
		from, to, strings.ReplaceAll(depart, "-", ""))
	if ret != "" {
		sky += "/" + strings.ReplaceAll(ret, "-", "")
	}
	sky += fmt.Sprintf("/?adultsv1=%d", c.Adults)
	if c.Children > 0 {
		sky += fmt.Sprintf("&childrenv1=%d", c.Children)
	}

	kayak := fmt.Sprintf("https://www.kayak.com/flights/%s-%s/%s", from, to, depart)
	if ret != "" {
		kayak += "/" + ret
	}
	kayak += fmt.Sprintf("/%dadults", c.Adults)
	if c.Children > 0 {
		kayak += fmt.Sprintf("/%dchildren", c.Children)
	}

	return []PurchaseLink{
		{Provider: "Google Flights", URL: google},
		{Provider: "Skyscanner", URL: sky},
		{Provider: "Kayak", URL: kayak},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
