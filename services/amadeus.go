package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ─── Types ────────────────────────────────────────────────────────────────────

// FareQuery is one route/date/adult-count request to a fare-quote provider.
// ReturnDate is empty for one-way trips.
type FareQuery struct {
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string
	Adults      int
}

// QuotedFare is a provider offer reduced to what the estimator prices.
type QuotedFare struct {
	Carrier       string
	CarrierCode   string
	DepartureTime string
	ArrivalTime   string
	Duration      string
	Stops         int
	PricePerAdult float64
	Currency      string
}

// FareQuoter looks up live fares. Any failure must wrap ErrUnavailable.
type FareQuoter interface {
	SearchFlights(ctx context.Context, q FareQuery) ([]QuotedFare, error)
}

// ─── Amadeus Client ───────────────────────────────────────────────────────────

const (
	AmadeusTestURL       = "https://test.api.amadeus.com"
	AmadeusProductionURL = "https://api.amadeus.com"

	maxOffersRequested = 5
)

type AmadeusConfig struct {
	ClientID      string
	ClientSecret  string
	BaseURL       string
	TokenTimeout  time.Duration
	SearchTimeout time.Duration
}

type AmadeusClient struct {
	clientID      string
	clientSecret  string
	baseURL       string
	tokenTimeout  time.Duration
	searchTimeout time.Duration
	accessToken   string
	tokenExpiry   time.Time
	mu            sync.Mutex
	httpClient    *http.Client
}

func NewAmadeusClient(cfg AmadeusConfig) *AmadeusClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = AmadeusTestURL
	}
	if cfg.TokenTimeout <= 0 {
		cfg.TokenTimeout = 10 * time.Second
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 15 * time.Second
	}

	c := &AmadeusClient{
		clientID:      cfg.ClientID,
		clientSecret:  cfg.ClientSecret,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		tokenTimeout:  cfg.TokenTimeout,
		searchTimeout: cfg.SearchTimeout,
		httpClient:    &http.Client{},
	}

	if !c.Configured() {
		log.Println("⚠️  Amadeus credentials not set — flight search will use estimated fares")
	}
	return c
}

func (c *AmadeusClient) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// ─── OAuth2 Token ─────────────────────────────────────────────────────────────

func (c *AmadeusClient) refreshToken(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.tokenTimeout)
	defer cancel()

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}
	if result.AccessToken == "" {
		return fmt.Errorf("token response has no access_token")
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return nil
}

func (c *AmadeusClient) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		if err := c.refreshToken(ctx); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

func (c *AmadeusClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("amadeus error (%d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// ─── Flight Search ────────────────────────────────────────────────────────────

// SearchFlights queries the Flight Offers Search API once. No retries.
func (c *AmadeusClient) SearchFlights(ctx context.Context, q FareQuery) ([]QuotedFare, error) {
	if !c.Configured() {
		return nil, unavailable("amadeus", fmt.Errorf("not configured"))
	}

	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartDate)
	params.Set("adults", strconv.Itoa(max(q.Adults, 1)))
	params.Set("max", strconv.Itoa(maxOffersRequested))
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}

	debugf("Amadeus: searching %s -> %s on %s (%d adults)", q.Origin, q.Destination, q.DepartDate, q.Adults)
	body, err := c.get(ctx, "/v2/shopping/flight-offers", params)
	if err != nil {
		return nil, unavailable("amadeus flight search", err)
	}

	fares, err := parseFlightOffers(body)
	if err != nil {
		return nil, unavailable("amadeus flight search", err)
	}
	return fares, nil
}

// Amadeus flight offers response structures
type amadeusFlightOffersResponse struct {
	Data []amadeusFlightOffer `json:"data"`
}

type amadeusSegment struct {
	Departure struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"departure"`
	Arrival struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"arrival"`
	CarrierCode string `json:"carrierCode"`
	Number      string `json:"number"`
}

type amadeusFlightOffer struct {
	Price struct {
		Total      string `json:"total"`
		GrandTotal string `json:"grandTotal"`
		Currency   string `json:"currency"`
	} `json:"price"`
	Itineraries []struct {
		Duration string           `json:"duration"`
		Segments []amadeusSegment `json:"segments"`
	} `json:"itineraries"`
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
}

func parseFlightOffers(data []byte) ([]QuotedFare, error) {
	var resp amadeusFlightOffersResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse flight offers: %w", err)
	}

	fares := make([]QuotedFare, 0, len(resp.Data))
	for _, offer := range resp.Data {
		if len(offer.Itineraries) < 1 || len(offer.Itineraries[0].Segments) == 0 {
			continue
		}

		price := parsePrice(offer.Price.Total)
		if price <= 0 {
			price = parsePrice(offer.Price.GrandTotal)
		}
		if price <= 0 {
			continue
		}

		outbound := offer.Itineraries[0]
		first := outbound.Segments[0]
		last := outbound.Segments[len(outbound.Segments)-1]

		code := first.CarrierCode
		if code == "" && len(offer.ValidatingAirlineCodes) > 0 {
			code = offer.ValidatingAirlineCodes[0]
		}

		currency := offer.Price.Currency
		if currency == "" {
			currency = "EUR"
		}

		fares = append(fares, QuotedFare{
			Carrier:       airlineName(code),
			CarrierCode:   code,
			DepartureTime: clockTime(first.Departure.At),
			ArrivalTime:   clockTime(last.Arrival.At),
			Duration:      parseDuration(outbound.Duration),
			Stops:         len(outbound.Segments) - 1,
			PricePerAdult: price,
			Currency:      currency,
		})
	}

	return fares, nil
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// parseDuration converts ISO 8601 duration (PT5H30M) to human readable (5h 30m)
func parseDuration(iso string) string {
	if iso == "" {
		return ""
	}
	iso = strings.TrimPrefix(iso, "PT")
	result := ""
	hIdx := strings.Index(iso, "H")
	mIdx := strings.Index(iso, "M")
	if hIdx >= 0 {
		result += iso[:hIdx] + "h"
		iso = iso[hIdx+1:]
		mIdx = strings.Index(iso, "M")
	}
	if mIdx >= 0 && mIdx < len(iso) {
		if result != "" {
			result += " "
		}
		result += iso[:mIdx] + "m"
	}
	return result
}

// clockTime extracts HH:MM from an ISO local date-time (2025-12-15T08:30:00).
func clockTime(at string) string {
	if i := strings.Index(at, "T"); i >= 0 && len(at) >= i+6 {
		return at[i+1 : i+6]
	}
	return at
}

func parsePrice(s string) float64 {
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return price
}

// airlineName returns full airline name from IATA code
func airlineName(code string) string {
	names := map[string]string{
		"LA": "LATAM Airlines",
		"AV": "Avianca",
		"CM": "Copa Airlines",
		"IB": "Iberia",
		"UX": "Air Europa",
		"VY": "Vueling",
		"AM": "Aeroméxico",
		"AR": "Aerolíneas Argentinas",
		"JA": "JetSMART",
		"H2": "Sky Airline",
		"TK": "Turkish Airlines",
		"LH": "Lufthansa",
		"AF": "Air France",
		"BA": "British Airways",
		"EK": "Emirates",
		"QR": "Qatar Airways",
		"FR": "Ryanair",
		"U2": "EasyJet",
		"UA": "United Airlines",
		"AA": "American Airlines",
		"DL": "Delta Air Lines",
		"KL": "KLM",
		"AZ": "ITA Airways",
		"LX": "Swiss International Air Lines",
		"SQ": "Singapore Airlines",
		"CX": "Cathay Pacific",
		"NH": "ANA",
		"JL": "Japan Airlines",
		"QF": "Qantas",
	}
	if name, ok := names[code]; ok {
		return name
	}
	if code != "" {
		return code
	}
	return "Unknown Airline"
}

var _ FareQuoter = (*AmadeusClient)(nil)
