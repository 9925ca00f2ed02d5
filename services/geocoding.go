package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type GeoPlace struct {
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	Population int64   `json:"population"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// Geocoder resolves a place name to its best match. A nil place with a nil
// error means the service answered but knows no such place.
type Geocoder interface {
	Lookup(ctx context.Context, name string) (*GeoPlace, error)
}

// OpenMeteoGeocoder uses the open-meteo geocoding search API.
type OpenMeteoGeocoder struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

func NewOpenMeteoGeocoder(baseURL, language string, timeout time.Duration) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = "https://geocoding-api.open-meteo.com"
	}
	if language == "" {
		language = "es"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenMeteoGeocoder{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (g *OpenMeteoGeocoder) Lookup(ctx context.Context, name string) (*GeoPlace, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", "1")
	params.Set("language", g.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/search?"+params.Encode(), nil)
	if err != nil {
		return nil, unavailable("geocoding", err)
	}
	req.Header.Set("User-Agent", userAgent)

	debugf("Geocoding: looking up %q", name)
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, unavailable("geocoding", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unavailable("geocoding", fmt.Errorf("status %d", resp.StatusCode))
	}

	var result struct {
		Results []GeoPlace `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, unavailable("geocoding", fmt.Errorf("failed to parse response: %w", err))
	}
	if len(result.Results) == 0 {
		return nil, nil
	}
	return &result.Results[0], nil
}

var _ Geocoder = (*OpenMeteoGeocoder)(nil)
