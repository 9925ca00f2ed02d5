package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const offersJSON = `{"data":[
 {"price":{"total":"210.50","currency":"USD"},
  "itineraries":[{"duration":"PT1H20M","segments":[
    {"departure":{"iataCode":"LIM","at":"2030-04-01T08:30:00"},"arrival":{"iataCode":"CUZ","at":"2030-04-01T09:50:00"},"carrierCode":"LA"}]}]},
 {"price":{"grandTotal":"180"},
  "itineraries":[{"duration":"PT3H","segments":[
    {"departure":{"at":"2030-04-01T06:00:00"},"arrival":{"at":"2030-04-01T07:00:00"},"carrierCode":"H2"},
    {"departure":{"at":"2030-04-01T07:45:00"},"arrival":{"at":"2030-04-01T09:00:00"},"carrierCode":"H2"}]}]},
 {"price":{"total":"99"},"itineraries":[]}
]}`

func newAmadeusServer(t *testing.T, tokenCalls *int32, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/security/oauth2/token":
			atomic.AddInt32(tokenCalls, 1)
			assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
			fmt.Fprint(w, `{"access_token":"tok","expires_in":1799}`)
		case "/v2/shopping/flight-offers":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			assert.Equal(t, "5", r.URL.Query().Get("max"))
			assert.Equal(t, "2", r.URL.Query().Get("adults"))
			w.WriteHeader(status)
			fmt.Fprint(w, offersJSON)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAmadeusClient_SearchFlights(t *testing.T) {
	var tokenCalls int32
	srv := newAmadeusServer(t, &tokenCalls, http.StatusOK)
	c := NewAmadeusClient(AmadeusConfig{ClientID: "id", ClientSecret: "secret", BaseURL: srv.URL})

	q := FareQuery{Origin: "LIM", Destination: "CUZ", DepartDate: "2030-04-01", Adults: 2}
	fares, err := c.SearchFlights(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, fares, 2)

	assert.Equal(t, "LATAM Airlines", fares[0].Carrier)
	assert.Equal(t, "08:30", fares[0].DepartureTime)
	assert.Equal(t, "09:50", fares[0].ArrivalTime)
	assert.Equal(t, "1h 20m", fares[0].Duration)
	assert.Equal(t, 210.50, fares[0].PricePerAdult)
	assert.Equal(t, "USD", fares[0].Currency)

	assert.Equal(t, 1, fares[1].Stops)
	assert.Equal(t, 180.0, fares[1].PricePerAdult)
	assert.Equal(t, "EUR", fares[1].Currency)

	_, err = c.SearchFlights(context.Background(), q)
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&tokenCalls), "token should be cached")
}

func TestAmadeusClient_ErrorStatus(t *testing.T) {
	var tokenCalls int32
	srv := newAmadeusServer(t, &tokenCalls, http.StatusInternalServerError)
	c := NewAmadeusClient(AmadeusConfig{ClientID: "id", ClientSecret: "secret", BaseURL: srv.URL})

	_, err := c.SearchFlights(context.Background(), FareQuery{Origin: "LIM", Destination: "CUZ", DepartDate: "2030-04-01", Adults: 2})
	assert.True(t, IsUnavailable(err))
}

func TestAmadeusClient_NotConfigured(t *testing.T) {
	c := NewAmadeusClient(AmadeusConfig{})
	assert.False(t, c.Configured())

	_, err := c.SearchFlights(context.Background(), FareQuery{})
	assert.True(t, IsUnavailable(err))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, "5h 30m", parseDuration("PT5H30M"))
	assert.Equal(t, "2h", parseDuration("PT2H"))
	assert.Equal(t, "45m", parseDuration("PT45M"))
	assert.Equal(t, "", parseDuration(""))
}

func TestFareEstimator_FallsBackWhenAmadeusTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/security/oauth2/token":
			fmt.Fprint(w, `{"access_token":"tok","expires_in":1799}`)
		default:
			select {
			case <-time.After(2 * time.Second):
				fmt.Fprint(w, offersJSON)
			case <-r.Context().Done():
			}
		}
	}))
	defer srv.Close()

	client := NewAmadeusClient(AmadeusConfig{
		ClientID:      "id",
		ClientSecret:  "secret",
		BaseURL:       srv.URL,
		SearchTimeout: 50 * time.Millisecond,
	})

	start := time.Now()
	res, err := newEstimator(client, 1).Search(context.Background(), nil, FareRequest{
		Origin: "Lima", Destination: "Cusco", DepartDate: "2030-04-01",
	})
	require.NoError(t, err)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, SourceEstimated, res.Source)
	assert.Len(t, res.Offers, 3)
	assert.Len(t, res.Links, 3)
}
