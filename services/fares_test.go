package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travelpro/travelers"
)

type MockFareQuoter struct {
	mock.Mock
}

func (m *MockFareQuoter) SearchFlights(ctx context.Context, q FareQuery) ([]QuotedFare, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]QuotedFare), args.Error(1)
}

var _ FareQuoter = (*MockFareQuoter)(nil)

var fixedNow = func() time.Time { return time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC) }

func newEstimator(q FareQuoter, seed int64) *FareEstimator {
	return NewFareEstimator(q, rand.New(rand.NewSource(seed)), WithClock(fixedNow))
}

func family(t *testing.T) *travelers.Registry {
	t.Helper()
	reg := travelers.NewRegistry()
	for _, p := range []struct {
		name string
		age  int
	}{{"Ana", 35}, {"Luis", 37}, {"Sofía", 8}, {"Mateo", 1}} {
		_, err := reg.Add(p.name, p.age)
		require.NoError(t, err)
	}
	return reg
}

func TestFareEstimator_FallsBackWhenLiveFails(t *testing.T) {
	q := &MockFareQuoter{}
	q.On("SearchFlights", mock.Anything, mock.Anything).Return(nil, unavailable("amadeus", context.DeadlineExceeded))

	res, err := newEstimator(q, 1).Search(context.Background(), family(t), FareRequest{
		Origin: "Lima", Destination: "Cusco", DepartDate: "2030-04-01",
	})
	require.NoError(t, err)

	assert.Equal(t, SourceEstimated, res.Source)
	assert.Len(t, res.Offers, 3)
	assert.Len(t, res.Links, 3)
	assert.Equal(t, "LIM", res.OriginCode)
	assert.Equal(t, "CUZ", res.DestinationCode)
	q.AssertExpectations(t)
}

func TestFareEstimator_FallsBackOnEmptyLive(t *testing.T) {
	q := &MockFareQuoter{}
	q.On("SearchFlights", mock.Anything, mock.Anything).Return([]QuotedFare{}, nil)

	res, err := newEstimator(q, 1).Search(context.Background(), nil, FareRequest{
		Origin: "Madrid", Destination: "Barcelona", DepartDate: "2030-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, SourceEstimated, res.Source)
	assert.Equal(t, 1, res.Travelers.Adults)
}

func TestFareEstimator_LivePricing(t *testing.T) {
	q := &MockFareQuoter{}
	q.On("SearchFlights", mock.Anything, mock.MatchedBy(func(fq FareQuery) bool {
		return fq.Origin == "LIM" && fq.Destination == "MAD" && fq.Adults == 2
	})).Return([]QuotedFare{
		{Carrier: "Iberia", CarrierCode: "IB", PricePerAdult: 1000, Currency: "EUR"},
		{Carrier: "LATAM Airlines", CarrierCode: "LA", PricePerAdult: 900, Currency: "EUR"},
		{Carrier: "Air Europa", CarrierCode: "UX", PricePerAdult: 950, Currency: "EUR"},
		{Carrier: "Avianca", CarrierCode: "AV", PricePerAdult: 990, Currency: "EUR"},
	}, nil)

	res, err := newEstimator(q, 1).Search(context.Background(), family(t), FareRequest{
		Origin: "Lima", Destination: "Madrid", DepartDate: "2030-04-01", ReturnDate: "2030-04-15",
	})
	require.NoError(t, err)

	assert.Equal(t, SourceLive, res.Source)
	assert.True(t, res.RoundTrip)
	require.Len(t, res.Offers, 3)

	o := res.Offers[0]
	assert.Equal(t, 750.0, o.PricePerChild)
	assert.Equal(t, 150.0, o.PricePerInfant)
	assert.Equal(t, 750.0, o.ChildrenTotal)
	assert.Equal(t, 150.0, o.InfantsTotal)
	assert.Equal(t, 2900.0, o.GroupTotal)
	q.AssertExpectations(t)
}

func TestFareEstimator_SyntheticRanges(t *testing.T) {
	e := newEstimator(nil, 42)
	base := BaseRoutePrice("LIM", "CUZ")

	oneWay, err := e.Search(context.Background(), nil, FareRequest{Origin: "Lima", Destination: "Cusco", DepartDate: "2030-04-01"})
	require.NoError(t, err)
	for _, o := range oneWay.Offers {
		assert.GreaterOrEqual(t, o.PricePerAdult, float64(int(base*0.85)))
		assert.LessOrEqual(t, o.PricePerAdult, base*1.25)
		assert.Equal(t, o.PricePerAdult, o.GroupTotal)
		assert.Equal(t, "USD", o.Currency)
	}

	roundTrip, err := e.Search(context.Background(), nil, FareRequest{
		Origin: "Lima", Destination: "Cusco", DepartDate: "2030-04-01", ReturnDate: "2030-04-08",
	})
	require.NoError(t, err)
	for _, o := range roundTrip.Offers {
		assert.GreaterOrEqual(t, o.PricePerAdult, float64(int(base*0.85*2)))
		assert.LessOrEqual(t, o.PricePerAdult, base*1.25*2)
	}
}

func TestFareEstimator_SeededIsDeterministic(t *testing.T) {
	req := FareRequest{Origin: "Miami", Destination: "Lima", DepartDate: "2030-04-01"}

	a, err := newEstimator(nil, 99).Search(context.Background(), nil, req)
	require.NoError(t, err)
	b, err := newEstimator(nil, 99).Search(context.Background(), nil, req)
	require.NoError(t, err)
	assert.Equal(t, a.Offers, b.Offers)

	carriers := map[string]bool{}
	for _, o := range a.Offers {
		carriers[o.Carrier] = true
	}
	assert.Len(t, carriers, 3)
}

func TestFareEstimator_Dates(t *testing.T) {
	e := newEstimator(nil, 1)
	ctx := context.Background()

	_, err := e.Search(ctx, nil, FareRequest{Origin: "Lima", Destination: "Cusco", DepartDate: "2029-03-10"})
	var dateErr DateError
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, DateInPast, dateErr.Kind)
	assert.Equal(t, "2030-04-09", dateErr.Suggested)

	_, err = e.Search(ctx, nil, FareRequest{Origin: "Lima", Destination: "Cusco", DepartDate: "2030-03-10"})
	assert.NoError(t, err, "today is allowed")

	_, err = e.Search(ctx, nil, FareRequest{Origin: "Lima", Destination: "Cusco", DepartDate: "01/04/2030"})
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, InvalidDate, dateErr.Kind)

	_, err = e.Search(ctx, nil, FareRequest{Origin: "Lima", Destination: "Cusco", DepartDate: "2030-04-01", ReturnDate: "2030-13-01"})
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, "2030-04-08", dateErr.Suggested)

	_, err = e.Search(ctx, nil, FareRequest{Origin: "Lima", Destination: "Cusco", DepartDate: "2030-04-10", ReturnDate: "2030-04-01"})
	assert.True(t, IsValidation(err))
}

func TestBaseRoutePrice(t *testing.T) {
	assert.Equal(t, 800.0, BaseRoutePrice("LIM", "MAD"))
	assert.Equal(t, 800.0, BaseRoutePrice("MAD", "LIM"))
	assert.Equal(t, 500.0, BaseRoutePrice("SYD", "AKL"))
}

func TestPurchaseLinks(t *testing.T) {
	links := PurchaseLinks("LIM", "CUZ", "2030-04-01", "2030-04-08", travelers.Counts{Adults: 2, Children: 1})
	require.Len(t, links, 3)

	assert.Equal(t, "Google Flights", links[0].Provider)
	assert.Contains(t, links[0].URL, "LIM.CUZ.2030-04-01*CUZ.LIM.2030-04-08")
	assert.Contains(t, links[1].URL, "/LIM/CUZ/20300401/20300408/?adultsv1=2&childrenv1=1")
	assert.True(t, strings.HasSuffix(links[2].URL, "/2adults/1children"))
}
