package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var longExtract = strings.Repeat("Cusco es una ciudad del sureste del Perú. ", 4)

func newWikiServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/rest_v1/page/summary/Cusco":
			fmt.Fprint(w, `{"title":"Cusco","extract":"En la mitología inca, Cusco..."}`)
		case r.URL.Path == "/api/rest_v1/page/summary/Cusco (ciudad)":
			fmt.Fprintf(w, `{"title":"Cusco (ciudad)","extract":%q}`, longExtract)
		case r.URL.Path == "/w/api.php":
			assert.Equal(t, "Cusco ciudad", r.URL.Query().Get("srsearch"))
			fmt.Fprint(w, `{"query":{"search":[{"title":"Cusco (ciudad)"}]}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGeoServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("count"))
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDescribe_DisambiguatesAndMerges(t *testing.T) {
	wiki := NewWikipediaClient(newWikiServer(t).URL, time.Second)
	geo := NewOpenMeteoGeocoder(newGeoServer(t,
		`{"results":[{"name":"Cusco","country":"Perú","population":428450,"latitude":-13.52,"longitude":-71.97}]}`).URL,
		"es", time.Second)

	brief, err := NewDestinationAggregator(wiki, geo).Describe(context.Background(), "Cusco", "es")
	require.NoError(t, err)

	assert.Equal(t, "Cusco (ciudad)", brief.Title)
	assert.Equal(t, longExtract, brief.Description)
	assert.Equal(t, "Perú", brief.Country)
	require.NotNil(t, brief.Population)
	assert.EqualValues(t, 428450, *brief.Population)
	assert.Equal(t, Tropical, brief.Climate)
	assert.Equal(t, BriefComplete, brief.Status)
}

func TestDescribe_PartialWhenGeocodingMisses(t *testing.T) {
	wiki := NewWikipediaClient(newWikiServer(t).URL, time.Second)
	geo := NewOpenMeteoGeocoder(newGeoServer(t, `{}`).URL, "es", time.Second)

	brief, err := NewDestinationAggregator(wiki, geo).Describe(context.Background(), "Cusco", "es")
	require.NoError(t, err)
	assert.Equal(t, BriefPartial, brief.Status)
	assert.Nil(t, brief.Population)
	assert.Empty(t, brief.Climate)
}

func TestDescribe_PartialWhenSummaryFails(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	geo := NewOpenMeteoGeocoder(newGeoServer(t, `{"results":[{"name":"Oslo","country":"Norway","latitude":59.9}]}`).URL, "es", time.Second)
	brief, err := NewDestinationAggregator(NewWikipediaClient(down.URL, time.Second), geo).Describe(context.Background(), "Oslo", "en")
	require.NoError(t, err)
	assert.Equal(t, BriefPartial, brief.Status)
	assert.Equal(t, Temperate, brief.Climate)
	assert.Empty(t, brief.Description)
}

func TestDescribe_NotFound(t *testing.T) {
	geo := NewOpenMeteoGeocoder(newGeoServer(t, `{"results":[]}`).URL, "es", time.Second)
	wiki := NewWikipediaClient(newWikiServer(t).URL, time.Second)

	_, err := NewDestinationAggregator(wiki, geo).Describe(context.Background(), "Nowhere", "es")
	assert.True(t, IsNotFound(err))

	_, err = NewDestinationAggregator(wiki, geo).Describe(context.Background(), "  ", "es")
	assert.True(t, IsValidation(err))
}

func TestTruncateDescription(t *testing.T) {
	short := "Lima"
	assert.Equal(t, short, TruncateDescription(short))

	long := strings.Repeat("á", 800)
	out := TruncateDescription(long)
	assert.Equal(t, 503, utf8.RuneCountInString(out))
	assert.True(t, strings.HasSuffix(out, "..."))
}

func TestClimateForLatitude(t *testing.T) {
	assert.Equal(t, Tropical, ClimateForLatitude(-12.04))
	assert.Equal(t, Temperate, ClimateForLatitude(40.4))
	assert.Equal(t, Temperate, ClimateForLatitude(-34.6))
	assert.Equal(t, Cold, ClimateForLatitude(78.2))
}

func TestCityQualifier(t *testing.T) {
	assert.Equal(t, "ciudad", cityQualifier("es"))
	assert.Equal(t, "cidade", cityQualifier("pt"))
	assert.Equal(t, "city", cityQualifier("en"))
}

func TestDescribe_RejectsUnsafeLanguage(t *testing.T) {
	var hits int32
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, `{"title":"leaked","extract":"internal"}`)
	}))
	defer internal.Close()

	wiki := NewWikipediaClient("http://%s.wikipedia.org", time.Second)
	agg := NewDestinationAggregator(wiki, nil)
	target := strings.TrimPrefix(internal.URL, "http://")

	for _, lang := range []string{target + "/x?", "en.evil.com", "e", "english", "es/../", "es#"} {
		_, err := agg.Describe(context.Background(), "Paris", lang)
		assert.True(t, IsValidation(err), lang)
	}
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestDescribe_AcceptsLanguageCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"title":"Cusco","extract":%q}`, longExtract)
	}))
	defer srv.Close()
	agg := NewDestinationAggregator(NewWikipediaClient(srv.URL, time.Second), nil)

	for _, lang := range []string{"es", " ES ", "pt", "zh-yue", "ast", ""} {
		brief, err := agg.Describe(context.Background(), "Cusco", lang)
		require.NoError(t, err, lang)
		assert.Equal(t, BriefPartial, brief.Status)
	}
}

func TestWikipediaClient_RejectsUnsafeLanguage(t *testing.T) {
	wiki := NewWikipediaClient("http://%s.wikipedia.org", time.Second)

	_, err := wiki.Summary(context.Background(), "Paris", "127.0.0.1:8080/x?")
	assert.True(t, IsValidation(err))

	_, err = wiki.SearchTitles(context.Background(), "Paris", "localhost#", 1)
	assert.True(t, IsValidation(err))
}
