package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const userAgent = "TravelPro/1.0 (travel planning assistant)"

type Summary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// SummaryLookup is the encyclopedic side of a destination brief.
type SummaryLookup interface {
	Summary(ctx context.Context, title, lang string) (*Summary, error)
	SearchTitles(ctx context.Context, query, lang string, limit int) ([]string, error)
}

// WikipediaClient talks to the REST summary endpoint and the action API.
// baseURL is a pattern with one %s for the language, e.g.
// "https://%s.wikipedia.org".
type WikipediaClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewWikipediaClient(baseURL string, timeout time.Duration) *WikipediaClient {
	if baseURL == "" {
		baseURL = "https://%s.wikipedia.org"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WikipediaClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *WikipediaClient) host(lang string) (string, error) {
	if !langPattern.MatchString(lang) {
		return "", ValidationError{Field: "lang", Msg: fmt.Sprintf("invalid language code %q", lang)}
	}
	if !strings.Contains(c.baseURL, "%s") {
		return c.baseURL, nil
	}
	return fmt.Sprintf(c.baseURL, lang), nil
}

func (c *WikipediaClient) getJSON(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return unavailable("wikipedia", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	debugf("Wikipedia: GET %s", u)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return unavailable("wikipedia", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return unavailable("wikipedia", fmt.Errorf("status %d", resp.StatusCode))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return unavailable("wikipedia", fmt.Errorf("failed to parse response: %w", err))
	}
	return nil
}

func (c *WikipediaClient) Summary(ctx context.Context, title, lang string) (*Summary, error) {
	host, err := c.host(lang)
	if err != nil {
		return nil, err
	}
	u := host + "/api/rest_v1/page/summary/" + url.PathEscape(title)

	var s Summary
	if err := c.getJSON(ctx, u, &s); err != nil {
		return nil, err
	}
	if s.Title == "" {
		s.Title = title
	}
	return &s, nil
}

func (c *WikipediaClient) SearchTitles(ctx context.Context, query, lang string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", fmt.Sprint(limit))

	host, err := c.host(lang)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := c.getJSON(ctx, host+"/w/api.php?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(resp.Query.Search))
	for _, s := range resp.Query.Search {
		titles = append(titles, s.Title)
	}
	return titles, nil
}

var _ SummaryLookup = (*WikipediaClient)(nil)
