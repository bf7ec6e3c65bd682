package balldontlie

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/providers"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestFetchGamesHitsAPIAndMapsResponse(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC) // should still yield 2024-01-01 in America/New_York
	var capturedAuth string
	var capturedQueries []string

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/games" {
			t.Fatalf("expected /games path, got %s", req.URL.Path)
		}
		capturedQueries = append(capturedQueries, req.URL.RawQuery)
		capturedAuth = req.Header.Get("Authorization")

		if len(capturedQueries) == 1 {
			return jsonResponse(http.StatusOK, `{
				"data": [
					{
						"id": 10,
						"date": "2024-01-01",
						"datetime": "2024-01-02T00:30:00.000Z",
						"status": "Final",
						"home_team": { "id": 2, "abbreviation": "BOS", "full_name": "Boston Celtics" },
						"visitor_team": { "id": 20, "abbreviation": "NY", "full_name": "New York Knicks" },
						"home_team_score": 110,
						"visitor_team_score": 102,
						"season": 2023
					}
				],
				"meta": { "total_pages": 2 }
			}`), nil
		}
		return jsonResponse(http.StatusOK, `{
			"data": [
				{
					"id": 11,
					"date": "2024-01-01",
					"status": "Final",
					"home_team": { "id": 99, "abbreviation": "XYZ", "full_name": "Another Team" },
					"visitor_team": { "id": 14, "full_name": "Los Angeles Lakers" },
					"home_team_score": 120,
					"visitor_team_score": 115,
					"season": 2023
				}
			],
			"meta": { "total_pages": 2 }
		}`), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
		Timezone:   "America/New_York",
		MaxPages:   5,
	})
	client.now = func() time.Time { return fixed }

	gs, err := client.FetchGames(context.Background(), "", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if capturedAuth != "Bearer secret" {
		t.Fatalf("expected authorization header, got %s", capturedAuth)
	}
	if len(capturedQueries) != 2 {
		t.Fatalf("expected 2 requests (pagination), got %d", len(capturedQueries))
	}
	q, err := url.ParseQuery(capturedQueries[0])
	if err != nil {
		t.Fatalf("failed parsing query %s: %v", capturedQueries[0], err)
	}
	if q.Get("per_page") != "100" {
		t.Fatalf("expected per_page=100, got %s", q.Get("per_page"))
	}
	if q.Get("dates[]") != "2024-01-01" {
		t.Fatalf("expected date=2024-01-01 in NY, got %s", q.Get("dates[]"))
	}
	if q.Get("page") != "1" {
		t.Fatalf("expected page=1, got %s", q.Get("page"))
	}
	if len(gs) != 2 {
		t.Fatalf("expected games from both pages, got %d", len(gs))
	}

	game := gs[0]
	if game.ID != "balldontlie-10" || game.Provider != "balldontlie" {
		t.Fatalf("unexpected game identifiers %+v", game)
	}
	if game.HomeTeam.Code() != "BOS" || game.AwayTeam.Code() != "NYK" {
		t.Fatalf("expected canonical team codes, got %s/%s", game.HomeTeam.Code(), game.AwayTeam.Code())
	}
	if game.Date != "2024-01-01" || game.StartTime != "2024-01-02T00:30:00.000Z" {
		t.Fatalf("unexpected date/start %s %s", game.Date, game.StartTime)
	}
	if game.Score.Home != 110 || game.Score.Away != 102 {
		t.Fatalf("unexpected scores %+v", game.Score)
	}
	if game.Status != "FINAL" {
		t.Fatalf("unexpected status %s", game.Status)
	}
	if game.Meta.UpstreamGameID != 10 || game.Meta.Season != "2023" {
		t.Fatalf("unexpected meta %+v", game.Meta)
	}
	if gs[1].HomeTeam.Abbreviation != "XYZ" || gs[1].AwayTeam.Code() != "LAL" {
		t.Fatalf("expected unknown team kept raw and known team canonical, got %+v", gs[1])
	}
}

func TestFetchGameLogFollowsCursor(t *testing.T) {
	var queries []url.Values
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		queries = append(queries, req.URL.Query())
		switch len(queries) {
		case 1:
			return jsonResponse(http.StatusOK, `{"data": [{"id": 1, "date": "2023-10-25", "status": "Final",
				"home_team": {"id": 2}, "visitor_team": {"id": 20}, "home_team_score": 108, "visitor_team_score": 104}],
				"meta": {"next_cursor": 77, "per_page": 100}}`), nil
		default:
			return jsonResponse(http.StatusOK, `{"data": [{"id": 2, "date": "2023-10-27", "status": "Final",
				"home_team": {"id": 17}, "visitor_team": {"id": 2}, "home_team_score": 100, "visitor_team_score": 119}],
				"meta": {"per_page": 100}}`), nil
		}
	})

	client := NewClient(Config{BaseURL: "http://example.com", HTTPClient: &http.Client{Transport: rt}})
	regular := false
	gs, err := client.FetchGameLog(context.Background(), providers.GameQuery{
		Team:       "BOS",
		StartDate:  "2023-10-01",
		EndDate:    "2024-06-30",
		Postseason: &regular,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(gs) != 2 || len(queries) != 2 {
		t.Fatalf("expected 2 games over 2 requests, got %d/%d", len(gs), len(queries))
	}

	first := queries[0]
	if first.Get("team_ids[]") != "2" || first.Get("start_date") != "2023-10-01" || first.Get("end_date") != "2024-06-30" {
		t.Fatalf("unexpected filters %v", first)
	}
	if first.Get("postseason") != "false" || first.Get("cursor") != "" {
		t.Fatalf("unexpected first page params %v", first)
	}
	if queries[1].Get("cursor") != "77" {
		t.Fatalf("expected cursor on second request, got %v", queries[1])
	}
	if gs[1].HomeTeam.Code() != "MIL" || gs[1].AwayTeam.Code() != "BOS" {
		t.Fatalf("unexpected teams %+v", gs[1])
	}
}

func TestFetchGameLogUnknownTeam(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://example.com"})
	if _, err := client.FetchGameLog(context.Background(), providers.GameQuery{Team: "XXX"}); err == nil {
		t.Fatal("expected error for unknown team")
	}
}

func TestFetchGamesHandlesNon200(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return jsonResponse(http.StatusBadGateway, "boom"), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})
	client.now = func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) }

	_, err := client.FetchGames(context.Background(), "", "")
	var statusErr *providers.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected status error, got %v", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway || statusErr.Body != "boom" {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
}

func TestFetchGamesMapsRateLimit(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		resp := jsonResponse(http.StatusTooManyRequests, "slow down")
		resp.Header.Set("Retry-After", "12")
		resp.Header.Set("X-RateLimit-Remaining", "0")
		return resp, nil
	})

	client := NewClient(Config{BaseURL: "http://example.com", HTTPClient: &http.Client{Transport: rt}})

	_, err := client.FetchGames(context.Background(), "2024-01-01", "")
	rlErr, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rlErr.RetryAfter != 12*time.Second || rlErr.Remaining != "0" || rlErr.Provider != "balldontlie" {
		t.Fatalf("unexpected rate limit error %+v", rlErr)
	}
}

func TestFetchGamesHandlesDecodeError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return jsonResponse(http.StatusOK, "{bad json"), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})
	client.now = func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) }

	if _, err := client.FetchGames(context.Background(), "", ""); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFetchGamesRespectsMaxPagesCap(t *testing.T) {
	calls := 0
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, `{
			"data": [
				{
					"id": 1,
					"date": "2024-01-01T00:00:00Z",
					"status": "Final",
					"home_team": { "id": 1, "full_name": "Atlanta Hawks" },
					"visitor_team": { "id": 2, "full_name": "Boston Celtics" },
					"home_team_score": 10,
					"visitor_team_score": 5,
					"season": 2023
				}
			],
			"meta": { "total_pages": 10 }
		}`), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
		MaxPages:   1,
	})

	gs, err := client.FetchGames(context.Background(), "", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(gs) != 1 {
		t.Fatalf("expected 1 game, got %d", len(gs))
	}
	if calls != 1 {
		t.Fatalf("expected to stop after max pages, got %d calls", calls)
	}
}

func TestNextPage(t *testing.T) {
	five, two := 5, 2
	full := make([]gameResponse, defaultPerPage)
	cases := []struct {
		name    string
		payload gamesResponse
		page    int
		cursor  string
		more    bool
	}{
		{"cursor", gamesResponse{Meta: metaResponse{NextCursor: &five}}, 1, "5", true},
		{"next page", gamesResponse{Meta: metaResponse{NextPage: &two}}, 1, "", true},
		{"next page behind", gamesResponse{Meta: metaResponse{NextPage: &two}}, 2, "", false},
		{"total pages", gamesResponse{Meta: metaResponse{TotalPages: 3}}, 3, "", false},
		{"full page without meta", gamesResponse{Data: full}, 1, "", true},
		{"short page without meta", gamesResponse{Data: full[:3]}, 1, "", false},
	}
	for _, tc := range cases {
		cursor, more := nextPage(tc.payload, tc.page)
		if cursor != tc.cursor || more != tc.more {
			t.Fatalf("%s: got %q/%v", tc.name, cursor, more)
		}
	}
}

func TestNewClientSetsDefaultHTTPClient(t *testing.T) {
	c := NewClient(Config{})
	httpClient, ok := c.httpClient.(*http.Client)
	if !ok {
		t.Fatalf("expected default http client")
	}
	if httpClient.Timeout == 0 {
		t.Fatalf("expected timeout to be set on default http client")
	}
	if c.maxPages != defaultMaxPages {
		t.Fatalf("expected default max pages, got %d", c.maxPages)
	}
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
