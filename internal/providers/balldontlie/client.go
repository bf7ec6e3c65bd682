package balldontlie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
)

// Config controls how the balldontlie client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timezone   string
	MaxPages   int
	Resolver   *teams.Resolver
}

// Client fetches games from the balldontlie API and maps them to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
	loc        *time.Location
	maxPages   int
	resolver   *teams.Resolver
}

// NewClient constructs a balldontlie client with the provided configuration.
func NewClient(cfg Config) *Client {
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = teams.Default()
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
		loc:        resolveLocation(cfg.Timezone),
		maxPages:   resolveMaxPages(cfg.MaxPages),
		resolver:   resolver,
	}
}

// FetchGames retrieves one day's games; an empty date means today in the client's timezone.
func (c *Client) FetchGames(ctx context.Context, date string, tz string) ([]games.Game, error) {
	loc := c.loc
	if tz != "" {
		if override := providers.ResolveTimezone(tz); override != nil {
			loc = override
		}
	}

	params := url.Values{}
	params.Set("dates[]", c.resolveDate(date, loc))
	return c.paginate(ctx, params)
}

// FetchGameLog retrieves every game for a team between the query dates, following
// pagination until the upstream reports no further pages or MaxPages is reached.
func (c *Client) FetchGameLog(ctx context.Context, q providers.GameQuery) ([]games.Game, error) {
	team, ok := c.resolver.Team(q.Team)
	if !ok || team.BalldontlieID == 0 {
		return nil, fmt.Errorf("balldontlie: unknown team %q", q.Team)
	}

	params := url.Values{}
	params.Set("team_ids[]", strconv.Itoa(team.BalldontlieID))
	if q.StartDate != "" {
		params.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		params.Set("end_date", q.EndDate)
	}
	if q.Postseason != nil {
		params.Set("postseason", strconv.FormatBool(*q.Postseason))
	}
	return c.paginate(ctx, params)
}

func (c *Client) paginate(ctx context.Context, params url.Values) ([]games.Game, error) {
	allGames := make([]games.Game, 0)
	page := 1
	cursor := ""

	for {
		payload, err := c.fetchPage(ctx, params, page, cursor)
		if err != nil {
			return nil, err
		}
		for _, g := range payload.Data {
			allGames = append(allGames, c.mapGame(g))
		}

		if page >= c.maxPages {
			break
		}
		next, ok := nextPage(payload, page)
		if !ok {
			break
		}
		page++
		cursor = next
	}

	return allGames, nil
}

// nextPage returns the continuation token for the next request: a cursor when the upstream
// uses cursors, otherwise the next page number.
func nextPage(payload gamesResponse, page int) (string, bool) {
	meta := payload.Meta
	switch {
	case meta.NextCursor != nil:
		return strconv.Itoa(*meta.NextCursor), true
	case meta.NextPage != nil:
		return "", *meta.NextPage > page
	case meta.TotalPages > 0:
		return "", page < meta.TotalPages
	default:
		return "", len(payload.Data) >= defaultPerPage
	}
}

func (c *Client) fetchPage(ctx context.Context, params url.Values, page int, cursor string) (gamesResponse, error) {
	req, err := c.buildRequest(ctx, params, page, cursor)
	if err != nil {
		return gamesResponse{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gamesResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return gamesResponse{}, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: providers.ParseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "balldontlie rate limited",
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return gamesResponse{}, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var payload gamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return gamesResponse{}, fmt.Errorf("balldontlie: decode games: %w", err)
	}
	return payload, nil
}

func (c *Client) buildRequest(ctx context.Context, params url.Values, page int, cursor string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games", nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("per_page", strconv.Itoa(defaultPerPage))
	if cursor != "" {
		q.Set("cursor", cursor)
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	req.URL.RawQuery = q.Encode()

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return req, nil
}

func (c *Client) resolveDate(date string, loc *time.Location) string {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err == nil {
			return date
		}
	}
	return c.now().In(loc).Format("2006-01-02")
}
