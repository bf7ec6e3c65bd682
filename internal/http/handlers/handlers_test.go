package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/nba-edge-service/internal/app/edge"
	apiteams "github.com/preston-bernstein/nba-edge-service/internal/app/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/model"
	"github.com/preston-bernstein/nba-edge-service/internal/poller"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
	"github.com/preston-bernstein/nba-edge-service/internal/snapshots"
	"github.com/preston-bernstein/nba-edge-service/internal/teststubs"
	"github.com/preston-bernstein/nba-edge-service/internal/testutil"
)

// 12:00 ET on 2024-01-15.
var fixedNow = time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC)

type stubEdge struct {
	form     model.FormSummary
	report   edge.MatchupReport
	backtest edge.BacktestReport
	err      error

	team      teams.Code
	anchor    string
	n         int
	home      teams.Code
	away      teams.Code
	checkDate string
}

func (s *stubEdge) RecentForm(ctx context.Context, team teams.Code, anchor string, n int) (model.FormSummary, error) {
	s.team, s.anchor, s.n = team, anchor, n
	return s.form, s.err
}

func (s *stubEdge) Matchup(ctx context.Context, home, away teams.Code, anchor string) (edge.MatchupReport, error) {
	s.home, s.away, s.anchor = home, away, anchor
	return s.report, s.err
}

func (s *stubEdge) Backtest(ctx context.Context, date string) (edge.BacktestReport, error) {
	s.checkDate = date
	return s.backtest, s.err
}

func newTestHandler(rows []schedule.Row, edgeSvc EdgeService, snaps snapshots.Store) *Handler {
	if edgeSvc == nil {
		edgeSvc = &stubEdge{}
	}
	h := NewHandler(Options{
		Schedule:  testutil.NewScheduleService(rows),
		Teams:     apiteams.NewService(nil),
		Edge:      edgeSvc,
		Snapshots: snaps,
	})
	h.now = testutil.NowAt(fixedNow)
	return h
}

// serveRoute mounts fn on pattern so chi URL params resolve.
func serveRoute(pattern string, fn http.HandlerFunc, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get(pattern, fn)
	return testutil.Serve(r, http.MethodGet, path, nil)
}

func sampleRows() []schedule.Row {
	rows := testutil.SampleRows("2024-01-10", "BOS", "NYK")
	rows = append(rows, testutil.SampleRows("2024-01-16", "LAL", "BOS")...)
	schedule.SortRows(rows)
	return rows
}

func TestHealth(t *testing.T) {
	h := newTestHandler(nil, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := newTestHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReady(t *testing.T) {
	cases := []struct {
		name   string
		status func() poller.Status
		want   int
		errMsg string
	}{
		{name: "no poller", want: http.StatusOK},
		{name: "ready", status: func() poller.Status { return poller.Status{LastSuccess: fixedNow} }, want: http.StatusOK},
		{name: "never succeeded", status: func() poller.Status { return poller.Status{} }, want: http.StatusServiceUnavailable, errMsg: "not ready"},
		{
			name: "failing",
			status: func() poller.Status {
				return poller.Status{LastSuccess: fixedNow, ConsecutiveFailures: 3, LastError: "upstream down"}
			},
			want:   http.StatusServiceUnavailable,
			errMsg: "upstream down",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(nil, nil, nil)
			h.statusFn = tc.status
			rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
			testutil.AssertStatus(t, rr, tc.want)
			if tc.errMsg != "" {
				var body errorBody
				testutil.DecodeJSON(t, rr, &body)
				if body.Error != tc.errMsg {
					t.Fatalf("expected error %q, got %q", tc.errMsg, body.Error)
				}
			}
		})
	}
}

func TestScheduleAllRows(t *testing.T) {
	h := newTestHandler(sampleRows(), nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Schedule), http.MethodGet, "/schedule", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp rowsResponse
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(resp.Rows))
	}
}

func TestScheduleFiltersByDateAndTeam(t *testing.T) {
	h := newTestHandler(sampleRows(), nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Schedule), http.MethodGet, "/schedule?date=2024-01-16&team=bos", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp schedule.DayResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Date != "2024-01-16" || len(resp.Rows) != 1 {
		t.Fatalf("expected one BOS row on 2024-01-16, got %+v", resp)
	}
	if resp.Rows[0].TeamCode != "BOS" || resp.Rows[0].HomeAway != schedule.Away {
		t.Fatalf("unexpected row %+v", resp.Rows[0])
	}
}

func TestScheduleTeamOnlyUsesTeamIndex(t *testing.T) {
	h := newTestHandler(sampleRows(), nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Schedule), http.MethodGet, "/schedule?team=Boston+Celtics", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp rowsResponse
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Rows) != 2 {
		t.Fatalf("expected both BOS rows, got %d", len(resp.Rows))
	}
	for _, row := range resp.Rows {
		if row.TeamCode != "BOS" {
			t.Fatalf("unexpected team %s", row.TeamCode)
		}
	}
}

func TestScheduleRejectsBadInput(t *testing.T) {
	h := newTestHandler(sampleRows(), nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Schedule), http.MethodGet, "/schedule?date=01-10-2024", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = testutil.Serve(http.HandlerFunc(h.Schedule), http.MethodGet, "/schedule?team=Gotham+Rogues", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	var body errorBody
	testutil.DecodeJSON(t, rr, &body)
	if !strings.Contains(body.Error, "Gotham Rogues") {
		t.Fatalf("expected unknown team in error, got %q", body.Error)
	}
}

func TestScheduleFallsBackToSnapshot(t *testing.T) {
	snapRows := testutil.SampleRows("2023-12-25", "LAL", "BOS")
	snaps := &teststubs.StubSnapshotStore{Days: map[string]schedule.DayResponse{
		"2023-12-25": schedule.NewDayResponse("2023-12-25", snapRows),
	}}
	h := newTestHandler(sampleRows(), nil, snaps)

	rr := testutil.Serve(http.HandlerFunc(h.Schedule), http.MethodGet, "/schedule?date=2023-12-25", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp schedule.DayResponse
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Rows) != 2 {
		t.Fatalf("expected snapshot rows, got %+v", resp)
	}
}

func TestScheduleMissingDateReturnsEmptyRows(t *testing.T) {
	snaps := &teststubs.StubSnapshotStore{LoadErr: errors.New("missing")}
	h := newTestHandler(sampleRows(), nil, snaps)

	rr := testutil.Serve(http.HandlerFunc(h.Schedule), http.MethodGet, "/schedule?date=2024-07-04", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"rows":[]`) {
		t.Fatalf("expected empty rows array, got %s", rr.Body.String())
	}
}

func TestScheduleDays(t *testing.T) {
	h := newTestHandler(sampleRows(), nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.ScheduleDays), http.MethodGet, "/schedule/days", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp daysResponse
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Days) != 2 || resp.Days[0].Date != "2024-01-10" || resp.Days[1].Date != "2024-01-16" {
		t.Fatalf("unexpected days %+v", resp.Days)
	}

	empty := newTestHandler(nil, nil, nil)
	rr = testutil.Serve(http.HandlerFunc(empty.ScheduleDays), http.MethodGet, "/schedule/days", nil)
	if !strings.Contains(rr.Body.String(), `"days":[]`) {
		t.Fatalf("expected empty days array, got %s", rr.Body.String())
	}
}

// resultsSchedule serves fixed final scores on top of a regular schedule reader.
type resultsSchedule struct {
	ScheduleReader
	results map[string][]games.Result
}

func (s resultsSchedule) ResultsForDate(date string) []games.Result {
	return s.results[date]
}

func TestResults(t *testing.T) {
	h := newTestHandler(nil, nil, nil)
	h.schedule = resultsSchedule{
		ScheduleReader: h.schedule,
		results: map[string][]games.Result{
			"2024-01-14": {
				{GameID: "a", Date: "2024-01-14", HomeTeam: "BOS", AwayTeam: "NYK", HomeScore: "110", AwayScore: "99", Status: "Final"},
				{GameID: "b", Date: "2024-01-14", HomeTeam: "LAL", AwayTeam: "DEN", HomeScore: "101", AwayScore: "104", Status: "Final"},
			},
		},
	}

	// Defaults to yesterday in Eastern time.
	rr := testutil.Serve(http.HandlerFunc(h.Results), http.MethodGet, "/results", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp resultsResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Date != "2024-01-14" || len(resp.Results) != 2 {
		t.Fatalf("unexpected results %+v", resp)
	}

	rr = testutil.Serve(http.HandlerFunc(h.Results), http.MethodGet, "/results?date=2024-01-14&team=Denver%20Nuggets", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	resp = resultsResponse{}
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Results) != 1 || resp.Results[0].GameID != "b" {
		t.Fatalf("expected only the DEN game, got %+v", resp.Results)
	}

	rr = testutil.Serve(http.HandlerFunc(h.Results), http.MethodGet, "/results?date=2024-01-01", nil)
	if !strings.Contains(rr.Body.String(), `"results":[]`) {
		t.Fatalf("expected empty results array, got %s", rr.Body.String())
	}

	rr = testutil.Serve(http.HandlerFunc(h.Results), http.MethodGet, "/results?date=01-14-2024", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = testutil.Serve(http.HandlerFunc(h.Results), http.MethodGet, "/results?team=Zzyzx", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestTeamsAndResolve(t *testing.T) {
	h := newTestHandler(nil, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Teams), http.MethodGet, "/teams", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var list teamsResponse
	testutil.DecodeJSON(t, rr, &list)
	if len(list.Teams) != 30 {
		t.Fatalf("expected 30 teams, got %d", len(list.Teams))
	}

	rr = testutil.Serve(http.HandlerFunc(h.ResolveTeam), http.MethodGet, "/teams/resolve?name=Boston+Celtics", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resolved resolveResponse
	testutil.DecodeJSON(t, rr, &resolved)
	if resolved.Team.Code() != "BOS" {
		t.Fatalf("expected BOS, got %+v", resolved.Team)
	}

	rr = testutil.Serve(http.HandlerFunc(h.ResolveTeam), http.MethodGet, "/teams/resolve", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = testutil.Serve(http.HandlerFunc(h.ResolveTeam), http.MethodGet, "/teams/resolve?name=Gotham", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestUpcoming(t *testing.T) {
	h := newTestHandler(sampleRows(), nil, nil)

	rr := serveRoute("/teams/{code}/upcoming", h.Upcoming, "/teams/bos/upcoming")
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp upcomingResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Team != "BOS" || len(resp.Rows) != 1 || resp.Rows[0].DateKey != "2024-01-16" {
		t.Fatalf("expected only the future BOS game, got %+v", resp)
	}

	rr = serveRoute("/teams/{code}/upcoming", h.Upcoming, "/teams/BOS/upcoming?limit=0")
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = serveRoute("/teams/{code}/upcoming", h.Upcoming, "/teams/XYZ/upcoming")
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestForm(t *testing.T) {
	stub := &stubEdge{form: model.FormSummary{Team: "BOS", GamesPlayed: 3, Wins: 2, Losses: 1}}
	h := newTestHandler(nil, stub, nil)

	rr := serveRoute("/teams/{code}/form", h.Form, "/teams/BOS/form?n=3")
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp formResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Anchor != "2024-01-15" || resp.Form.Wins != 2 {
		t.Fatalf("unexpected form response %+v", resp)
	}
	if stub.team != "BOS" || stub.anchor != "2024-01-15" || stub.n != 3 {
		t.Fatalf("unexpected service call %s %s %d", stub.team, stub.anchor, stub.n)
	}

	rr = serveRoute("/teams/{code}/form", h.Form, "/teams/BOS/form?anchor=2024-02-01")
	testutil.AssertStatus(t, rr, http.StatusOK)
	if stub.anchor != "2024-02-01" || stub.n != 0 {
		t.Fatalf("expected explicit anchor and default n, got %s %d", stub.anchor, stub.n)
	}

	for _, path := range []string{"/teams/BOS/form?n=abc", "/teams/BOS/form?n=200", "/teams/BOS/form?anchor=tomorrow"} {
		rr = serveRoute("/teams/{code}/form", h.Form, path)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	}
}

func TestEdge(t *testing.T) {
	stub := &stubEdge{report: edge.MatchupReport{
		Anchor:   "2024-01-15",
		Estimate: model.ProbabilityEstimate{HomeWinProbability: 0.6, Mode: model.ModePrior},
	}}
	h := newTestHandler(nil, stub, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Edge), http.MethodGet, "/edge?home=BOS&away=New+York+Knicks", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var report edge.MatchupReport
	testutil.DecodeJSON(t, rr, &report)
	if report.Estimate.HomeWinProbability != 0.6 {
		t.Fatalf("unexpected report %+v", report)
	}
	if stub.home != "BOS" || stub.away != "NYK" || stub.anchor != "2024-01-15" {
		t.Fatalf("unexpected matchup call %s %s %s", stub.home, stub.away, stub.anchor)
	}
}

func TestEdgeErrors(t *testing.T) {
	cases := []struct {
		name       string
		path       string
		err        error
		want       int
		retryAfter string
	}{
		{name: "missing home", path: "/edge?away=NYK", want: http.StatusBadRequest},
		{name: "unknown away", path: "/edge?home=BOS&away=Gotham", want: http.StatusNotFound},
		{name: "bad anchor", path: "/edge?home=BOS&away=NYK&anchor=x", want: http.StatusBadRequest},
		{name: "same team", path: "/edge?home=BOS&away=BOS", err: edge.ErrSameTeam, want: http.StatusBadRequest},
		{name: "unavailable", path: "/edge?home=BOS&away=NYK", err: providers.ErrProviderUnavailable, want: http.StatusServiceUnavailable},
		{
			name:       "rate limited",
			path:       "/edge?home=BOS&away=NYK",
			err:        &providers.RateLimitError{Provider: "balldontlie", StatusCode: 429, RetryAfter: 29500 * time.Millisecond},
			want:       http.StatusServiceUnavailable,
			retryAfter: "30",
		},
		{name: "upstream", path: "/edge?home=BOS&away=NYK", err: &providers.StatusError{Provider: "balldontlie", StatusCode: 500}, want: http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(nil, &stubEdge{err: tc.err}, nil)
			rr := testutil.Serve(http.HandlerFunc(h.Edge), http.MethodGet, tc.path, nil)
			testutil.AssertStatus(t, rr, tc.want)
			if got := rr.Header().Get("Retry-After"); got != tc.retryAfter {
				t.Fatalf("expected Retry-After %q, got %q", tc.retryAfter, got)
			}
		})
	}
}

func TestVerdicts(t *testing.T) {
	stub := &stubEdge{backtest: edge.BacktestReport{Date: "2024-01-14", Accuracy: model.Accuracy{Correct: 3, Rate: 1}}}
	h := newTestHandler(nil, stub, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Verdicts), http.MethodGet, "/verdicts", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if stub.checkDate != "2024-01-14" {
		t.Fatalf("expected yesterday by default, got %s", stub.checkDate)
	}
	var report edge.BacktestReport
	testutil.DecodeJSON(t, rr, &report)
	if report.Accuracy.Correct != 3 {
		t.Fatalf("unexpected report %+v", report)
	}

	rr = testutil.Serve(http.HandlerFunc(h.Verdicts), http.MethodGet, "/verdicts?date=2024-01-02", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if stub.checkDate != "2024-01-02" {
		t.Fatalf("expected explicit date, got %s", stub.checkDate)
	}

	rr = testutil.Serve(http.HandlerFunc(h.Verdicts), http.MethodGet, "/verdicts?date=yesterday", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestHandler(nil, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.NotFound), http.MethodGet, "/nope", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = testutil.Serve(http.HandlerFunc(h.MethodNotAllowed), http.MethodDelete, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}
