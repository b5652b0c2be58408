package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-schedule-service/internal/config"
	"github.com/preston-bernstein/nhl-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-service/internal/metrics"
	"github.com/preston-bernstein/nhl-schedule-service/internal/pagefetch"
	"github.com/preston-bernstein/nhl-schedule-service/internal/schedule"
	"github.com/preston-bernstein/nhl-schedule-service/internal/testutil"
	"github.com/preston-bernstein/nhl-schedule-service/internal/teststubs"
)

func testConfig() config.Config {
	return config.Config{
		Fetcher: config.FetcherConfig{RatePerSecond: 1000, Burst: 10, MaxAttempts: 2, Backoff: time.Millisecond},
	}
}

func seasonPages() *teststubs.StubFetcher {
	return &teststubs.StubFetcher{
		Default: []byte(`{"dates":[]}`),
		Pages: map[string][]byte{
			"2016-09-01_2016-12-09": testutil.SchedulePayload(testutil.ScheduleDay{
				Date: "2016-10-12",
				Games: []testutil.ScheduleGame{
					testutil.FinalGame(2016020001, "2016-10-12T23:00:00Z"),
					testutil.FinalGame(2016020002, "2016-10-12T23:30:00Z"),
				},
			}),
		},
	}
}

func decodeLines(t *testing.T, out *bytes.Buffer) []games.Record {
	t.Helper()
	var records []games.Record
	dec := json.NewDecoder(out)
	for dec.More() {
		var rec games.Record
		if err := dec.Decode(&rec); err != nil {
			t.Fatalf("decode output: %v", err)
		}
		records = append(records, rec)
	}
	return records
}

func TestRunnerRangeWritesJSONLines(t *testing.T) {
	r, err := New(testConfig(), nil, Options{Pages: seasonPages()})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	defer r.Close()

	var out bytes.Buffer
	if err := r.Range(context.Background(), testutil.MustDate("2016-09-01"), testutil.MustDate("2016-12-09"), false, false, &out); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", lines, out.String())
	}
	records := decodeLines(t, &out)
	if records[0].GameID != 2016020001 || records[0].HomeTeam != "CGY" {
		t.Fatalf("unexpected first record %+v", records[0])
	}
	if snap := r.Metrics().ScrapeSnapshot(schedule.OpScrapeSchedule); snap.Runs != 1 || snap.Records != 2 {
		t.Fatalf("unexpected scrape metrics %+v", snap)
	}
}

func TestRunnerGamesFiltersByID(t *testing.T) {
	now := testutil.NowAt(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	r, err := New(testConfig(), nil, Options{Pages: seasonPages(), Now: now})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	defer r.Close()

	var out bytes.Buffer
	if err := r.Games(context.Background(), []string{"2016020002"}, &out); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	records := decodeLines(t, &out)
	if len(records) != 1 || records[0].GameID != 2016020002 {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestRunnerRetriesThroughChain(t *testing.T) {
	calls := 0
	flakey := pagefetch.FetcherFunc(func(ctx context.Context, req pagefetch.Request) ([]byte, error) {
		calls++
		if calls == 1 {
			return nil, &pagefetch.StatusError{StatusCode: http.StatusServiceUnavailable}
		}
		return []byte(`{"dates":[]}`), nil
	})
	r, err := New(testConfig(), nil, Options{Pages: flakey})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	defer r.Close()

	if err := r.Range(context.Background(), testutil.MustDate("2016-09-01"), testutil.MustDate("2016-09-01"), false, false, &bytes.Buffer{}); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if calls != 2 || r.Metrics().FetchCalls(pagefetch.SourceHTTP) != 2 {
		t.Fatalf("expected 2 attempts, got calls=%d recorded=%d", calls, r.Metrics().FetchCalls(pagefetch.SourceHTTP))
	}
}

func TestRunnerSurfacesFetchErrors(t *testing.T) {
	r, err := New(testConfig(), nil, Options{Pages: &teststubs.StubFetcher{Err: &pagefetch.StatusError{StatusCode: 404}}})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	defer r.Close()

	err = r.Range(context.Background(), testutil.MustDate("2016-09-01"), testutil.MustDate("2016-09-01"), false, false, &bytes.Buffer{})
	if _, ok := schedule.AsFetchError(err); !ok {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestRunnerUsesFilesystemCache(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Cache = config.CacheConfig{Dir: dir}
	pages := seasonPages()

	for i := 0; i < 2; i++ {
		r, err := New(cfg, nil, Options{Pages: pages})
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if err := r.Range(context.Background(), testutil.MustDate("2016-09-01"), testutil.MustDate("2016-12-09"), false, false, &bytes.Buffer{}); err != nil {
			t.Fatalf("run %d: unexpected error %v", i, err)
		}
		r.Close()
	}
	if pages.Calls.Load() != 1 {
		t.Fatalf("expected the second run to be served from cache, got %d fetches", pages.Calls.Load())
	}
	if _, err := os.Stat(filepath.Join(dir, "json_schedule", "2016", "2016-09-01_2016-12-09.json")); err != nil {
		t.Fatalf("expected cached page on disk: %v", err)
	}
}

func TestRunnerUsesSQLiteCache(t *testing.T) {
	cfg := testConfig()
	cfg.Cache = config.CacheConfig{DBPath: filepath.Join(t.TempDir(), "pages.db")}
	pages := seasonPages()

	for i := 0; i < 2; i++ {
		r, err := New(cfg, nil, Options{Pages: pages})
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if err := r.Range(context.Background(), testutil.MustDate("2016-09-01"), testutil.MustDate("2016-12-09"), false, false, &bytes.Buffer{}); err != nil {
			t.Fatalf("run %d: unexpected error %v", i, err)
		}
		r.Close()
	}
	if pages.Calls.Load() != 1 {
		t.Fatalf("expected the second run to be served from cache, got %d fetches", pages.Calls.Load())
	}
}

func TestRunnerLoadsTeamAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.toml")
	if err := os.WriteFile(path, []byte("[aliases]\n\"CALGARY FLAMES\" = \"CAL\"\n"), 0o600); err != nil {
		t.Fatalf("write aliases: %v", err)
	}
	cfg := testConfig()
	cfg.TeamsFile = path

	r, err := New(cfg, nil, Options{Pages: seasonPages()})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	defer r.Close()

	var out bytes.Buffer
	if err := r.Range(context.Background(), testutil.MustDate("2016-09-01"), testutil.MustDate("2016-12-09"), false, false, &out); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if records := decodeLines(t, &out); records[0].HomeTeam != "CAL" {
		t.Fatalf("expected alias applied, got %s", records[0].HomeTeam)
	}
}

func TestNewFailsOnBadAliasesFile(t *testing.T) {
	cfg := testConfig()
	cfg.TeamsFile = filepath.Join(t.TempDir(), "missing.toml")
	if _, err := New(cfg, nil, Options{}); err == nil {
		t.Fatalf("expected error for missing aliases file")
	}
}

func TestBuildMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	logger, buf := testutil.NewBufferLogger()
	cfg := testConfig()
	cfg.Metrics.Enabled = true
	rec, srv, stop := buildMetrics(cfg, logger)
	if rec == nil || srv != nil || stop != nil {
		t.Fatalf("expected fallback recorder without server")
	}
	if !strings.Contains(buf.String(), "metrics setup failed") {
		t.Fatalf("expected warning log, got %s", buf.String())
	}
}

func TestBuildMetricsEnabledServesMetrics(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("page_fetch_attempts_total 1\n"))
	})
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return metrics.NewRecorder(), handler, func(context.Context) error { return nil }, nil
	}

	cfg := testConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true, Addr: "127.0.0.1:0"}
	_, srv, stop := buildMetrics(cfg, nil)
	if srv == nil || stop == nil {
		t.Fatalf("expected metrics server and shutdown")
	}
	netSrv := srv.(netHTTPServer)
	rr := testutil.Serve(netSrv.srv.Handler, http.MethodGet, "/metrics", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), "page_fetch_attempts_total") {
		t.Fatalf("unexpected metrics body %s", rr.Body.String())
	}
}

type stubServer struct {
	listenCalls   chan struct{}
	shutdownCalls int
}

func (s *stubServer) ListenAndServe() error {
	close(s.listenCalls)
	return http.ErrServerClosed
}

func (s *stubServer) Shutdown(context.Context) error {
	s.shutdownCalls++
	return nil
}

func (s *stubServer) Addr() string { return ":0" }

func TestRunnerStartAndCloseManageMetricsServer(t *testing.T) {
	srv := &stubServer{listenCalls: make(chan struct{})}
	stopped := false
	r := &Runner{
		metricsServer: srv,
		metricsStop:   func(context.Context) error { stopped = true; return nil },
	}

	r.Start()
	select {
	case <-srv.listenCalls:
	case <-time.After(time.Second):
		t.Fatalf("expected metrics server to start")
	}
	r.Close()
	if srv.shutdownCalls != 1 || !stopped {
		t.Fatalf("expected shutdown hooks to run, server=%d telemetry=%v", srv.shutdownCalls, stopped)
	}
}
