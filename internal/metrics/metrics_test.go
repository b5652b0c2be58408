package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksFetchAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordFetchAttempt("statsapi", 10*time.Millisecond, nil)
	rec.RecordFetchAttempt("statsapi", 15*time.Millisecond, errors.New("boom"))

	if got := rec.FetchCalls("statsapi"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.FetchErrors("statsapi"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("statsapi"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("statsapi")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("statsapi", 5*time.Second)
	rec.RecordRateLimit("statsapi", 0)

	if got := rec.RateLimitHits("statsapi"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("statsapi"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksCacheLookups(t *testing.T) {
	rec := NewRecorder()
	rec.RecordCacheLookup("fs", true)
	rec.RecordCacheLookup("fs", false)
	rec.RecordCacheLookup("fs", true)

	snap := rec.Snapshot("fs")
	if snap.CacheHits != 2 || snap.CacheMisses != 1 {
		t.Fatalf("unexpected cache stats %+v", snap)
	}
}

func TestRecorderTracksScrapes(t *testing.T) {
	rec := NewRecorder()
	rec.RecordScrape("scrape_schedule", time.Millisecond, 12, nil)
	rec.RecordScrape("scrape_schedule", time.Millisecond, 0, errors.New("boom"))

	snap := rec.ScrapeSnapshot("scrape_schedule")
	if snap.Runs != 2 || snap.Errors != 1 || snap.Records != 12 {
		t.Fatalf("unexpected scrape stats %+v", snap)
	}
	if got := rec.ScrapeSnapshot("missing"); got != (ScrapeSnapshot{}) {
		t.Fatalf("expected empty snapshot, got %+v", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordFetchAttempt("x", time.Millisecond, nil)
	rec.RecordRateLimit("x", time.Second)
	rec.RecordCacheLookup("x", true)
	rec.RecordScrape("x", time.Millisecond, 1, nil)
	if rec.FetchCalls("x") != 0 || rec.ScrapeSnapshot("x").Runs != 0 {
		t.Fatalf("expected zero stats from nil recorder")
	}
}
