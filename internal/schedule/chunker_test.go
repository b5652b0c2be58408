package schedule

import (
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-schedule-service/internal/testutil"
	"github.com/preston-bernstein/nhl-schedule-service/internal/timeutil"
)

func TestChunkDateRangeSingleDay(t *testing.T) {
	day := testutil.MustDate("2016-09-01")
	chunks, err := ChunkDateRange(day, day, 0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(chunks) != 1 || !chunks[0].Start.Equal(day) || !chunks[0].End.Equal(day) {
		t.Fatalf("expected one single-day chunk, got %v", chunks)
	}
}

func TestChunkDateRangeSplitsAtWindow(t *testing.T) {
	chunks, err := ChunkDateRange(testutil.MustDate("2016-09-01"), testutil.MustDate("2017-01-10"), DefaultChunkDays)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if got := chunks[0].String(); got != "2016-09-01..2016-12-09" {
		t.Fatalf("unexpected first chunk %s", got)
	}
	if got := chunks[1].String(); got != "2016-12-10..2017-01-10" {
		t.Fatalf("unexpected second chunk %s", got)
	}
	if chunks[0].Days() != DefaultChunkDays {
		t.Fatalf("expected a full first window, got %d days", chunks[0].Days())
	}
}

func TestChunkDateRangeEvenMultipleDoesNotOvershoot(t *testing.T) {
	from := testutil.MustDate("2016-01-01")
	to := from.AddDate(0, 0, 19)
	chunks, err := ChunkDateRange(from, to, 10)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(chunks) != 2 || !chunks[1].End.Equal(to) {
		t.Fatalf("expected 2 chunks ending at %s, got %v", timeutil.FormatDate(to), chunks)
	}
}

func TestChunkDateRangeCoversRangeWithoutGaps(t *testing.T) {
	from := testutil.MustDate("2015-07-14")
	to := testutil.MustDate("2018-02-03")
	for _, window := range []int{1, 7, 30, 100, 365, 5000} {
		chunks, err := ChunkDateRange(from, to, window)
		if err != nil {
			t.Fatalf("window %d: unexpected error %v", window, err)
		}
		if !chunks[0].Start.Equal(from) || !chunks[len(chunks)-1].End.Equal(to) {
			t.Fatalf("window %d: chunks do not span the range", window)
		}
		total := 0
		for i, c := range chunks {
			if c.Days() > window || c.Start.After(c.End) {
				t.Fatalf("window %d: bad chunk %s", window, c)
			}
			if i > 0 && !c.Start.Equal(chunks[i-1].End.AddDate(0, 0, 1)) {
				t.Fatalf("window %d: gap or overlap before %s", window, c)
			}
			total += c.Days()
		}
		if total != timeutil.DaysBetween(from, to)+1 {
			t.Fatalf("window %d: expected %d days covered, got %d", window, timeutil.DaysBetween(from, to)+1, total)
		}
	}
}

func TestChunkDateRangeTruncatesTimeOfDay(t *testing.T) {
	from := time.Date(2016, 9, 1, 22, 30, 0, 0, time.UTC)
	to := time.Date(2016, 9, 2, 1, 0, 0, 0, time.UTC)
	chunks, err := ChunkDateRange(from, to, 0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(chunks) != 1 || chunks[0].String() != "2016-09-01..2016-09-02" {
		t.Fatalf("unexpected chunks %v", chunks)
	}
}

func TestChunkDateRangeRejectsReversedRange(t *testing.T) {
	_, err := ChunkDateRange(testutil.MustDate("2017-01-02"), testutil.MustDate("2017-01-01"), 0)
	rangeErr, ok := AsInvalidRangeError(err)
	if !ok {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
	if timeutil.FormatDate(rangeErr.From) != "2017-01-02" {
		t.Fatalf("unexpected error fields %+v", rangeErr)
	}
}
