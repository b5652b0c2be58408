package season

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOfSplitsAtSeasonEnd(t *testing.T) {
	cases := []struct {
		in   time.Time
		want int
	}{
		{date(2016, 9, 1), 2016},
		{date(2016, 12, 31), 2016},
		{date(2017, 1, 1), 2016},
		{date(2017, 6, 15), 2016},
		{date(2017, 8, 31), 2016},
		{date(2017, 9, 1), 2017},
		{date(2020, 9, 20), 2019},
		{date(2020, 10, 2), 2020},
		{date(2021, 1, 13), 2020},
	}
	for _, tc := range cases {
		if got := Of(tc.in); got != tc.want {
			t.Fatalf("season of %s expected %d, got %d", tc.in.Format("2006-01-02"), tc.want, got)
		}
	}
}

func TestTagFormatsYear(t *testing.T) {
	if got := Tag(date(2016, 9, 1)); got != "2016" {
		t.Fatalf("expected tag 2016, got %s", got)
	}
}

func TestStartAndEndBounds(t *testing.T) {
	if got := Start(2016); !got.Equal(date(2016, 9, 1)) {
		t.Fatalf("unexpected start %s", got)
	}
	if got := End(2016); !got.Equal(date(2017, 7, 1)) {
		t.Fatalf("unexpected end %s", got)
	}
}

func TestCurrentUsesCalendarDate(t *testing.T) {
	now := time.Date(2026, 10, 18, 22, 0, 0, 0, time.UTC)
	if got := Current(now); got != 2026 {
		t.Fatalf("expected current season 2026, got %d", got)
	}
}
