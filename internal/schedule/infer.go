package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/preston-bernstein/nhl-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-service/internal/season"
	"github.com/preston-bernstein/nhl-schedule-service/internal/timeutil"
)

var errNoGameIDs = errors.New("no game ids given")

// InferDateRange returns the date range that covers every season the ids
// belong to: from the start of the earliest season to the end of the latest,
// or to today when the latest season is still in progress at now.
func InferDateRange(ids []string, now time.Time) (games.DateRange, error) {
	if len(ids) == 0 {
		return games.DateRange{}, errNoGameIDs
	}
	if err := validateIDs(ids); err != nil {
		return games.DateRange{}, err
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	earliest, _ := games.ParseGameID(sorted[0])
	latest, _ := games.ParseGameID(sorted[len(sorted)-1])

	from := season.Start(earliest.Season)
	to := season.End(latest.Season)
	if latest.Season == season.Of(now) {
		to = timeutil.Day(now)
	}
	return games.DateRange{Start: from, End: to}, nil
}

func validateIDs(ids []string) error {
	for _, id := range ids {
		if _, err := games.ParseGameID(id); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidGameID, err)
		}
	}
	return nil
}
