// Package season maps calendar dates onto league seasons.
//
// A season is identified by the year it starts in: the 2016 season opens in
// the fall of 2016 and its playoffs end the following summer.
package season

import (
	"strconv"
	"time"

	"github.com/preston-bernstein/nhl-schedule-service/internal/timeutil"
)

// Of returns the starting year of the season that date belongs to.
func Of(date time.Time) int {
	day := timeutil.Day(date)
	year := day.Year()
	if !day.After(endBound(year)) {
		return year - 1
	}
	return year
}

// Tag renders the season of date the way page requests label it.
func Tag(date time.Time) string {
	return strconv.Itoa(Of(date))
}

// Current returns the season in progress at now.
func Current(now time.Time) int {
	return Of(now)
}

// Start is the earliest date a season's games (preseason included) can fall on.
func Start(year int) time.Time {
	return time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
}

// End is a generous upper bound for the last playoff game of a season.
func End(year int) time.Time {
	return time.Date(year+1, time.July, 1, 0, 0, 0, 0, time.UTC)
}

// endBound is the last day of year that still belongs to the previous season.
func endBound(year int) time.Time {
	if year == 2020 {
		// the 2019 playoffs were played in the fall of 2020
		return time.Date(2020, time.October, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, time.August, 31, 0, 0, 0, 0, time.UTC)
}
