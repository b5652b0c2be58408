package schedule

import (
	"time"

	"github.com/preston-bernstein/nhl-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-service/internal/timeutil"
)

// DefaultChunkDays is the widest range the schedule endpoint answers reliably.
const DefaultChunkDays = 100

// ChunkDateRange splits [from, to] into consecutive windows of at most window
// days. The windows are ordered, do not overlap, and together cover every date
// in the range. A window <= 0 uses DefaultChunkDays.
func ChunkDateRange(from, to time.Time, window int) ([]games.DateRange, error) {
	from, to = timeutil.Day(from), timeutil.Day(to)
	if from.After(to) {
		return nil, &InvalidRangeError{From: from, To: to}
	}
	if window <= 0 {
		window = DefaultChunkDays
	}

	total := timeutil.DaysBetween(from, to) + 1
	chunks := make([]games.DateRange, 0, (total+window-1)/window)
	for offset := 0; offset < total; offset += window {
		last := min(total-1, offset+window-1)
		chunks = append(chunks, games.DateRange{
			Start: from.AddDate(0, 0, offset),
			End:   from.AddDate(0, 0, last),
		})
	}
	return chunks, nil
}
