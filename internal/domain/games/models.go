package games

import (
	"fmt"
	"strconv"
	"time"

	"github.com/preston-bernstein/nhl-schedule-service/internal/timeutil"
)

// GameType is the two-digit game-type segment of an upstream game id.
type GameType int

const (
	Preseason     GameType = 1
	RegularSeason GameType = 2
	Playoffs      GameType = 3
	AllStar       GameType = 4
)

func (t GameType) String() string {
	switch t {
	case Preseason:
		return "preseason"
	case RegularSeason:
		return "regular"
	case Playoffs:
		return "playoffs"
	case AllStar:
		return "allstar"
	default:
		return fmt.Sprintf("type-%02d", int(t))
	}
}

const (
	minRawID = 1_000_000_000
	maxRawID = 9_999_999_999

	// RawIDWidth is the number of decimal digits in an upstream game id.
	RawIDWidth = 10
)

// GameID is the decoded form of an upstream game id (SSSS TT NNNN).
type GameID struct {
	Season   int
	Type     GameType
	Sequence int
}

// DecodeGameID splits a raw upstream id into season, game type and sequence.
func DecodeGameID(raw int64) (GameID, error) {
	if raw < minRawID || raw > maxRawID {
		return GameID{}, fmt.Errorf("game id %d is not %d digits", raw, RawIDWidth)
	}
	return GameID{
		Season:   int(raw / 1_000_000),
		Type:     GameType(raw / 10_000 % 100),
		Sequence: int(raw % 10_000),
	}, nil
}

// ParseGameID decodes a game id given as decimal text.
func ParseGameID(value string) (GameID, error) {
	if len(value) != RawIDWidth {
		return GameID{}, fmt.Errorf("game id %q is not %d digits", value, RawIDWidth)
	}
	raw, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return GameID{}, fmt.Errorf("game id %q: %w", value, err)
	}
	return DecodeGameID(raw)
}

// Code is the id with its season prefix removed, i.e. the last five digits.
// Game-type filters compare against this value.
func (id GameID) Code() int {
	return int(id.Type)%10*10_000 + id.Sequence
}

// Raw re-encodes the id in upstream form.
func (id GameID) Raw() int64 {
	return int64(id.Season)*1_000_000 + int64(id.Type)*10_000 + int64(id.Sequence)
}

func (id GameID) String() string {
	return strconv.FormatInt(id.Raw(), 10)
}

// CodeOf returns the season-stripped code a game type's sequence numbers start at.
func CodeOf(t GameType) int {
	return GameID{Type: t}.Code()
}

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two dates, dropping any time of day.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: timeutil.Day(start), End: timeutil.Day(end)}
}

// Days returns the number of calendar days covered, counting both ends.
func (r DateRange) Days() int {
	return timeutil.DaysBetween(r.Start, r.End) + 1
}

func (r DateRange) String() string {
	return timeutil.FormatDate(r.Start) + ".." + timeutil.FormatDate(r.End)
}

// Record is one normalized schedule entry.
type Record struct {
	GameID    int64     `json:"gameId"`
	Date      string    `json:"date"`
	StartTime time.Time `json:"startTime"`
	Venue     string    `json:"venue,omitempty"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	HomeScore *int      `json:"homeScore"`
	AwayScore *int      `json:"awayScore"`
	Status    string    `json:"status"`
}

// ID returns the record's game id as decimal text.
func (r Record) ID() string {
	return strconv.FormatInt(r.GameID, 10)
}
