package schedule

import "github.com/preston-bernstein/nhl-schedule-service/internal/domain/games"

// Chunk is the parsed schedule page for one date window.
type Chunk struct {
	Range games.DateRange
	Days  []Day
}

// Day is one entry of the upstream dates array.
type Day struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}

// Game mirrors the upstream game object. Pointer fields stay nil when the
// upstream omits them so the normalizer can tell absent from empty.
type Game struct {
	GamePk   *int64  `json:"gamePk"`
	GameDate *string `json:"gameDate"`
	Status   *Status `json:"status"`
	Venue    *Venue  `json:"venue"`
	Teams    *Teams  `json:"teams"`
}

type Status struct {
	DetailedState     *string `json:"detailedState"`
	AbstractGameState *string `json:"abstractGameState"`
}

type Venue struct {
	Name string `json:"name"`
}

type Teams struct {
	Home *Side `json:"home"`
	Away *Side `json:"away"`
}

type Side struct {
	Team  *TeamRef `json:"team"`
	Score *int     `json:"score"`
}

type TeamRef struct {
	Name *string `json:"name"`
}

type scheduleResponse struct {
	Dates *[]Day `json:"dates"`
}
