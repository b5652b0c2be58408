package schedule

import (
	"strings"

	"github.com/preston-bernstein/nhl-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-service/internal/timeutil"
)

const finalState = "Final"

// TeamResolver maps an uppercased upstream team name to its canonical form.
type TeamResolver interface {
	Resolve(name string) string
}

// Filter selects which games become records. Lower and Upper bound the
// season-stripped game code; zero values mean regular season through playoffs.
type Filter struct {
	IncludePreseason  bool
	IncludeUnfinished bool
	Lower             int
	Upper             int
}

func (f Filter) bounds() (int, int) {
	lower, upper := f.Lower, f.Upper
	if lower == 0 {
		lower = games.CodeOf(games.RegularSeason)
	}
	if upper == 0 {
		upper = games.CodeOf(games.AllStar)
	}
	return lower, upper
}

// Allows reports whether a game with the given id passes the game-type filter.
func (f Filter) Allows(id games.GameID) bool {
	lower, upper := f.bounds()
	code := id.Code()
	return (code >= lower || f.IncludePreseason) && code < upper
}

// Normalize flattens chunks into records in chunk, day, game order. Games that
// are unfinished or outside the filter are skipped; a game missing a field
// the record needs aborts with a *SchemaError.
func Normalize(chunks []Chunk, f Filter, teams TeamResolver) ([]games.Record, error) {
	records := make([]games.Record, 0)
	for _, chunk := range chunks {
		for _, day := range chunk.Days {
			for _, g := range day.Games {
				rec, ok, err := normalizeGame(day.Date, g, f, teams)
				if err != nil {
					return nil, err
				}
				if ok {
					records = append(records, rec)
				}
			}
		}
	}
	return records, nil
}

func normalizeGame(date string, g Game, f Filter, teams TeamResolver) (games.Record, bool, error) {
	var raw int64
	if g.GamePk != nil {
		raw = *g.GamePk
	}
	missing := func(field string) error {
		return &SchemaError{GameID: raw, Field: field}
	}

	if g.Status == nil {
		return games.Record{}, false, missing("status")
	}
	if g.Status.DetailedState == nil {
		return games.Record{}, false, missing("status.detailedState")
	}
	if *g.Status.DetailedState != finalState && !f.IncludeUnfinished {
		return games.Record{}, false, nil
	}

	if g.GamePk == nil {
		return games.Record{}, false, missing("gamePk")
	}
	id, err := games.DecodeGameID(raw)
	if err != nil {
		return games.Record{}, false, &SchemaError{GameID: raw, Field: "gamePk", Err: err}
	}
	if !f.Allows(id) {
		return games.Record{}, false, nil
	}

	if g.GameDate == nil {
		return games.Record{}, false, missing("gameDate")
	}
	start, err := timeutil.ParseTimestamp(*g.GameDate)
	if err != nil {
		return games.Record{}, false, &SchemaError{GameID: raw, Field: "gameDate", Err: err}
	}
	if g.Status.AbstractGameState == nil {
		return games.Record{}, false, missing("status.abstractGameState")
	}
	if g.Teams == nil {
		return games.Record{}, false, missing("teams")
	}
	home, err := sideName(g.Teams.Home, "teams.home", missing)
	if err != nil {
		return games.Record{}, false, err
	}
	away, err := sideName(g.Teams.Away, "teams.away", missing)
	if err != nil {
		return games.Record{}, false, err
	}

	rec := games.Record{
		GameID:    raw,
		Date:      date,
		StartTime: start,
		HomeTeam:  resolveTeam(teams, home),
		AwayTeam:  resolveTeam(teams, away),
		HomeScore: copyInt(g.Teams.Home.Score),
		AwayScore: copyInt(g.Teams.Away.Score),
		Status:    *g.Status.AbstractGameState,
	}
	if g.Venue != nil {
		rec.Venue = g.Venue.Name
	}
	return rec, true, nil
}

func sideName(side *Side, path string, missing func(string) error) (string, error) {
	switch {
	case side == nil:
		return "", missing(path)
	case side.Team == nil:
		return "", missing(path + ".team")
	case side.Team.Name == nil:
		return "", missing(path + ".team.name")
	}
	return *side.Team.Name, nil
}

func resolveTeam(teams TeamResolver, name string) string {
	name = strings.ToUpper(name)
	if teams == nil {
		return name
	}
	return teams.Resolve(name)
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
