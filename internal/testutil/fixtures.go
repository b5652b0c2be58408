package testutil

import "encoding/json"

// ScheduleGame describes one upstream game for fixture payloads.
type ScheduleGame struct {
	GamePk        int64
	GameDate      string
	DetailedState string
	AbstractState string
	Venue         string
	Home, Away    string
	HomeScore     *int
	AwayScore     *int
}

// ScheduleDay groups fixture games under a date.
type ScheduleDay struct {
	Date  string
	Games []ScheduleGame
}

// FinalGame returns a completed game with scores and a venue.
func FinalGame(pk int64, gameDate string) ScheduleGame {
	home, away := 3, 2
	return ScheduleGame{
		GamePk:        pk,
		GameDate:      gameDate,
		DetailedState: "Final",
		AbstractState: "Final",
		Venue:         "Scotiabank Saddledome",
		Home:          "Calgary Flames",
		Away:          "Edmonton Oilers",
		HomeScore:     &home,
		AwayScore:     &away,
	}
}

// PreviewGame returns a game that has not started.
func PreviewGame(pk int64, gameDate string) ScheduleGame {
	return ScheduleGame{
		GamePk:        pk,
		GameDate:      gameDate,
		DetailedState: "Scheduled",
		AbstractState: "Preview",
		Home:          "Montréal Canadiens",
		Away:          "Toronto Maple Leafs",
	}
}

// SchedulePayload renders days in the upstream schedule response shape.
func SchedulePayload(days ...ScheduleDay) []byte {
	out := map[string]any{"dates": renderDays(days)}
	data, err := json.Marshal(out)
	if err != nil {
		panic(err)
	}
	return data
}

func renderDays(days []ScheduleDay) []map[string]any {
	rendered := make([]map[string]any, 0, len(days))
	for _, d := range days {
		games := make([]map[string]any, 0, len(d.Games))
		for _, g := range d.Games {
			games = append(games, renderGame(g))
		}
		rendered = append(rendered, map[string]any{"date": d.Date, "games": games})
	}
	return rendered
}

func renderGame(g ScheduleGame) map[string]any {
	side := func(name string, score *int) map[string]any {
		s := map[string]any{"team": map[string]any{"name": name}}
		if score != nil {
			s["score"] = *score
		}
		return s
	}
	game := map[string]any{
		"gamePk":   g.GamePk,
		"gameDate": g.GameDate,
		"status": map[string]any{
			"detailedState":     g.DetailedState,
			"abstractGameState": g.AbstractState,
		},
		"teams": map[string]any{
			"home": side(g.Home, g.HomeScore),
			"away": side(g.Away, g.AwayScore),
		},
	}
	if g.Venue != "" {
		game["venue"] = map[string]any{"name": g.Venue}
	}
	return game
}
