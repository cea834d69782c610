package scoring

import "github.com/propedge/propedge/internal/models"

// scriptKind tags an NFL prop with the side of the run/pass script that
// moves it. Scripts never touch NBA props.
type scriptKind int

const (
	scriptNone scriptKind = iota
	scriptPassing
	scriptRushing
	scriptReceiving
)

// propSpec describes how one prop market is projected and scored. Dispatch
// is table-driven: adding a league or market means adding a row here, not
// growing a conditional.
type propSpec struct {
	// statKeys are summed from the player's stat bundle to form the
	// baseline projection; combo props list several keys. A bundle missing
	// any key yields no baseline.
	statKeys []string
	// deadzone is the minimum |projection - line| gap that counts as
	// signal. Low-frequency counting stats get tight deadzones; high-volume
	// stats need a wider gap to mean anything.
	deadzone float64
	// volume props lose value when a game goes lopsided early.
	volume bool
	// highVariance props pick up a little garbage-time value instead.
	highVariance bool
	script       scriptKind
}

var propSpecs = map[models.League]map[string]propSpec{
	models.LeagueNBA: {
		"player_points":   {statKeys: []string{"points"}, deadzone: 2.0, volume: true},
		"player_rebounds": {statKeys: []string{"rebounds"}, deadzone: 1.25, volume: true},
		"player_assists":  {statKeys: []string{"assists"}, deadzone: 1.25, volume: true},
		"player_threes":    {statKeys: []string{"threes"}, deadzone: 0.6, highVariance: true},
		"player_steals":    {statKeys: []string{"steals"}, deadzone: 0.4, highVariance: true},
		"player_blocks":    {statKeys: []string{"blocks"}, deadzone: 0.4, highVariance: true},
		"player_turnovers": {statKeys: []string{"turnovers"}, deadzone: 0.5, highVariance: true},
		"player_points_rebounds_assists": {
			statKeys: []string{"points", "rebounds", "assists"}, deadzone: 3.0, volume: true,
		},
		"player_points_rebounds": {statKeys: []string{"points", "rebounds"}, deadzone: 2.5, volume: true},
		"player_points_assists":  {statKeys: []string{"points", "assists"}, deadzone: 2.5, volume: true},
		"player_rebounds_assists": {
			statKeys: []string{"rebounds", "assists"}, deadzone: 2.0, volume: true,
		},
	},
	models.LeagueNFL: {
		"player_pass_yds":           {statKeys: []string{"pass_yards"}, deadzone: 15, volume: true, script: scriptPassing},
		"player_pass_tds":           {statKeys: []string{"pass_tds"}, deadzone: 0.35, highVariance: true, script: scriptPassing},
		"player_pass_interceptions": {statKeys: []string{"pass_ints"}, deadzone: 0.3, highVariance: true, script: scriptPassing},
		"player_rush_yds":           {statKeys: []string{"rush_yards"}, deadzone: 8, volume: true, script: scriptRushing},
		"player_rush_attempts":      {statKeys: []string{"rush_attempts"}, deadzone: 2, volume: true, script: scriptRushing},
		"player_receptions":         {statKeys: []string{"receptions"}, deadzone: 0.75, volume: true, script: scriptReceiving},
		"player_reception_yds":      {statKeys: []string{"rec_yards"}, deadzone: 8, volume: true, script: scriptReceiving},
	},
}

// Deadzone returns the no-signal threshold for a league/prop pair, or 0 for
// unknown props (which never produce a baseline edge anyway).
func Deadzone(league models.League, propType string) float64 {
	if spec, ok := propSpecs[league][propType]; ok {
		return spec.deadzone
	}
	return 0
}

// KnownProp reports whether the engine has a spec for the market key.
func KnownProp(league models.League, propType string) bool {
	_, ok := propSpecs[league][propType]
	return ok
}

// DisplayName renders a market key for the dashboard ("player_pass_yds" ->
// "Pass Yds").
func DisplayName(propType string) string {
	names := map[string]string{
		"player_points":                  "Points",
		"player_rebounds":                "Rebounds",
		"player_assists":                 "Assists",
		"player_threes":                  "Threes",
		"player_steals":                  "Steals",
		"player_blocks":                  "Blocks",
		"player_turnovers":               "Turnovers",
		"player_points_rebounds_assists": "Pts+Reb+Ast",
		"player_points_rebounds":         "Pts+Reb",
		"player_points_assists":          "Pts+Ast",
		"player_rebounds_assists":        "Reb+Ast",
		"player_pass_yds":                "Pass Yds",
		"player_pass_tds":                "Pass TDs",
		"player_pass_interceptions":      "Interceptions",
		"player_rush_yds":                "Rush Yds",
		"player_rush_attempts":           "Carries",
		"player_receptions":              "Receptions",
		"player_reception_yds":           "Rec Yds",
	}
	if n, ok := names[propType]; ok {
		return n
	}
	return propType
}
