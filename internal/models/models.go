package models

import (
	"time"
)

// League identifies a supported league.
type League string

const (
	LeagueNBA League = "nba"
	LeagueNFL League = "nfl"
)

// SportKey returns the odds provider's sport key for the league.
func (l League) SportKey() string {
	switch l {
	case LeagueNFL:
		return "americanfootball_nfl"
	default:
		return "basketball_nba"
	}
}

// TeamRef identifies a team as reported by the game data provider.
type TeamRef struct {
	DisplayName  string `json:"display_name"`
	Abbreviation string `json:"abbreviation"`
	ExternalID   string `json:"external_id"`
}

// PlayerRef resolves a normalized player name to a team for the current run.
type PlayerRef struct {
	NormalizedName string `json:"normalized_name"`
	DisplayName    string `json:"display_name"`
	ExternalID     string `json:"external_id"`
	Team           string `json:"team"` // team abbreviation
}

// InjuryRecord marks a player as unavailable for the run. Presence in the
// injury set always means full exclusion, never partial weighting.
type InjuryRecord struct {
	NormalizedName string `json:"normalized_name"`
	Status         string `json:"status"`
	Team           string `json:"team"`
}

// Game represents a single event from the odds provider's slate.
type Game struct {
	ID        string    `json:"id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	StartTime time.Time `json:"start_time"`
}

// Matchup returns the "Away @ Home" label used on the dashboard.
func (g Game) Matchup() string {
	return g.AwayTeam + " @ " + g.HomeTeam
}

// MarketLine is the consensus line for one (player, market) pair, reduced
// from however many books quoted it.
type MarketLine struct {
	PlayerName string  `json:"player_name"`
	PropType   string  `json:"prop_type"`
	Line       float64 `json:"line"`
	OverPrice  float64 `json:"over_price,omitempty"`
	UnderPrice float64 `json:"under_price,omitempty"`
	// Dispersion is the standard deviation of the quoted points across
	// books. A noisy consensus lowers pick confidence.
	Dispersion float64 `json:"dispersion"`
	Books      int     `json:"books"`
}

// GameContext carries the situational signals derived from a game's main
// lines. It is recomputed per game per run and never persisted.
type GameContext struct {
	SpreadAbs   float64 `json:"spread_abs"`
	TotalPoints float64 `json:"total_points"`
	HasSpread   bool    `json:"has_spread"`
	HasTotal    bool    `json:"has_total"`
	// FavoriteKnown is false both for a missing spread and for a pick'em,
	// where neither side is the favorite.
	FavoriteKnown bool `json:"favorite_known"`
	HomeFavorite  bool `json:"home_favorite"`
	BlowoutRisk  float64 `json:"blowout_risk"` // in [0,1]
	RunBias      float64 `json:"run_bias"`     // in [0,1], NFL only
	PassBias     float64 `json:"pass_bias"`    // in [0,1], NFL only
}

// Side is the direction of a pick relative to its line.
type Side string

const (
	SideOver  Side = "over"
	SideUnder Side = "under"
)

// Factor is one named contribution to a pick's edge score. Factors are kept
// as an ordered list with a fixed vocabulary per league rather than an
// ad hoc map, so the breakdown contract is explicit.
type Factor struct {
	Name      string  `json:"name"`
	Magnitude float64 `json:"magnitude"`
}

// Pick is an emitted recommendation. Picks are immutable once created and
// are consumed only by the renderer.
type Pick struct {
	Player     PlayerRef `json:"player"`
	PropType   string    `json:"prop_type"`
	Line       float64   `json:"line"`
	Side       Side      `json:"side"`
	Projected  float64   `json:"projected"`
	EdgeScore  float64   `json:"edge_score"` // in [0,100]
	Factors    []Factor  `json:"factors"`
	Matchup    string    `json:"matchup"`
	TimeLabel  string    `json:"time_label"`
	OverPrice  float64   `json:"over_price,omitempty"`
	UnderPrice float64   `json:"under_price,omitempty"`
}

// PlayerStats is a per-player bundle of recent-window averages for the stat
// categories the scoring engine projects from. Loaded once at startup as
// explicit configuration and treated as immutable.
type PlayerStats struct {
	Name   string             `json:"name"`
	Team   string             `json:"team"`
	Stats  map[string]float64 `json:"stats"`
	Splits PlayerSplits       `json:"splits"`
}

// PlayerSplits carries the situational modifiers attached to a player's
// stat bundle.
type PlayerSplits struct {
	HomeAway    float64 `json:"home_away"` // multiplier, ~1.0
	BackToBack  bool    `json:"back_to_back"`
	LoadManaged bool    `json:"load_managed"`
	RestDays    int     `json:"rest_days"`
}

// DefenseProfile is a team's aggregate defensive profile keyed by
// abbreviation, used for matchup adjustments.
type DefenseProfile struct {
	Team       string  `json:"team"`
	PaceAdjust float64 `json:"pace_adjust"` // multiplier, ~1.0
	// Rank fields are 1 (best defense) through 32 (worst).
	OverallRank int `json:"overall_rank"`
	PassRank    int `json:"pass_rank,omitempty"`
	RushRank    int `json:"rush_rank,omitempty"`
}

// RunDiagnostics summarizes one pipeline run for the debug panel and logs.
type RunDiagnostics struct {
	RunID          string        `json:"run_id"`
	League         League        `json:"league"`
	EventsSeen     int           `json:"events_seen"`
	LinesParsed    int           `json:"lines_parsed"`
	SkippedNoTeam  int           `json:"skipped_no_team"`
	SkippedInjured int           `json:"skipped_injured"`
	SkippedNoEdge  int           `json:"skipped_no_edge"`
	SkippedLowEdge int           `json:"skipped_low_edge"`
	SkippedInvalid int           `json:"skipped_invalid"`
	Picks          int           `json:"picks"`
	Duration       time.Duration `json:"duration"`
}
