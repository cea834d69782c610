package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/propedge/propedge/internal/models"
)

const defaultOddsAPIBaseURL = "https://api.the-odds-api.com/v4"

// OddsAPIClient handles communication with The Odds API. The events endpoint
// is free; per-event odds calls count against the key's quota, so player
// props and main lines are requested separately to bound payload size and
// isolate failures.
type OddsAPIClient struct {
	apiKey  string
	fetcher *fetcher
	baseURL string
	logger  *logrus.Logger
}

// NewOddsAPIClient creates a new Odds API client.
func NewOddsAPIClient(apiKey string, requestDelay, timeout time.Duration, logger *logrus.Logger) *OddsAPIClient {
	return &OddsAPIClient{
		apiKey:  apiKey,
		fetcher: newFetcher("oddsapi", requestDelay, timeout, logger),
		baseURL: defaultOddsAPIBaseURL,
		logger:  logger,
	}
}

// SetBaseURL overrides the API host, used by tests.
func (c *OddsAPIClient) SetBaseURL(u string) { c.baseURL = u }

type oddsEvent struct {
	ID           string    `json:"id"`
	SportKey     string    `json:"sport_key"`
	CommenceTime time.Time `json:"commence_time"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
}

// Outcome is a single quoted option inside a market.
type Outcome struct {
	Name        string   `json:"name"`        // team, or "Over"/"Under"
	Description string   `json:"description"` // player name on prop markets
	Price       float64  `json:"price"`       // American odds
	Point       *float64 `json:"point,omitempty"`
}

// Market groups a bookmaker's outcomes under one market key.
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Bookmaker is one sportsbook's markets for an event.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// EventOdds is the raw per-event odds payload.
type EventOdds struct {
	ID         string      `json:"id"`
	HomeTeam   string      `json:"home_team"`
	AwayTeam   string      `json:"away_team"`
	Bookmakers []Bookmaker `json:"bookmakers"`
}

// ListEvents fetches today's slate for a league. The provider returns the
// full day in one page; no pagination handling is needed.
func (c *OddsAPIClient) ListEvents(ctx context.Context, league models.League) ([]models.Game, *FetchError) {
	endpoint := fmt.Sprintf("%s/sports/%s/events", c.baseURL, league.SportKey())

	params := url.Values{}
	params.Set("apiKey", c.apiKey)

	var events []oddsEvent
	if ferr := c.fetcher.getJSON(ctx, "oddsapi", endpoint+"?"+params.Encode(), "", &events); ferr != nil {
		return nil, ferr
	}

	games := make([]models.Game, 0, len(events))
	for _, ev := range events {
		games = append(games, models.Game{
			ID:        ev.ID,
			HomeTeam:  ev.HomeTeam,
			AwayTeam:  ev.AwayTeam,
			StartTime: ev.CommenceTime,
		})
	}
	return games, nil
}

// GetEventOdds fetches one event's odds restricted to the given market keys.
func (c *OddsAPIClient) GetEventOdds(ctx context.Context, league models.League, eventID string, markets []string) (*EventOdds, *FetchError) {
	endpoint := fmt.Sprintf("%s/sports/%s/events/%s/odds", c.baseURL, league.SportKey(), eventID)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", "us")
	params.Set("oddsFormat", "american")
	params.Set("markets", strings.Join(markets, ","))

	var odds EventOdds
	if ferr := c.fetcher.getJSON(ctx, "oddsapi", endpoint+"?"+params.Encode(), eventID, &odds); ferr != nil {
		return nil, ferr
	}
	return &odds, nil
}

// PropMarkets returns the player-prop market keys requested for a league.
func PropMarkets(league models.League) []string {
	if league == models.LeagueNFL {
		return []string{
			"player_pass_yds",
			"player_pass_tds",
			"player_pass_interceptions",
			"player_rush_yds",
			"player_receptions",
			"player_reception_yds",
			"player_rush_attempts",
		}
	}
	return []string{
		"player_points",
		"player_rebounds",
		"player_assists",
		"player_threes",
		"player_steals",
		"player_blocks",
		"player_turnovers",
		"player_points_rebounds_assists",
		"player_points_rebounds",
		"player_points_assists",
		"player_rebounds_assists",
	}
}

// MainMarkets returns the spread/total market keys used for game context.
func MainMarkets() []string {
	return []string{"spreads", "totals"}
}
