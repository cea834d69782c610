package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/propedge/propedge/internal/models"
	"github.com/propedge/propedge/internal/names"
)

const defaultESPNBaseURL = "https://site.api.espn.com/apis/site/v2/sports"

// ESPNClient reads team lists, rosters and injury reports from ESPN's site
// API. All endpoints are unauthenticated GETs.
type ESPNClient struct {
	fetcher *fetcher
	baseURL string
	logger  *logrus.Logger
}

// NewESPNClient creates a new ESPN API client.
func NewESPNClient(requestDelay, timeout time.Duration, logger *logrus.Logger) *ESPNClient {
	return &ESPNClient{
		fetcher: newFetcher("espn", requestDelay, timeout, logger),
		baseURL: defaultESPNBaseURL,
		logger:  logger,
	}
}

// SetBaseURL overrides the API host, used by tests.
func (c *ESPNClient) SetBaseURL(u string) { c.baseURL = u }

// ESPN API response structures
type espnTeamListResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team espnTeam `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

type espnTeam struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
}

type espnAthlete struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	DisplayName string `json:"displayName"`
	Position    struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
}

type espnRosterResponse struct {
	Team struct {
		espnTeam
		Athletes []espnAthlete `json:"athletes"`
	} `json:"team"`
}

type espnInjuryResponse struct {
	Team struct {
		espnTeam
		Injuries []struct {
			Status  string      `json:"status"`
			Athlete espnAthlete `json:"athlete"`
		} `json:"injuries"`
	} `json:"team"`
}

func leaguePath(league models.League) string {
	if league == models.LeagueNFL {
		return "football/nfl"
	}
	return "basketball/nba"
}

// ListTeams fetches the league's team list.
func (c *ESPNClient) ListTeams(ctx context.Context, league models.League) ([]models.TeamRef, *FetchError) {
	url := fmt.Sprintf("%s/%s/teams", c.baseURL, leaguePath(league))

	var resp espnTeamListResponse
	if ferr := c.fetcher.getJSON(ctx, "espn", url, "", &resp); ferr != nil {
		return nil, ferr
	}

	var teams []models.TeamRef
	for _, sport := range resp.Sports {
		for _, lg := range sport.Leagues {
			for _, entry := range lg.Teams {
				teams = append(teams, models.TeamRef{
					DisplayName:  entry.Team.DisplayName,
					Abbreviation: entry.Team.Abbreviation,
					ExternalID:   entry.Team.ID,
				})
			}
		}
	}
	return teams, nil
}

// GetTeamRoster fetches the roster for one team. Player names come back
// already normalized for index insertion.
func (c *ESPNClient) GetTeamRoster(ctx context.Context, league models.League, team models.TeamRef) ([]models.PlayerRef, *FetchError) {
	url := fmt.Sprintf("%s/%s/teams/%s?enable=roster", c.baseURL, leaguePath(league), team.ExternalID)

	var resp espnRosterResponse
	if ferr := c.fetcher.getJSON(ctx, "espn", url, team.Abbreviation, &resp); ferr != nil {
		return nil, ferr
	}

	players := make([]models.PlayerRef, 0, len(resp.Team.Athletes))
	for _, athlete := range resp.Team.Athletes {
		display := athlete.DisplayName
		if display == "" {
			display = athlete.FullName
		}
		key := names.Normalize(display)
		if key == "" {
			continue
		}
		players = append(players, models.PlayerRef{
			NormalizedName: key,
			DisplayName:    display,
			ExternalID:     athlete.ID,
			Team:           team.Abbreviation,
		})
	}
	return players, nil
}

// GetTeamInjuries fetches one team's injury report. Status classification is
// left to the caller; this returns every listed entry.
func (c *ESPNClient) GetTeamInjuries(ctx context.Context, league models.League, team models.TeamRef) ([]models.InjuryRecord, *FetchError) {
	url := fmt.Sprintf("%s/%s/teams/%s?enable=injuries", c.baseURL, leaguePath(league), team.ExternalID)

	var resp espnInjuryResponse
	if ferr := c.fetcher.getJSON(ctx, "espn", url, team.Abbreviation, &resp); ferr != nil {
		return nil, ferr
	}

	records := make([]models.InjuryRecord, 0, len(resp.Team.Injuries))
	for _, inj := range resp.Team.Injuries {
		display := inj.Athlete.DisplayName
		if display == "" {
			display = inj.Athlete.FullName
		}
		key := names.Normalize(display)
		if key == "" {
			continue
		}
		records = append(records, models.InjuryRecord{
			NormalizedName: key,
			Status:         inj.Status,
			Team:           team.Abbreviation,
		})
	}
	return records, nil
}
