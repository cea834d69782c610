package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propedge/propedge/internal/models"
)

func newTestESPNClient(t *testing.T, handler http.HandlerFunc) *ESPNClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewESPNClient(time.Millisecond, 2*time.Second, logrus.New())
	client.SetBaseURL(server.URL)
	return client
}

func TestListTeams(t *testing.T) {
	client := newTestESPNClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/basketball/nba/teams", r.URL.Path)
		w.Write([]byte(`{
			"sports": [{"leagues": [{"teams": [
				{"team": {"id": "7", "abbreviation": "DEN", "displayName": "Denver Nuggets"}},
				{"team": {"id": "13", "abbreviation": "LAL", "displayName": "Los Angeles Lakers"}}
			]}]}]
		}`))
	})

	teams, ferr := client.ListTeams(context.Background(), models.LeagueNBA)
	require.Nil(t, ferr)
	require.Len(t, teams, 2)
	assert.Equal(t, "DEN", teams[0].Abbreviation)
	assert.Equal(t, "Denver Nuggets", teams[0].DisplayName)
	assert.Equal(t, "7", teams[0].ExternalID)
}

func TestGetTeamRoster(t *testing.T) {
	client := newTestESPNClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/basketball/nba/teams/7", r.URL.Path)
		assert.Equal(t, "roster", r.URL.Query().Get("enable"))
		w.Write([]byte(`{
			"team": {
				"id": "7", "abbreviation": "DEN",
				"athletes": [
					{"id": "3112335", "fullName": "Nikola Jokic", "displayName": "Nikola Jokic"},
					{"id": "4278104", "fullName": "Jamal Murray Jr.", "displayName": ""}
				]
			}
		}`))
	})

	team := models.TeamRef{Abbreviation: "DEN", ExternalID: "7"}
	players, ferr := client.GetTeamRoster(context.Background(), models.LeagueNBA, team)
	require.Nil(t, ferr)
	require.Len(t, players, 2)

	assert.Equal(t, "nikola jokic", players[0].NormalizedName)
	assert.Equal(t, "DEN", players[0].Team)

	// Fell back to fullName and stripped the suffix.
	assert.Equal(t, "jamal murray", players[1].NormalizedName)
	assert.Equal(t, "Jamal Murray Jr.", players[1].DisplayName)
}

func TestGetTeamInjuries(t *testing.T) {
	client := newTestESPNClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "injuries", r.URL.Query().Get("enable"))
		w.Write([]byte(`{
			"team": {
				"id": "7", "abbreviation": "DEN",
				"injuries": [
					{"status": "Out", "athlete": {"id": "1", "displayName": "Jamal Murray"}}
				]
			}
		}`))
	})

	team := models.TeamRef{Abbreviation: "DEN", ExternalID: "7"}
	records, ferr := client.GetTeamInjuries(context.Background(), models.LeagueNBA, team)
	require.Nil(t, ferr)
	require.Len(t, records, 1)
	assert.Equal(t, "jamal murray", records[0].NormalizedName)
	assert.Equal(t, "Out", records[0].Status)
	assert.Equal(t, "DEN", records[0].Team)
}

func TestESPNErrorCarriesStatusAndUnit(t *testing.T) {
	client := newTestESPNClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	team := models.TeamRef{Abbreviation: "DEN", ExternalID: "7"}
	_, ferr := client.GetTeamRoster(context.Background(), models.LeagueNBA, team)
	require.NotNil(t, ferr)
	assert.Equal(t, http.StatusServiceUnavailable, ferr.Status)
	assert.Equal(t, "espn", ferr.Provider)
	assert.Equal(t, "DEN", ferr.Unit)
}

func TestESPNLeaguePaths(t *testing.T) {
	var gotPath string
	client := newTestESPNClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"sports": []}`))
	})

	_, ferr := client.ListTeams(context.Background(), models.LeagueNFL)
	require.Nil(t, ferr)
	assert.Equal(t, "/football/nfl/teams", gotPath)
}
