package rosters

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propedge/propedge/internal/models"
	"github.com/propedge/propedge/internal/providers"
)

// fakeSource serves canned teams, rosters and injuries, with optional
// per-team failures.
type fakeSource struct {
	teams     []models.TeamRef
	rosters   map[string][]models.PlayerRef
	injuries  map[string][]models.InjuryRecord
	failTeams map[string]bool
	calls     int
}

func (f *fakeSource) ListTeams(_ context.Context, _ models.League) ([]models.TeamRef, *providers.FetchError) {
	f.calls++
	return f.teams, nil
}

func (f *fakeSource) GetTeamRoster(_ context.Context, _ models.League, team models.TeamRef) ([]models.PlayerRef, *providers.FetchError) {
	f.calls++
	if f.failTeams[team.Abbreviation] {
		return nil, &providers.FetchError{Provider: "espn", Unit: team.Abbreviation, Status: 503}
	}
	return f.rosters[team.Abbreviation], nil
}

func (f *fakeSource) GetTeamInjuries(_ context.Context, _ models.League, team models.TeamRef) ([]models.InjuryRecord, *providers.FetchError) {
	f.calls++
	if f.failTeams[team.Abbreviation] {
		return nil, &providers.FetchError{Provider: "espn", Unit: team.Abbreviation, Status: 503}
	}
	return f.injuries[team.Abbreviation], nil
}

// memStore is an in-process DayStore with observable writes.
type memStore struct {
	entries map[string][]byte
	sets    int
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string, dest interface{}) bool {
	data, ok := m.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (m *memStore) Set(_ context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	m.entries[key] = data
	m.sets++
}

func player(name, team string) models.PlayerRef {
	return models.PlayerRef{NormalizedName: name, DisplayName: name, Team: team}
}

func twoTeamSource() *fakeSource {
	return &fakeSource{
		teams: []models.TeamRef{
			{DisplayName: "Denver Nuggets", Abbreviation: "DEN", ExternalID: "7"},
			{DisplayName: "Los Angeles Lakers", Abbreviation: "LAL", ExternalID: "13"},
		},
		rosters: map[string][]models.PlayerRef{
			"DEN": {player("nikola jokic", "DEN"), player("jamal murray", "DEN")},
			"LAL": {player("lebron james", "LAL"), player("jamal murray", "LAL")},
		},
		injuries: map[string][]models.InjuryRecord{
			"DEN": {
				{NormalizedName: "jamal murray", Status: "Out", Team: "DEN"},
				{NormalizedName: "nikola jokic", Status: "Probable", Team: "DEN"},
			},
			"LAL": {
				{NormalizedName: "lebron james", Status: "Day-To-Day", Team: "LAL"},
			},
		},
		failTeams: map[string]bool{},
	}
}

func TestUnavailable(t *testing.T) {
	assert.True(t, Unavailable("Out"))
	assert.True(t, Unavailable("doubtful"))
	assert.True(t, Unavailable("Injured Reserve (IR)"))
	assert.False(t, Unavailable("Questionable"))
	assert.False(t, Unavailable("Probable"))
	assert.False(t, Unavailable(""))
}

func TestBuildIndexFirstSeenWins(t *testing.T) {
	source := twoTeamSource()
	builder := NewBuilder(source, newMemStore(), logrus.New())

	idx, err := builder.BuildIndex(context.Background(), models.LeagueNBA)
	require.NoError(t, err)

	// The duplicate name on LAL must not overwrite the DEN entry.
	assert.Equal(t, "DEN", idx.Players["jamal murray"].Team)
	assert.Len(t, idx.Players, 3)

	assert.Equal(t, "DEN", idx.Teams["denver nuggets"])
	assert.Equal(t, "LAL", idx.Teams["los angeles lakers"])
}

func TestBuildIndexSkipsFailedTeam(t *testing.T) {
	source := twoTeamSource()
	source.failTeams["LAL"] = true
	builder := NewBuilder(source, newMemStore(), logrus.New())

	idx, err := builder.BuildIndex(context.Background(), models.LeagueNBA)
	require.NoError(t, err)

	// DEN players survive; LAL contributes only its team-table entry.
	assert.Len(t, idx.Players, 2)
	assert.Equal(t, "LAL", idx.Teams["los angeles lakers"])
}

func TestBuildIndexServedFromCache(t *testing.T) {
	source := twoTeamSource()
	store := newMemStore()
	builder := NewBuilder(source, store, logrus.New())

	first, err := builder.BuildIndex(context.Background(), models.LeagueNBA)
	require.NoError(t, err)
	callsAfterFirst := source.calls
	assert.Equal(t, 1, store.sets)

	second, err := builder.BuildIndex(context.Background(), models.LeagueNBA)
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, source.calls, "cache hit must not touch the network")
	assert.Equal(t, first.Players, second.Players)
}

func TestBuildIndexListTeamsFailure(t *testing.T) {
	builder := NewBuilder(failingListSource{}, newMemStore(), logrus.New())

	_, err := builder.BuildIndex(context.Background(), models.LeagueNBA)
	assert.Error(t, err)
}

type failingListSource struct{}

func (failingListSource) ListTeams(_ context.Context, _ models.League) ([]models.TeamRef, *providers.FetchError) {
	return nil, &providers.FetchError{Provider: "espn", Status: 500}
}

func (failingListSource) GetTeamRoster(_ context.Context, _ models.League, _ models.TeamRef) ([]models.PlayerRef, *providers.FetchError) {
	return nil, nil
}

func (failingListSource) GetTeamInjuries(_ context.Context, _ models.League, _ models.TeamRef) ([]models.InjuryRecord, *providers.FetchError) {
	return nil, nil
}

func TestBuildInjurySetFiltersAvailable(t *testing.T) {
	source := twoTeamSource()
	builder := NewBuilder(source, newMemStore(), logrus.New())

	injured, err := builder.BuildInjurySet(context.Background(), models.LeagueNBA)
	require.NoError(t, err)

	// Only "Out" qualifies; Probable and Day-To-Day players stay eligible.
	require.Len(t, injured, 1)
	rec, ok := injured["jamal murray"]
	require.True(t, ok)
	assert.Equal(t, "DEN", rec.Team)
}

func TestBuildInjurySetCachesEmptyResult(t *testing.T) {
	source := twoTeamSource()
	source.injuries = map[string][]models.InjuryRecord{
		"DEN": {{NormalizedName: "nikola jokic", Status: "Probable", Team: "DEN"}},
	}
	store := newMemStore()
	builder := NewBuilder(source, store, logrus.New())

	injured, err := builder.BuildInjurySet(context.Background(), models.LeagueNBA)
	require.NoError(t, err)
	assert.Empty(t, injured)
	assert.Equal(t, 1, store.sets, "a healthy day is still a result worth caching")

	callsAfterFirst := source.calls
	injured, err = builder.BuildInjurySet(context.Background(), models.LeagueNBA)
	require.NoError(t, err)
	assert.Empty(t, injured)
	assert.Equal(t, callsAfterFirst, source.calls, "cache hit must not touch the network")
}

func TestBuildInjurySetAllFetchesFailedNotCached(t *testing.T) {
	source := twoTeamSource()
	source.failTeams["DEN"] = true
	source.failTeams["LAL"] = true
	store := newMemStore()
	builder := NewBuilder(source, store, logrus.New())

	injured, err := builder.BuildInjurySet(context.Background(), models.LeagueNBA)
	require.NoError(t, err)
	assert.Empty(t, injured)
	assert.Zero(t, store.sets, "an all-failure day must stay retryable")
}

func TestBuildInjurySetSkipsFailedTeam(t *testing.T) {
	source := twoTeamSource()
	source.failTeams["DEN"] = true
	builder := NewBuilder(source, newMemStore(), logrus.New())

	injured, err := builder.BuildInjurySet(context.Background(), models.LeagueNBA)
	require.NoError(t, err)
	assert.Empty(t, injured)
}
