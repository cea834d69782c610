// Package rosters builds the day-scoped player index, team table and injury
// set for a league from the game data provider.
package rosters

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/propedge/propedge/internal/models"
	"github.com/propedge/propedge/internal/names"
	"github.com/propedge/propedge/internal/providers"
	"github.com/propedge/propedge/internal/services"
)

// TeamSource is the subset of the ESPN client the builder needs.
type TeamSource interface {
	ListTeams(ctx context.Context, league models.League) ([]models.TeamRef, *providers.FetchError)
	GetTeamRoster(ctx context.Context, league models.League, team models.TeamRef) ([]models.PlayerRef, *providers.FetchError)
	GetTeamInjuries(ctx context.Context, league models.League, team models.TeamRef) ([]models.InjuryRecord, *providers.FetchError)
}

// unavailableStatuses is the vocabulary of injury statuses that exclude a
// player from picks. Matching is case-insensitive substring; anything not
// matched is treated as available.
var unavailableStatuses = []string{"OUT", "INACTIVE", "DOUBTFUL", "IR", "DNP", "SUSPENDED"}

// Unavailable reports whether a raw status text marks a player out.
func Unavailable(status string) bool {
	upper := strings.ToUpper(status)
	for _, s := range unavailableStatuses {
		if strings.Contains(upper, s) {
			return true
		}
	}
	return false
}

// Builder assembles run-scoped lookup structures, consulting the day store
// before touching the network.
type Builder struct {
	source TeamSource
	store  services.DayStore
	logger *logrus.Logger
	now    func() time.Time
}

// NewBuilder creates a roster builder.
func NewBuilder(source TeamSource, store services.DayStore, logger *logrus.Logger) *Builder {
	return &Builder{source: source, store: store, logger: logger, now: time.Now}
}

// Index is the cached bundle for one league-day.
type Index struct {
	Players map[string]models.PlayerRef `json:"players"` // normalized name -> ref
	Teams   map[string]string           `json:"teams"`   // normalized display name -> abbreviation
}

// BuildIndex returns the normalized-name -> PlayerRef mapping and the
// team-name -> abbreviation table for the league, rebuilt at most once per
// UTC day. A single team's roster failure skips that team; a partial index
// is expected and acceptable.
func (b *Builder) BuildIndex(ctx context.Context, league models.League) (*Index, error) {
	key := services.DayKey("rosters", league, b.now())

	var cached Index
	if b.store.Get(ctx, key, &cached) && len(cached.Players) > 0 {
		b.logger.WithFields(logrus.Fields{"league": league, "players": len(cached.Players)}).
			Debug("Roster index served from cache")
		return &cached, nil
	}

	teams, ferr := b.source.ListTeams(ctx, league)
	if ferr != nil {
		return nil, ferr
	}

	idx := &Index{
		Players: make(map[string]models.PlayerRef),
		Teams:   make(map[string]string, len(teams)),
	}
	for _, team := range teams {
		idx.Teams[names.Normalize(team.DisplayName)] = team.Abbreviation

		players, ferr := b.source.GetTeamRoster(ctx, league, team)
		if ferr != nil {
			b.logger.Warnf("Skipping roster for %s: %v", team.Abbreviation, ferr)
			continue
		}
		for _, p := range players {
			if existing, ok := idx.Players[p.NormalizedName]; ok {
				// First-seen wins. Collisions are rare but real (shared
				// surnames, deadline trades); log so they are observable.
				b.logger.WithFields(logrus.Fields{
					"player": p.NormalizedName,
					"kept":   existing.Team,
					"seen":   p.Team,
				}).Warn("Duplicate normalized player name, keeping first")
				continue
			}
			idx.Players[p.NormalizedName] = p
		}
	}

	// An empty index only happens when every roster fetch failed; caching
	// it would pin the failure for the rest of the day.
	if len(idx.Players) > 0 {
		b.store.Set(ctx, key, idx)
	}
	return idx, nil
}

// BuildInjurySet returns the normalized names flagged unavailable today,
// with their status and team. Cached per UTC day like the roster index.
func (b *Builder) BuildInjurySet(ctx context.Context, league models.League) (map[string]models.InjuryRecord, error) {
	key := services.DayKey("injuries", league, b.now())

	// Unlike the roster index, an empty injury set is a legitimate result
	// (a healthy league day), so presence in the store is the cache signal.
	cached := make(map[string]models.InjuryRecord)
	if b.store.Get(ctx, key, &cached) {
		b.logger.WithFields(logrus.Fields{"league": league, "injured": len(cached)}).
			Debug("Injury set served from cache")
		return cached, nil
	}

	teams, ferr := b.source.ListTeams(ctx, league)
	if ferr != nil {
		return nil, ferr
	}

	out := make(map[string]models.InjuryRecord)
	failed := 0
	for _, team := range teams {
		records, ferr := b.source.GetTeamInjuries(ctx, league, team)
		if ferr != nil {
			b.logger.Warnf("Skipping injuries for %s: %v", team.Abbreviation, ferr)
			failed++
			continue
		}
		for _, rec := range records {
			if Unavailable(rec.Status) {
				out[rec.NormalizedName] = rec
			}
		}
	}

	// A healthy league day yields an empty set worth caching; a set that is
	// empty because every fetch failed is not.
	if len(out) > 0 || failed < len(teams) {
		b.store.Set(ctx, key, out)
	}
	return out, nil
}
