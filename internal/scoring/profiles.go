package scoring

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/propedge/propedge/internal/models"
	"github.com/propedge/propedge/internal/names"
)

//go:embed data/profiles.json
var defaultProfiles []byte

// Profiles is the static statistical configuration injected into the
// engine: per-player recent-window stat bundles and per-team defensive
// profiles. Loaded once at startup and never mutated afterwards; the engine
// holds no process-wide state.
type Profiles struct {
	Players map[models.League]map[string]models.PlayerStats    `json:"players"`
	Defense map[models.League]map[string]models.DefenseProfile `json:"defense"`
}

// LoadProfiles reads the profile configuration from path, or the embedded
// defaults when path is empty. Player keys are re-normalized on load so the
// file can use display names.
func LoadProfiles(path string) (*Profiles, error) {
	data := defaultProfiles
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read profiles file: %w", err)
		}
	}

	var p Profiles
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}

	for league, players := range p.Players {
		normalized := make(map[string]models.PlayerStats, len(players))
		for key, stats := range players {
			normalized[names.Normalize(key)] = stats
		}
		p.Players[league] = normalized
	}
	return &p, nil
}

// PlayerStats looks up a player's stat bundle by normalized name.
func (p *Profiles) PlayerStats(league models.League, normalizedName string) (models.PlayerStats, bool) {
	stats, ok := p.Players[league][normalizedName]
	return stats, ok
}

// DefenseProfile looks up a team's defensive profile by abbreviation.
func (p *Profiles) DefenseProfile(league models.League, team string) (models.DefenseProfile, bool) {
	profile, ok := p.Defense[league][team]
	return profile, ok
}
