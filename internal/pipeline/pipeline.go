// Package pipeline wires one batch run: slate and odds ingestion, roster
// and injury resolution, context building, scoring and ranking.
package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/propedge/propedge/internal/gamecontext"
	"github.com/propedge/propedge/internal/models"
	"github.com/propedge/propedge/internal/names"
	"github.com/propedge/propedge/internal/odds"
	"github.com/propedge/propedge/internal/providers"
	"github.com/propedge/propedge/internal/rosters"
	"github.com/propedge/propedge/internal/scoring"
)

// OddsSource is the subset of the odds client the pipeline needs.
type OddsSource interface {
	ListEvents(ctx context.Context, league models.League) ([]models.Game, *providers.FetchError)
	GetEventOdds(ctx context.Context, league models.League, eventID string, markets []string) (*providers.EventOdds, *providers.FetchError)
}

// RosterSource is the subset of the roster builder the pipeline needs.
type RosterSource interface {
	BuildIndex(ctx context.Context, league models.League) (*rosters.Index, error)
	BuildInjurySet(ctx context.Context, league models.League) (map[string]models.InjuryRecord, error)
}

// Pipeline runs the full pick generation sequence for one league.
type Pipeline struct {
	oddsSource OddsSource
	rosters    RosterSource
	engine     *scoring.Engine
	logger     *logrus.Logger
	topN       int
	minEdge    float64
	eastern    *time.Location
}

// New creates a pipeline. topN caps the ranked pick list per league;
// minEdge drops picks scoring below it before the cap applies.
func New(oddsSource OddsSource, rosterSource RosterSource, engine *scoring.Engine, topN int, minEdge float64, logger *logrus.Logger) *Pipeline {
	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		eastern = time.UTC
	}
	return &Pipeline{
		oddsSource: oddsSource,
		rosters:    rosterSource,
		engine:     engine,
		logger:     logger,
		topN:       topN,
		minEdge:    minEdge,
		eastern:    eastern,
	}
}

// Run executes one league's batch. Upstream failures thin the output
// rather than failing it: an empty slate yields an empty pick list.
func (p *Pipeline) Run(ctx context.Context, league models.League) ([]models.Pick, models.RunDiagnostics) {
	start := time.Now()
	diag := models.RunDiagnostics{
		RunID:  uuid.NewString(),
		League: league,
	}
	log := p.logger.WithFields(logrus.Fields{"league": league, "run_id": diag.RunID})

	index, err := p.rosters.BuildIndex(ctx, league)
	if err != nil {
		log.Warnf("Roster index unavailable, picks will not resolve: %v", err)
		index = &rosters.Index{
			Players: map[string]models.PlayerRef{},
			Teams:   map[string]string{},
		}
	}

	injuries, err := p.rosters.BuildInjurySet(ctx, league)
	if err != nil {
		log.Warnf("Injury set unavailable, proceeding without exclusions: %v", err)
		injuries = map[string]models.InjuryRecord{}
	}
	injuredByTeam := make(map[string]int)
	for _, rec := range injuries {
		injuredByTeam[rec.Team]++
	}

	events, ferr := p.oddsSource.ListEvents(ctx, league)
	if ferr != nil {
		log.Warnf("Event list unavailable: %v", ferr)
		diag.Duration = time.Since(start)
		return nil, diag
	}
	diag.EventsSeen = len(events)

	var picks []models.Pick
	for _, game := range events {
		picks = append(picks, p.runEvent(ctx, league, game, index, injuries, injuredByTeam, &diag, log)...)
	}

	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].EdgeScore > picks[j].EdgeScore
	})
	// The edge floor applies before the cap; a weak slate renders short.
	if p.minEdge > 0 {
		cut := sort.Search(len(picks), func(i int) bool {
			return picks[i].EdgeScore < p.minEdge
		})
		diag.SkippedLowEdge = len(picks) - cut
		picks = picks[:cut]
	}
	if p.topN > 0 && len(picks) > p.topN {
		picks = picks[:p.topN]
	}

	diag.Picks = len(picks)
	diag.Duration = time.Since(start)
	log.WithFields(logrus.Fields{
		"events":  diag.EventsSeen,
		"lines":   diag.LinesParsed,
		"picks":   diag.Picks,
		"elapsed": diag.Duration.Round(time.Millisecond),
	}).Info("Run complete")
	return picks, diag
}

func (p *Pipeline) runEvent(
	ctx context.Context,
	league models.League,
	game models.Game,
	index *rosters.Index,
	injuries map[string]models.InjuryRecord,
	injuredByTeam map[string]int,
	diag *models.RunDiagnostics,
	log *logrus.Entry,
) []models.Pick {
	// Main lines and props are fetched separately so a failure in one
	// market group does not take out the other.
	var homeSpread, total *float64
	mainOdds, ferr := p.oddsSource.GetEventOdds(ctx, league, game.ID, providers.MainMarkets())
	if ferr != nil {
		log.Warnf("Main lines unavailable for %s: %v", game.Matchup(), ferr)
	} else {
		homeSpread, total = odds.MainLines(mainOdds)
	}
	gameCtx := gamecontext.Build(homeSpread, total, league)

	propOdds, ferr := p.oddsSource.GetEventOdds(ctx, league, game.ID, providers.PropMarkets(league))
	if ferr != nil {
		log.Warnf("Skipping props for %s: %v", game.Matchup(), ferr)
		return nil
	}

	lines := odds.Consolidate(propOdds)
	diag.LinesParsed += len(lines)

	homeAbbr := index.Teams[names.Normalize(game.HomeTeam)]
	awayAbbr := index.Teams[names.Normalize(game.AwayTeam)]
	timeLabel := game.StartTime.In(p.eastern).Format("3:04 PM") + " ET"

	var picks []models.Pick
	for _, line := range lines {
		if line.Line <= 0 {
			diag.SkippedInvalid++
			continue
		}

		ref, ok := index.Players[names.Normalize(line.PlayerName)]
		if !ok || (ref.Team != homeAbbr && ref.Team != awayAbbr) || ref.Team == "" {
			diag.SkippedNoTeam++
			continue
		}

		if _, injured := injuries[ref.NormalizedName]; injured {
			diag.SkippedInjured++
			continue
		}

		isHome := ref.Team == homeAbbr
		opponent := homeAbbr
		if isHome {
			opponent = awayAbbr
		}

		pick := p.engine.Score(league, scoring.Input{
			Player:        ref,
			PropType:      line.PropType,
			Line:          line.Line,
			Context:       gameCtx,
			IsHome:        isHome,
			IsFavorite:    isHome == gameCtx.HomeFavorite,
			FavoriteKnown: gameCtx.FavoriteKnown,
			Opponent:      opponent,
			TeammatesOut:  injuredByTeam[ref.Team],
			OpponentsOut:  injuredByTeam[opponent],
			Dispersion:    line.Dispersion,
			Matchup:       game.Matchup(),
			TimeLabel:     timeLabel,
			OverPrice:     line.OverPrice,
			UnderPrice:    line.UnderPrice,
		})
		if pick == nil {
			diag.SkippedNoEdge++
			continue
		}
		picks = append(picks, *pick)
	}
	return picks
}
