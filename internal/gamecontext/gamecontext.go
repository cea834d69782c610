// Package gamecontext derives situational signals for a game from its
// consensus main lines. Build is pure and total: absent inputs degrade to
// neutral defaults rather than erroring.
package gamecontext

import (
	"math"

	"github.com/propedge/propedge/internal/models"
)

// Blowout risk by spread magnitude. Unknown spreads get a moderately
// elevated baseline: missing data is uncertainty, not safety.
const (
	riskHuge     = 0.90 // spread >= 14
	riskLarge    = 0.65 // spread >= 10
	riskModerate = 0.40 // spread >= 7
	riskBaseline = 0.15
	riskUnknown  = 0.22
)

// Build derives a GameContext from the home spread and total. homeSpread is
// the home team's handicap (negative when home is favored); either input
// may be nil.
func Build(homeSpread, total *float64, league models.League) models.GameContext {
	ctx := models.GameContext{
		BlowoutRisk: riskUnknown,
		RunBias:     0.30,
		PassBias:    0.30,
	}

	if homeSpread != nil {
		ctx.HasSpread = true
		ctx.SpreadAbs = math.Abs(*homeSpread)
		// A pick'em has no favorite; leave FavoriteKnown false so usage
		// adjustments stay neutral for both sides.
		ctx.FavoriteKnown = ctx.SpreadAbs > 0
		ctx.HomeFavorite = *homeSpread < 0
		switch {
		case ctx.SpreadAbs >= 14:
			ctx.BlowoutRisk = riskHuge
		case ctx.SpreadAbs >= 10:
			ctx.BlowoutRisk = riskLarge
		case ctx.SpreadAbs >= 7:
			ctx.BlowoutRisk = riskModerate
		default:
			ctx.BlowoutRisk = riskBaseline
		}
	}

	if total != nil {
		ctx.HasTotal = true
		ctx.TotalPoints = *total
	}

	if league == models.LeagueNFL {
		ctx.RunBias, ctx.PassBias = scriptBias(ctx)
	}
	return ctx
}

// scriptBias estimates run-vs-pass tendency for a football game. A low
// total with a wide spread points to a team salting the game away on the
// ground; a very high total points to a shootout.
func scriptBias(ctx models.GameContext) (run, pass float64) {
	if ctx.HasTotal && ctx.HasSpread && ctx.TotalPoints <= 41 && ctx.SpreadAbs >= 7 {
		return 0.65, 0.20
	}
	if ctx.HasTotal && ctx.TotalPoints >= 51 {
		return 0.20, 0.65
	}
	return 0.30, 0.30
}
