// Package scoring holds the projection and scoring engine: a pure,
// stateless function from (player, prop, line, context) to an optional
// pick. All league- and prop-specific behavior lives in the propSpecs
// table; the engine itself never branches on market strings.
package scoring

import (
	"math"

	"github.com/propedge/propedge/internal/models"
)

// Every situational multiplier is clamped to this band so no single factor
// can dominate the projection.
const (
	multFloor = 0.90
	multCeil  = 1.10
)

// Scoring curve constants: the relative gap feeds a logistic centered at
// 50, a small capped bonus rewards raw gap size, and cross-book dispersion
// is charged against confidence.
const (
	lineScaleFraction = 0.12
	gapBonusPerUnit   = 0.8
	gapBonusCap       = 6.0
	dispersionPenalty = 3.0
	dispersionCap     = 12.0
)

// Input carries everything the engine needs to score one prop. The caller
// resolves team membership, injury counts and game context beforehand.
type Input struct {
	Player        models.PlayerRef
	PropType      string
	Line          float64
	Context       models.GameContext
	IsHome        bool
	IsFavorite    bool
	FavoriteKnown bool
	Opponent      string // opponent team abbreviation
	TeammatesOut  int
	OpponentsOut  int
	Dispersion    float64
	Matchup       string
	TimeLabel     string
	OverPrice     float64
	UnderPrice    float64
}

// Engine scores props against a fixed profile configuration. It is safe for
// concurrent use; nothing is mutated after construction.
type Engine struct {
	profiles *Profiles
}

// NewEngine creates a scoring engine over the given profiles.
func NewEngine(profiles *Profiles) *Engine {
	return &Engine{profiles: profiles}
}

// Score produces a pick for one (player, prop, line) tuple, or nil when the
// gap between projection and line carries no signal. It never fails for
// well-typed input: unknown players fall back to the line itself as the
// baseline, unknown props yield no signal through the same path, and
// missing context fields degrade to neutral defaults.
func (e *Engine) Score(league models.League, in Input) *models.Pick {
	if in.Line <= 0 {
		return nil
	}

	spec, known := propSpecs[league][in.PropType]

	baseline, haveBaseline := e.baseline(league, in.Player.NormalizedName, spec, known)
	if !haveBaseline {
		// Degenerate case: no stat bundle for this player (or an unknown
		// market). The line itself becomes the baseline, so the initial
		// edge is zero and only a pathological multiplier stack could
		// manufacture a pick.
		baseline = in.Line
	}

	factors := make([]models.Factor, 0, 8)
	record := func(name string, magnitude float64) {
		factors = append(factors, models.Factor{Name: name, Magnitude: magnitude})
	}
	record("baseline", baseline)

	projected := baseline
	apply := func(name string, mult float64) {
		mult = clamp(mult, multFloor, multCeil)
		projected *= mult
		record(name, mult)
	}

	apply("matchup", e.matchupMultiplier(league, in.Opponent, spec.script))
	apply("rest", restMultiplier(e.splits(league, in.Player.NormalizedName)))
	apply("home_away", homeAwayMultiplier(e.splits(league, in.Player.NormalizedName), in.IsHome))
	apply("usage_shift", usageShiftMultiplier(in))
	apply("blowout", blowoutMultiplier(spec, in.Context.BlowoutRisk))
	if league == models.LeagueNFL && spec.script != scriptNone {
		apply("script", scriptMultiplier(spec.script, in.Context))
	}
	apply("injuries", injuryMultiplier(in.TeammatesOut, in.OpponentsOut))

	gap := projected - in.Line
	if math.Abs(gap) < spec.deadzone || spec.deadzone == 0 {
		return nil
	}

	side := models.SideOver
	if gap < 0 {
		side = models.SideUnder
	}

	// Larger lines need proportionally larger gaps for the same
	// confidence, so the logistic sees the gap relative to the line.
	relGap := math.Abs(gap) / (lineScaleFraction * in.Line)
	score := 100 / (1 + math.Exp(-relGap))

	bonus := math.Min(gapBonusCap, gapBonusPerUnit*math.Abs(gap))
	record("gap_bonus", bonus)
	score += bonus

	if in.Dispersion > 0 {
		penalty := math.Min(dispersionCap, dispersionPenalty*in.Dispersion)
		record("dispersion_penalty", -penalty)
		score -= penalty
	}

	score = clamp(score, 0, 100)

	return &models.Pick{
		Player:     in.Player,
		PropType:   in.PropType,
		Line:       in.Line,
		Side:       side,
		Projected:  round1(projected),
		EdgeScore:  round1(score),
		Factors:    factors,
		Matchup:    in.Matchup,
		TimeLabel:  in.TimeLabel,
		OverPrice:  in.OverPrice,
		UnderPrice: in.UnderPrice,
	}
}

// baseline sums the spec's stat keys from the player's bundle. A missing
// bundle or missing key means no baseline.
func (e *Engine) baseline(league models.League, normalizedName string, spec propSpec, known bool) (float64, bool) {
	if !known {
		return 0, false
	}
	stats, ok := e.profiles.PlayerStats(league, normalizedName)
	if !ok {
		return 0, false
	}

	var sum float64
	for _, key := range spec.statKeys {
		v, ok := stats.Stats[key]
		if !ok {
			return 0, false
		}
		sum += v
	}
	return sum, true
}

func (e *Engine) splits(league models.League, normalizedName string) *models.PlayerSplits {
	stats, ok := e.profiles.PlayerStats(league, normalizedName)
	if !ok {
		return nil
	}
	return &stats.Splits
}

// matchupMultiplier blends the opponent's pace with its rank in the
// relevant defensive category. Unknown opponents are neutral.
func (e *Engine) matchupMultiplier(league models.League, opponent string, script scriptKind) float64 {
	profile, ok := e.profiles.DefenseProfile(league, opponent)
	if !ok {
		return 1.0
	}

	rank := profile.OverallRank
	switch script {
	case scriptPassing, scriptReceiving:
		if profile.PassRank > 0 {
			rank = profile.PassRank
		}
	case scriptRushing:
		if profile.RushRank > 0 {
			rank = profile.RushRank
		}
	}

	mult := clamp(profile.PaceAdjust, 0.94, 1.06)
	if rank > 0 {
		// rank 1 is the stingiest defense, 32 the most generous
		mult *= 1 + float64(rank-16)*0.004
	}
	return mult
}

func restMultiplier(splits *models.PlayerSplits) float64 {
	if splits == nil {
		return 1.0
	}
	mult := 1.0
	if splits.BackToBack {
		mult *= 0.96
	}
	if splits.LoadManaged {
		mult *= 0.94
	}
	if splits.RestDays >= 2 {
		mult *= 1.02
	}
	return mult
}

func homeAwayMultiplier(splits *models.PlayerSplits, isHome bool) float64 {
	if splits == nil || splits.HomeAway == 0 {
		return 1.0
	}
	split := clamp(splits.HomeAway, 0.93, 1.07)
	if isHome {
		return split
	}
	return 2 - split
}

// usageShiftMultiplier nudges projections for game state: favorites spread
// touches around and sit stars earlier, underdogs lean harder on theirs.
// Both effects scale with blowout risk.
func usageShiftMultiplier(in Input) float64 {
	if !in.FavoriteKnown {
		return 1.0
	}
	if in.IsFavorite {
		return 1 - 0.04*in.Context.BlowoutRisk
	}
	return 1 + 0.03*in.Context.BlowoutRisk
}

// blowoutMultiplier deflates volume stats in likely blowouts and gives
// high-variance stats a small garbage-time bump.
func blowoutMultiplier(spec propSpec, risk float64) float64 {
	if spec.volume {
		return 1 - 0.10*risk
	}
	if spec.highVariance {
		return 1 + 0.04*risk
	}
	return 1.0
}

func scriptMultiplier(script scriptKind, ctx models.GameContext) float64 {
	lean := ctx.RunBias - ctx.PassBias // positive when run-heavy
	switch script {
	case scriptPassing:
		return 1 - 0.20*lean
	case scriptRushing:
		return 1 + 0.20*lean
	case scriptReceiving:
		return 1 - 0.10*lean
	}
	return 1.0
}

// injuryMultiplier gives a modest usage bump per unavailable teammate and a
// smaller one per unavailable opponent, both capped.
func injuryMultiplier(teammatesOut, opponentsOut int) float64 {
	team := math.Min(0.06, 0.015*float64(teammatesOut))
	opp := math.Min(0.04, 0.010*float64(opponentsOut))
	return 1 + team + opp
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Describe renders a factor name for display.
func Describe(name string) string {
	labels := map[string]string{
		"baseline":           "Baseline",
		"matchup":            "Matchup",
		"rest":               "Rest",
		"home_away":          "Home/Away",
		"usage_shift":        "Usage Shift",
		"blowout":            "Blowout Risk",
		"script":             "Game Script",
		"injuries":           "Injury Boost",
		"gap_bonus":          "Gap Bonus",
		"dispersion_penalty": "Consensus Noise",
	}
	if l, ok := labels[name]; ok {
		return l
	}
	return name
}
