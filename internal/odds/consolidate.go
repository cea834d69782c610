// Package odds reduces multi-bookmaker quotes into one consensus line per
// (player, market) pair so a single outlier book cannot dominate.
package odds

import (
	"math"
	"sort"
	"strings"

	"github.com/propedge/propedge/internal/models"
	"github.com/propedge/propedge/internal/providers"
)

type quoteGroup struct {
	points      []float64
	overPrices  []float64
	underPrices []float64
}

type groupKey struct {
	market string
	player string
}

// Consolidate reduces an event's player-prop outcomes to one MarketLine per
// (market, player). The consensus point is the median across books; the
// standard deviation is retained as a dispersion signal. Outcomes that do
// not name exactly over or under, or that carry no numeric point, are
// unparsable noise and are discarded silently.
func Consolidate(payload *providers.EventOdds) []models.MarketLine {
	if payload == nil {
		return nil
	}

	groups := make(map[groupKey]*quoteGroup)
	var order []groupKey

	for _, book := range payload.Bookmakers {
		// Each book contributes exactly one consensus point per pair. The
		// over is preferred when both sides are quoted so the line is not
		// double-counted, but a book quoting just the under still counts.
		bookPoints := make(map[groupKey]float64)

		for _, market := range book.Markets {
			if !strings.HasPrefix(market.Key, "player_") {
				continue
			}
			for _, outcome := range market.Outcomes {
				if outcome.Point == nil || outcome.Description == "" {
					continue
				}
				side := strings.ToLower(outcome.Name)
				if side != "over" && side != "under" {
					continue
				}

				key := groupKey{market: market.Key, player: outcome.Description}
				g, ok := groups[key]
				if !ok {
					g = &quoteGroup{}
					groups[key] = g
					order = append(order, key)
				}

				if side == "over" {
					g.overPrices = append(g.overPrices, outcome.Price)
					bookPoints[key] = *outcome.Point
				} else {
					g.underPrices = append(g.underPrices, outcome.Price)
					if _, seen := bookPoints[key]; !seen {
						bookPoints[key] = *outcome.Point
					}
				}
			}
		}

		for key, point := range bookPoints {
			groups[key].points = append(groups[key].points, point)
		}
	}

	lines := make([]models.MarketLine, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if len(g.points) == 0 {
			continue
		}
		lines = append(lines, models.MarketLine{
			PlayerName: key.player,
			PropType:   key.market,
			Line:       Median(g.points),
			OverPrice:  Median(g.overPrices),
			UnderPrice: Median(g.underPrices),
			Dispersion: StdDev(g.points),
			Books:      len(g.points),
		})
	}
	return lines
}

// MainLines extracts the consensus home spread and game total from an
// event's spreads/totals markets. Either value may be absent.
func MainLines(payload *providers.EventOdds) (homeSpread, total *float64) {
	if payload == nil {
		return nil, nil
	}

	var spreads, totals []float64
	for _, book := range payload.Bookmakers {
		for _, market := range book.Markets {
			switch market.Key {
			case "spreads":
				for _, outcome := range market.Outcomes {
					if outcome.Point != nil && outcome.Name == payload.HomeTeam {
						spreads = append(spreads, *outcome.Point)
					}
				}
			case "totals":
				for _, outcome := range market.Outcomes {
					if outcome.Point != nil && strings.EqualFold(outcome.Name, "over") {
						totals = append(totals, *outcome.Point)
					}
				}
			}
		}
	}

	if len(spreads) > 0 {
		v := Median(spreads)
		homeSpread = &v
	}
	if len(totals) > 0 {
		v := Median(totals)
		total = &v
	}
	return homeSpread, total
}

// Median returns the middle value of vs (mean of the two middles for even
// counts), or 0 for an empty slice. Input order does not matter.
func Median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// StdDev returns the population standard deviation of vs, 0 for fewer than
// two values.
func StdDev(vs []float64) float64 {
	if len(vs) < 2 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	mean := sum / float64(len(vs))

	var sq float64
	for _, v := range vs {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(vs)))
}
