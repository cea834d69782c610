package gamecontext

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/propedge/propedge/internal/models"
)

func fp(v float64) *float64 { return &v }

func TestBuildBlowoutRiskSteps(t *testing.T) {
	tests := []struct {
		name   string
		spread *float64
		want   float64
	}{
		{"huge spread", fp(-14.5), 0.90},
		{"large spread", fp(10.0), 0.65},
		{"moderate spread", fp(-7.5), 0.40},
		{"close game", fp(-2.5), 0.15},
		{"pickem", fp(0.0), 0.15},
		{"unknown spread", nil, 0.22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Build(tt.spread, nil, models.LeagueNBA)
			assert.Equal(t, tt.want, ctx.BlowoutRisk)
		})
	}
}

func TestBuildHomeFavorite(t *testing.T) {
	ctx := Build(fp(-6.5), nil, models.LeagueNBA)
	assert.True(t, ctx.HasSpread)
	assert.True(t, ctx.HomeFavorite)
	assert.Equal(t, 6.5, ctx.SpreadAbs)

	ctx = Build(fp(4.5), nil, models.LeagueNBA)
	assert.False(t, ctx.HomeFavorite)
}

func TestBuildFavoriteKnown(t *testing.T) {
	ctx := Build(fp(-6.5), nil, models.LeagueNBA)
	assert.True(t, ctx.FavoriteKnown)

	// A pick'em carries a spread but no favorite for either side.
	ctx = Build(fp(0.0), nil, models.LeagueNBA)
	assert.True(t, ctx.HasSpread)
	assert.False(t, ctx.FavoriteKnown)
	assert.False(t, ctx.HomeFavorite)

	ctx = Build(nil, nil, models.LeagueNBA)
	assert.False(t, ctx.FavoriteKnown)
}

func TestBuildTotal(t *testing.T) {
	ctx := Build(nil, fp(224.5), models.LeagueNBA)
	assert.True(t, ctx.HasTotal)
	assert.Equal(t, 224.5, ctx.TotalPoints)

	ctx = Build(nil, nil, models.LeagueNBA)
	assert.False(t, ctx.HasTotal)
	assert.Zero(t, ctx.TotalPoints)
}

func TestScriptBiasNFL(t *testing.T) {
	// Low total, wide spread: run-heavy script.
	ctx := Build(fp(-9.5), fp(38.5), models.LeagueNFL)
	assert.Equal(t, 0.65, ctx.RunBias)
	assert.Equal(t, 0.20, ctx.PassBias)

	// Shootout total: pass-heavy script.
	ctx = Build(fp(-2.5), fp(53.0), models.LeagueNFL)
	assert.Equal(t, 0.20, ctx.RunBias)
	assert.Equal(t, 0.65, ctx.PassBias)

	// Ordinary game: neutral.
	ctx = Build(fp(-3.5), fp(45.0), models.LeagueNFL)
	assert.Equal(t, 0.30, ctx.RunBias)
	assert.Equal(t, 0.30, ctx.PassBias)
}

func TestScriptBiasNBAUnused(t *testing.T) {
	ctx := Build(fp(-12.5), fp(38.0), models.LeagueNBA)
	assert.Equal(t, 0.30, ctx.RunBias)
	assert.Equal(t, 0.30, ctx.PassBias)
}
