package warpgraph

import (
	"fmt"
	"testing"

	apperrors "sectorgen/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProperties(t *testing.T) {
	sizes := []int{10, 11, 25, 50, 99, 100, 101, 250, 1000}
	for _, n := range sizes {
		for seed := int64(0); seed < 10; seed++ {
			t.Run(fmt.Sprintf("n=%d/seed=%d", n, seed), func(t *testing.T) {
				g, err := Generate(n, seed)
				require.NoError(t, err)
				assertWellFormed(t, g, DefaultParams())
			})
		}
	}
}

func TestGenerateHighOneWayFraction(t *testing.T) {
	params := DefaultParams()
	params.OneWayFraction = 0.5

	for seed := int64(0); seed < 20; seed++ {
		g, err := GenerateWithParams(200, seed, params)
		require.NoError(t, err, "seed=%d", seed)
		assertWellFormed(t, g, params)
		assert.Greater(t, g.Stats.OneWayLanes, 0)
	}
}

func TestGenerateLargeUniverse(t *testing.T) {
	if testing.Short() {
		t.Skip("large generation")
	}

	g, err := Generate(5000, 20240501)

	require.NoError(t, err)
	assertWellFormed(t, g, DefaultParams())
	assert.Equal(t, DefaultNumStarMalls, g.Stats.StarMalls)
	assert.Equal(t, DefaultNumSeedPlanets, g.Stats.SeedPlanets)
}

func assertWellFormed(t *testing.T, g *Graph, params Params) {
	t.Helper()
	n := g.Len()

	require.NoError(t, Verify(g, params))
	assert.True(t, WeaklyConnected(g))
	assert.True(t, StronglyConnected(g))

	assert.Equal(t, clampCount(params.NumStarMalls, n, sectorsPerStarMall), len(g.StarMalls()))
	assert.Equal(t, clampCount(params.NumSeedPlanets, n, sectorsPerSeedPlanet), len(g.SeedPlanets()))
	assert.Equal(t, g.Stats.StarMalls, len(g.StarMalls()))
	assert.Equal(t, g.Stats.SeedPlanets, len(g.SeedPlanets()))
	assert.LessOrEqual(t, g.Stats.OneWayLanes, g.Stats.OneWayTarget)
	assert.Len(t, g.Regions(), g.Stats.Regions)

	harmony := 0
	for _, s := range g.Sectors {
		if s.Type == SectorTypeHarmonyEnforced {
			harmony++
		}
	}
	assert.Equal(t, g.Stats.HarmonySectors, harmony)

	// without bridge lanes every mall neighbor keeps its protection
	if g.Stats.BridgeLanes == 0 {
		for _, mall := range g.StarMalls() {
			for _, next := range g.Neighbors(mall) {
				assert.NotEqual(t, SectorTypeStandard, g.Sector(next).Type, "mall %d neighbor %d", mall, next)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(500, 77)
	require.NoError(t, err)
	b, err := Generate(500, 77)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateSeedSensitivity(t *testing.T) {
	a, err := Generate(100, 42)
	require.NoError(t, err)
	b, err := Generate(100, 99)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Sector(1).RegionID)
	assert.Equal(t, 2, b.Sector(1).RegionID)

	differ := 0
	for i := range a.Sectors {
		if a.Sectors[i].RegionID != b.Sectors[i].RegionID {
			differ++
		}
	}
	assert.Equal(t, 68, differ)
}

func TestGenerateKnownUniverse(t *testing.T) {
	g, err := Generate(100, 42)
	require.NoError(t, err)

	assert.Equal(t, Stats{
		Seed:             42,
		Regions:          2,
		StarMalls:        1,
		SeedPlanets:      1,
		OneWayTarget:     5,
		OneWayLanes:      5,
		ComponentsBefore: 1,
	}, g.Stats)
	assert.Equal(t, []int{70}, g.StarMalls())
	assert.Equal(t, []int{28}, g.SeedPlanets())
	assert.Equal(t, []Lane{{To: 15}}, g.LanesOf(1))
	assert.Equal(t, SectorTypeStandard, g.Sector(1).Type)

	path := FindShortestPath(g, 1, 100, DefaultMaxPathDepth)
	require.NotNil(t, path)
	assert.Equal(t, 1, path[0])
	assert.Equal(t, 100, path[len(path)-1])
	assert.Len(t, path, 10)
	assert.Nil(t, FindShortestPath(g, 1, 100, 1))
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	_, err := Generate(MinSectors-1, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))

	params := DefaultParams()
	params.MaxAdjacentSectors = 2
	_, err = GenerateWithParams(100, 1, params)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))

	params = DefaultParams()
	params.OneWayFraction = 1
	_, err = GenerateWithParams(100, 1, params)
	assert.Error(t, err)
}

func TestMustGeneratePanicsOnInvalidInput(t *testing.T) {
	assert.Panics(t, func() { MustGenerate(3, 1, DefaultParams()) })
	assert.NotPanics(t, func() { MustGenerate(MinSectors, 1, DefaultParams()) })
}

func TestGenerateNegativeSeed(t *testing.T) {
	g, err := Generate(120, -12345)
	require.NoError(t, err)
	assertWellFormed(t, g, DefaultParams())
}

func BenchmarkGenerate5000(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Generate(5000, int64(i)); err != nil {
			b.Fatal(err)
		}
	}
}
