package warpgraph

import "fmt"

// Generate builds a universe of totalSectors sectors from seed using
// DefaultParams. The result depends only on (totalSectors, seed).
func Generate(totalSectors int, seed int64) (*Graph, error) {
	return GenerateWithParams(totalSectors, seed, DefaultParams())
}

// MustGenerate is like GenerateWithParams but panics on any error.
func MustGenerate(totalSectors int, seed int64, params Params) *Graph {
	g, err := GenerateWithParams(totalSectors, seed, params)
	if err != nil {
		panic(fmt.Sprintf("warpgraph: generate %d sectors with seed %d: %v", totalSectors, seed, err))
	}
	return g
}

// GenerateWithParams runs the full pipeline: regions, lanes, sector roles,
// connectivity repair and harmony corridors. It performs no I/O.
func GenerateWithParams(totalSectors int, seed int64, params Params) (*Graph, error) {
	if err := params.validate(totalSectors); err != nil {
		return nil, err
	}

	g := newGraph(totalSectors)
	r := newRNG(seed)
	g.Stats.Seed = seed

	regions := partitionRegions(g, r, params.SectorsPerRegion)
	g.Stats.Regions = len(regions)

	lb := &laneBuilder{g: g, r: r, maxDegree: params.MaxAdjacentSectors}
	for _, region := range regions {
		lb.connectRegion(region)
	}
	lb.bridgeRegions(regions)

	c := newClassifier(g, r)
	g.Stats.StarMalls = c.placeStarMalls(clampCount(params.NumStarMalls, totalSectors, sectorsPerStarMall))
	g.Stats.SeedPlanets = c.placeSeedPlanets(clampCount(params.NumSeedPlanets, totalSectors, sectorsPerSeedPlanet))
	g.Stats.OneWayTarget = int(float64(totalSectors) * params.OneWayFraction)
	c.convertOneWay(g.Stats.OneWayTarget)

	repairConnectivity(g, params.MaxAdjacentSectors, &g.Stats)
	g.Stats.OneWayLanes = countOneWay(g)

	// Corridors must exist however far apart the endpoints are, so the
	// depth bound is the longest possible simple path.
	g.Stats.HarmonySectors = markHarmonyCorridors(g, totalSectors)

	if params.VerifyPostconditions {
		if err := Verify(g, params); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func countOneWay(g *Graph) int {
	n := 0
	for _, lanes := range g.Lanes {
		for _, l := range lanes {
			if l.OneWay {
				n++
			}
		}
	}
	return n
}
