package warpgraph

// markHarmonyCorridors relabels every standard sector on a shortest path
// between a star mall and a seed planet as harmony-enforced.
func markHarmonyCorridors(g *Graph, maxDepth int) int {
	marked := 0
	seedPlanets := g.SeedPlanets()
	for _, mall := range g.StarMalls() {
		for _, planet := range seedPlanets {
			for _, id := range FindShortestPath(g, mall, planet, maxDepth) {
				if s := g.Sector(id); s.Type == SectorTypeStandard {
					s.Type = SectorTypeHarmonyEnforced
					marked++
				}
			}
		}
	}
	return marked
}
