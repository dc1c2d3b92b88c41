package warpgraph

import "math"

const minRegionSize = 3

// partitionRegions splits all sector ids into irregular, seed-dependent
// clusters and stamps each sector with its region id.
func partitionRegions(g *Graph, r *rng, sectorsPerRegion int) [][]int {
	total := g.Len()
	ids := make([]int, total)
	for i := range ids {
		ids[i] = i + 1
	}
	r.Shuffle(ids)

	regionCount := math.Ceil(float64(total) / float64(sectorsPerRegion))
	avgRegionSize := math.Max(5, float64(total)/regionCount)

	var regions [][]int
	for start := 0; start < total; {
		size := int(math.Floor(avgRegionSize * (0.6 + r.Float()*0.8)))
		if size < minRegionSize {
			size = minRegionSize
		}
		end := min(start+size, total)

		region := ids[start:end:end]
		regionID := len(regions)
		for _, id := range region {
			g.Sector(id).RegionID = regionID
		}
		regions = append(regions, region)
		start = end
	}
	return regions
}
