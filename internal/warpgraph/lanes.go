package warpgraph

const (
	intraRegionExtraRatio = 0.5
	interRegionExtraRatio = 0.3
)

type laneBuilder struct {
	g         *Graph
	r         *rng
	maxDegree int
}

func (b *laneBuilder) hasRoom(id int) bool {
	return b.g.OutDegree(id) < b.maxDegree
}

// withRoom filters ids down to sectors that can take another lane. When none
// can, the full list is returned so the caller still draws from the stream.
func (b *laneBuilder) withRoom(ids []int) []int {
	open := make([]int, 0, len(ids))
	for _, id := range ids {
		if b.hasRoom(id) {
			open = append(open, id)
		}
	}
	if len(open) == 0 {
		return ids
	}
	return open
}

// connectRegion builds a random spanning tree over the region and then adds
// floor(|region|*0.5) extra random lanes inside it.
func (b *laneBuilder) connectRegion(region []int) {
	for i := 1; i < len(region); i++ {
		parent := b.r.pick(b.withRoom(region[:i]))
		b.g.connect(region[i], parent)
	}

	extra := int(float64(len(region)) * intraRegionExtraRatio)
	for k := 0; k < extra; k++ {
		a := b.r.pick(region)
		c := b.r.pick(region)
		if a == c || !b.hasRoom(a) || !b.hasRoom(c) {
			continue
		}
		b.g.connect(a, c)
	}
}

// bridgeRegions links every region to an earlier one, then adds
// floor(|regions|*0.3) extra lanes between independently drawn regions.
func (b *laneBuilder) bridgeRegions(regions [][]int) {
	for i := 1; i < len(regions); i++ {
		j := b.r.Intn(i)
		b.bridge(regions[i], regions[j])
	}

	extra := int(float64(len(regions)) * interRegionExtraRatio)
	for k := 0; k < extra; k++ {
		a := b.r.Intn(len(regions))
		c := b.r.Intn(len(regions))
		if a == c {
			continue
		}
		b.bridge(regions[a], regions[c])
	}
}

func (b *laneBuilder) bridge(from, to []int) bool {
	a := b.r.pick(b.withRoom(from))
	c := b.r.pick(b.withRoom(to))
	if !b.hasRoom(a) || !b.hasRoom(c) {
		return false
	}
	return b.g.connect(a, c)
}
