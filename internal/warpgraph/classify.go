package warpgraph

// classifier assigns special sector roles. All three passes draw from one
// shuffled id list; an id consumed by an earlier pass is never revisited.
type classifier struct {
	g      *Graph
	r      *rng
	order  []int
	cursor int
}

func newClassifier(g *Graph, r *rng) *classifier {
	order := make([]int, g.Len())
	for i := range order {
		order[i] = i + 1
	}
	r.Shuffle(order)
	return &classifier{g: g, r: r, order: order}
}

func (c *classifier) next() (int, bool) {
	if c.cursor >= len(c.order) {
		return 0, false
	}
	id := c.order[c.cursor]
	c.cursor++
	return id, true
}

// placeStarMalls marks count sectors as protected star malls and protects
// every standard sector one hop away.
func (c *classifier) placeStarMalls(count int) int {
	placed := 0
	for placed < count {
		id, ok := c.next()
		if !ok {
			break
		}
		s := c.g.Sector(id)
		s.Type = SectorTypeProtected
		s.HasStarMall = true
		for _, l := range c.g.LanesOf(id) {
			if n := c.g.Sector(l.To); n.Type == SectorTypeStandard {
				n.Type = SectorTypeProtected
			}
		}
		placed++
	}
	return placed
}

// placeSeedPlanets first claims protected non-mall sectors in id order, then
// forces fresh standard sectors from the shuffled list to protected.
func (c *classifier) placeSeedPlanets(count int) int {
	placed := 0
	for i := range c.g.Sectors {
		if placed >= count {
			return placed
		}
		s := &c.g.Sectors[i]
		if s.Type == SectorTypeProtected && !s.HasStarMall && !s.HasSeedPlanet {
			s.HasSeedPlanet = true
			placed++
		}
	}

	for placed < count {
		id, ok := c.next()
		if !ok {
			break
		}
		s := c.g.Sector(id)
		if s.Type != SectorTypeStandard {
			continue
		}
		s.Type = SectorTypeProtected
		s.HasSeedPlanet = true
		placed++
	}
	return placed
}

// convertOneWay turns up to count bidirectional lanes into one-way lanes.
// A lane from→to is only converted when both endpoints keep at least one
// other exit afterwards; sectors without such a lane are skipped.
func (c *classifier) convertOneWay(count int) int {
	converted := 0
	for converted < count {
		id, ok := c.next()
		if !ok {
			break
		}
		s := c.g.Sector(id)
		if s.Type != SectorTypeStandard || c.g.OutDegree(id) < 2 {
			continue
		}

		lanes := c.g.LanesOf(id)
		candidates := make([]int, len(lanes))
		for i, l := range lanes {
			candidates[i] = l.To
		}
		c.r.Shuffle(candidates)

		for _, target := range candidates {
			if c.g.OutDegree(target) < 2 || !c.g.HasLane(target, id) {
				continue
			}
			c.g.setOneWay(id, target, true)
			c.g.removeLane(target, id)
			s.Type = SectorTypeOneWay
			converted++
			break
		}
	}
	return converted
}
