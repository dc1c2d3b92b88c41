package warpgraph

import "sort"

type SectorType string

const (
	SectorTypeStandard        SectorType = "standard"
	SectorTypeOneWay          SectorType = "one_way"
	SectorTypeProtected       SectorType = "protected"
	SectorTypeHarmonyEnforced SectorType = "harmony_enforced"
)

func (t SectorType) Valid() bool {
	switch t {
	case SectorTypeStandard, SectorTypeOneWay, SectorTypeProtected, SectorTypeHarmonyEnforced:
		return true
	}
	return false
}

type Sector struct {
	ID            int        `json:"id" yaml:"id"`
	Type          SectorType `json:"type" yaml:"type"`
	HasStarMall   bool       `json:"has_star_mall" yaml:"has_star_mall"`
	HasSeedPlanet bool       `json:"has_seed_planet" yaml:"has_seed_planet"`
	RegionID      int        `json:"region_id" yaml:"region_id"`
}

// Lane is one directed adjacency entry. A bidirectional lane is stored as two
// mirrored lanes with OneWay=false.
type Lane struct {
	To     int  `json:"to" yaml:"to"`
	OneWay bool `json:"one_way" yaml:"one_way"`
}

type Edge struct {
	From   int  `json:"from" yaml:"from"`
	To     int  `json:"to" yaml:"to"`
	OneWay bool `json:"one_way" yaml:"one_way"`
}

// Graph is the generated universe. Sectors and Lanes are indexed by id-1.
// Once returned from Generate it must be treated as read-only.
type Graph struct {
	Sectors []Sector `json:"sectors" yaml:"sectors"`
	Lanes   [][]Lane `json:"lanes" yaml:"lanes"`
	Stats   Stats    `json:"stats" yaml:"stats"`
}

// Stats describes what the generator realised for one graph.
type Stats struct {
	Seed             int64 `json:"seed" yaml:"seed"`
	Regions          int   `json:"regions" yaml:"regions"`
	StarMalls        int   `json:"star_malls" yaml:"star_malls"`
	SeedPlanets      int   `json:"seed_planets" yaml:"seed_planets"`
	OneWayTarget     int   `json:"one_way_target" yaml:"one_way_target"`
	OneWayLanes      int   `json:"one_way_lanes" yaml:"one_way_lanes"`
	ComponentsBefore int   `json:"components_before_repair" yaml:"components_before_repair"`
	RestoredLanes    int   `json:"restored_lanes" yaml:"restored_lanes"`
	BridgeLanes      int   `json:"bridge_lanes" yaml:"bridge_lanes"`
	HarmonySectors   int   `json:"harmony_sectors" yaml:"harmony_sectors"`
}

func newGraph(totalSectors int) *Graph {
	g := &Graph{
		Sectors: make([]Sector, totalSectors),
		Lanes:   make([][]Lane, totalSectors),
	}
	for i := range g.Sectors {
		g.Sectors[i] = Sector{ID: i + 1, Type: SectorTypeStandard}
	}
	return g
}

func (g *Graph) Len() int {
	return len(g.Sectors)
}

func (g *Graph) contains(id int) bool {
	return id >= 1 && id <= len(g.Sectors)
}

// Sector returns the sector with the given id, or nil when out of range.
func (g *Graph) Sector(id int) *Sector {
	if !g.contains(id) {
		return nil
	}
	return &g.Sectors[id-1]
}

func (g *Graph) LanesOf(id int) []Lane {
	if !g.contains(id) {
		return nil
	}
	return g.Lanes[id-1]
}

func (g *Graph) OutDegree(id int) int {
	return len(g.LanesOf(id))
}

func (g *Graph) HasLane(from, to int) bool {
	return g.laneIndex(from, to) >= 0
}

func (g *Graph) laneIndex(from, to int) int {
	for i, l := range g.LanesOf(from) {
		if l.To == to {
			return i
		}
	}
	return -1
}

// Neighbors implements Adjacency.
func (g *Graph) Neighbors(id int) []int {
	lanes := g.LanesOf(id)
	out := make([]int, len(lanes))
	for i, l := range lanes {
		out[i] = l.To
	}
	return out
}

// Edges flattens the adjacency into directed edge rows ordered by source id.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for i, lanes := range g.Lanes {
		for _, l := range lanes {
			edges = append(edges, Edge{From: i + 1, To: l.To, OneWay: l.OneWay})
		}
	}
	return edges
}

// Regions groups sector ids by region id, each group sorted ascending.
func (g *Graph) Regions() map[int][]int {
	regions := make(map[int][]int)
	for _, s := range g.Sectors {
		regions[s.RegionID] = append(regions[s.RegionID], s.ID)
	}
	for _, ids := range regions {
		sort.Ints(ids)
	}
	return regions
}

func (g *Graph) StarMalls() []int {
	var ids []int
	for _, s := range g.Sectors {
		if s.HasStarMall {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func (g *Graph) SeedPlanets() []int {
	var ids []int
	for _, s := range g.Sectors {
		if s.HasSeedPlanet {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// Translate returns the sector and edge rows with every id shifted by offset.
// Region ids are left untouched.
func (g *Graph) Translate(offset int) ([]Sector, []Edge) {
	sectors := make([]Sector, len(g.Sectors))
	for i, s := range g.Sectors {
		s.ID += offset
		sectors[i] = s
	}
	edges := g.Edges()
	for i := range edges {
		edges[i].From += offset
		edges[i].To += offset
	}
	return sectors, edges
}

func (g *Graph) addLane(from, to int, oneWay bool) bool {
	if from == to || !g.contains(from) || !g.contains(to) || g.HasLane(from, to) {
		return false
	}
	g.Lanes[from-1] = append(g.Lanes[from-1], Lane{To: to, OneWay: oneWay})
	return true
}

// connect adds a bidirectional lane. Duplicates and self pairs are rejected.
func (g *Graph) connect(a, b int) bool {
	if a == b || g.HasLane(a, b) || g.HasLane(b, a) {
		return false
	}
	g.addLane(a, b, false)
	g.addLane(b, a, false)
	return true
}

func (g *Graph) removeLane(from, to int) bool {
	i := g.laneIndex(from, to)
	if i < 0 {
		return false
	}
	lanes := g.Lanes[from-1]
	g.Lanes[from-1] = append(lanes[:i], lanes[i+1:]...)
	return true
}

func (g *Graph) setOneWay(from, to int, oneWay bool) {
	if i := g.laneIndex(from, to); i >= 0 {
		g.Lanes[from-1][i].OneWay = oneWay
	}
}
