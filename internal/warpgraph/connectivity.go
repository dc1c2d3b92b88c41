package warpgraph

import "math"

// components labels the strongly connected components of g with Kosaraju's
// algorithm. comp[id-1] is the component index of each sector and members
// lists each component's sectors, components ordered source-first.
func components(g *Graph) (comp []int, members [][]int) {
	n := g.Len()
	finish := finishOrder(g)

	reverse := make([][]int, n)
	for i, lanes := range g.Lanes {
		for _, l := range lanes {
			reverse[l.To-1] = append(reverse[l.To-1], i+1)
		}
	}

	comp = make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	for i := len(finish) - 1; i >= 0; i-- {
		root := finish[i]
		if comp[root-1] >= 0 {
			continue
		}
		index := len(members)
		comp[root-1] = index
		group := []int{root}
		for head := 0; head < len(group); head++ {
			for _, from := range reverse[group[head]-1] {
				if comp[from-1] < 0 {
					comp[from-1] = index
					group = append(group, from)
				}
			}
		}
		members = append(members, group)
	}
	return comp, members
}

// finishOrder runs an explicit-stack depth-first search over the forward
// lanes and returns sectors in the order they finish.
func finishOrder(g *Graph) []int {
	type frame struct {
		id   int
		next int
	}

	n := g.Len()
	visited := make([]bool, n)
	finish := make([]int, 0, n)
	var stack []frame

	for start := 1; start <= n; start++ {
		if visited[start-1] {
			continue
		}
		visited[start-1] = true
		stack = append(stack, frame{id: start})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			lanes := g.LanesOf(top.id)
			if top.next < len(lanes) {
				to := lanes[top.next].To
				top.next++
				if !visited[to-1] {
					visited[to-1] = true
					stack = append(stack, frame{id: to})
				}
				continue
			}
			finish = append(finish, top.id)
			stack = stack[:len(stack)-1]
		}
	}
	return finish
}

type repairer struct {
	g         *Graph
	maxDegree int
	comp      []int
	stats     *Stats
}

// repairConnectivity chains all strongly connected components together so
// that every sector can reach every other.
func repairConnectivity(g *Graph, maxDegree int, stats *Stats) {
	comp, members := components(g)
	stats.ComponentsBefore = len(members)
	if len(members) <= 1 {
		return
	}

	rp := &repairer{g: g, maxDegree: maxDegree, comp: comp, stats: stats}
	for i := 1; i < len(members); i++ {
		if !rp.restoreOneWay(i-1, i, members[i]) && !rp.restoreOneWay(i, i-1, members[i-1]) {
			rp.bridge(members[i-1], members[i])
		}
	}
	if len(members) > 2 {
		rp.bridge(members[len(members)-1], members[0])
	}
}

func (rp *repairer) hasRoom(id int) bool {
	return rp.g.OutDegree(id) < rp.maxDegree
}

// restoreOneWay looks for a one-way lane from a sector of component src into
// component dst and adds its missing reverse direction.
func (rp *repairer) restoreOneWay(dst, src int, srcMembers []int) bool {
	for _, from := range srcMembers {
		for _, l := range rp.g.LanesOf(from) {
			if !l.OneWay || rp.comp[l.To-1] != dst || !rp.hasRoom(l.To) {
				continue
			}
			rp.g.setOneWay(from, l.To, false)
			rp.g.addLane(l.To, from, false)
			rp.stats.RestoredLanes++
			return true
		}
	}
	return false
}

// bridge adds a fresh bidirectional lane between the closest pair of sectors
// with spare degree, closeness being region distance first and id distance second.
func (rp *repairer) bridge(a, b []int) bool {
	bestA, bestB := 0, 0
	bestCost := math.MaxInt
	for _, x := range a {
		if !rp.hasRoom(x) {
			continue
		}
		rx := rp.g.Sector(x).RegionID
		for _, y := range b {
			if x == y || !rp.hasRoom(y) || rp.g.HasLane(x, y) || rp.g.HasLane(y, x) {
				continue
			}
			cost := abs(rx-rp.g.Sector(y).RegionID)*1000 + abs(x-y)
			if cost < bestCost {
				bestA, bestB, bestCost = x, y, cost
			}
		}
	}
	if bestCost == math.MaxInt {
		return false
	}
	rp.g.connect(bestA, bestB)
	rp.stats.BridgeLanes++
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
