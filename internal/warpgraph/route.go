package warpgraph

import "sort"

// Adjacency is the read-only view the router walks. Implementations must be
// safe for concurrent reads.
type Adjacency interface {
	Neighbors(sectorID int) []int
}

// AdjacencyList is an Adjacency keyed by persisted sector id, used once a
// graph has been stored and the dense id space may carry an offset.
type AdjacencyList map[int][]int

func (a AdjacencyList) Neighbors(sectorID int) []int {
	return a[sectorID]
}

// NewAdjacencyList builds an AdjacencyList from directed edges. Neighbor
// lists are sorted so routes do not depend on edge order.
func NewAdjacencyList(edges []Edge) AdjacencyList {
	adj := make(AdjacencyList)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], e.To)
	}
	for _, next := range adj {
		sort.Ints(next)
	}
	return adj
}

// FindShortestPath returns the fewest-hop path from start to end including
// both endpoints, [start] when start == end, or nil when end cannot be
// reached within maxDepth hops. maxDepth <= 0 selects DefaultMaxPathDepth.
// It keeps no state between calls.
func FindShortestPath(adj Adjacency, start, end, maxDepth int) []int {
	if start == end {
		return []int{start}
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxPathDepth
	}

	parent := map[int]int{start: start}
	depth := map[int]int{start: 0}
	queue := []int{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		d := depth[current]
		if d >= maxDepth {
			continue
		}
		for _, next := range adj.Neighbors(current) {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current
			if next == end {
				return walkBack(parent, start, end)
			}
			depth[next] = d + 1
			queue = append(queue, next)
		}
	}
	return nil
}

func walkBack(parent map[int]int, start, end int) []int {
	var path []int
	for at := end; at != start; at = parent[at] {
		path = append(path, at)
	}
	path = append(path, start)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
