package warpgraph

import (
	"fmt"
	"strings"
)

// InvariantError lists every postcondition a generated graph violates.
// It indicates a generator defect, never a transient condition.
type InvariantError struct {
	Violations []string
}

func (e *InvariantError) Error() string {
	return "universe graph invariants violated: " + strings.Join(e.Violations, "; ")
}

// Verify checks the structural guarantees of a generated graph.
func Verify(g *Graph, params Params) error {
	var violations []string
	fail := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	for i, s := range g.Sectors {
		if s.ID != i+1 {
			fail("sector at index %d has id %d", i, s.ID)
		}
		if !s.Type.Valid() {
			fail("sector %d has unknown type %q", s.ID, s.Type)
		}
		if s.HasStarMall && s.Type != SectorTypeProtected {
			fail("star mall %d is %s, not protected", s.ID, s.Type)
		}
		if s.HasStarMall && s.HasSeedPlanet {
			fail("sector %d holds both a star mall and a seed planet", s.ID)
		}
	}

	for i, lanes := range g.Lanes {
		from := i + 1
		if len(lanes) > params.MaxAdjacentSectors {
			fail("sector %d has %d lanes, max %d", from, len(lanes), params.MaxAdjacentSectors)
		}
		for _, l := range lanes {
			if !g.contains(l.To) || l.To == from {
				fail("sector %d has invalid lane to %d", from, l.To)
				continue
			}
			mirrored := g.HasLane(l.To, from)
			if l.OneWay && mirrored {
				fail("one-way lane %d->%d has a reverse lane", from, l.To)
			}
			if !l.OneWay && !mirrored {
				fail("two-way lane %d->%d has no reverse lane", from, l.To)
			}
		}
	}

	if len(g.StarMalls()) == 0 {
		fail("no star mall placed")
	}
	if len(g.SeedPlanets()) == 0 {
		fail("no seed planet placed")
	}
	if len(violations) == 0 && !StronglyConnected(g) {
		fail("graph is not strongly connected")
	}

	if len(violations) > 0 {
		return &InvariantError{Violations: violations}
	}
	return nil
}

// StronglyConnected reports whether every sector reaches every other sector
// following lane direction.
func StronglyConnected(g *Graph) bool {
	if g.Len() == 0 {
		return true
	}
	_, members := components(g)
	return len(members) == 1
}

// WeaklyConnected reports whether the graph is connected when lane direction
// is ignored.
func WeaklyConnected(g *Graph) bool {
	n := g.Len()
	if n == 0 {
		return true
	}
	undirected := make([][]int, n)
	for i, lanes := range g.Lanes {
		for _, l := range lanes {
			undirected[i] = append(undirected[i], l.To)
			undirected[l.To-1] = append(undirected[l.To-1], i+1)
		}
	}
	seen := make([]bool, n)
	seen[0] = true
	queue := []int{1}
	reached := 1
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range undirected[id-1] {
			if !seen[next-1] {
				seen[next-1] = true
				reached++
				queue = append(queue, next)
			}
		}
	}
	return reached == n
}
