package dag

import (
	"fmt"
	"sort"
)

// TopologicalSort returns every node ID ordered so that each node appears
// strictly after all of its dependencies. Among nodes whose dependencies
// are equally satisfied, IDs are taken in lexical order, so the result is
// deterministic for a given graph. A cycle makes a full ordering
// impossible and is returned as an error naming the stuck nodes.
func (g *Graph) TopologicalSort() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Kahn's algorithm with a sorted ready list.
	inDegree := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		inDegree[id] = len(n.deps)
	}

	var ready []string
	for id, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var unlocked []string
		for depID := range g.nodes[id].dependents {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				unlocked = append(unlocked, depID)
			}
		}
		sort.Strings(unlocked)
		ready = mergeSorted(ready, unlocked)
	}

	if len(order) != len(g.nodes) {
		var stuck []string
		for id, degree := range inDegree {
			if degree > 0 {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("cannot order graph: cycle involving %v", stuck)
	}

	return order, nil
}

// mergeSorted merges two lexically sorted string slices into one.
func mergeSorted(a, b []string) []string {
	merged := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}
