package graph

import "sort"

// DetectCycles runs a DFS over every node and returns each dependency cycle
// as the node sequence that closes it. Start order is sorted so repeated runs
// over the same graph report cycles identically.
func (g *Graph) DetectCycles() [][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var cycles [][]string
	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	for _, name := range g.sortedNodesLocked() {
		if !visited[name] {
			g.findCycles(name, visited, onStack, []string{}, &cycles)
		}
	}
	return cycles
}

func (g *Graph) findCycles(curr string, visited, onStack map[string]bool, path []string, cycles *[][]string) {
	visited[curr] = true
	onStack[curr] = true
	path = append(path, curr)

	for _, next := range g.sortedTargetsLocked(curr) {
		if onStack[next] {
			start := -1
			for i, node := range path {
				if node == next {
					start = i
					break
				}
			}
			if start != -1 {
				cycle := make([]string, len(path)-start)
				copy(cycle, path[start:])
				*cycles = append(*cycles, cycle)
			}
		} else if !visited[next] {
			g.findCycles(next, visited, onStack, path, cycles)
		}
	}

	onStack[curr] = false
}

func (g *Graph) sortedNodesLocked() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *Graph) sortedTargetsLocked(from string) []string {
	targets := make([]string, 0, len(g.out[from]))
	for to := range g.out[from] {
		targets = append(targets, to)
	}
	sort.Strings(targets)
	return targets
}
