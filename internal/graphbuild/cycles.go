package graphbuild

import (
	"sort"

	"codescan/internal/envelope"
)

// detectCycles runs Tarjan's strongly-connected-components algorithm over
// the resolved import edges and returns every component with more than one
// member, plus a size-1 component whose sole file imports itself — per
// spec.md §3's graph.cycles enrichment. Components are sorted by their
// lexicographically smallest member for deterministic output.
func detectCycles(entries []envelope.GraphEntry) [][]string {
	adj := make(map[string][]string, len(entries))
	for _, e := range entries {
		adj[e.File] = e.Imports
	}

	t := &tarjan{
		adj:     adj,
		index:   make(map[string]int),
		lowlink: make(map[string]int),
		onStack: make(map[string]bool),
	}

	for _, e := range entries {
		if _, seen := t.index[e.File]; !seen {
			t.strongconnect(e.File)
		}
	}

	var cycles [][]string
	for _, comp := range t.components {
		if len(comp) > 1 || isSelfLoop(comp, adj) {
			sort.Strings(comp)
			cycles = append(cycles, comp)
		}
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// isSelfLoop reports whether comp is a single file that imports itself.
func isSelfLoop(comp []string, adj map[string][]string) bool {
	if len(comp) != 1 {
		return false
	}
	v := comp[0]
	for _, w := range adj[v] {
		if w == v {
			return true
		}
	}
	return false
}

type tarjan struct {
	adj        map[string][]string
	index      map[string]int
	lowlink    map[string]int
	onStack    map[string]bool
	stack      []string
	counter    int
	components [][]string
}

func (t *tarjan) strongconnect(v string) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.adj[v] {
		if _, seen := t.index[w]; !seen {
			t.strongconnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] == t.index[v] {
		var comp []string
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		t.components = append(t.components, comp)
	}
}
