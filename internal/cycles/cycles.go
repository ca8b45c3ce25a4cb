package cycles

import (
	"sort"
	"strings"

	"github.com/trujunzhang/cyclefinder/internal/graph"
	"github.com/trujunzhang/cyclefinder/internal/types"
	"github.com/trujunzhang/cyclefinder/internal/whitelist"
)

// Cycle is a closed walk of strong reference edges. Each edge's To is the
// next edge's From, and the last edge returns to the first edge's From.
type Cycle struct {
	Edges []types.CycleEdge
}

// Nodes returns the canonical type names on the cycle, one per edge,
// starting at the first edge's origin
func (c *Cycle) Nodes() []string {
	nodes := make([]string, 0, len(c.Edges))
	for _, e := range c.Edges {
		nodes = append(nodes, e.From)
	}
	return nodes
}

// HasOuterEdge reports whether the cycle travels through an implicit
// outer-instance reference
func (c *Cycle) HasOuterEdge() bool {
	for _, e := range c.Edges {
		if e.Outer {
			return true
		}
	}
	return false
}

// Signature returns a rotation-independent identity for the cycle,
// rendered from its lexicographically smallest node. Two revisions of a
// model produce the same signature for the same cycle.
func (c *Cycle) Signature() string {
	if len(c.Edges) == 0 {
		return ""
	}
	min := 0
	for i, e := range c.Edges {
		if e.From < c.Edges[min].From {
			min = i
		}
	}
	parts := make([]string, 0, len(c.Edges))
	for i := range c.Edges {
		parts = append(parts, c.Edges[(min+i)%len(c.Edges)].Describe())
	}
	return strings.Join(parts, "; ")
}

// Analysis bundles one analyzed model: the graph, the registry it was
// checked against, and the enumerated cycles. Rules evaluate over an
// Analysis so the enumeration runs once per check.
type Analysis struct {
	Graph     *graph.Graph
	Whitelist *whitelist.Whitelist
	Cycles    []*Cycle
}

// Analyze enumerates the cycles of the graph
func Analyze(g *graph.Graph, w *whitelist.Whitelist) *Analysis {
	return &Analysis{Graph: g, Whitelist: w, Cycles: Enumerate(g)}
}

// Enumerate returns the reference cycles of the graph in a deterministic
// order. While any strongly connected component still contains a cycle,
// the shortest cycle through the component's smallest node is recorded
// and that cycle's first edge removed, so successive cycles are distinct
// and the walk terminates.
func Enumerate(g *graph.Graph) []*Cycle {
	edges := BuildEdges(g)
	var cycles []*Cycle
	for {
		c := nextCycle(edges)
		if c == nil {
			return cycles
		}
		cycles = append(cycles, c)
		edges = withoutEdge(edges, c.Edges[0])
	}
}

// nextCycle finds the shortest cycle through the smallest node of the
// smallest cyclic strongly connected component, or nil when the edge set
// is acyclic
func nextCycle(edges []types.CycleEdge) *Cycle {
	if len(edges) == 0 {
		return nil
	}

	adj := make(map[string][]types.CycleEdge)
	nodeSet := make(map[string]bool)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], e)
		nodeSet[e.From] = true
		nodeSet[e.To] = true
	}
	nodes := make([]string, 0, len(nodeSet))
	for n := range nodeSet {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)

	var target []string
	for _, scc := range stronglyConnected(nodes, adj) {
		if !isCyclic(scc, adj) {
			continue
		}
		if target == nil || scc[0] < target[0] {
			target = scc
		}
	}
	if target == nil {
		return nil
	}

	inSCC := make(map[string]bool, len(target))
	for _, n := range target {
		inSCC[n] = true
	}
	return shortestCycleFrom(target[0], inSCC, adj)
}

// isCyclic reports whether a strongly connected component contains a
// cycle: more than one node, or a single node with a self edge
func isCyclic(scc []string, adj map[string][]types.CycleEdge) bool {
	if len(scc) > 1 {
		return true
	}
	for _, e := range adj[scc[0]] {
		if e.To == scc[0] {
			return true
		}
	}
	return false
}

// shortestCycleFrom runs a BFS from start restricted to one strongly
// connected component and closes the shortest walk back to start.
// Adjacency lists are pre-sorted, so ties resolve to the smallest names.
func shortestCycleFrom(start string, inSCC map[string]bool, adj map[string][]types.CycleEdge) *Cycle {
	dist := map[string]int{start: 0}
	parent := make(map[string]types.CycleEdge)
	queue := []string{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range adj[u] {
			if !inSCC[e.To] || e.To == start {
				continue
			}
			if _, seen := dist[e.To]; seen {
				continue
			}
			dist[e.To] = dist[u] + 1
			parent[e.To] = e
			queue = append(queue, e.To)
		}
	}

	members := make([]string, 0, len(inSCC))
	for n := range inSCC {
		members = append(members, n)
	}
	sort.Strings(members)

	var closing *types.CycleEdge
	bestDist := -1
	for _, u := range members {
		du, reachable := dist[u]
		if !reachable {
			continue
		}
		for _, e := range adj[u] {
			if e.To != start {
				continue
			}
			if bestDist == -1 || du < bestDist {
				bestDist = du
				ec := e
				closing = &ec
			}
			break
		}
	}
	if closing == nil {
		return nil
	}

	var rev []types.CycleEdge
	for at := closing.From; at != start; {
		e := parent[at]
		rev = append(rev, e)
		at = e.From
	}

	cycleEdges := make([]types.CycleEdge, 0, len(rev)+1)
	for i := len(rev) - 1; i >= 0; i-- {
		cycleEdges = append(cycleEdges, rev[i])
	}
	cycleEdges = append(cycleEdges, *closing)
	return &Cycle{Edges: cycleEdges}
}

// withoutEdge returns the edge set with one occurrence of drop removed
func withoutEdge(edges []types.CycleEdge, drop types.CycleEdge) []types.CycleEdge {
	out := make([]types.CycleEdge, 0, len(edges))
	removed := false
	for _, e := range edges {
		if !removed && e.From == drop.From && e.To == drop.To && e.Field == drop.Field && e.Outer == drop.Outer {
			removed = true
			continue
		}
		out = append(out, e)
	}
	return out
}

// stronglyConnected returns the strongly connected components of the
// graph, each sorted by node name. The walk is an iterative Tarjan so
// deep models cannot overflow the stack; roots are visited in sorted
// order for deterministic output.
func stronglyConnected(nodes []string, adj map[string][]types.CycleEdge) [][]string {
	index := make(map[string]int, len(nodes))
	low := make(map[string]int, len(nodes))
	onStack := make(map[string]bool, len(nodes))
	var stack []string
	var sccs [][]string
	next := 0

	type frame struct {
		node string
		edge int
	}

	for _, root := range nodes {
		if _, visited := index[root]; visited {
			continue
		}
		frames := []frame{{node: root}}
		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			v := f.node
			if f.edge == 0 {
				index[v] = next
				low[v] = next
				next++
				stack = append(stack, v)
				onStack[v] = true
			}

			descended := false
			for f.edge < len(adj[v]) {
				e := adj[v][f.edge]
				f.edge++
				if _, seen := index[e.To]; !seen {
					frames = append(frames, frame{node: e.To})
					descended = true
					break
				}
				if onStack[e.To] && index[e.To] < low[v] {
					low[v] = index[e.To]
				}
			}
			if descended {
				continue
			}

			if low[v] == index[v] {
				var scc []string
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					scc = append(scc, w)
					if w == v {
						break
					}
				}
				sort.Strings(scc)
				sccs = append(sccs, scc)
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				p := &frames[len(frames)-1]
				if low[v] < low[p.node] {
					low[p.node] = low[v]
				}
			}
		}
	}
	return sccs
}
