package component

import "sort"

// Graph is the assembled dependency graph over all five component
// kinds. It is built fresh per validation run and never mutated after
// assembly; validators treat it as read-only.
type Graph struct {
	Nodes map[Kind]map[string]*Node `json:"nodes"`
	Stats Stats                     `json:"stats"`
}

// Stats aggregates node and edge counts for the built graph.
type Stats struct {
	// NodeCounts holds the number of nodes per kind.
	NodeCounts map[Kind]int `json:"nodeCounts"`
	// EdgeCounts holds the total declared references per source-kind /
	// target-kind pair, e.g. EdgeCounts[KindAgent][KindSkill] is the
	// total number of skill references across all agents.
	EdgeCounts map[Kind]map[Kind]int `json:"edgeCounts"`
}

// NewGraph creates an empty graph with maps allocated for every kind.
func NewGraph() *Graph {
	g := &Graph{
		Nodes: make(map[Kind]map[string]*Node),
		Stats: Stats{
			NodeCounts: make(map[Kind]int),
			EdgeCounts: make(map[Kind]map[Kind]int),
		},
	}
	for _, kind := range AllKinds {
		g.Nodes[kind] = make(map[string]*Node)
	}
	return g
}

// Lookup returns the node with the given id in the given kind, or nil.
func (g *Graph) Lookup(kind Kind, id string) *Node {
	nodes, ok := g.Nodes[kind]
	if !ok {
		return nil
	}
	return nodes[id]
}

// Exists reports whether a node of the given kind and id is present.
func (g *Graph) Exists(kind Kind, id string) bool {
	return g.Lookup(kind, id) != nil
}

// IDs returns the sorted ids of all nodes of the given kind.
func (g *Graph) IDs(kind Kind) []string {
	nodes := g.Nodes[kind]
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EachNode calls fn for every node in the graph, iterating kinds in
// hierarchy order and ids in sorted order for deterministic traversal.
func (g *Graph) EachNode(fn func(*Node)) {
	for _, kind := range AllKinds {
		for _, id := range g.IDs(kind) {
			fn(g.Nodes[kind][id])
		}
	}
}
