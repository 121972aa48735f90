package graph

import "fmt"

// NodeID identifies a node in the dense integer index space of a graph.
// IDs are assigned in declaration order, starting at zero.
type NodeID int

// ListKind selects the combinator semantics of a dependency list.
type ListKind uint8

const (
	// Conjunctive lists require every listed prerequisite.
	Conjunctive ListKind = iota
	// Disjunctive lists are satisfied by any one listed prerequisite;
	// the engine picks the cheapest available.
	Disjunctive
)

// String returns the requires-block mode label for the kind.
func (k ListKind) String() string {
	if k == Disjunctive {
		return "any"
	}
	return "all"
}

// DependencyList is one prerequisite group of a node.
type DependencyList struct {
	Kind    ListKind
	Prereqs []NodeID
}

// Graph is the immutable object graph. All slices are indexed by NodeID.
type Graph struct {
	names   []string
	index   map[string]NodeID
	deps    [][]DependencyList
	revDeps [][]NodeID
	roots   []NodeID
	tags    map[string][]NodeID
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.names)
}

// Name returns the declared name of a node.
func (g *Graph) Name(id NodeID) string {
	return g.names[id]
}

// NodeByName resolves a node name to its identity.
func (g *Graph) NodeByName(name string) (NodeID, bool) {
	id, ok := g.index[name]
	return id, ok
}

// Deps returns the dependency lists of a node, in declaration order.
func (g *Graph) Deps(id NodeID) []DependencyList {
	return g.deps[id]
}

// ReverseDeps returns the nodes that list the given node as a prerequisite.
func (g *Graph) ReverseDeps(id NodeID) []NodeID {
	return g.revDeps[id]
}

// Roots returns the root-accessible nodes, in declaration order.
func (g *Graph) Roots() []NodeID {
	return g.roots
}

// Tagged returns the nodes carrying the given tag, in declaration order.
func (g *Graph) Tagged(tag string) []NodeID {
	return g.tags[tag]
}

// Contains reports whether id is a valid node identity for this graph.
func (g *Graph) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(g.names)
}

// DetectCycles checks the graph for dependency cycles. It returns a non-nil
// error naming the first node found inside a cycle. The milestone engine
// tolerates cycles via its step cap, so this is a diagnostic, not a gate.
func (g *Graph) DetectCycles() error {
	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited, known cycle-free.
	// temporary: currently on the recursion stack.
	// unvisited: everything else.
	permanent := make([]bool, g.Len())
	temporary := make([]bool, g.Len())

	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			return fmt.Errorf("cycle detected involving object %q", g.names[id])
		}

		temporary[id] = true
		for _, list := range g.deps[id] {
			for _, prereq := range list.Prereqs {
				if err := visit(prereq); err != nil {
					return err
				}
			}
		}
		temporary[id] = false
		permanent[id] = true

		return nil
	}

	for id := 0; id < g.Len(); id++ {
		if !permanent[id] {
			if err := visit(NodeID(id)); err != nil {
				return err
			}
		}
	}
	return nil
}
