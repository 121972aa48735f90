package graph

import (
	"context"
	"fmt"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/ctxlog"
)

// Build constructs a complete object graph from a config model.
func Build(ctx context.Context, model *config.Model) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")

	g := &Graph{
		index: make(map[string]NodeID),
		tags:  make(map[string][]NodeID),
	}

	// First pass: assign dense identities to every declared object.
	for _, obj := range model.Objects {
		if _, exists := g.index[obj.Name]; exists {
			return nil, fmt.Errorf("duplicate object %q", obj.Name)
		}
		id := NodeID(len(g.names))
		g.index[obj.Name] = id
		g.names = append(g.names, obj.Name)
	}
	logger.Debug("Build: Node creation complete.", "node_count", g.Len())

	// Second pass: link dependency lists and derive reverse dependencies.
	g.deps = make([][]DependencyList, g.Len())
	g.revDeps = make([][]NodeID, g.Len())
	revSeen := make(map[[2]NodeID]struct{})
	for _, obj := range model.Objects {
		id := g.index[obj.Name]
		for _, req := range obj.Requires {
			list := DependencyList{Kind: Conjunctive}
			if req.Mode == config.RequireAny {
				list.Kind = Disjunctive
			}
			for _, name := range req.Of {
				prereq, ok := g.index[name]
				if !ok {
					return nil, fmt.Errorf("object %q requires unknown object %q", obj.Name, name)
				}
				list.Prereqs = append(list.Prereqs, prereq)
				// A node appearing in several lists of the same dependent
				// still yields a single reverse edge.
				edge := [2]NodeID{prereq, id}
				if _, dup := revSeen[edge]; !dup {
					revSeen[edge] = struct{}{}
					g.revDeps[prereq] = append(g.revDeps[prereq], id)
				}
			}
			g.deps[id] = append(g.deps[id], list)
		}
	}
	logger.Debug("Build: Node linking complete.")

	// Third pass: collect roots and tags in declaration order.
	for _, obj := range model.Objects {
		id := g.index[obj.Name]
		if obj.Root {
			g.roots = append(g.roots, id)
		}
		for _, tag := range obj.Tags {
			g.tags[tag] = append(g.tags[tag], id)
		}
	}
	logger.Debug("Build: Graph construction successful.", "roots", len(g.roots))

	return g, nil
}
