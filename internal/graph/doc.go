// Package graph holds the immutable object graph of a project: every item,
// recipe, and technology as a node with a dense integer identity, each node's
// dependency lists (conjunctive or disjunctive), the reverse-dependency
// adjacency derived from them, and the set of root-accessible nodes.
//
// The graph is built once from the config model and is read-only afterwards;
// the milestone engine walks it but never mutates it.
package graph
