// Package milestone computes, for every object in the graph, the minimal set
// of milestone gates that must be crossed before the object becomes
// obtainable. The result is a per-node reachability bitmask: bit 0 marks
// "obtainable from the start", bit i+1 marks "requires the milestone at
// ordered position i".
//
// The computation is a monotone fixpoint over the dependency graph, driven
// by a worklist and split into strictly ordered phases, one per milestone.
// Phase k admits only the bits of milestones seeded on or before k, so for a
// fixed graph and milestone ordering the output is fully deterministic.
// Within a node, conjunctive dependency lists OR together all prerequisite
// masks, while disjunctive lists contribute the numerically smallest
// nonzero prerequisite mask. The numeric comparison is a deliberate
// heuristic for "fewest, earliest milestones"; it is not a cost metric and
// the engine does not compute true minimum-cost unlock sequences.
//
// A global cap on worklist pops bounds the computation on graphs that turn
// out to be cyclic. Hitting the cap is reported, not fatal: the partial
// result is still published, with possibly some masks left at zero.
package milestone
