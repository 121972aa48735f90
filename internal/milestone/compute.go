package milestone

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/techgridgo/internal/ctxlog"
	"github.com/vk/techgridgo/internal/graph"
)

// procState tags a node's position in the current computation.
type procState uint8

const (
	// stateQueued marks a node currently sitting in the worklist.
	stateQueued procState = 1 << iota
	// stateInitial marks a seed node: it may store a mask even when some
	// of its dependency lists cannot be satisfied yet.
	stateInitial
)

// nodeQueue is a FIFO worklist over node ids.
type nodeQueue struct {
	items []graph.NodeID
	head  int
}

func (q *nodeQueue) push(id graph.NodeID) {
	q.items = append(q.items, id)
}

func (q *nodeQueue) pop() graph.NodeID {
	id := q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return id
}

func (q *nodeQueue) empty() bool {
	return q.head == len(q.items)
}

// Compute runs a full milestone computation and publishes its result.
// Concurrent calls are serialized; the graph and the milestone ordering are
// treated as frozen for the duration of a run.
//
// Hitting the step cap is not an error: the accumulated partial result is
// published and returned with Partial() set, and a warning is logged.
func (e *Engine) Compute(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	order := e.settings.Milestones()
	if len(order) == 0 {
		// A project without an explicit ordering still gets milestones:
		// every progression-tagged object, in declaration order.
		order = e.graph.Tagged(DefaultTag)
		if len(order) == 0 {
			return nil, ErrNoMilestones
		}
		logger.Debug("No milestone ordering configured, defaulting to tagged objects.", "tag", DefaultTag, "count", len(order))
	}
	if len(order) > MaxMilestones {
		return nil, fmt.Errorf("%w: %d configured, limit is %d", ErrTooManyMilestones, len(order), MaxMilestones)
	}

	masks := make([]Mask, e.graph.Len())
	state := make([]procState, e.graph.Len())
	var queue nodeQueue

	// Seed milestones with their assigned bit plus the accessible marker,
	// and roots with the accessible marker alone. Roots enter the phase-0
	// worklist; each milestone enters the worklist of its own phase.
	for i, m := range order {
		masks[m] = Mask(1)<<(i+1) | 1
	}
	for _, r := range e.graph.Roots() {
		// A root that is also a milestone keeps its milestone seed and
		// enters the worklist at its own phase instead.
		if masks[r] != 0 {
			continue
		}
		masks[r] = 1
		state[r] = stateQueued | stateInitial
		queue.push(r)
	}

	// flagMask is the window of bits a phase may produce. Phase k admits
	// bit 0 and the bits of milestones seeded on or before k, which pins a
	// node's mask to the earliest phase that could reach it.
	flagMask := Mask(1)
	pops := 0
	partial := false

phases:
	for phase := 0; phase <= len(order); phase++ {
		if phase > 0 {
			m := order[phase-1]
			flagMask |= Mask(1) << phase
			state[m] = stateQueued | stateInitial
			queue.push(m)
		}

		for !queue.empty() {
			if pops >= e.stepCap {
				partial = true
				logger.Warn("Milestone computation exceeded its step cap; returning partial result.",
					"pops", pops, "phase", phase, "elapsed", time.Since(start))
				break phases
			}
			pops++

			id := queue.pop()
			cur := masks[id]
			candidate := cur
			isInitial := state[id]&stateInitial != 0
			state[id] &^= stateQueued | stateInitial

			for _, list := range e.graph.Deps(id) {
				contribution, ok := listContribution(masks, list)
				if !ok {
					if isInitial {
						// Seeds tolerate unsatisfied lists; the list simply
						// contributes nothing this round.
						continue
					}
					// A non-seed node with any unsatisfied list cannot be
					// updated yet; a later wave will revisit it.
					candidate = cur
					break
				}
				candidate |= contribution
			}
			if candidate == cur && !isInitial {
				continue
			}

			if isInitial {
				candidate &= flagMask
			} else if candidate&^flagMask != 0 {
				// Bits beyond the phase window belong to a later phase.
				continue
			}

			masks[id] = candidate
			for _, rev := range e.graph.ReverseDeps(id) {
				// Schedule each unresolved dependent at most once per wave.
				if state[rev]&stateQueued != 0 || masks[rev] != 0 {
					continue
				}
				state[rev] |= stateQueued
				queue.push(rev)
			}
		}
		logger.Debug("Milestone phase drained.", "phase", phase, "pops", pops)
	}

	result := &Result{
		graph:      e.graph,
		masks:      masks,
		order:      order,
		lockedMask: e.lockedMask(order),
		pops:       pops,
		elapsed:    time.Since(start),
		partial:    partial,
	}
	e.result.Store(result)

	logger.Info("Milestone computation complete.",
		"milestones", len(order), "pops", pops, "elapsed", result.elapsed, "partial", partial)
	return result, nil
}

// listContribution computes the mask one dependency list contributes to its
// owner, and whether the list is satisfied at all.
func listContribution(masks []Mask, list graph.DependencyList) (Mask, bool) {
	switch list.Kind {
	case graph.Disjunctive:
		// Cheapest alternative: the numerically smallest nonzero mask.
		// Smaller values mean lower-ordered milestone bits, a heuristic
		// proxy for the earliest available alternative.
		best := Mask(0)
		for _, p := range list.Prereqs {
			if m := masks[p]; m != 0 && (best == 0 || m < best) {
				best = m
			}
		}
		return best, best != 0
	default:
		// Conjunctive: every prerequisite must already have a mask.
		var acc Mask
		for _, p := range list.Prereqs {
			m := masks[p]
			if m == 0 {
				return 0, false
			}
			acc |= m
		}
		return acc, true
	}
}

// lockedMask derives the bitmask of still-locked milestones from current
// settings. Bit 0 is always unlocked and never part of the mask.
func (e *Engine) lockedMask(order []graph.NodeID) Mask {
	var locked Mask
	for i, m := range order {
		if !e.settings.Unlocked(m) {
			locked |= Mask(1) << (i + 1)
		}
	}
	return locked
}
