package milestone

import (
	"math/bits"
	"time"

	"github.com/vk/techgridgo/internal/graph"
)

// Result is the durable output of one milestone computation: the mapping
// from every node to its reachability mask, plus the locked mask derived
// from settings at completion time. A Result is immutable; recomputations
// publish a fresh one.
type Result struct {
	graph      *graph.Graph
	masks      []Mask
	order      []graph.NodeID
	lockedMask Mask
	pops       int
	elapsed    time.Duration
	partial    bool
}

// Mask returns the reachability mask of a node. Zero means the computation
// did not prove the node reachable.
func (r *Result) Mask(id graph.NodeID) Mask {
	return r.masks[id]
}

// LockedMask returns the bitmask of milestones still locked when the
// computation finished. Bit 0 is never set.
func (r *Result) LockedMask() Mask {
	return r.lockedMask
}

// Milestones returns a copy of the milestone ordering the result was
// computed against.
func (r *Result) Milestones() []graph.NodeID {
	return append([]graph.NodeID(nil), r.order...)
}

// IsAccessible reports whether a node is reachable. With filtered set, a
// node is accessible only if none of its required milestones is still
// locked.
//
// The check is the bitwise-subset form: bit 0 must be set, and with
// filtering, no required bit may remain in the locked set. An exact
// equality test against 1 would only be equivalent if the locked mask
// carried bit 0; the subset form states the intended semantics directly
// and keeps bit 0 out of the locked mask entirely.
func (r *Result) IsAccessible(id graph.NodeID, filtered bool) bool {
	m := r.masks[id]
	if m&1 == 0 {
		return false
	}
	return !filtered || m&r.lockedMask == 0
}

// HighestRequired returns the highest-ordered milestone a node's mask
// requires. With filtered set, only still-locked milestones are considered,
// which yields the most advanced gate the user has yet to cross for this
// node. The second return value is false when no milestone qualifies.
func (r *Result) HighestRequired(id graph.NodeID, filtered bool) (graph.NodeID, bool) {
	m := r.masks[id]
	if filtered {
		m &= r.lockedMask
	}
	if m == 0 {
		return 0, false
	}
	// Bit index minus one is the milestone's ordered position; bit 0 maps
	// to -1, meaning no milestone is needed at all.
	pos := bits.Len64(uint64(m)) - 2
	if pos < 0 || pos >= len(r.order) {
		return 0, false
	}
	return r.order[pos], true
}

// Pops returns the number of worklist pops the computation performed.
func (r *Result) Pops() int {
	return r.pops
}

// Elapsed returns the wall-clock duration of the computation.
func (r *Result) Elapsed() time.Duration {
	return r.elapsed
}

// Partial reports whether the computation was halted by the step cap. A
// partial result may leave truly reachable nodes at mask zero; callers
// should treat it as provisional.
func (r *Result) Partial() bool {
	return r.partial
}
