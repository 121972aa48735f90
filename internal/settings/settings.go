package settings

import (
	"fmt"
	"sync"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/graph"
)

// Settings is the mutable project configuration. All methods are safe for
// concurrent use; change callbacks run outside the internal lock.
type Settings struct {
	graph *graph.Graph

	mu       sync.Mutex
	order    []graph.NodeID
	unlocked map[graph.NodeID]bool
	subs     map[int]func(visualOnly bool)
	nextSub  int
}

// New creates empty settings bound to a graph. Node references are validated
// against the graph at assignment time.
func New(g *graph.Graph) *Settings {
	return &Settings{
		graph:    g,
		unlocked: make(map[graph.NodeID]bool),
		subs:     make(map[int]func(visualOnly bool)),
	}
}

// FromConfig creates settings from a project's milestone block. Unknown
// object names are rejected here, before they can enter a computation.
// A nil block yields empty settings.
func FromConfig(g *graph.Graph, m *config.Milestones) (*Settings, error) {
	s := New(g)
	if m == nil {
		return s, nil
	}

	order := make([]graph.NodeID, 0, len(m.Order))
	for _, name := range m.Order {
		id, ok := g.NodeByName(name)
		if !ok {
			return nil, fmt.Errorf("milestone %q is not a declared object", name)
		}
		order = append(order, id)
	}
	if err := s.SetMilestones(order); err != nil {
		return nil, err
	}

	for _, name := range m.Unlocked {
		id, ok := g.NodeByName(name)
		if !ok {
			return nil, fmt.Errorf("unlocked milestone %q is not a declared object", name)
		}
		if err := s.SetUnlocked(id, true); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SetMilestones replaces the milestone ordering. Every id must reference a
// node of the bound graph; duplicates are rejected. Subscribers are notified
// of a substantive change.
func (s *Settings) SetMilestones(ids []graph.NodeID) error {
	seen := make(map[graph.NodeID]struct{}, len(ids))
	for _, id := range ids {
		if !s.graph.Contains(id) {
			return fmt.Errorf("milestone id %d does not reference a graph object", id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate milestone %q", s.graph.Name(id))
		}
		seen[id] = struct{}{}
	}

	s.mu.Lock()
	s.order = append([]graph.NodeID(nil), ids...)
	s.mu.Unlock()

	s.Notify(false)
	return nil
}

// Milestones returns a copy of the current milestone ordering.
func (s *Settings) Milestones() []graph.NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]graph.NodeID(nil), s.order...)
}

// SetUnlocked records whether the user has crossed the given object's gate.
// Subscribers are notified of a substantive change.
func (s *Settings) SetUnlocked(id graph.NodeID, unlocked bool) error {
	if !s.graph.Contains(id) {
		return fmt.Errorf("unlocked flag id %d does not reference a graph object", id)
	}

	s.mu.Lock()
	if unlocked {
		s.unlocked[id] = true
	} else {
		delete(s.unlocked, id)
	}
	s.mu.Unlock()

	s.Notify(false)
	return nil
}

// Unlocked reports whether the given object's gate has been crossed.
func (s *Settings) Unlocked(id graph.NodeID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked[id]
}

// Subscribe registers a change callback and returns its cancel function.
// The visualOnly argument distinguishes cosmetic edits from substantive ones.
func (s *Settings) Subscribe(fn func(visualOnly bool)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Notify publishes a change event to every subscriber. Mutating methods call
// it with visualOnly=false; callers may invoke it directly for cosmetic
// edits that do not touch milestone data.
func (s *Settings) Notify(visualOnly bool) {
	s.mu.Lock()
	fns := make([]func(visualOnly bool), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(visualOnly)
	}
}
