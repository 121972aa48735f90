package milestone

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/vk/techgridgo/internal/ctxlog"
	"github.com/vk/techgridgo/internal/graph"
	"github.com/vk/techgridgo/internal/settings"
)

// Mask is a per-node reachability bitmask. Bit 0 is the root-accessible
// marker; bit i+1 belongs to the milestone at ordered position i. A zero
// mask means the node has not been proven reachable.
type Mask uint64

const (
	// MaxMilestones is the number of milestone bits a Mask can carry.
	// Bit 0 is reserved for the root-accessible marker.
	MaxMilestones = 63

	// DefaultStepCap bounds the total number of worklist pops in one
	// computation. It guards against dependency cycles the upstream graph
	// is expected, but not guaranteed, to be free of.
	DefaultStepCap = 1_000_000

	// DefaultTag marks the objects promoted to milestones when the project
	// declares no ordering of its own.
	DefaultTag = "progression"
)

// ErrNoMilestones is returned when the project declares no milestone
// ordering and no object carries the default progression tag. The engine
// never runs with zero milestones.
var ErrNoMilestones = errors.New("no milestones configured and no progression-tagged objects to default to")

// ErrTooManyMilestones is returned when the ordering exceeds the mask width.
var ErrTooManyMilestones = errors.New("too many milestones for the reachability mask width")

// Engine owns the milestone computation for one project. It is constructed
// explicitly and passed by reference to consumers; there is no global
// instance. Recomputations are serialized, and the published Result is
// replaced wholesale, so readers never observe a partial mapping.
type Engine struct {
	graph    *graph.Graph
	settings *settings.Settings
	stepCap  int

	mu     sync.Mutex // serializes Compute runs
	result atomic.Pointer[Result]
	cancel func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithStepCap overrides the default worklist pop cap. Non-positive values
// are ignored.
func WithStepCap(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.stepCap = n
		}
	}
}

// New creates an engine over the given graph and settings.
func New(g *graph.Graph, s *settings.Settings, opts ...Option) *Engine {
	e := &Engine{
		graph:    g,
		settings: s,
		stepCap:  DefaultStepCap,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result returns the most recently published result, or nil before the
// first computation completes.
func (e *Engine) Result() *Result {
	return e.result.Load()
}

// Watch subscribes the engine to settings changes: every substantive change
// triggers a full recomputation, while visual-only edits are ignored.
// Close cancels the subscription.
func (e *Engine) Watch(ctx context.Context) {
	e.cancel = e.settings.Subscribe(func(visualOnly bool) {
		if visualOnly {
			return
		}
		if _, err := e.Compute(ctx); err != nil {
			ctxlog.FromContext(ctx).Error("Milestone recomputation failed.", "error", err)
		}
	})
}

// Close cancels the settings subscription registered by Watch.
func (e *Engine) Close() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}
