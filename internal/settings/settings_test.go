package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/graph"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build(context.Background(), &config.Model{
		Objects: []*config.Object{
			{Name: "automation"},
			{Name: "logistics"},
			{Name: "chemistry"},
		},
	})
	require.NoError(t, err)
	return g
}

func TestSetMilestones(t *testing.T) {
	g := testGraph(t)

	t.Run("valid ordering", func(t *testing.T) {
		s := New(g)
		require.NoError(t, s.SetMilestones([]graph.NodeID{1, 0}))
		assert.Equal(t, []graph.NodeID{1, 0}, s.Milestones())
	})

	t.Run("ordering is copied", func(t *testing.T) {
		s := New(g)
		ids := []graph.NodeID{0, 1}
		require.NoError(t, s.SetMilestones(ids))
		ids[0] = 2
		assert.Equal(t, []graph.NodeID{0, 1}, s.Milestones())
	})

	t.Run("unknown node rejected", func(t *testing.T) {
		s := New(g)
		assert.ErrorContains(t, s.SetMilestones([]graph.NodeID{99}), "does not reference a graph object")
		assert.ErrorContains(t, s.SetMilestones([]graph.NodeID{-1}), "does not reference a graph object")
		assert.Empty(t, s.Milestones())
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		s := New(g)
		assert.ErrorContains(t, s.SetMilestones([]graph.NodeID{0, 0}), "duplicate milestone")
	})
}

func TestUnlockedFlags(t *testing.T) {
	g := testGraph(t)
	s := New(g)

	assert.False(t, s.Unlocked(0))
	require.NoError(t, s.SetUnlocked(0, true))
	assert.True(t, s.Unlocked(0))
	require.NoError(t, s.SetUnlocked(0, false))
	assert.False(t, s.Unlocked(0))

	assert.ErrorContains(t, s.SetUnlocked(42, true), "does not reference a graph object")
}

func TestSubscribe(t *testing.T) {
	g := testGraph(t)

	t.Run("substantive changes notify", func(t *testing.T) {
		s := New(g)
		var events []bool
		s.Subscribe(func(visualOnly bool) { events = append(events, visualOnly) })

		require.NoError(t, s.SetMilestones([]graph.NodeID{0}))
		require.NoError(t, s.SetUnlocked(0, true))
		assert.Equal(t, []bool{false, false}, events)
	})

	t.Run("visual-only notification carries its flag", func(t *testing.T) {
		s := New(g)
		var events []bool
		s.Subscribe(func(visualOnly bool) { events = append(events, visualOnly) })

		s.Notify(true)
		assert.Equal(t, []bool{true}, events)
	})

	t.Run("cancel stops delivery", func(t *testing.T) {
		s := New(g)
		count := 0
		cancel := s.Subscribe(func(bool) { count++ })

		s.Notify(false)
		cancel()
		s.Notify(false)
		assert.Equal(t, 1, count)
	})

	t.Run("multiple subscribers", func(t *testing.T) {
		s := New(g)
		a, b := 0, 0
		s.Subscribe(func(bool) { a++ })
		s.Subscribe(func(bool) { b++ })

		s.Notify(false)
		assert.Equal(t, 1, a)
		assert.Equal(t, 1, b)
	})
}

func TestFromConfig(t *testing.T) {
	g := testGraph(t)

	t.Run("nil block yields empty settings", func(t *testing.T) {
		s, err := FromConfig(g, nil)
		require.NoError(t, err)
		assert.Empty(t, s.Milestones())
	})

	t.Run("order and unlocked applied", func(t *testing.T) {
		s, err := FromConfig(g, &config.Milestones{
			Order:    []string{"logistics", "automation"},
			Unlocked: []string{"logistics"},
		})
		require.NoError(t, err)

		logistics, _ := g.NodeByName("logistics")
		automation, _ := g.NodeByName("automation")
		assert.Equal(t, []graph.NodeID{logistics, automation}, s.Milestones())
		assert.True(t, s.Unlocked(logistics))
		assert.False(t, s.Unlocked(automation))
	})

	t.Run("unknown milestone name", func(t *testing.T) {
		_, err := FromConfig(g, &config.Milestones{Order: []string{"nope"}})
		assert.ErrorContains(t, err, `milestone "nope" is not a declared object`)
	})

	t.Run("unknown unlocked name", func(t *testing.T) {
		_, err := FromConfig(g, &config.Milestones{
			Order:    []string{"automation"},
			Unlocked: []string{"nope"},
		})
		assert.ErrorContains(t, err, `unlocked milestone "nope" is not a declared object`)
	})
}
