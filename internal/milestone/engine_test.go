package milestone

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_ResultNilBeforeFirstCompute(t *testing.T) {
	g, s := buildProject(t, scenarioModel())
	engine := New(g, s)
	assert.Nil(t, engine.Result())
}

func TestEngine_PublishesResultWholesale(t *testing.T) {
	g, s := buildProject(t, scenarioModel())
	engine := New(g, s)

	first, err := engine.Compute(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, engine.Result())

	second, err := engine.Compute(context.Background())
	require.NoError(t, err)
	assert.Same(t, second, engine.Result())
	assert.NotSame(t, first, second)
}

func TestEngine_WatchRecomputesOnSubstantiveChange(t *testing.T) {
	g, s := buildProject(t, scenarioModel())
	engine := New(g, s)

	ctx := context.Background()
	engine.Watch(ctx)
	defer engine.Close()

	before, err := engine.Compute(ctx)
	require.NoError(t, err)
	assert.Equal(t, Mask(0b110), before.LockedMask())

	// Unlocking a milestone is a substantive change: the subscription must
	// trigger a fresh computation with an updated locked mask.
	require.NoError(t, s.SetUnlocked(mustID(t, g, "m1"), true))

	after := engine.Result()
	require.NotNil(t, after)
	assert.NotSame(t, before, after)
	assert.Equal(t, Mask(0b100), after.LockedMask())
}

func TestEngine_WatchIgnoresVisualOnlyChanges(t *testing.T) {
	g, s := buildProject(t, scenarioModel())
	engine := New(g, s)

	ctx := context.Background()
	engine.Watch(ctx)
	defer engine.Close()

	before, err := engine.Compute(ctx)
	require.NoError(t, err)

	s.Notify(true)
	assert.Same(t, before, engine.Result())
}

func TestEngine_CloseCancelsSubscription(t *testing.T) {
	g, s := buildProject(t, scenarioModel())
	engine := New(g, s)

	ctx := context.Background()
	engine.Watch(ctx)

	before, err := engine.Compute(ctx)
	require.NoError(t, err)

	engine.Close()
	require.NoError(t, s.SetUnlocked(mustID(t, g, "m1"), true))
	assert.Same(t, before, engine.Result())
}

func TestWithStepCap(t *testing.T) {
	g, s := buildProject(t, scenarioModel())

	t.Run("positive cap applies", func(t *testing.T) {
		engine := New(g, s, WithStepCap(7))
		assert.Equal(t, 7, engine.stepCap)
	})

	t.Run("non-positive cap keeps default", func(t *testing.T) {
		engine := New(g, s, WithStepCap(0))
		assert.Equal(t, DefaultStepCap, engine.stepCap)
	})
}
