package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReset(t *testing.T) {
	rng := NewRNG(42)
	first := rng.Ints(16, 1000)

	rng.Reset()
	second := rng.Ints(16, 1000)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(42), rng.Seed())
	for _, v := range first {
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 1000)
	}
}

func TestRegistry_Lifecycle(t *testing.T) {
	reg := NewRegistry()
	a := reg.New(1)
	assert.Equal(t, 1, reg.Live())

	var b Tracked
	require.NoError(t, b.CopyFrom(&a))
	assert.Equal(t, 2, reg.Live())
	assert.Equal(t, 1, b.ID)

	var c Tracked
	require.NoError(t, c.MoveFrom(&b))
	assert.Equal(t, 2, reg.Live(), "a move transfers ownership")
	assert.False(t, b.Live())
	assert.True(t, c.Live())

	b.Destroy()
	assert.Equal(t, 2, reg.Live(), "destroying a moved-from element releases nothing")
	assert.Equal(t, 0, reg.OverDestroyed())

	c.Destroy()
	a.Destroy()
	assert.Equal(t, 0, reg.Live())
	assert.Equal(t, 2, reg.Destroys())

	a.Destroy()
	assert.Equal(t, 1, reg.OverDestroyed())
}

func TestRegistry_AssignOverLive(t *testing.T) {
	reg := NewRegistry()
	a, b := reg.New(1), reg.New(2)

	require.NoError(t, b.MoveFrom(&a))
	assert.Equal(t, 1, reg.Live(), "the old value of b is released")
	assert.Equal(t, 1, b.ID)
}

func TestRegistry_FailAfter(t *testing.T) {
	reg := NewRegistry()
	src := reg.New(7)

	reg.FailAfter(2)
	var a, b, c Tracked
	require.NoError(t, a.CopyFrom(&src))
	assert.ErrorIs(t, b.CopyFrom(&src), ErrInjected)
	assert.False(t, b.Live(), "a failed copy leaves the target untouched")
	require.NoError(t, c.CopyFrom(&src), "the registry disarms after firing")
	assert.Equal(t, 3, reg.Live())

	reg.FailAfter(1)
	var d Tracked
	assert.ErrorIs(t, reg.Construct(9)(&d), ErrInjected)
	require.NoError(t, reg.Construct(9)(&d))
	assert.Equal(t, 9, d.ID)
}

func TestIDs(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, []int{3, 1, 2}, IDs(reg.Make(3, 1, 2)))
	assert.Empty(t, IDs(nil))
}
