package inplace_test

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/inplace"
	"github.com/hupe1980/inplace/testutil"
)

// assertBalanced checks that every issued element is either held by one of
// vs or accounted for in extra, and that nothing was destroyed twice.
func assertBalanced(t *testing.T, reg *testutil.Registry, extra int, vs ...*inplace.Vector[testutil.Tracked]) {
	t.Helper()
	held := extra
	for _, v := range vs {
		held += v.Len()
	}
	assert.Equal(t, held, reg.Live(), "live elements")
	assert.Equal(t, 0, reg.OverDestroyed(), "over-destroyed elements")
}

func TestTracked_InsertNFailureRestores(t *testing.T) {
	// 3 relocations to open the gap, then 2 copies.
	const ops = 5

	for k := 1; k <= ops+1; k++ {
		reg := testutil.NewRegistry()
		v := newTracked(t, 8, reg.Make(0, 1, 2, 3))
		value := reg.New(9)

		reg.FailAfter(k)
		it, err := v.InsertN(v.CBegin().Next(), 2, value)
		if k <= ops {
			assert.Equal(t, testutil.ErrInjected, err, "k=%d", k)
			assert.Equal(t, []int{0, 1, 2, 3}, testutil.IDs(v.Slice()), "k=%d", k)
		} else {
			require.NoError(t, err)
			assert.Equal(t, 9, it.Get().ID)
			assert.Equal(t, []int{0, 9, 9, 1, 2, 3}, testutil.IDs(v.Slice()))
		}
		assertBalanced(t, reg, 1, v)

		value.Destroy()
		v.Clear()
		assertBalanced(t, reg, 0)
	}
}

func TestTracked_EmplaceFailureRestores(t *testing.T) {
	reg := testutil.NewRegistry()
	v := newTracked(t, 4, reg.Make(0, 1, 2))

	// 3 relocations, then the constructor.
	reg.FailAfter(4)
	_, err := v.Emplace(v.CBegin(), reg.Construct(7))
	assert.Equal(t, testutil.ErrInjected, err)
	assert.Equal(t, []int{0, 1, 2}, testutil.IDs(v.Slice()))
	assertBalanced(t, reg, 0, v)

	it, err := v.Emplace(v.CBegin(), reg.Construct(7))
	require.NoError(t, err)
	assert.Equal(t, 7, it.Ptr().ID)
	assert.Equal(t, []int{7, 0, 1, 2}, testutil.IDs(v.Slice()))
	assertBalanced(t, reg, 0, v)
}

func TestTracked_InsertSeqRetrieveFailureTearsDown(t *testing.T) {
	reg := testutil.NewRegistry()
	mc := &inplace.BasicMetricsCollector{}
	v, err := inplace.Of(6, reg.Make(0, 1, 2)...)
	require.NoError(t, err)
	w := inplace.MustNew[testutil.Tracked](6, inplace.WithMetricsCollector(mc))
	require.NoError(t, w.MoveFrom(v))

	// 2 relocations park the tail, the fourth op is the second move back.
	reg.FailAfter(4)
	_, err = w.InsertSeq(w.CBegin().Next(), slices.Values(reg.Make(7, 8)))
	assert.Equal(t, testutil.ErrInjected, err)
	assert.True(t, w.Empty())
	assertBalanced(t, reg, 0, w)
	assert.Equal(t, int64(1), mc.GetStats().ElementFailures)
}

func TestTracked_InsertSeqSucceeds(t *testing.T) {
	reg := testutil.NewRegistry()
	v := newTracked(t, 6, reg.Make(0, 1, 2))

	_, err := v.InsertSeq(v.CBegin().Next(), slices.Values(reg.Make(7, 8)))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 7, 8, 1, 2}, testutil.IDs(v.Slice()))
	assertBalanced(t, reg, 0, v)

	_, err = v.InsertSeq(v.CBegin(), slices.Values(reg.Make(5, 6)))
	assert.ErrorIs(t, err, inplace.ErrCapacityExceeded)
	assert.Equal(t, []int{0, 7, 8, 1, 2}, testutil.IDs(v.Slice()))
	// The element that fit was destroyed; the one rejected is still owned
	// by the caller.
	assertBalanced(t, reg, 1, v)
}

func TestTracked_AppendSliceFailureRestores(t *testing.T) {
	reg := testutil.NewRegistry()
	v := newTracked(t, 8, reg.Make(0, 1))
	src := reg.Make(5, 6, 7)

	reg.FailAfter(2)
	err := v.AppendSlice(src)
	assert.Equal(t, testutil.ErrInjected, err)
	assert.Equal(t, []int{0, 1}, testutil.IDs(v.Slice()))
	assertBalanced(t, reg, len(src), v)

	require.NoError(t, v.AppendSlice(src))
	assert.Equal(t, []int{0, 1, 5, 6, 7}, testutil.IDs(v.Slice()))
	assertBalanced(t, reg, len(src), v)
}

func TestTracked_ResizeWithFailureRestores(t *testing.T) {
	reg := testutil.NewRegistry()
	v := newTracked(t, 8, reg.Make(0))
	value := reg.New(3)

	reg.FailAfter(3)
	assert.Equal(t, testutil.ErrInjected, v.ResizeWith(5, value))
	assert.Equal(t, 1, v.Len())
	assertBalanced(t, reg, 1, v)

	require.NoError(t, v.ResizeWith(3, value))
	assert.Equal(t, []int{0, 3, 3}, testutil.IDs(v.Slice()))
	require.NoError(t, v.ResizeWith(1, value))
	assertBalanced(t, reg, 1, v)
}

func TestTracked_CloneFailure(t *testing.T) {
	reg := testutil.NewRegistry()
	v := newTracked(t, 4, reg.Make(0, 1, 2))

	reg.FailAfter(3)
	c, err := v.Clone()
	assert.Nil(t, c)
	assert.Equal(t, testutil.ErrInjected, err)
	assertBalanced(t, reg, 0, v)
	assert.Equal(t, 2, reg.Destroys(), "exactly the two finished copies are destroyed")

	c, err = v.Clone()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, testutil.IDs(c.Slice()))
	assertBalanced(t, reg, 0, v, c)

	require.NoError(t, c.Close())
	assertBalanced(t, reg, 0, v)
}

func TestTracked_AssignAndCopy(t *testing.T) {
	reg := testutil.NewRegistry()
	v := newTracked(t, 5, reg.Make(0, 1, 2))
	value := reg.New(4)

	require.NoError(t, v.Assign(4, value))
	assert.Equal(t, []int{4, 4, 4, 4}, testutil.IDs(v.Slice()))
	assertBalanced(t, reg, 1, v)

	src := newTracked(t, 3, reg.Make(7, 8))
	require.NoError(t, v.CopyFrom(src))
	assert.Equal(t, []int{7, 8}, testutil.IDs(v.Slice()))
	assertBalanced(t, reg, 1, v, src)

	require.NoError(t, v.AssignIterators(src.CBegin(), src.CBegin().Next()))
	assert.Equal(t, []int{7}, testutil.IDs(v.Slice()))
	assertBalanced(t, reg, 1, v, src)

	require.NoError(t, v.AssignSeq(slices.Values(reg.Make(1, 2, 3))))
	assert.Equal(t, []int{1, 2, 3}, testutil.IDs(v.Slice()))
	assertBalanced(t, reg, 1, v, src)

	require.NoError(t, src.MoveFrom(v))
	assert.True(t, v.Empty())
	assert.Equal(t, []int{1, 2, 3}, testutil.IDs(src.Slice()))
	assertBalanced(t, reg, 1, v, src)
}

func TestTracked_AssignFromOwnElements(t *testing.T) {
	reg := testutil.NewRegistry()
	v := newTracked(t, 5, reg.Make(0, 1, 2, 3))

	require.NoError(t, v.AssignSlice(v.Slice()[1:]))
	assert.Equal(t, []int{1, 2, 3}, testutil.IDs(v.Slice()))
	assertBalanced(t, reg, 0, v)

	require.NoError(t, v.AssignSlice(v.Slice()[:1]))
	assert.Equal(t, []int{1}, testutil.IDs(v.Slice()))
	assert.Equal(t, 3, reg.Destroys())
	assertBalanced(t, reg, 0, v)

	require.NoError(t, v.Close())
	assertBalanced(t, reg, 0)
}

func TestTracked_AssignFailureIsBasic(t *testing.T) {
	reg := testutil.NewRegistry()
	v := newTracked(t, 5, reg.Make(0, 1, 2))
	src := reg.Make(5, 6, 7, 8)

	reg.FailAfter(4)
	assert.Equal(t, testutil.ErrInjected, v.AssignSlice(src))
	assertBalanced(t, reg, len(src), v)

	v.Clear()
	assertBalanced(t, reg, len(src))
}

func TestTracked_EmplaceTeardownIsReported(t *testing.T) {
	var buf bytes.Buffer
	logger := inplace.NewLogger(slog.NewTextHandler(&buf, nil))
	mc := &inplace.BasicMetricsCollector{}

	reg := testutil.NewRegistry()
	v, err := inplace.New[testutil.Tracked](6, inplace.WithLogger(logger), inplace.WithMetricsCollector(mc))
	require.NoError(t, err)
	for _, e := range reg.Make(0, 1, 2) {
		v.UncheckedPushBack(e)
	}

	// The constructor fails and the first move back out of the attic too.
	_, err = v.Emplace(v.CBegin().Next(), func(*testutil.Tracked) error {
		reg.FailAfter(1)
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, err, testutil.ErrInjected)
	assert.True(t, v.Empty())
	assertBalanced(t, reg, 0, v)

	assert.Contains(t, buf.String(), "vector torn down")
	assert.Contains(t, buf.String(), "destroyed=3")
	assert.Equal(t, int64(1), mc.GetStats().ElementFailures)
}

func TestTracked_EraseAndSwap(t *testing.T) {
	reg := testutil.NewRegistry()
	a := newTracked(t, 5, reg.Make(1, 2, 3))
	b := newTracked(t, 5, reg.Make(4, 5))

	require.NoError(t, a.Swap(b))
	assert.Equal(t, []int{4, 5}, testutil.IDs(a.Slice()))
	assert.Equal(t, []int{1, 2, 3}, testutil.IDs(b.Slice()))
	assertBalanced(t, reg, 0, a, b)

	require.NoError(t, a.Swap(b))
	assert.Equal(t, []int{1, 2, 3}, testutil.IDs(a.Slice()))
	assert.Equal(t, []int{4, 5}, testutil.IDs(b.Slice()))
	assertBalanced(t, reg, 0, a, b)

	_, err := a.Erase(a.CBegin())
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, testutil.IDs(a.Slice()))
	assertBalanced(t, reg, 0, a, b)

	n, err := inplace.EraseFunc(b, func(e testutil.Tracked) bool { return e.ID == 5 })
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assertBalanced(t, reg, 0, a, b)

	a.PopBack()
	assertBalanced(t, reg, 0, a, b)
	require.NoError(t, a.Close())
	require.NoError(t, b.Close())
	assert.Equal(t, 0, reg.Live())
	assert.Equal(t, 0, reg.OverDestroyed())
}

func TestTracked_EraseFailureIsBasic(t *testing.T) {
	reg := testutil.NewRegistry()
	v := newTracked(t, 6, reg.Make(0, 1, 2, 3, 4))

	reg.FailAfter(2)
	_, err := v.Erase(v.CBegin())
	assert.Equal(t, testutil.ErrInjected, err)
	assert.Equal(t, 5, v.Len())

	v.Clear()
	assert.Equal(t, 0, reg.Live())
	assert.Equal(t, 0, reg.OverDestroyed())
}

var errBoom = errors.New("boom")
