//go:build unix || windows

package mmap

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAnon(t *testing.T) {
	m, err := MapAnon(4096)
	require.NoError(t, err)
	defer m.Close()

	data := m.Bytes()
	require.Len(t, data, 4096)
	assert.Equal(t, 4096, m.Size())

	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d not zero: %d", i, b)
		}
	}

	data[0], data[4095] = 1, 2
	assert.Equal(t, byte(1), m.Bytes()[0])
	assert.Equal(t, byte(2), m.Bytes()[4095])

	addr := uintptr(unsafe.Pointer(&data[0]))
	assert.Equal(t, uintptr(0), addr%64, "mapping must be at least cache line aligned")

	require.NoError(t, m.Advise(AccessRandom))
	require.NoError(t, m.Advise(AccessSequential))
}

func TestMapAnon_InvalidSize(t *testing.T) {
	_, err := MapAnon(0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = MapAnon(-1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestMapping_AfterClose(t *testing.T) {
	m, err := MapAnon(128)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "Close must be idempotent")

	assert.Nil(t, m.Bytes())
	assert.ErrorIs(t, m.Advise(AccessRandom), ErrClosed)
}
