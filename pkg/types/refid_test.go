package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefIDRaw(t *testing.T) {
	id := RefIDFromRaw(0x0300000C)
	assert.Equal(t, ReferenceID{Index: 12, FileIndex: 3}, id)
	assert.Equal(t, uint32(0x0300000C), id.Raw())
	assert.Equal(t, "0300000C", id.String())
	assert.True(t, ReferenceID{}.IsZero())
}

func TestResolveRemapsFileIndex(t *testing.T) {
	got, err := Resolve(ReferenceID{Index: 12, FileIndex: 3}, RemapTable{3: 1})
	require.NoError(t, err)
	assert.Equal(t, ReferenceID{Index: 12, FileIndex: 1}, got)

	_, err = Resolve(ReferenceID{Index: 12, FileIndex: 3}, RemapTable{})
	require.ErrorIs(t, err, ErrUnmappedContentFile)
	assert.True(t, IsKind(err, ErrKindUnmappedContentFile))

	_, err = Resolve(ReferenceID{Index: 12, FileIndex: 3}, nil)
	require.ErrorIs(t, err, ErrUnmappedContentFile)
}

func TestResolveCurrentFileIsIdentity(t *testing.T) {
	id := ReferenceID{Index: 0xABCDEF}
	for _, table := range []RemapTable{nil, {}, {0: 9, 1: 2}} {
		got, err := Resolve(id, table)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestResolveKeepsIndexForEverySlot(t *testing.T) {
	table := RemapTable{}
	for i := 1; i < 256; i++ {
		table[uint8(i)] = uint8(255 - i)
	}
	for i := 1; i < 256; i++ {
		id := ReferenceID{Index: uint32(i) * 0x10101, FileIndex: uint8(i)}
		got, err := Resolve(id, table)
		require.NoError(t, err)
		assert.Equal(t, id.Index, got.Index)
		assert.Equal(t, table[uint8(i)], got.FileIndex)
	}
}

func TestResolveRecord(t *testing.T) {
	door := &Door{
		Meta:            Meta{ID: ReferenceID{Index: 1, FileIndex: 1}},
		Script:          ReferenceID{Index: 2, FileIndex: 1},
		OpenSound:       ReferenceID{Index: 3, FileIndex: 2},
		RandomTeleports: []ReferenceID{{Index: 4, FileIndex: 1}, {Index: 5}},
	}
	err := ResolveRecord(door, RemapTable{1: 7})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnmappedContentFile))
	assert.Equal(t, ReferenceID{Index: 1, FileIndex: 7}, door.ID)
	assert.Equal(t, ReferenceID{Index: 2, FileIndex: 7}, door.Script)
	assert.Equal(t, ReferenceID{Index: 3, FileIndex: 2}, door.OpenSound, "unresolvable fields stay as read")
	assert.Equal(t, []ReferenceID{{Index: 4, FileIndex: 7}, {Index: 5}}, door.RandomTeleports)

	require.NoError(t, ResolveRecord(&Static{Meta: Meta{ID: ReferenceID{Index: 9}}}, nil))
}
