package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3, 4, 5}, 100)

	b, err := c.Peek(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)
	assert.Equal(t, 0, c.Pos())

	b, err = c.Read(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)
	assert.Equal(t, int64(103), c.Offset())
	assert.Equal(t, 2, c.Remaining())

	_, err = c.Read(3)
	require.ErrorIs(t, err, ErrTruncated)
	assert.Equal(t, 3, c.Pos(), "failed read must not move the cursor")

	require.NoError(t, c.Skip(2))
	assert.True(t, c.AtEnd())
	require.ErrorIs(t, c.Skip(1), ErrTruncated)

	require.NoError(t, c.Seek(1))
	assert.Equal(t, 1, c.Pos())
	require.ErrorIs(t, c.Seek(6), ErrTruncated)

	c.Reset([]byte{9}, 0)
	assert.Equal(t, 0, c.Pos())
	assert.Equal(t, 1, c.Len())
}
