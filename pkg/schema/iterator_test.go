package schema

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/esmkit/internal/buf"
	"github.com/joshuapare/esmkit/internal/format"
	"github.com/joshuapare/esmkit/pkg/types"
)

// sub encodes one subrecord with an explicit declared length.
func sub(tag string, declared int, payload []byte) []byte {
	b := buf.AppendU16LE([]byte(tag), uint16(declared))
	return append(b, payload...)
}

func iter(body []byte) *SubrecordIterator {
	return NewSubrecordIterator(types.RecordHeader{Type: types.TagDoor, Size: uint32(len(body))}, body, false)
}

func TestIteratorYieldsSubrecordsInOrder(t *testing.T) {
	body := append(sub("EDID", 7, []byte("Door01\x00")), sub("FULL", 5, []byte("Gate\x00"))...)
	it := iter(body)

	sr, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, types.NewTag("EDID"), sr.Tag)
	assert.Equal(t, 0, sr.Offset)
	assert.Equal(t, []byte("Door01\x00"), sr.Data)

	sr, err = it.Next()
	require.NoError(t, err)
	assert.Equal(t, types.NewTag("FULL"), sr.Tag)
	assert.Equal(t, 13, sr.Offset)

	_, err = it.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, len(body), it.Consumed())

	_, err = it.Next()
	assert.Equal(t, io.EOF, err, "iterator is single-pass")
}

func TestIteratorNeverReadsPastBody(t *testing.T) {
	// The declared length runs past the body even though the backing array
	// has more bytes after it.
	backing := append(sub("EDID", 20, []byte("short\x00")), bytes.Repeat([]byte{'x'}, 32)...)
	body := backing[:12]
	it := iter(body)

	_, err := it.Next()
	require.ErrorIs(t, err, format.ErrTruncatedSubrecord)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, types.NewTag("EDID"), le.Field)
	assert.LessOrEqual(t, it.Consumed(), len(body))

	_, again := it.Next()
	assert.Equal(t, err, again, "errors are sticky")
}

func TestIteratorTruncatedHeader(t *testing.T) {
	it := iter([]byte("EDI"))
	_, err := it.Next()
	require.ErrorIs(t, err, format.ErrTruncatedSubrecord)
}

func TestIteratorExtendedSize(t *testing.T) {
	big := bytes.Repeat([]byte{0xAB}, 70000)
	w := NewSubrecordWriter(false)
	w.Raw(types.NewTag("EDID"), []byte("x\x00"))
	w.Raw(types.NewTag("BIGD"), big)
	w.Raw(types.NewTag("TAIL"), []byte{1})
	require.NoError(t, w.Err())

	it := iter(w.Bytes())
	_, err := it.Next()
	require.NoError(t, err)

	sr, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, types.NewTag("BIGD"), sr.Tag)
	assert.Len(t, sr.Data, len(big))

	sr, err = it.Next()
	require.NoError(t, err)
	assert.Equal(t, types.NewTag("TAIL"), sr.Tag)
}

func TestIteratorExtendedSizeBadPayload(t *testing.T) {
	it := iter(sub("XXXX", 2, []byte{1, 2}))
	_, err := it.Next()
	require.ErrorIs(t, err, format.ErrTruncatedSubrecord)
}

func TestExpect(t *testing.T) {
	body := sub("FULL", 5, []byte("Gate\x00"))

	_, err := iter(body).Expect(types.NewTag("EDID"))
	require.ErrorIs(t, err, format.ErrMissingField)

	_, err = iter(nil).Expect(types.NewTag("EDID"))
	require.ErrorIs(t, err, format.ErrMissingField)

	sr, err := iter(body).Expect(types.NewTag("FULL"))
	require.NoError(t, err)
	assert.Equal(t, 5, sr.Len())
}

func TestLStringLocalized(t *testing.T) {
	body := sub("FULL", 4, buf.AppendU32LE(nil, 0x1234))
	it := NewSubrecordIterator(types.RecordHeader{Type: types.TagDoor}, body, true)
	sr, err := it.Next()
	require.NoError(t, err)

	ls, err := it.LString(sr)
	require.NoError(t, err)
	assert.Equal(t, types.LString{ID: 0x1234, Localized: true}, ls)
}

func TestFieldReadersRejectShortPayloads(t *testing.T) {
	it := iter(sub("MODB", 2, []byte{1, 2}))
	sr, err := it.Next()
	require.NoError(t, err)

	_, err = it.F32(sr)
	require.ErrorIs(t, err, format.ErrTruncatedSubrecord)
	_, err = it.RefID(sr)
	require.ErrorIs(t, err, format.ErrTruncatedSubrecord)
}
