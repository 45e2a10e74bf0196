package format

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/esmkit/internal/buf"
)

func TestDeflateInflateRoundTrip(t *testing.T) {
	body := bytes.Repeat([]byte("EDID\x05\x00door\x00"), 50)

	packed, err := Deflate(body, zlib.DefaultCompression)
	require.NoError(t, err)
	declared, err := DecompressedSize(packed)
	require.NoError(t, err)
	assert.Equal(t, uint32(len(body)), declared)

	got, err := Inflate(packed, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestInflateReusesScratch(t *testing.T) {
	body := []byte("hello world")
	packed, err := Deflate(body, zlib.BestSpeed)
	require.NoError(t, err)

	scratch := make([]byte, 0, 64)
	got, err := Inflate(packed, 0, scratch)
	require.NoError(t, err)
	assert.Equal(t, body, got)
	assert.Equal(t, &scratch[:1][0], &got[0], "expected inflate into the provided scratch buffer")
}

func TestInflateDeclaredSizeMismatch(t *testing.T) {
	body := []byte("twelve bytes")
	packed, err := Deflate(body, zlib.DefaultCompression)
	require.NoError(t, err)

	longer := append([]byte(nil), packed...)
	buf.PutU32LE(longer, 0, uint32(len(body)+5))
	_, err = Inflate(longer, 0, nil)
	require.ErrorIs(t, err, ErrCorruptCompression)

	shorter := append([]byte(nil), packed...)
	buf.PutU32LE(shorter, 0, uint32(len(body)-2))
	_, err = Inflate(shorter, 0, nil)
	require.ErrorIs(t, err, ErrCorruptCompression)
}

func TestInflateGarbage(t *testing.T) {
	garbage := buf.AppendU32LE(nil, 10)
	garbage = append(garbage, 0xde, 0xad, 0xbe, 0xef)
	_, err := Inflate(garbage, 0, nil)
	require.ErrorIs(t, err, ErrCorruptCompression)

	_, err = Inflate([]byte{1, 2}, 0, nil)
	require.ErrorIs(t, err, ErrCorruptCompression)
}

func TestInflateLimit(t *testing.T) {
	packed, err := Deflate(make([]byte, 100), zlib.DefaultCompression)
	require.NoError(t, err)
	_, err = Inflate(packed, 50, nil)
	require.ErrorIs(t, err, ErrSanityLimit)
}
