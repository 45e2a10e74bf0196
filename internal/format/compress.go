package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/joshuapare/esmkit/internal/buf"
)

// DecompressedSize returns the declared inflated length of a compressed body.
func DecompressedSize(body []byte) (uint32, error) {
	if len(body) < CompressedPrefixSize {
		return 0, fmt.Errorf("compressed body: %w (have %d bytes)", ErrTruncated, len(body))
	}
	return buf.U32LE(body), nil
}

// Inflate decompresses a compressed record body (u32 declared length
// followed by a zlib stream) into scratch, growing it when needed, and
// returns the filled slice. The stream must produce exactly the declared
// number of bytes. limit caps the declared length.
func Inflate(body []byte, limit uint32, scratch []byte) ([]byte, error) {
	want, err := DecompressedSize(body)
	if err != nil {
		return scratch[:0], fmt.Errorf("%w: %w", ErrCorruptCompression, err)
	}
	if limit > 0 && want > limit {
		return scratch[:0], fmt.Errorf("compressed body declares %d bytes (limit %d): %w", want, limit, ErrSanityLimit)
	}

	zr, err := zlib.NewReader(bytes.NewReader(body[CompressedPrefixSize:]))
	if err != nil {
		return scratch[:0], fmt.Errorf("%w: %w", ErrCorruptCompression, err)
	}
	defer zr.Close()

	if cap(scratch) < int(want) {
		scratch = make([]byte, want)
	}
	out := scratch[:want]
	if n, err := io.ReadFull(zr, out); err != nil {
		return out[:0], fmt.Errorf("%w: inflated %d of %d declared bytes: %w", ErrCorruptCompression, n, want, err)
	}

	// Reading past the declared length must hit EOF; this is also where
	// the adler32 trailer gets verified.
	var probe [1]byte
	if n, err := zr.Read(probe[:]); n > 0 {
		return out[:0], fmt.Errorf("%w: stream longer than declared %d bytes", ErrCorruptCompression, want)
	} else if err != nil && err != io.EOF {
		return out[:0], fmt.Errorf("%w: %w", ErrCorruptCompression, err)
	}
	return out, nil
}

// Deflate compresses body into the on-disk compressed form: u32 length
// followed by a zlib stream at the given level.
func Deflate(body []byte, level int) ([]byte, error) {
	var b bytes.Buffer
	b.Write(buf.AppendU32LE(nil, uint32(len(body))))
	zw, err := zlib.NewWriterLevel(&b, level)
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if _, err := zw.Write(body); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	return b.Bytes(), nil
}
