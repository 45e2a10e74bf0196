package schema

import (
	"bytes"
	"fmt"
	"io"

	"github.com/joshuapare/esmkit/internal/buf"
	"github.com/joshuapare/esmkit/internal/format"
	"github.com/joshuapare/esmkit/pkg/types"
)

// Subrecord is one tagged chunk of a record body. Data aliases the body
// buffer and is only valid while the record is being loaded.
type Subrecord struct {
	Tag    types.Tag
	Offset int // offset of the subrecord header within the body
	Data   []byte
}

// Len returns the payload length.
func (s Subrecord) Len() int { return len(s.Data) }

// SubrecordIterator walks the subrecords of one record body. It is
// single-pass: once Next has returned io.EOF or an error it keeps
// returning it.
type SubrecordIterator struct {
	hdr       types.RecordHeader
	body      []byte
	pos       int
	localized bool
	err       error
}

// NewSubrecordIterator returns an iterator over body, the (decompressed)
// payload of the record described by h. localized reports whether the
// owning file stores FULL/DESC as string-table ids.
func NewSubrecordIterator(h types.RecordHeader, body []byte, localized bool) *SubrecordIterator {
	return &SubrecordIterator{hdr: h, body: body, localized: localized}
}

// Header returns the header of the record being iterated.
func (it *SubrecordIterator) Header() types.RecordHeader { return it.hdr }

// Localized reports whether string fields are string-table ids.
func (it *SubrecordIterator) Localized() bool { return it.localized }

// Consumed returns how many body bytes have been read so far.
func (it *SubrecordIterator) Consumed() int { return it.pos }

// Len returns the body length.
func (it *SubrecordIterator) Len() int { return len(it.body) }

// Next returns the next subrecord, or io.EOF at the end of the body. A
// subrecord whose declared length crosses the body end fails with
// format.ErrTruncatedSubrecord.
//
// An XXXX subrecord is consumed transparently: its u32 payload replaces the
// u16 length of the subrecord that follows it.
func (it *SubrecordIterator) Next() (Subrecord, error) {
	if it.err != nil {
		return Subrecord{}, it.err
	}
	sr, err := it.next()
	if err != nil {
		it.err = err
		return Subrecord{}, err
	}
	return sr, nil
}

func (it *SubrecordIterator) next() (Subrecord, error) {
	if it.pos >= len(it.body) {
		return Subrecord{}, io.EOF
	}
	start := it.pos
	tag, length, err := it.readHeader()
	if err != nil {
		return Subrecord{}, err
	}
	if bytes.Equal(tag[:], format.ExtendedSizeSignature) {
		if length != format.ExtendedSizePayload {
			return Subrecord{}, it.truncated(start, tag, "XXXX payload is %d bytes, want 4", length)
		}
		data, err := it.payload(start, tag, length)
		if err != nil {
			return Subrecord{}, err
		}
		extended := int(buf.U32LE(data))
		start = it.pos
		if tag, _, err = it.readHeader(); err != nil {
			return Subrecord{}, err
		}
		length = extended
	}
	data, err := it.payload(start, tag, length)
	if err != nil {
		return Subrecord{}, err
	}
	return Subrecord{Tag: tag, Offset: start, Data: data}, nil
}

func (it *SubrecordIterator) readHeader() (types.Tag, int, error) {
	var tag types.Tag
	head, ok := buf.Slice(it.body, it.pos, format.SubrecordHeaderSize)
	if !ok {
		return tag, 0, it.truncated(it.pos, tag, "%d bytes left, subrecord header needs %d",
			len(it.body)-it.pos, format.SubrecordHeaderSize)
	}
	copy(tag[:], head[:format.SignatureSize])
	it.pos += format.SubrecordHeaderSize
	return tag, int(buf.U16LE(head[format.SignatureSize:])), nil
}

func (it *SubrecordIterator) payload(start int, tag types.Tag, length int) ([]byte, error) {
	data, ok := buf.Slice(it.body, it.pos, length)
	if !ok {
		return nil, it.truncated(start, tag, "declares %d bytes, %d left", length, len(it.body)-it.pos)
	}
	it.pos += length
	return data, nil
}

func (it *SubrecordIterator) truncated(off int, tag types.Tag, msg string, args ...any) error {
	return &LoadError{
		Record: it.hdr.Type,
		Field:  tag,
		Offset: off,
		Err:    fmt.Errorf(msg+": %w", append(args, format.ErrTruncatedSubrecord)...),
	}
}

// Expect returns the next subrecord and fails with format.ErrMissingField
// unless it carries tag. It implements the ordered-required grammar: a
// loader calls Expect for each member of its required prefix in order.
func (it *SubrecordIterator) Expect(tag types.Tag) (Subrecord, error) {
	start := it.pos
	sr, err := it.Next()
	if err == io.EOF {
		return Subrecord{}, it.missing(start, tag, "record ended")
	}
	if err != nil {
		return Subrecord{}, err
	}
	if sr.Tag != tag {
		return Subrecord{}, it.missing(sr.Offset, tag, "found "+sr.Tag.String())
	}
	return sr, nil
}

func (it *SubrecordIterator) missing(off int, tag types.Tag, detail string) error {
	err := &LoadError{
		Record: it.hdr.Type,
		Field:  tag,
		Offset: off,
		Err:    fmt.Errorf("%s: %w", detail, format.ErrMissingField),
	}
	it.err = err
	return err
}

// LoadError locates a subrecord-level failure inside a record body.
type LoadError struct {
	Record types.Tag
	Field  types.Tag
	Offset int // offset within the (decompressed) body
	Err    error
}

func (e *LoadError) Error() string {
	if e.Field.IsZero() {
		return fmt.Sprintf("%s +0x%X: %v", e.Record, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s.%s +0x%X: %v", e.Record, e.Field, e.Offset, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// fieldErr wraps a payload decoding problem for one subrecord.
func fieldErr(it *SubrecordIterator, sr Subrecord, err error) error {
	return &LoadError{Record: it.hdr.Type, Field: sr.Tag, Offset: sr.Offset, Err: err}
}
