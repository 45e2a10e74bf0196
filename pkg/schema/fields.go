package schema

import (
	"fmt"

	"github.com/joshuapare/esmkit/internal/buf"
	"github.com/joshuapare/esmkit/internal/format"
	"github.com/joshuapare/esmkit/pkg/types"
)

// need fails unless the payload holds at least n bytes.
func need(it *SubrecordIterator, sr Subrecord, n int) error {
	if len(sr.Data) < n {
		return fieldErr(it, sr, fmt.Errorf("payload is %d bytes, want %d: %w",
			len(sr.Data), n, format.ErrTruncatedSubrecord))
	}
	return nil
}

// ZString decodes a NUL-terminated Windows-1252 payload.
func (it *SubrecordIterator) ZString(sr Subrecord) (string, error) {
	s, err := format.DecodeZString(sr.Data)
	if err != nil {
		return "", fieldErr(it, sr, err)
	}
	return s, nil
}

// LString decodes a FULL/DESC style payload: a string-table id in localized
// files, inline text otherwise.
func (it *SubrecordIterator) LString(sr Subrecord) (types.LString, error) {
	if it.localized {
		if err := need(it, sr, 4); err != nil {
			return types.LString{}, err
		}
		return types.LString{ID: buf.U32LE(sr.Data), Localized: true}, nil
	}
	s, err := it.ZString(sr)
	return types.LString{Text: s}, err
}

// U8 decodes a one-byte payload.
func (it *SubrecordIterator) U8(sr Subrecord) (uint8, error) {
	if err := need(it, sr, 1); err != nil {
		return 0, err
	}
	return sr.Data[0], nil
}

// U32 decodes a four-byte little-endian payload.
func (it *SubrecordIterator) U32(sr Subrecord) (uint32, error) {
	if err := need(it, sr, 4); err != nil {
		return 0, err
	}
	return buf.U32LE(sr.Data), nil
}

// F32 decodes a four-byte float payload.
func (it *SubrecordIterator) F32(sr Subrecord) (float32, error) {
	if err := need(it, sr, 4); err != nil {
		return 0, err
	}
	return buf.F32LE(sr.Data), nil
}

// RefID decodes a reference-id payload. The id is stored exactly as read.
func (it *SubrecordIterator) RefID(sr Subrecord) (types.ReferenceID, error) {
	v, err := it.U32(sr)
	return types.RefIDFromRaw(v), err
}

// SubrecordWriter builds a record body. Errors are sticky: after the first
// failure every call is a no-op and Err reports it.
type SubrecordWriter struct {
	buf       []byte
	localized bool
	err       error
}

// NewSubrecordWriter returns an empty writer. localized selects the
// string-table form of LString fields.
func NewSubrecordWriter(localized bool) *SubrecordWriter {
	return &SubrecordWriter{localized: localized}
}

// Bytes returns the encoded body.
func (w *SubrecordWriter) Bytes() []byte { return w.buf }

// Err returns the first encoding error.
func (w *SubrecordWriter) Err() error { return w.err }

// Localized reports whether LString fields are written as ids.
func (w *SubrecordWriter) Localized() bool { return w.localized }

// Raw appends one subrecord. Payloads above 0xFFFF bytes are preceded by an
// XXXX subrecord carrying the real length.
func (w *SubrecordWriter) Raw(tag types.Tag, data []byte) {
	if w.err != nil {
		return
	}
	if len(data) > format.MaxShortSubrecord {
		w.buf = append(w.buf, format.ExtendedSizeSignature...)
		w.buf = buf.AppendU16LE(w.buf, format.ExtendedSizePayload)
		w.buf = buf.AppendU32LE(w.buf, uint32(len(data)))
		w.buf = append(w.buf, tag[:]...)
		w.buf = buf.AppendU16LE(w.buf, 0)
	} else {
		w.buf = append(w.buf, tag[:]...)
		w.buf = buf.AppendU16LE(w.buf, uint16(len(data)))
	}
	w.buf = append(w.buf, data...)
}

// ZString appends a NUL-terminated Windows-1252 string.
func (w *SubrecordWriter) ZString(tag types.Tag, s string) {
	if w.err != nil {
		return
	}
	b, err := format.EncodeZString(s)
	if err != nil {
		w.err = fmt.Errorf("%s: %w", tag, err)
		return
	}
	w.Raw(tag, b)
}

// LString appends a FULL/DESC style field.
func (w *SubrecordWriter) LString(tag types.Tag, s types.LString) {
	if w.localized {
		w.Raw(tag, buf.AppendU32LE(nil, s.ID))
		return
	}
	w.ZString(tag, s.Text)
}

// U8 appends a one-byte field.
func (w *SubrecordWriter) U8(tag types.Tag, v uint8) { w.Raw(tag, []byte{v}) }

// U32 appends a four-byte field.
func (w *SubrecordWriter) U32(tag types.Tag, v uint32) { w.Raw(tag, buf.AppendU32LE(nil, v)) }

// F32 appends a float field.
func (w *SubrecordWriter) F32(tag types.Tag, v float32) { w.Raw(tag, buf.AppendF32LE(nil, v)) }

// RefID appends a reference-id field.
func (w *SubrecordWriter) RefID(tag types.Tag, id types.ReferenceID) { w.U32(tag, id.Raw()) }

// OptZString appends s unless it is empty.
func (w *SubrecordWriter) OptZString(tag types.Tag, s string) {
	if s != "" {
		w.ZString(tag, s)
	}
}

// OptLString appends s unless it is absent.
func (w *SubrecordWriter) OptLString(tag types.Tag, s types.LString) {
	if !s.IsZero() {
		w.LString(tag, s)
	}
}

// OptF32 appends v unless it is zero.
func (w *SubrecordWriter) OptF32(tag types.Tag, v float32) {
	if v != 0 {
		w.F32(tag, v)
	}
}

// OptRefID appends id unless it is the null reference.
func (w *SubrecordWriter) OptRefID(tag types.Tag, id types.ReferenceID) {
	if !id.IsZero() {
		w.RefID(tag, id)
	}
}
