// Package testutil builds content-file fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/joshuapare/esmkit/internal/buf"
	"github.com/joshuapare/esmkit/internal/format"
	"github.com/joshuapare/esmkit/pkg/types"
)

// File assembles a content file byte by byte. Group sizes are patched when
// the group is closed.
type File struct {
	hdr    int
	buf    []byte
	groups []int
}

// NewFile returns an empty file using hdrSize-byte record and group headers.
func NewFile(hdrSize int) *File {
	return &File{hdr: hdrSize}
}

// NewPlugin returns a file that already holds a minimal TES4 header record
// with the given flags.
func NewPlugin(hdrSize int, flags types.RecordFlags) *File {
	f := NewFile(hdrSize)
	return f.Record("TES4", flags, 0, FileHeaderBody(1.0, 0))
}

// HeaderSize returns the header size in use.
func (f *File) HeaderSize() int { return f.hdr }

// Len returns the number of bytes written so far.
func (f *File) Len() int { return len(f.buf) }

// Record appends a record whose declared size is len(body).
func (f *File) Record(tag string, flags types.RecordFlags, id uint32, body []byte) *File {
	return f.RecordSized(tag, flags, id, uint32(len(body)), body)
}

// RecordSized appends a record declaring size bytes regardless of how long
// body really is.
func (f *File) RecordSized(tag string, flags types.RecordFlags, id uint32, size uint32, body []byte) *File {
	h := types.RecordHeader{
		Type:  types.NewTag(tag),
		Size:  size,
		Flags: flags,
		ID:    types.RefIDFromRaw(id),
	}
	f.buf = format.AppendRecordHeader(f.buf, h, f.hdr)
	f.buf = append(f.buf, body...)
	return f
}

// Compressed appends a record whose body is stored zlib-compressed.
func (f *File) Compressed(tag string, flags types.RecordFlags, id uint32, body []byte) *File {
	return f.Record(tag, flags|types.FlagCompressed, id, Deflate(body))
}

// BeginGroup opens a group. Its size is written by EndGroup.
func (f *File) BeginGroup(label [4]byte, typ types.GroupType) *File {
	f.groups = append(f.groups, len(f.buf))
	f.buf = format.AppendGroupHeader(f.buf, types.GroupHeader{Label: label, Type: typ}, f.hdr)
	return f
}

// BeginTop opens a top-level group for records of tag.
func (f *File) BeginTop(tag string) *File {
	return f.BeginGroup(types.NewTag(tag), types.GroupTop)
}

// EndGroup closes the innermost group and patches its size.
func (f *File) EndGroup() *File {
	n := len(f.groups) - 1
	start := f.groups[n]
	f.groups = f.groups[:n]
	buf.PutU32LE(f.buf, start+format.GrpSizeOffset, uint32(len(f.buf)-start))
	return f
}

// Raw appends bytes as they are.
func (f *File) Raw(b []byte) *File {
	f.buf = append(f.buf, b...)
	return f
}

// Bytes returns the file contents. Open groups are left as written.
func (f *File) Bytes() []byte { return f.buf }

// WriteTemp writes the file into a test temp dir and returns its path.
func (f *File) WriteTemp(t testing.TB, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, f.buf, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// Sub encodes one subrecord.
func Sub(tag string, payload []byte) []byte {
	b := buf.AppendU16LE([]byte(tag), uint16(len(payload)))
	return append(b, payload...)
}

// ZSub encodes a NUL-terminated string subrecord.
func ZSub(tag, s string) []byte {
	return Sub(tag, append([]byte(s), 0))
}

// U32Sub encodes a four-byte subrecord.
func U32Sub(tag string, v uint32) []byte {
	return Sub(tag, buf.AppendU32LE(nil, v))
}

// Body concatenates subrecords.
func Body(subs ...[]byte) []byte {
	var out []byte
	for _, s := range subs {
		out = append(out, s...)
	}
	return out
}

// FileHeaderBody returns a TES4 body with a HEDR and an author.
func FileHeaderBody(version float32, records int32, masters ...string) []byte {
	hedr := buf.AppendF32LE(nil, version)
	hedr = buf.AppendU32LE(hedr, uint32(records))
	hedr = buf.AppendU32LE(hedr, 0x800)
	subs := [][]byte{Sub("HEDR", hedr), ZSub("CNAM", "esmkit")}
	for _, m := range masters {
		subs = append(subs, ZSub("MAST", m), Sub("DATA", buf.AppendU64LE(nil, 0)))
	}
	return Body(subs...)
}

// DoorBody returns a DOOR body with an editor id and a display name.
func DoorBody(editorID, name string) []byte {
	return Body(ZSub("EDID", editorID), ZSub("FULL", name))
}

// Deflate returns body in the stored compressed form.
func Deflate(body []byte) []byte {
	out, err := format.Deflate(body, zlib.BestCompression)
	if err != nil {
		panic(err) // writing to memory cannot fail
	}
	return out
}
