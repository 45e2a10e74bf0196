package writer

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zlib"

	"github.com/joshuapare/esmkit/internal/buf"
	"github.com/joshuapare/esmkit/internal/format"
	"github.com/joshuapare/esmkit/pkg/schema"
	"github.com/joshuapare/esmkit/pkg/types"
)

// ErrOpenGroup is returned when a file is finished with groups still open.
var ErrOpenGroup = errors.New("writer: group not closed")

// Options configures a Builder.
type Options struct {
	// HeaderSize selects 20-byte or 24-byte record and group headers.
	// Zero selects 24.
	HeaderSize int

	// Registry supplies the record encoders. Nil selects schema.Default().
	Registry *schema.Registry

	// Level is the zlib level for records flagged compressed. Zero selects
	// zlib.DefaultCompression.
	Level int

	// Localized writes FULL/DESC fields as string-table ids. It is switched
	// on automatically when a file header with the localized flag is added.
	Localized bool
}

// Builder assembles a content file in memory. Groups are opened and closed
// explicitly and their sizes are patched on close. Errors are sticky: once
// a call fails every later call returns the same error.
type Builder struct {
	hdr       int
	reg       *schema.Registry
	level     int
	localized bool

	buf    []byte
	groups []int
	err    error
}

// NewBuilder returns an empty builder.
func NewBuilder(opts Options) (*Builder, error) {
	hdr := opts.HeaderSize
	if hdr == 0 {
		hdr = format.LongHeaderSize
	}
	if !format.ValidHeaderSize(hdr) {
		return nil, fmt.Errorf("writer: header size %d is neither 20 nor 24", hdr)
	}
	reg := opts.Registry
	if reg == nil {
		reg = schema.Default()
	}
	level := opts.Level
	if level == 0 {
		level = zlib.DefaultCompression
	}
	return &Builder{hdr: hdr, reg: reg, level: level, localized: opts.Localized}, nil
}

// Err returns the first error encountered.
func (b *Builder) Err() error { return b.err }

// Len returns the number of bytes written so far.
func (b *Builder) Len() int { return len(b.buf) }

// Depth returns the number of open groups.
func (b *Builder) Depth() int { return len(b.groups) }

// BeginGroup opens a group with g's label, type and stamps. g.Size is
// ignored and computed on EndGroup.
func (b *Builder) BeginGroup(g types.GroupHeader) error {
	if b.err != nil {
		return b.err
	}
	if !g.Type.Valid() {
		return b.fail(fmt.Errorf("writer: group type %d: %w", int32(g.Type), types.ErrUnknownGroupType))
	}
	b.groups = append(b.groups, len(b.buf))
	b.buf = format.AppendGroupHeader(b.buf, g, b.hdr)
	return nil
}

// EndGroup closes the innermost group.
func (b *Builder) EndGroup() error {
	if b.err != nil {
		return b.err
	}
	n := len(b.groups)
	if n == 0 {
		return b.fail(errors.New("writer: EndGroup without BeginGroup"))
	}
	start := b.groups[n-1]
	b.groups = b.groups[:n-1]
	buf.PutU32LE(b.buf, start+format.GrpSizeOffset, uint32(len(b.buf)-start))
	return nil
}

// Record encodes rec and appends it with a header built from its metadata.
// Records flagged compressed are deflated. A RawRecord is written back as
// read: its stored bytes when it was compressed, its body otherwise.
func (b *Builder) Record(rec types.Record) error {
	if b.err != nil {
		return b.err
	}
	m := rec.Metadata()
	if fh, ok := rec.(*types.FileHeader); ok {
		b.localized = fh.Localized()
	}

	var body []byte
	switch r := rec.(type) {
	case *types.RawRecord:
		switch {
		case r.Stored != nil:
			body = r.Stored
		case m.Flags.Has(types.FlagCompressed):
			stored, err := format.Deflate(r.Body, b.level)
			if err != nil {
				return b.fail(err)
			}
			body = stored
		default:
			body = r.Body
		}
	default:
		w := schema.NewSubrecordWriter(b.localized)
		if err := b.reg.Encode(rec, w); err != nil {
			return b.fail(fmt.Errorf("writer: encode %s %s: %w", rec.Tag(), m.ID, err))
		}
		body = w.Bytes()
		if m.Flags.Has(types.FlagCompressed) {
			stored, err := format.Deflate(body, b.level)
			if err != nil {
				return b.fail(err)
			}
			body = stored
		}
	}
	b.appendRecord(rec.Tag(), m, body)
	return nil
}

// Stored appends a record whose body is already in its on-disk form.
func (b *Builder) Stored(tag types.Tag, m types.Meta, body []byte) error {
	if b.err != nil {
		return b.err
	}
	b.appendRecord(tag, m, body)
	return nil
}

func (b *Builder) appendRecord(tag types.Tag, m types.Meta, body []byte) {
	h := types.RecordHeader{
		Type:         tag,
		Size:         uint32(len(body)),
		Flags:        m.Flags,
		ID:           m.ID,
		VersionStamp: m.VersionStamp,
		FormVersion:  m.FormVersion,
		Unknown:      m.Unknown,
	}
	b.buf = format.AppendRecordHeader(b.buf, h, b.hdr)
	b.buf = append(b.buf, body...)
}

// Frame replays one reader frame: groups are opened and closed, decoded
// records re-encoded, skipped records copied as stored.
func (b *Builder) Frame(f types.Frame) error {
	switch f.Kind {
	case types.FrameGroup:
		return b.BeginGroup(f.Group)
	case types.FrameGroupEnd:
		return b.EndGroup()
	case types.FrameRecord:
		return b.Record(f.Record)
	case types.FrameSkipped:
		return b.Stored(f.Header.Type, f.Header.Meta(), f.Body)
	default:
		return b.fail(fmt.Errorf("writer: frame kind %s", f.Kind))
	}
}

// Bytes returns the encoded file. All groups must be closed.
func (b *Builder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.groups) > 0 {
		return nil, fmt.Errorf("%w: %d still open", ErrOpenGroup, len(b.groups))
	}
	return b.buf, nil
}

// Commit hands the encoded file to sink.
func (b *Builder) Commit(sink Sink) error {
	out, err := b.Bytes()
	if err != nil {
		return err
	}
	return sink.Commit(out)
}

func (b *Builder) fail(err error) error {
	b.err = err
	return err
}
