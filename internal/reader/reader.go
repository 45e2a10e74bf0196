// Package reader provides the pull-based frame reader behind pkg/esm. It
// frames groups and records, inflates compressed bodies, dispatches bodies
// to the schema registry and keeps going past records it cannot decode.
package reader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/joshuapare/esmkit/internal/buf"
	"github.com/joshuapare/esmkit/internal/format"
	"github.com/joshuapare/esmkit/internal/mmfile"
	"github.com/joshuapare/esmkit/pkg/schema"
	"github.com/joshuapare/esmkit/pkg/types"
)

// Reader walks one content file frame by frame. It is not safe for
// concurrent use; decode several files in parallel with one Reader each.
type Reader struct {
	buf     []byte
	unmap   func() error
	path    string
	opts    types.OpenOptions
	limits  types.Limits
	reg     *schema.Registry
	log     *slog.Logger
	hdrSize int

	cur     *format.Cursor
	groups  []openGroup
	scratch []byte // inflate target, reused between records

	header    *types.FileHeader
	first     *types.Frame // TES4 frame decoded at open, handed out by the first Next
	localized bool

	diag    *diagnosticCollector
	started time.Time
	fatal   error
	closed  bool
}

// openGroup is a group whose end has not been reached yet.
type openGroup struct {
	hdr   types.GroupHeader
	start int
	end   int
}

// Open maps the content file at path and decodes its file header. A nil
// registry selects schema.Default().
func Open(path string, opts types.OpenOptions, reg *schema.Registry) (*Reader, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("open content file: %w", err)
	}
	r, err := newReader(data, unmap, opts, reg)
	if err != nil {
		if unmap != nil {
			_ = unmap()
		}
		return nil, err
	}
	r.path = path
	r.diag.report.FilePath = path
	return r, nil
}

// OpenBytes creates a reader backed by data. The buffer must not be modified
// while the reader is in use.
func OpenBytes(data []byte, opts types.OpenOptions, reg *schema.Registry) (*Reader, error) {
	return newReader(data, nil, opts, reg)
}

func newReader(data []byte, unmap func() error, opts types.OpenOptions, reg *schema.Registry) (*Reader, error) {
	if reg == nil {
		reg = schema.Default()
	}
	limits := types.DefaultLimits()
	if opts.Limits != nil {
		limits = *opts.Limits
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	hdrSize := opts.HeaderSize
	if hdrSize == 0 {
		n, err := format.DetectHeaderSize(data)
		if err != nil {
			return nil, wrapFormatErr(err, 0, types.TagFileHeader)
		}
		hdrSize = n
	} else if !format.ValidHeaderSize(hdrSize) {
		return nil, types.NewError(types.ErrKindState, fmt.Sprintf("header size %d is neither 20 nor 24", hdrSize), nil)
	}

	r := &Reader{
		buf:     data,
		unmap:   unmap,
		opts:    opts,
		limits:  limits,
		reg:     reg,
		log:     logger,
		hdrSize: hdrSize,
		cur:     format.NewCursor(data, 0),
		diag:    newDiagnosticCollector(int64(len(data))),
		started: time.Now(),
	}
	if err := r.readFileHeader(); err != nil {
		return nil, err
	}
	return r, nil
}

// readFileHeader decodes the leading TES4 record. It must be present, must
// not be a group and must load cleanly.
func (r *Reader) readFileHeader() error {
	head, err := r.cur.Peek(format.SignatureSize)
	if err != nil {
		return wrapFormatErr(err, 0, types.TagFileHeader)
	}
	if types.Tag(head) != types.TagFileHeader {
		return &types.FormatError{Kind: types.ErrKindBadSignature, Msg: "first record is " + types.Tag(head).String(), Offset: 0}
	}
	f, err := r.nextRecord()
	if err != nil {
		return err
	}
	if f.Kind != types.FrameRecord {
		if f.Err != nil {
			return f.Err
		}
		return &types.FormatError{Kind: types.ErrKindBadSignature, Msg: "file header is " + f.Skip.String(), Offset: 0, Tag: types.TagFileHeader}
	}
	fh, ok := f.Record.(*types.FileHeader)
	if !ok {
		return &types.FormatError{Kind: types.ErrKindBadSignature, Msg: "registry decoded TES4 as " + fmt.Sprintf("%T", f.Record), Offset: 0}
	}
	r.header = fh
	r.localized = fh.Localized()
	r.first = &f
	return nil
}

// Header returns the decoded file header.
func (r *Reader) Header() *types.FileHeader { return r.header }

// HeaderSize returns the record/group header size in use (20 or 24).
func (r *Reader) HeaderSize() int { return r.hdrSize }

// Offset returns the absolute offset of the next frame.
func (r *Reader) Offset() int64 { return r.cur.Offset() }

// Size returns the input length.
func (r *Reader) Size() int64 { return int64(len(r.buf)) }

// Depth returns the number of groups currently open.
func (r *Reader) Depth() int { return len(r.groups) }

// Diagnostics returns every issue recorded so far.
func (r *Reader) Diagnostics() *types.DiagnosticReport {
	return r.diag.getReport(time.Since(r.started))
}

// Close releases the mapping, if any. Frames already returned stay valid:
// decoded records and raw bodies never alias the input.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.unmap != nil {
		return r.unmap()
	}
	return nil
}

// Next returns the next frame, or io.EOF once the input is exhausted. A
// non-EOF error is fatal: group accounting broke and no further frames can
// be trusted, so every later call returns the same error.
func (r *Reader) Next() (types.Frame, error) {
	if r.closed {
		return types.Frame{}, types.ErrClosed
	}
	if r.fatal != nil {
		return types.Frame{}, r.fatal
	}
	if r.first != nil {
		f := *r.first
		r.first = nil
		return f, nil
	}
	f, err := r.next()
	if err != nil && err != io.EOF {
		r.fatal = err
		r.diag.critical(r.cur.Offset(), err, r.groupPath())
		r.log.Error("content file framing broken", "offset", r.cur.Offset(), "err", err)
	}
	return f, err
}

// NextContext is Next with a cancellation check before the frame is read.
func (r *Reader) NextContext(ctx context.Context) (types.Frame, error) {
	if err := ctx.Err(); err != nil {
		return types.Frame{}, err
	}
	return r.Next()
}

func (r *Reader) next() (types.Frame, error) {
	if n := len(r.groups); n > 0 {
		top := r.groups[n-1]
		if r.cur.Pos() == top.end {
			r.groups = r.groups[:n-1]
			return types.Frame{
				Kind:   types.FrameGroupEnd,
				Offset: int64(top.start),
				Depth:  n - 1,
				Group:  top.hdr,
			}, nil
		}
	} else if r.cur.AtEnd() {
		return types.Frame{}, io.EOF
	}

	head, err := r.cur.Peek(format.SignatureSize)
	if err != nil {
		return types.Frame{}, wrapFormatErr(err, r.cur.Offset(), types.Tag{})
	}
	if format.IsGroup(head) {
		return r.nextGroup()
	}
	return r.nextRecord()
}

// limit returns the position the next frame must end by.
func (r *Reader) limit() int {
	if n := len(r.groups); n > 0 {
		return r.groups[n-1].end
	}
	return r.cur.Len()
}

func (r *Reader) nextGroup() (types.Frame, error) {
	start := r.cur.Pos()
	off := r.cur.Offset()
	raw, err := r.cur.Peek(r.hdrSize)
	if err != nil {
		return types.Frame{}, wrapFormatErr(err, off, types.TagGroup)
	}
	g, err := format.DecodeGroupHeader(raw, r.hdrSize)
	if err != nil {
		return types.Frame{}, wrapFormatErr(err, off, types.TagGroup)
	}
	end := start + int(g.Size)
	if limit := r.limit(); !buf.Within(start, int(g.Size), limit) {
		return types.Frame{}, &types.FormatError{
			Kind:   types.ErrKindTruncated,
			Msg:    fmt.Sprintf("group of %d bytes overruns its container by %d", g.Size, end-limit),
			Offset: off,
			Tag:    types.TagGroup,
		}
	}
	if maxDepth := r.limits.MaxGroupDepth; maxDepth > 0 && len(r.groups) >= maxDepth {
		return types.Frame{}, &types.FormatError{
			Kind:   types.ErrKindLimit,
			Msg:    fmt.Sprintf("group nesting exceeds %d", maxDepth),
			Offset: off,
			Tag:    types.TagGroup,
		}
	}
	if err := r.cur.Skip(r.hdrSize); err != nil {
		return types.Frame{}, wrapFormatErr(err, off, types.TagGroup)
	}

	depth := len(r.groups)
	r.groups = append(r.groups, openGroup{hdr: g, start: start, end: end})
	return types.Frame{
		Kind:   types.FrameGroup,
		Offset: off,
		Depth:  depth,
		Group:  g,
	}, nil
}

func (r *Reader) nextRecord() (types.Frame, error) {
	start := r.cur.Pos()
	off := r.cur.Offset()
	raw, err := r.cur.Peek(r.hdrSize)
	if err != nil {
		return types.Frame{}, wrapFormatErr(err, off, types.Tag{})
	}
	h, err := format.DecodeRecordHeader(raw, r.hdrSize)
	if err != nil {
		return types.Frame{}, wrapFormatErr(err, off, types.Tag{})
	}
	bodyStart := start + r.hdrSize
	end := bodyStart + int(h.Size)
	if limit := r.limit(); !buf.Within(bodyStart, int(h.Size), limit) {
		return types.Frame{}, &types.FormatError{
			Kind:   types.ErrKindTruncated,
			Msg:    fmt.Sprintf("record of %d bytes overruns its container by %d", h.Size, end-limit),
			Offset: off,
			Tag:    h.Type,
		}
	}
	body := r.buf[bodyStart:end:end]

	// The cursor lands on the declared end no matter what the loader does.
	if err := r.cur.Seek(end); err != nil {
		return types.Frame{}, wrapFormatErr(err, off, h.Type)
	}

	f := types.Frame{
		Kind:     types.FrameRecord,
		Offset:   off,
		Depth:    len(r.groups),
		Header:   h,
		Resolved: h.ID,
	}
	r.resolve(&f)

	// Framing is intact here: an oversize record is skipped, not fatal.
	if maxSize := r.limits.MaxRecordSize; maxSize > 0 && h.Size > maxSize {
		err := &types.FormatError{
			Kind:   types.ErrKindLimit,
			Msg:    fmt.Sprintf("record declares %d bytes (limit %d)", h.Size, maxSize),
			Offset: off,
			Tag:    h.Type,
		}
		return r.skip(f, body, types.SkipMalformed, err), nil
	}

	switch {
	case h.Deleted():
		return r.skip(f, body, types.SkipDeleted, nil), nil
	case h.Ignored():
		return r.skip(f, body, types.SkipIgnored, nil), nil
	}

	payload := body
	if h.Compressed() {
		out, err := format.Inflate(body, r.limits.MaxDecompressedSize, r.scratch)
		if err != nil {
			return r.skip(f, body, types.SkipMalformed, wrapFormatErr(err, off, h.Type)), nil
		}
		r.scratch = out
		payload = out
	}

	entry, ok := r.reg.Lookup(h.Type)
	if !ok {
		rr := &types.RawRecord{Meta: h.Meta(), Type: h.Type, Body: clone(payload)}
		if h.Compressed() {
			rr.Stored = clone(body)
		}
		f.Record = rr
		return f, nil
	}

	it := schema.NewSubrecordIterator(h, payload, r.localized)
	rec, err := entry.Load(it)
	if err != nil {
		return r.skip(f, body, types.SkipMalformed, wrapFormatErr(err, off, h.Type)), nil
	}
	if left := it.Len() - it.Consumed(); left > 0 {
		r.diag.realigned(f, it.Consumed(), it.Len(), r.groupPath())
		r.log.Warn("loader left record bytes unread",
			"offset", off, "tag", h.Type.String(), "consumed", it.Consumed(), "size", it.Len())
	}
	f.Record = rec
	return f, nil
}

// resolve maps the record's own id through the remap table.
func (r *Reader) resolve(f *types.Frame) {
	if r.opts.Remap == nil {
		return
	}
	id, err := types.Resolve(f.Header.ID, r.opts.Remap)
	if err != nil {
		f.ResolveErr = err
		r.diag.unresolved(*f, r.groupPath())
		r.log.Warn("unresolved reference id", "offset", f.Offset, "tag", f.Header.Type.String(), "id", f.Header.ID.String())
		return
	}
	f.Resolved = id
}

// skip turns f into a FrameSkipped and records why.
func (r *Reader) skip(f types.Frame, body []byte, why types.SkipReason, err error) types.Frame {
	f.Kind = types.FrameSkipped
	f.Skip = why
	f.Err = err
	f.Body = clone(body)
	r.diag.skipped(f, r.groupPath())
	if err != nil {
		r.log.Warn("skipping malformed record", "offset", f.Offset, "tag", f.Header.Type.String(), "err", err)
	} else {
		r.log.Debug("skipping record", "offset", f.Offset, "tag", f.Header.Type.String(), "reason", why.String())
	}
	return f
}

// groupPath renders the open groups for diagnostics.
func (r *Reader) groupPath() string {
	var s string
	for i, g := range r.groups {
		if i > 0 {
			s += "/"
		}
		s += g.hdr.Type.String() + ":" + g.hdr.LabelString()
	}
	return s
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
