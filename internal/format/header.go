package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/esmkit/internal/buf"
	"github.com/joshuapare/esmkit/pkg/types"
)

// IsGroup reports whether b starts with a group signature.
func IsGroup(b []byte) bool {
	return len(b) >= SignatureSize && bytes.Equal(b[:SignatureSize], GroupSignature)
}

// DetectHeaderSize inspects the start of a content file and returns the
// record/group header size it uses. The file must open with a TES4 record;
// a HEDR subrecord directly after 20 header bytes means short headers.
func DetectHeaderSize(b []byte) (int, error) {
	if len(b) < ShortHeaderSize+SignatureSize {
		return 0, fmt.Errorf("file header: %w (have %d bytes)", ErrTruncated, len(b))
	}
	if !bytes.Equal(b[:SignatureSize], FileHeaderSignature) {
		return 0, fmt.Errorf("file header: %w", ErrSignatureMismatch)
	}
	if bytes.Equal(b[ShortHeaderSize:ShortHeaderSize+SignatureSize], HEDRSignature) {
		return ShortHeaderSize, nil
	}
	return LongHeaderSize, nil
}

// DecodeRecordHeader decodes a record header of the given variant size.
func DecodeRecordHeader(b []byte, size int) (types.RecordHeader, error) {
	if !ValidHeaderSize(size) {
		return types.RecordHeader{}, fmt.Errorf("record header: invalid header size %d", size)
	}
	if len(b) < size {
		return types.RecordHeader{}, fmt.Errorf("record header: %w (have %d, need %d)", ErrTruncated, len(b), size)
	}
	var h types.RecordHeader
	copy(h.Type[:], b[HdrTypeOffset:HdrTypeOffset+SignatureSize])
	h.Size = buf.U32LE(b[HdrSizeOffset:])
	h.Flags = types.RecordFlags(buf.U32LE(b[HdrFlagsOffset:]))
	h.ID = types.RefIDFromRaw(buf.U32LE(b[HdrIDOffset:]))
	h.VersionStamp = buf.U32LE(b[HdrStampOffset:])
	if size == LongHeaderSize {
		h.FormVersion = buf.U16LE(b[HdrFormVersion:])
		h.Unknown = buf.U16LE(b[HdrUnknown:])
	}
	return h, nil
}

// DecodeGroupHeader decodes a group header of the given variant size and
// validates its type and that its size covers at least the header itself.
func DecodeGroupHeader(b []byte, size int) (types.GroupHeader, error) {
	if !ValidHeaderSize(size) {
		return types.GroupHeader{}, fmt.Errorf("group header: invalid header size %d", size)
	}
	if len(b) < size {
		return types.GroupHeader{}, fmt.Errorf("group header: %w (have %d, need %d)", ErrTruncated, len(b), size)
	}
	if !IsGroup(b) {
		return types.GroupHeader{}, fmt.Errorf("group header: %w", ErrSignatureMismatch)
	}
	var g types.GroupHeader
	g.Size = buf.U32LE(b[GrpSizeOffset:])
	copy(g.Label[:], b[GrpLabelOffset:GrpLabelOffset+4])
	g.Type = types.GroupType(buf.I32LE(b[GrpTypeOffset:]))
	g.Stamp = buf.U32LE(b[GrpStampOffset:])
	if size == LongHeaderSize {
		g.Unknown = buf.U32LE(b[GrpUnknownOffset:])
	}
	if !g.Type.Valid() {
		return g, fmt.Errorf("group header: type %d: %w", int32(g.Type), ErrUnknownGroupType)
	}
	if g.Size < uint32(size) {
		return g, fmt.Errorf("group header: size %d smaller than header: %w", g.Size, ErrTruncated)
	}
	return g, nil
}

// AppendRecordHeader appends the encoded header to dst.
func AppendRecordHeader(dst []byte, h types.RecordHeader, size int) []byte {
	dst = append(dst, h.Type[:]...)
	dst = buf.AppendU32LE(dst, h.Size)
	dst = buf.AppendU32LE(dst, uint32(h.Flags))
	dst = buf.AppendU32LE(dst, h.ID.Raw())
	dst = buf.AppendU32LE(dst, h.VersionStamp)
	if size == LongHeaderSize {
		dst = buf.AppendU16LE(dst, h.FormVersion)
		dst = buf.AppendU16LE(dst, h.Unknown)
	}
	return dst
}

// AppendGroupHeader appends the encoded header to dst.
func AppendGroupHeader(dst []byte, g types.GroupHeader, size int) []byte {
	dst = append(dst, GroupSignature...)
	dst = buf.AppendU32LE(dst, g.Size)
	dst = append(dst, g.Label[:]...)
	dst = buf.AppendU32LE(dst, uint32(g.Type))
	dst = buf.AppendU32LE(dst, g.Stamp)
	if size == LongHeaderSize {
		dst = buf.AppendU32LE(dst, g.Unknown)
	}
	return dst
}
