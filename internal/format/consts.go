// Package format houses low-level framing for master/plugin content files:
// record and group headers, the byte cursor, compressed bodies and
// NUL-terminated strings. The goal is to keep the parsing focused and
// independent from the public API so higher-level packages can orchestrate
// it in a more ergonomic form.
package format

var (
	// GroupSignature opens every group header.
	GroupSignature = []byte{'G', 'R', 'U', 'P'}

	// FileHeaderSignature opens the first record of every content file.
	FileHeaderSignature = []byte{'T', 'E', 'S', '4'}

	// HEDRSignature is the first subrecord of the file header. Finding it
	// right after a 20-byte header identifies the short header variant.
	HEDRSignature = []byte{'H', 'E', 'D', 'R'}

	// ExtendedSizeSignature marks a subrecord whose u32 payload is the length
	// of the following subrecord, for payloads larger than 0xFFFF.
	ExtendedSizeSignature = []byte{'X', 'X', 'X', 'X'}
)

// ============================================================================
// Record / Group Header Constants
// ============================================================================
//
// Record header (little-endian):
//
//	0x00  [4]byte  type tag
//	0x04  u32      body size (excluding header)
//	0x08  u32      flags
//	0x0C  u32      reference id
//	0x10  u32      version-control stamp
//	0x14  u16      form version   (long variant)
//	0x16  u16      unknown        (long variant)
//
// Group header (little-endian):
//
//	0x00  [4]byte  "GRUP"
//	0x04  u32      group size (INCLUDING header)
//	0x08  [4]byte  label
//	0x0C  i32      group type
//	0x10  u32      stamp
//	0x14  u32      unknown        (long variant)
const (
	// ShortHeaderSize is the header size used by TES4-era files.
	ShortHeaderSize = 20
	// LongHeaderSize is the header size used by TES5-era and later files.
	LongHeaderSize = 24

	SignatureSize = 4

	HdrTypeOffset  = 0x00
	HdrSizeOffset  = 0x04
	HdrFlagsOffset = 0x08
	HdrIDOffset    = 0x0C
	HdrStampOffset = 0x10
	HdrFormVersion = 0x14
	HdrUnknown     = 0x16

	GrpSizeOffset    = 0x04
	GrpLabelOffset   = 0x08
	GrpTypeOffset    = 0x0C
	GrpStampOffset   = 0x10
	GrpUnknownOffset = 0x14
)

// ============================================================================
// Subrecord Constants
// ============================================================================

const (
	// SubrecordHeaderSize is the tag plus the u16 length.
	SubrecordHeaderSize = 6

	// MaxShortSubrecord is the largest payload a u16 length can describe.
	MaxShortSubrecord = 0xFFFF

	// ExtendedSizePayload is the payload length of an XXXX subrecord.
	ExtendedSizePayload = 4
)

// ============================================================================
// Compression Constants
// ============================================================================

const (
	// CompressedPrefixSize is the u32 decompressed length that precedes the
	// zlib stream of a compressed body.
	CompressedPrefixSize = 4
)

// ValidHeaderSize reports whether n is one of the two header variants.
func ValidHeaderSize(n int) bool {
	return n == ShortHeaderSize || n == LongHeaderSize
}
