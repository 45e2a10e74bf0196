package types

// ============================================================================
// Decode Limits
// ============================================================================
// The format stores sizes as u32 and trusts them. These limits bound how much
// a single frame may claim before the reader refuses it.

const (
	// MaxRecordSizeDefault bounds the stored body of one record. The largest
	// records in shipped masters (navmeshes, landscape) stay well below this.
	MaxRecordSizeDefault = 64 << 20 // 64 MiB

	// MaxDecompressedSizeDefault bounds the declared inflated size of a
	// compressed body.
	MaxDecompressedSizeDefault = 256 << 20 // 256 MiB

	// MaxGroupDepthDefault bounds group nesting. Real files nest at most
	// five deep (world, block, sub-block, cell, cell children).
	MaxGroupDepthDefault = 16

	// MaxRecordSizeStrict and friends suit untrusted input in constrained
	// environments.
	MaxRecordSizeStrict       = 4 << 20
	MaxDecompressedSizeStrict = 16 << 20
	MaxGroupDepthStrict       = 8
)

// Limits bounds the sizes a reader accepts.
type Limits struct {
	// MaxRecordSize is the largest accepted stored body, in bytes.
	MaxRecordSize uint32

	// MaxDecompressedSize is the largest accepted inflated body, in bytes.
	MaxDecompressedSize uint32

	// MaxGroupDepth is the deepest accepted group nesting.
	MaxGroupDepth int
}

// DefaultLimits returns limits that accept every known real-world file.
func DefaultLimits() Limits {
	return Limits{
		MaxRecordSize:       MaxRecordSizeDefault,
		MaxDecompressedSize: MaxDecompressedSizeDefault,
		MaxGroupDepth:       MaxGroupDepthDefault,
	}
}

// StrictLimits returns conservative limits for untrusted input.
func StrictLimits() Limits {
	return Limits{
		MaxRecordSize:       MaxRecordSizeStrict,
		MaxDecompressedSize: MaxDecompressedSizeStrict,
		MaxGroupDepth:       MaxGroupDepthStrict,
	}
}
