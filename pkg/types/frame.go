package types

import "log/slog"

// FrameKind tags the variants of Frame.
type FrameKind uint8

const (
	FrameGroup    FrameKind = iota + 1 // entering a group; Group is set
	FrameGroupEnd                      // leaving a group; Group is set
	FrameRecord                        // a decoded or raw record; Header and Record are set
	FrameSkipped                       // a framed record that was not decoded; Header, Skip and maybe Err are set
)

func (k FrameKind) String() string {
	switch k {
	case FrameGroup:
		return "group"
	case FrameGroupEnd:
		return "group-end"
	case FrameRecord:
		return "record"
	case FrameSkipped:
		return "skipped"
	default:
		return "invalid"
	}
}

// SkipReason says why a record frame carries no decoded record.
type SkipReason uint8

const (
	SkipNone SkipReason = iota
	SkipDeleted
	SkipIgnored
	SkipMalformed
)

func (s SkipReason) String() string {
	switch s {
	case SkipDeleted:
		return "deleted"
	case SkipIgnored:
		return "ignored"
	case SkipMalformed:
		return "malformed"
	default:
		return "none"
	}
}

// Frame is one step of a pull-based walk over a content file.
type Frame struct {
	Kind   FrameKind
	Offset int64 // absolute offset of the frame header
	Depth  int   // number of enclosing groups

	Group  GroupHeader
	Header RecordHeader
	Record Record

	// Resolved is Header.ID passed through the reader's remap table. When
	// no table is configured it equals Header.ID.
	Resolved   ReferenceID
	ResolveErr error

	Skip SkipReason
	Err  error  // per-record decode error for SkipMalformed
	Body []byte // stored body of a skipped record, copied out of the input
}

// OpenOptions controls how a content file is framed and decoded.
type OpenOptions struct {
	// HeaderSize forces 20-byte (TES4) or 24-byte (TES5 and later) record
	// and group headers. Zero detects the variant from the file header.
	HeaderSize int

	// Remap resolves each record's own id at the reader boundary. It must be
	// fully built before the reader is opened and must not change afterwards.
	Remap RemapTable

	// Limits guards against absurd sizes. Nil selects DefaultLimits().
	Limits *Limits

	// Logger receives recoverable inconsistencies. Nil discards them.
	Logger *slog.Logger
}
