package esm

import (
	"github.com/joshuapare/esmkit/internal/reader"
	"github.com/joshuapare/esmkit/internal/writer"
	"github.com/joshuapare/esmkit/pkg/schema"
	"github.com/joshuapare/esmkit/pkg/types"
)

// Re-export commonly used types so most callers only import pkg/esm.

// Reading.
type (
	Reader      = reader.Reader
	Frame       = types.Frame
	FrameKind   = types.FrameKind
	SkipReason  = types.SkipReason
	OpenOptions = types.OpenOptions
	Limits      = types.Limits
)

// Frame kinds.
const (
	FrameGroup    = types.FrameGroup
	FrameGroupEnd = types.FrameGroupEnd
	FrameRecord   = types.FrameRecord
	FrameSkipped  = types.FrameSkipped
)

// Framing.
type (
	Tag          = types.Tag
	RecordHeader = types.RecordHeader
	RecordFlags  = types.RecordFlags
	GroupHeader  = types.GroupHeader
	GroupType    = types.GroupType
	ReferenceID  = types.ReferenceID
	RemapTable   = types.RemapTable
)

// GroupTop is the group type of the top-level per-record-type groups.
const GroupTop = types.GroupTop

// Records.
type (
	Record     = types.Record
	Meta       = types.Meta
	FileHeader = types.FileHeader
	Master     = types.Master
	Door       = types.Door
	Potion     = types.Potion
	Static     = types.Static
	Global     = types.Global
	RawRecord  = types.RawRecord
)

// Diagnostics.
type (
	DiagnosticReport = types.DiagnosticReport
	Diagnostic       = types.Diagnostic
	Severity         = types.Severity
)

// Errors.
type (
	FormatError = types.FormatError
	ErrKind     = types.ErrKind
)

// Error sentinels for use with errors.Is.
var (
	ErrTruncated           = types.ErrTruncated
	ErrCorruptCompression  = types.ErrCorruptCompression
	ErrMissingField        = types.ErrMissingField
	ErrTruncatedSubrecord  = types.ErrTruncatedSubrecord
	ErrUnmappedContentFile = types.ErrUnmappedContentFile
	ErrUnknownGroupType    = types.ErrUnknownGroupType
	ErrBadSignature        = types.ErrBadSignature
	ErrLimit               = types.ErrLimit
	ErrClosed              = types.ErrClosed
)

// Writing.
type (
	Sink     = writer.Sink
	FileSink = writer.FileSink
	MemSink  = writer.MemSink
)

// Helpers.
var (
	Resolve       = types.Resolve
	ResolveRecord = types.ResolveRecord
	IsRecoverable = types.IsRecoverable
	DefaultLimits = types.DefaultLimits
	StrictLimits  = types.StrictLimits
	EditorID      = schema.EditorID
	NewTag        = types.NewTag
	RefIDFromRaw  = types.RefIDFromRaw
)
