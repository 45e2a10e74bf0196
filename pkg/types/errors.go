package types

import (
	"errors"
	"fmt"
)

// ErrKind classifies format errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindTruncated           ErrKind = iota // input ended inside a frame, or a frame overran its group
	ErrKindCorruptCompression                 // compressed body failed to inflate to its declared size
	ErrKindMissingField                       // a required subrecord was absent or out of order
	ErrKindTruncatedSubrecord                 // a subrecord's declared length crosses the record end
	ErrKindUnmappedContentFile                // reference names a content file the remap table lacks
	ErrKindUnknownGroupType                   // group type outside the known range
	ErrKindBadSignature                       // file does not start with a TES4 header record
	ErrKindLimit                              // a sanity limit was exceeded
	ErrKindState                              // invalid operation for current state (e.g. closed reader)
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindTruncated:
		return "Truncated"
	case ErrKindCorruptCompression:
		return "CorruptCompression"
	case ErrKindMissingField:
		return "MissingField"
	case ErrKindTruncatedSubrecord:
		return "TruncatedSubrecord"
	case ErrKindUnmappedContentFile:
		return "UnmappedContentFile"
	case ErrKindUnknownGroupType:
		return "UnknownGroupType"
	case ErrKindBadSignature:
		return "BadSignature"
	case ErrKindLimit:
		return "Limit"
	case ErrKindState:
		return "State"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// FormatError is a typed decode error with an optional location and cause.
type FormatError struct {
	Kind   ErrKind
	Msg    string
	Offset int64 // absolute file offset of the offending frame, -1 when unknown
	Tag    Tag   // record or subrecord tag, zero when not applicable
	Err    error // optional underlying cause
}

func (e *FormatError) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := "esm: " + e.Msg
	switch {
	case !e.Tag.IsZero() && e.Offset >= 0:
		s += fmt.Sprintf(" (%s at 0x%X)", e.Tag, e.Offset)
	case e.Offset >= 0:
		s += fmt.Sprintf(" (at 0x%X)", e.Offset)
	case !e.Tag.IsZero():
		s += fmt.Sprintf(" (%s)", e.Tag)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is matches any FormatError of the same kind, so the sentinels below work
// with errors.Is regardless of message or location.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && e != nil && t.Kind == e.Kind
}

// NewError builds a FormatError without location information.
func NewError(kind ErrKind, msg string, cause error) *FormatError {
	return &FormatError{Kind: kind, Msg: msg, Offset: -1, Err: cause}
}

// Sentinels, one per kind.
var (
	ErrTruncated           = NewError(ErrKindTruncated, "truncated input", nil)
	ErrCorruptCompression  = NewError(ErrKindCorruptCompression, "corrupt compressed record", nil)
	ErrMissingField        = NewError(ErrKindMissingField, "missing required subrecord", nil)
	ErrTruncatedSubrecord  = NewError(ErrKindTruncatedSubrecord, "subrecord crosses record boundary", nil)
	ErrUnmappedContentFile = NewError(ErrKindUnmappedContentFile, "content file not in remap table", nil)
	ErrUnknownGroupType    = NewError(ErrKindUnknownGroupType, "unknown group type", nil)
	ErrBadSignature        = NewError(ErrKindBadSignature, "not a content file (missing TES4 header)", nil)
	ErrLimit               = NewError(ErrKindLimit, "sanity limit exceeded", nil)
	ErrClosed              = NewError(ErrKindState, "reader is closed", nil)
)

// IsKind reports whether err is, or wraps, a FormatError of kind k.
func IsKind(err error, k ErrKind) bool {
	var fe *FormatError
	return errors.As(err, &fe) && fe.Kind == k
}

// IsRecoverable reports whether err only invalidates a single record. The
// reader skips such records and keeps going; every other kind aborts the
// file because the byte accounting can no longer be trusted.
func IsRecoverable(err error) bool {
	var fe *FormatError
	if !errors.As(err, &fe) {
		return false
	}
	switch fe.Kind {
	case ErrKindMissingField, ErrKindTruncatedSubrecord, ErrKindCorruptCompression, ErrKindUnmappedContentFile:
		return true
	default:
		return false
	}
}
