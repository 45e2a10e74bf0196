package format

import "errors"

var (
	// ErrSignatureMismatch indicates a structure had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrUnknownGroupType indicates a group header with a type outside 0..10.
	ErrUnknownGroupType = errors.New("format: unknown group type")
	// ErrCorruptCompression indicates a compressed body that does not inflate
	// to exactly its declared size.
	ErrCorruptCompression = errors.New("format: corrupt compressed body")
	// ErrTruncatedSubrecord indicates a subrecord length that crosses the record end.
	ErrTruncatedSubrecord = errors.New("format: subrecord crosses record boundary")
	// ErrMissingField indicates a required subrecord was absent.
	ErrMissingField = errors.New("format: missing required subrecord")
	// ErrSanityLimit indicates a declared size exceeded a configured limit.
	ErrSanityLimit = errors.New("format: sanity limit exceeded")
	// ErrBadString indicates string bytes that could not be transcoded.
	ErrBadString = errors.New("format: invalid string")
)
