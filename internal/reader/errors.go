package reader

import (
	"errors"

	"github.com/joshuapare/esmkit/internal/format"
	"github.com/joshuapare/esmkit/pkg/schema"
	"github.com/joshuapare/esmkit/pkg/types"
)

// errMap is checked in order; the first sentinel err wraps decides the kind.
var errMap = []struct {
	sentinel error
	kind     types.ErrKind
	msg      string
}{
	{format.ErrSignatureMismatch, types.ErrKindBadSignature, "bad signature"},
	{format.ErrUnknownGroupType, types.ErrKindUnknownGroupType, "unknown group type"},
	{format.ErrCorruptCompression, types.ErrKindCorruptCompression, "corrupt compressed body"},
	{format.ErrSanityLimit, types.ErrKindLimit, "sanity limit exceeded"},
	{format.ErrTruncatedSubrecord, types.ErrKindTruncatedSubrecord, "truncated subrecord"},
	{format.ErrMissingField, types.ErrKindMissingField, "missing required subrecord"},
	{format.ErrBadString, types.ErrKindMissingField, "unreadable string field"},
	{format.ErrTruncated, types.ErrKindTruncated, "truncated input"},
}

// wrapFormatErr converts internal/format sentinels and schema load errors
// into a located types.FormatError. FormatErrors pass through unchanged.
func wrapFormatErr(err error, off int64, tag types.Tag) error {
	if err == nil {
		return nil
	}
	var fe *types.FormatError
	if errors.As(err, &fe) {
		return err
	}

	// Loaders may return their own errors; those only ever invalidate the
	// record being loaded.
	out := &types.FormatError{Kind: types.ErrKindMissingField, Msg: "record body rejected", Offset: off, Tag: tag, Err: err}
	for _, m := range errMap {
		if errors.Is(err, m.sentinel) {
			out.Kind, out.Msg = m.kind, m.msg
			break
		}
	}
	var le *schema.LoadError
	if errors.As(err, &le) && !le.Field.IsZero() {
		out.Msg += " in " + le.Field.String()
	}
	return out
}
