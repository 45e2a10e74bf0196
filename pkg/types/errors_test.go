package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatErrorMatchesByKind(t *testing.T) {
	err := &FormatError{Kind: ErrKindMissingField, Msg: "subrecord EDID", Offset: 0x40, Tag: TagDoor}
	wrapped := fmt.Errorf("load plugin: %w", err)

	assert.ErrorIs(t, wrapped, ErrMissingField)
	assert.NotErrorIs(t, wrapped, ErrTruncated)
	assert.True(t, IsKind(wrapped, ErrKindMissingField))
	assert.True(t, IsRecoverable(wrapped))
	assert.Equal(t, `esm: subrecord EDID (DOOR at 0x40)`, err.Error())
}

func TestFormatErrorUnwrap(t *testing.T) {
	cause := errors.New("inflate: unexpected EOF")
	err := NewError(ErrKindCorruptCompression, "corrupt compressed body", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "esm: corrupt compressed body: inflate: unexpected EOF", err.Error())
}

func TestRecoverableKinds(t *testing.T) {
	for _, k := range []ErrKind{ErrKindMissingField, ErrKindTruncatedSubrecord, ErrKindCorruptCompression, ErrKindUnmappedContentFile} {
		assert.True(t, IsRecoverable(NewError(k, "x", nil)), k.String())
	}
	for _, k := range []ErrKind{ErrKindTruncated, ErrKindUnknownGroupType, ErrKindBadSignature, ErrKindLimit} {
		assert.False(t, IsRecoverable(NewError(k, "x", nil)), k.String())
	}
	assert.False(t, IsRecoverable(errors.New("plain")))
}
