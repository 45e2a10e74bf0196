package types

import (
	"errors"
	"fmt"
)

// ReferenceID is a cross-file entity reference: a 24-bit index local to a
// content file plus the slot of that content file in the load order the
// referencing file was authored against.
//
// The value is meaningful only relative to a load order. Two ids that differ
// only in FileIndex name different entities unless both are resolved through
// the same RemapTable.
type ReferenceID struct {
	Index     uint32 // low 24 bits
	FileIndex uint8
}

// IndexMask selects the local index bits of a raw reference id.
const IndexMask = 0x00FFFFFF

// RefIDFromRaw splits a raw 32-bit id as stored on disk.
func RefIDFromRaw(v uint32) ReferenceID {
	return ReferenceID{Index: v & IndexMask, FileIndex: uint8(v >> 24)}
}

// Raw packs the id back into its on-disk form.
func (r ReferenceID) Raw() uint32 {
	return uint32(r.FileIndex)<<24 | r.Index&IndexMask
}

// IsZero reports whether the id is the null reference.
func (r ReferenceID) IsZero() bool { return r.Raw() == 0 }

func (r ReferenceID) String() string { return fmt.Sprintf("%08X", r.Raw()) }

// MarshalText renders the id in the conventional eight-digit hex form.
func (r ReferenceID) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// RemapTable translates the content-file slot recorded in a reference id into
// the slot that file occupies in the current session. It is built once
// before decoding starts and is only read afterwards, so any number of
// readers may share it.
type RemapTable map[uint8]uint8

// Resolve replaces the FileIndex of id through t.
//
// FileIndex 0 denotes the file currently being loaded and is returned
// unchanged whatever t contains. Any other slot missing from t yields
// ErrUnmappedContentFile.
func Resolve(id ReferenceID, t RemapTable) (ReferenceID, error) {
	if id.FileIndex == 0 {
		return id, nil
	}
	to, ok := t[id.FileIndex]
	if !ok {
		return id, &FormatError{
			Kind:   ErrKindUnmappedContentFile,
			Msg:    fmt.Sprintf("reference %s names content file %d", id, id.FileIndex),
			Offset: -1,
		}
	}
	return ReferenceID{Index: id.Index, FileIndex: to}, nil
}

// ResolveRecord resolves every reference field of rec in place, including
// the record's own id. Fields that cannot be resolved are left as read and
// reported together in the returned error.
func ResolveRecord(rec Record, t RemapTable) error {
	var errs []error
	for _, ref := range rec.References() {
		got, err := Resolve(*ref, t)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*ref = got
	}
	return errors.Join(errs...)
}
