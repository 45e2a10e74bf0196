package schema

import (
	"fmt"
	"sort"

	"github.com/joshuapare/esmkit/pkg/types"
)

// Loader decodes one record body. It must consume only the iterator it is
// given and must store reference ids unresolved.
type Loader func(it *SubrecordIterator) (types.Record, error)

// Encoder writes the body of rec. It is the mirror of the Loader registered
// under the same tag: decoding the output yields a record equal to rec.
type Encoder func(rec types.Record, w *SubrecordWriter) error

// Entry binds a record tag to its loader and encoder.
type Entry struct {
	Tag    types.Tag
	Load   Loader
	Encode Encoder
}

// Registry maps record tags to entries. It is immutable once built and safe
// to share between readers.
type Registry struct {
	entries map[types.Tag]Entry
}

// NewRegistry builds a registry from entries. Duplicate tags and entries
// without a loader are rejected.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{entries: make(map[types.Tag]Entry, len(entries))}
	if err := r.add(entries); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) add(entries []Entry) error {
	for _, e := range entries {
		if e.Load == nil {
			return fmt.Errorf("schema: %s has no loader", e.Tag)
		}
		if _, dup := r.entries[e.Tag]; dup {
			return fmt.Errorf("schema: %s registered twice", e.Tag)
		}
		r.entries[e.Tag] = e
	}
	return nil
}

// Default returns a new registry with the built-in record types.
func Default() *Registry {
	r, err := NewRegistry(
		Entry{Tag: types.TagFileHeader, Load: LoadFileHeader, Encode: EncodeFileHeader},
		Entry{Tag: types.TagDoor, Load: LoadDoor, Encode: EncodeDoor},
		Entry{Tag: types.TagPotion, Load: LoadPotion, Encode: EncodePotion},
		Entry{Tag: types.TagStatic, Load: LoadStatic, Encode: EncodeStatic},
		Entry{Tag: types.TagGlobal, Load: LoadGlobal, Encode: EncodeGlobal},
	)
	if err != nil {
		panic(err) // built-in tags are distinct
	}
	return r
}

// With returns a copy of r extended by entries. r is unchanged.
func (r *Registry) With(entries ...Entry) (*Registry, error) {
	out := &Registry{entries: make(map[types.Tag]Entry, len(r.entries)+len(entries))}
	for t, e := range r.entries {
		out.entries[t] = e
	}
	if err := out.add(entries); err != nil {
		return nil, err
	}
	return out, nil
}

// Lookup returns the entry registered for tag.
func (r *Registry) Lookup(tag types.Tag) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	e, ok := r.entries[tag]
	return e, ok
}

// Tags returns the registered tags in byte order.
func (r *Registry) Tags() []types.Tag {
	tags := make([]types.Tag, 0, len(r.entries))
	for t := range r.entries {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return string(tags[i][:]) < string(tags[j][:]) })
	return tags
}

// Encode writes rec's body with the encoder registered for its tag.
func (r *Registry) Encode(rec types.Record, w *SubrecordWriter) error {
	e, ok := r.Lookup(rec.Tag())
	if !ok || e.Encode == nil {
		return fmt.Errorf("schema: no encoder for %s", rec.Tag())
	}
	return e.Encode(rec, w)
}

func wrongType(want types.Tag, rec types.Record) error {
	return fmt.Errorf("schema: %s encoder given %T", want, rec)
}
