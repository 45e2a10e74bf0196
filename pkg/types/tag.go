package types

import "strconv"

// Tag is a four-character type code used for records, groups and subrecords.
type Tag [4]byte

// NewTag builds a Tag from the first four bytes of s, zero-padding short input.
func NewTag(s string) Tag {
	var t Tag
	copy(t[:], s)
	return t
}

// String renders the tag as text, quoting it when it contains
// non-printable bytes.
func (t Tag) String() string {
	for _, c := range t {
		if c < 0x20 || c > 0x7e {
			return strconv.QuoteToASCII(string(t[:]))
		}
	}
	return string(t[:])
}

// IsZero reports whether all four bytes are zero.
func (t Tag) IsZero() bool { return t == Tag{} }

// MarshalText renders the tag for JSON output.
func (t Tag) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Record and group type tags known to the engine.
var (
	TagGroup      = NewTag("GRUP")
	TagFileHeader = NewTag("TES4")
	TagDoor       = NewTag("DOOR")
	TagPotion     = NewTag("ALCH")
	TagStatic     = NewTag("STAT")
	TagGlobal     = NewTag("GLOB")
)
