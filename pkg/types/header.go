package types

import (
	"fmt"
	"strings"

	"github.com/joshuapare/esmkit/internal/buf"
)

// RecordFlags is the flag word of a record header.
type RecordFlags uint32

const (
	FlagMaster     RecordFlags = 0x00000001 // file header only: file is a master
	FlagDeleted    RecordFlags = 0x00000020
	FlagLocalized  RecordFlags = 0x00000080 // file header only: FULL/DESC are string-table ids
	FlagPersistent RecordFlags = 0x00000400
	FlagIgnored    RecordFlags = 0x00001000
	FlagCompressed RecordFlags = 0x00040000
)

var flagNames = []struct {
	flag RecordFlags
	name string
}{
	{FlagMaster, "master"},
	{FlagDeleted, "deleted"},
	{FlagLocalized, "localized"},
	{FlagPersistent, "persistent"},
	{FlagIgnored, "ignored"},
	{FlagCompressed, "compressed"},
}

// Has reports whether all bits of x are set.
func (f RecordFlags) Has(x RecordFlags) bool { return f&x == x }

func (f RecordFlags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	rest := f
	for _, n := range flagNames {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
			rest &^= n.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%X", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// RecordHeader is the fixed framing in front of every record body.
type RecordHeader struct {
	Type         Tag
	Size         uint32 // body size in bytes, excluding the header
	Flags        RecordFlags
	ID           ReferenceID
	VersionStamp uint32
	FormVersion  uint16 // 24-byte headers only
	Unknown      uint16 // 24-byte headers only
}

// Deleted reports whether the record is flagged deleted.
func (h RecordHeader) Deleted() bool { return h.Flags.Has(FlagDeleted) }

// Compressed reports whether the body is zlib-compressed.
func (h RecordHeader) Compressed() bool { return h.Flags.Has(FlagCompressed) }

// Ignored reports whether the record is flagged ignored.
func (h RecordHeader) Ignored() bool { return h.Flags.Has(FlagIgnored) }

// Meta returns the header fields carried on a decoded record.
func (h RecordHeader) Meta() Meta {
	return Meta{
		ID:           h.ID,
		Flags:        h.Flags,
		VersionStamp: h.VersionStamp,
		FormVersion:  h.FormVersion,
		Unknown:      h.Unknown,
	}
}

// GroupType says what a group contains and how to read its label.
type GroupType int32

const (
	GroupTop GroupType = iota
	GroupWorldChildren
	GroupInteriorCellBlock
	GroupInteriorCellSubBlock
	GroupExteriorCellBlock
	GroupExteriorCellSubBlock
	GroupCellChildren
	GroupTopicChildren
	GroupCellPersistentChildren
	GroupCellTemporaryChildren
	GroupCellVisibleDistantChildren
)

// Valid reports whether g is one of the known group types.
func (g GroupType) Valid() bool {
	return g >= GroupTop && g <= GroupCellVisibleDistantChildren
}

func (g GroupType) String() string {
	switch g {
	case GroupTop:
		return "Top"
	case GroupWorldChildren:
		return "WorldChildren"
	case GroupInteriorCellBlock:
		return "InteriorCellBlock"
	case GroupInteriorCellSubBlock:
		return "InteriorCellSubBlock"
	case GroupExteriorCellBlock:
		return "ExteriorCellBlock"
	case GroupExteriorCellSubBlock:
		return "ExteriorCellSubBlock"
	case GroupCellChildren:
		return "CellChildren"
	case GroupTopicChildren:
		return "TopicChildren"
	case GroupCellPersistentChildren:
		return "CellPersistentChildren"
	case GroupCellTemporaryChildren:
		return "CellTemporaryChildren"
	case GroupCellVisibleDistantChildren:
		return "CellVisibleDistantChildren"
	default:
		return fmt.Sprintf("GroupType(%d)", int32(g))
	}
}

// GroupHeader frames a nested container of records and sub-groups.
type GroupHeader struct {
	Size    uint32 // total size INCLUDING the header
	Label   [4]byte
	Type    GroupType
	Stamp   uint32
	Unknown uint32 // 24-byte headers only
}

// RecordType returns the label of a top group, the tag of the records it holds.
func (g GroupHeader) RecordType() Tag { return Tag(g.Label) }

// ParentID returns the label of a children group, the id of its parent
// world, cell or topic.
func (g GroupHeader) ParentID() ReferenceID {
	return RefIDFromRaw(buf.U32LE(g.Label[:]))
}

// BlockNumber returns the label of an interior cell (sub-)block.
func (g GroupHeader) BlockNumber() int32 { return buf.I32LE(g.Label[:]) }

// Grid returns the label of an exterior cell (sub-)block. On disk the label
// stores y first.
func (g GroupHeader) Grid() (x, y int16) {
	return buf.I16LE(g.Label[2:]), buf.I16LE(g.Label[:2])
}

// LabelString renders the label according to the group type.
func (g GroupHeader) LabelString() string {
	switch g.Type {
	case GroupTop:
		return g.RecordType().String()
	case GroupInteriorCellBlock, GroupInteriorCellSubBlock:
		return fmt.Sprintf("block %d", g.BlockNumber())
	case GroupExteriorCellBlock, GroupExteriorCellSubBlock:
		x, y := g.Grid()
		return fmt.Sprintf("grid %d,%d", x, y)
	default:
		return "parent " + g.ParentID().String()
	}
}
