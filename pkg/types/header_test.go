package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupLabels(t *testing.T) {
	top := GroupHeader{Label: NewTag("DOOR"), Type: GroupTop}
	assert.Equal(t, "DOOR", top.LabelString())

	block := GroupHeader{Label: [4]byte{3, 0, 0, 0}, Type: GroupInteriorCellBlock}
	assert.Equal(t, "block 3", block.LabelString())

	// y is stored first.
	grid := GroupHeader{Label: [4]byte{0xFE, 0xFF, 0x05, 0x00}, Type: GroupExteriorCellSubBlock}
	x, y := grid.Grid()
	assert.Equal(t, int16(5), x)
	assert.Equal(t, int16(-2), y)
	assert.Equal(t, "grid 5,-2", grid.LabelString())

	children := GroupHeader{Label: [4]byte{0x3C, 0, 0, 1}, Type: GroupCellChildren}
	assert.Equal(t, ReferenceID{Index: 0x3C, FileIndex: 1}, children.ParentID())
	assert.Equal(t, "parent 0100003C", children.LabelString())
}

func TestGroupTypeValid(t *testing.T) {
	for g := GroupTop; g <= GroupCellVisibleDistantChildren; g++ {
		assert.True(t, g.Valid(), g.String())
	}
	assert.False(t, GroupType(11).Valid())
	assert.False(t, GroupType(-1).Valid())
}

func TestRecordFlags(t *testing.T) {
	h := RecordHeader{Flags: FlagDeleted | FlagCompressed, ID: ReferenceID{Index: 7}, VersionStamp: 3}
	assert.True(t, h.Deleted())
	assert.True(t, h.Compressed())
	assert.False(t, h.Ignored())
	assert.Equal(t, Meta{ID: ReferenceID{Index: 7}, Flags: FlagDeleted | FlagCompressed, VersionStamp: 3}, h.Meta())
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "NPC_", NewTag("NPC_").String())
	assert.Equal(t, `"A\x00\x01B"`, Tag{'A', 0, 1, 'B'}.String())
	assert.True(t, Tag{}.IsZero())
}
