package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/esmkit/internal/buf"
	"github.com/joshuapare/esmkit/internal/format"
	"github.com/joshuapare/esmkit/pkg/types"
)

func TestLoadDoorMinimal(t *testing.T) {
	body := append(sub("EDID", 7, []byte("Door01\x00")), sub("FULL", 5, []byte("Gate\x00"))...)
	h := types.RecordHeader{Type: types.TagDoor, Size: uint32(len(body)), ID: types.ReferenceID{Index: 5}}

	rec, err := LoadDoor(NewSubrecordIterator(h, body, false))
	require.NoError(t, err)

	d, ok := rec.(*types.Door)
	require.True(t, ok)
	assert.Equal(t, "Door01", d.EditorID)
	assert.Equal(t, "Gate", d.FullName.Text)
	assert.Equal(t, types.ReferenceID{Index: 5}, d.ID)
}

func TestLoadDoorSkipsUnknownSubrecords(t *testing.T) {
	var body []byte
	body = append(body, sub("EDID", 4, []byte("gat\x00"))...)
	body = append(body, sub("MODT", 3, []byte{9, 9, 9})...)
	body = append(body, sub("FNAM", 1, []byte{byte(types.DoorAutomatic | types.DoorHidden)})...)
	body = append(body, sub("ZZZZ", 0, nil)...)
	body = append(body, sub("TNAM", 4, buf.AppendU32LE(nil, 0x01000010))...)
	body = append(body, sub("TNAM", 4, buf.AppendU32LE(nil, 0x00000020))...)

	rec, err := LoadDoor(iter(body))
	require.NoError(t, err)
	d := rec.(*types.Door)
	assert.Equal(t, types.DoorAutomatic|types.DoorHidden, d.DoorFlags)
	assert.Equal(t, []types.ReferenceID{{Index: 0x10, FileIndex: 1}, {Index: 0x20}}, d.RandomTeleports)
}

func TestLoadDoorModelBeforeName(t *testing.T) {
	var body []byte
	body = append(body, sub("EDID", 5, []byte("Hut1\x00"))...)
	body = append(body, sub("MODL", 6, []byte("a.nif\x00"))...)
	body = append(body, sub("FULL", 4, []byte("Hut\x00"))...)

	rec, err := LoadDoor(iter(body))
	require.NoError(t, err)
	d := rec.(*types.Door)
	assert.Equal(t, "a.nif", d.Model)
	assert.Equal(t, "Hut", d.FullName.Text)
}

func TestLoadDoorMissingEditorID(t *testing.T) {
	body := sub("FULL", 5, []byte("Gate\x00"))
	_, err := LoadDoor(iter(body))
	require.ErrorIs(t, err, format.ErrMissingField)
}

func TestLoadDoorTruncatedField(t *testing.T) {
	body := append(sub("EDID", 2, []byte("a\x00")), sub("SCRI", 4, []byte{1, 2})...)
	_, err := LoadDoor(iter(body))
	require.ErrorIs(t, err, format.ErrTruncatedSubrecord)
}

func TestDoorRoundTrip(t *testing.T) {
	want := &types.Door{
		Meta:        types.Meta{ID: types.ReferenceID{Index: 0x42, FileIndex: 1}},
		EditorID:    "CastleGate",
		FullName:    types.Str("Castle Gate"),
		Model:       `Architecture\Castle\Gate01.nif`,
		BoundRadius: 128.5,
		DoorFlags:   types.DoorOblivionGate,
		Script:      types.ReferenceID{Index: 0x99},
		OpenSound:   types.ReferenceID{Index: 0x100},
		CloseSound:  types.ReferenceID{Index: 0x101},
		LoopSound:   types.ReferenceID{Index: 0x102, FileIndex: 2},
		RandomTeleports: []types.ReferenceID{
			{Index: 1}, {Index: 2, FileIndex: 3},
		},
	}

	w := NewSubrecordWriter(false)
	require.NoError(t, EncodeDoor(want, w))

	h := types.RecordHeader{Type: types.TagDoor, ID: want.ID, Size: uint32(len(w.Bytes()))}
	got, err := LoadDoor(NewSubrecordIterator(h, w.Bytes(), false))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	again := NewSubrecordWriter(false)
	require.NoError(t, EncodeDoor(got, again))
	assert.Equal(t, w.Bytes(), again.Bytes(), "re-encoding must be byte-identical")
}

func TestEncodeDoorWrongType(t *testing.T) {
	err := EncodeDoor(&types.Static{}, NewSubrecordWriter(false))
	require.Error(t, err)
}
