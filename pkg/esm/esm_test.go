package esm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/esmkit/internal/format"
	"github.com/joshuapare/esmkit/internal/testutil"
	"github.com/joshuapare/esmkit/pkg/esm"
	"github.com/joshuapare/esmkit/pkg/types"
)

func plugin(t *testing.T, name string, ids ...uint32) string {
	t.Helper()
	f := testutil.NewPlugin(format.ShortHeaderSize, 0).BeginTop("STAT")
	for _, id := range ids {
		f.Record("STAT", 0, id, testutil.ZSub("EDID", name))
	}
	return f.EndGroup().WriteTemp(t, name)
}

func TestReadFile(t *testing.T) {
	path := testutil.NewPlugin(format.LongHeaderSize, 0).
		BeginTop("DOOR").
		Record("DOOR", 0, 5, testutil.DoorBody("Door01", "Gate")).
		Record("DOOR", types.FlagDeleted, 6, nil).
		EndGroup().
		WriteTemp(t, "Doors.esp")

	f, err := esm.ReadFile(context.Background(), path, esm.Options{})
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	require.Len(t, f.Records, 2)
	assert.Same(t, f.Header, f.Records[0].Record)
	assert.Equal(t, "Door01", f.Records[1].Record.(*esm.Door).EditorID)
	require.Len(t, f.Skipped, 1)
	assert.Equal(t, types.SkipDeleted, f.Skipped[0].Skip)
	assert.Equal(t, 1, f.Diagnostics.Summary.Skipped)
}

func TestDecodeLoadOrder(t *testing.T) {
	paths := []string{
		plugin(t, "Base.esm", 0x00000001, 0x00000002),
		plugin(t, "Patch.esp", 0x01000001),
		plugin(t, "Extra.esp", 0x02000003),
	}
	table := esm.RemapTable{1: 0, 2: 1}

	files, err := esm.DecodeLoadOrder(context.Background(), paths, table, esm.LoadOrderOptions{Workers: 2})
	require.NoError(t, err)
	require.Len(t, files, 3)

	for i, f := range files {
		assert.Equal(t, paths[i], f.Path, "results keep load order")
	}
	assert.Len(t, files[0].Records, 3)
	assert.Equal(t, esm.ReferenceID{Index: 1, FileIndex: 0}, files[1].Records[1].Resolved)
	assert.Equal(t, esm.ReferenceID{Index: 3, FileIndex: 1}, files[2].Records[1].Resolved)
}

func TestDecodeLoadOrderFailsFast(t *testing.T) {
	broken := testutil.NewFile(format.ShortHeaderSize).BeginTop("STAT").EndGroup().Raw(make([]byte, 8)).WriteTemp(t, "Broken.esp")
	paths := []string{plugin(t, "Base.esm", 1), broken}

	_, err := esm.DecodeLoadOrder(context.Background(), paths, nil, esm.LoadOrderOptions{})
	require.ErrorIs(t, err, esm.ErrBadSignature)
	assert.Contains(t, err.Error(), "Broken.esp")
}

func TestDecodeLoadOrderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := esm.DecodeLoadOrder(ctx, []string{plugin(t, "Base.esm", 1)}, nil, esm.LoadOrderOptions{})
	require.ErrorIs(t, err, context.Canceled)
}
