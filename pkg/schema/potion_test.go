package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/esmkit/internal/buf"
	"github.com/joshuapare/esmkit/internal/format"
	"github.com/joshuapare/esmkit/pkg/types"
)

func samplePotion() *types.Potion {
	return &types.Potion{
		Meta:        types.Meta{ID: types.ReferenceID{Index: 0x777}},
		EditorID:    "PotionCureDisease",
		FullName:    types.Str("Cure Disease Potion"),
		Model:       `Clutter\Potions\Potion01.nif`,
		BoundRadius: 4.25,
		Icon:        `Clutter\Potions\IconPotion01.dds`,
		PickUpSound: types.ReferenceID{Index: 0x10},
		DropSound:   types.ReferenceID{Index: 0x11},
		Weight:      0.5,
		HasData:     true,
		Item: &types.EnchantedItem{
			Value: 35, Flags: 1, Extended: true,
			Withdrawal:     types.ReferenceID{Index: 0x22, FileIndex: 1},
			ChanceAddition: 0.25,
			Sound:          types.ReferenceID{Index: 0x23},
		},
		Effects: []types.Effect{
			{
				ID:     0x4E435543, // "CUDI"
				Params: &types.EffectParams{Code: types.NewTag("CUDI"), Magnitude: 5, Duration: 10},
			},
			{
				ID:     0x4546455A,
				Params: &types.EffectParams{Code: types.NewTag("ZEFE"), Magnitude: 1, Area: 2, Range: 1, ActorValue: -1},
				Script: &types.ScriptEffect{
					Script:       types.ReferenceID{Index: 0x55},
					School:       3,
					VisualEffect: types.NewTag("SEFF"),
					Flags:        1,
					Name:         types.Str("Scripted Heal"),
				},
			},
			{
				ID:     0x12,
				Params: &types.EffectParams{Compact: true, Magnitude: 0x40A00000, Area: 0, Duration: 30},
			},
		},
	}
}

func TestPotionRoundTrip(t *testing.T) {
	want := samplePotion()

	w := NewSubrecordWriter(false)
	require.NoError(t, EncodePotion(want, w))

	h := types.RecordHeader{Type: types.TagPotion, ID: want.ID, Size: uint32(len(w.Bytes()))}
	got, err := LoadPotion(NewSubrecordIterator(h, w.Bytes(), false))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPotionEffectsKeepInputOrder(t *testing.T) {
	var body []byte
	body = append(body, sub("EDID", 2, []byte("p\x00"))...)
	for _, id := range []uint32{3, 1, 2} {
		body = append(body, sub("EFID", 4, buf.AppendU32LE(nil, id))...)
	}
	rec, err := LoadPotion(iter(body))
	require.NoError(t, err)

	p := rec.(*types.Potion)
	require.Len(t, p.Effects, 3)
	assert.Equal(t, uint32(3), p.Effects[0].ID)
	assert.Equal(t, uint32(1), p.Effects[1].ID)
	assert.Equal(t, uint32(2), p.Effects[2].ID)
}

func TestPotionShortEnchantment(t *testing.T) {
	enit := buf.AppendU32LE(nil, 12)
	enit = buf.AppendU32LE(enit, 0)
	body := append(sub("EDID", 2, []byte("p\x00")), sub("ENIT", 8, enit)...)

	rec, err := LoadPotion(iter(body))
	require.NoError(t, err)
	p := rec.(*types.Potion)
	require.NotNil(t, p.Item)
	assert.Equal(t, int32(12), p.Item.Value)
	assert.False(t, p.Item.Extended)
}

func TestPotionEffectParamsWithoutEffect(t *testing.T) {
	body := append(sub("EDID", 2, []byte("p\x00")), sub("EFIT", 12, make([]byte, 12))...)
	_, err := LoadPotion(iter(body))
	require.ErrorIs(t, err, format.ErrMissingField)
}

func TestPotionLocalizedNames(t *testing.T) {
	want := &types.Potion{
		EditorID: "Loc",
		FullName: types.LString{ID: 0x00000A01, Localized: true},
		Effects: []types.Effect{{
			ID:     7,
			Script: &types.ScriptEffect{Short: true, Name: types.LString{ID: 0x0B, Localized: true}},
		}},
	}
	w := NewSubrecordWriter(true)
	require.NoError(t, EncodePotion(want, w))

	got, err := LoadPotion(NewSubrecordIterator(types.RecordHeader{Type: types.TagPotion}, w.Bytes(), true))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPotionFullNameAfterScriptEffect(t *testing.T) {
	scit := buf.AppendU32LE(nil, 0x55)
	body := sub("EDID", 2, []byte("p\x00"))
	body = append(body, sub("EFID", 4, buf.AppendU32LE(nil, 7))...)
	body = append(body, sub("SCIT", 4, scit)...)
	body = append(body, sub("FULL", 7, []byte("Script\x00"))...)
	body = append(body, sub("DATA", 4, buf.AppendF32LE(nil, 1))...)
	body = append(body, sub("FULL", 7, []byte("Potion\x00"))...)

	rec, err := LoadPotion(iter(body))
	require.NoError(t, err)
	p := rec.(*types.Potion)
	require.Len(t, p.Effects, 1)
	require.NotNil(t, p.Effects[0].Script)
	assert.Equal(t, "Script", p.Effects[0].Script.Name.Text)
	assert.Equal(t, "Potion", p.FullName.Text, "FULL not directly after SCIT names the potion")
}
