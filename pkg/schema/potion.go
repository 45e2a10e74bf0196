package schema

import (
	"fmt"
	"io"

	"github.com/joshuapare/esmkit/internal/buf"
	"github.com/joshuapare/esmkit/internal/format"
	"github.com/joshuapare/esmkit/pkg/types"
)

const (
	enitShortSize  = 8
	enitLongSize   = 20
	efitLongSize   = 24
	efitShortSize  = 12
	scitLongSize   = 16
	scitScriptSize = 4
)

// LoadPotion decodes an ALCH body. EDID is required and must come first.
// Effect blocks (EFID followed by EFIT, SCIT and the script effect's FULL)
// may repeat and are accumulated in input order.
func LoadPotion(it *SubrecordIterator) (types.Record, error) {
	p := &types.Potion{Meta: it.Header().Meta()}

	sr, err := it.Expect(tagEDID)
	if err != nil {
		return nil, err
	}
	if p.EditorID, err = it.ZString(sr); err != nil {
		return nil, err
	}

	prev := tagEDID
	for {
		sr, err := it.Next()
		if err == io.EOF {
			return p, nil
		}
		if err != nil {
			return nil, err
		}
		switch sr.Tag {
		case tagFULL:
			// A script effect's name sits directly after its SCIT.
			if eff := lastEffect(p); prev == tagSCIT && eff != nil && eff.Script != nil {
				eff.Script.Name, err = it.LString(sr)
			} else {
				p.FullName, err = it.LString(sr)
			}
		case tagMODL:
			p.Model, err = it.ZString(sr)
		case tagMODB:
			p.BoundRadius, err = it.F32(sr)
		case tagICON:
			p.Icon, err = it.ZString(sr)
		case tagMICO:
			p.MiniIcon, err = it.ZString(sr)
		case tagYNAM:
			p.PickUpSound, err = it.RefID(sr)
		case tagZNAM:
			p.DropSound, err = it.RefID(sr)
		case tagSCRI:
			p.Script, err = it.RefID(sr)
		case tagDATA:
			p.Weight, err = it.F32(sr)
			p.HasData = err == nil
		case tagENIT:
			p.Item, err = loadEnchantedItem(it, sr)
		case tagEFID:
			var id uint32
			if id, err = it.U32(sr); err == nil {
				p.Effects = append(p.Effects, types.Effect{ID: id})
			}
		case tagEFIT:
			eff, e := effectFor(it, p, sr)
			if e != nil {
				return nil, e
			}
			eff.Params, err = loadEffectParams(it, sr)
		case tagSCIT:
			eff, e := effectFor(it, p, sr)
			if e != nil {
				return nil, e
			}
			eff.Script, err = loadScriptEffect(it, sr)
		}
		if err != nil {
			return nil, err
		}
		prev = sr.Tag
	}
}

func lastEffect(p *types.Potion) *types.Effect {
	if len(p.Effects) == 0 {
		return nil
	}
	return &p.Effects[len(p.Effects)-1]
}

// effectFor returns the effect an EFIT/SCIT belongs to. Both must follow
// an EFID.
func effectFor(it *SubrecordIterator, p *types.Potion, sr Subrecord) (*types.Effect, error) {
	eff := lastEffect(p)
	if eff == nil {
		return nil, fieldErr(it, sr, fmt.Errorf("%s before any EFID: %w", sr.Tag, format.ErrMissingField))
	}
	return eff, nil
}

func loadEnchantedItem(it *SubrecordIterator, sr Subrecord) (*types.EnchantedItem, error) {
	if err := need(it, sr, enitShortSize); err != nil {
		return nil, err
	}
	d := sr.Data
	item := &types.EnchantedItem{
		Value: buf.I32LE(d[0:]),
		Flags: buf.U32LE(d[4:]),
	}
	if len(d) >= enitLongSize {
		item.Extended = true
		item.Withdrawal = types.RefIDFromRaw(buf.U32LE(d[8:]))
		item.ChanceAddition = buf.F32LE(d[12:])
		item.Sound = types.RefIDFromRaw(buf.U32LE(d[16:]))
	}
	return item, nil
}

func loadEffectParams(it *SubrecordIterator, sr Subrecord) (*types.EffectParams, error) {
	d := sr.Data
	if len(d) >= efitLongSize {
		ep := &types.EffectParams{
			Magnitude:  buf.U32LE(d[4:]),
			Area:       buf.U32LE(d[8:]),
			Duration:   buf.U32LE(d[12:]),
			Range:      buf.U32LE(d[16:]),
			ActorValue: buf.I32LE(d[20:]),
		}
		copy(ep.Code[:], d[:4])
		return ep, nil
	}
	if err := need(it, sr, efitShortSize); err != nil {
		return nil, err
	}
	return &types.EffectParams{
		Compact:   true,
		Magnitude: buf.U32LE(d[0:]),
		Area:      buf.U32LE(d[4:]),
		Duration:  buf.U32LE(d[8:]),
	}, nil
}

func loadScriptEffect(it *SubrecordIterator, sr Subrecord) (*types.ScriptEffect, error) {
	if err := need(it, sr, scitScriptSize); err != nil {
		return nil, err
	}
	d := sr.Data
	se := &types.ScriptEffect{Script: types.RefIDFromRaw(buf.U32LE(d))}
	if len(d) < scitLongSize {
		se.Short = true
		return se, nil
	}
	se.School = buf.U32LE(d[4:])
	copy(se.VisualEffect[:], d[8:12])
	se.Flags = buf.U32LE(d[12:])
	return se, nil
}

// EncodePotion writes an ALCH body in canonical order.
func EncodePotion(rec types.Record, w *SubrecordWriter) error {
	p, ok := rec.(*types.Potion)
	if !ok {
		return wrongType(types.TagPotion, rec)
	}
	w.ZString(tagEDID, p.EditorID)
	w.OptLString(tagFULL, p.FullName)
	w.OptZString(tagMODL, p.Model)
	w.OptF32(tagMODB, p.BoundRadius)
	w.OptZString(tagICON, p.Icon)
	w.OptZString(tagMICO, p.MiniIcon)
	w.OptRefID(tagSCRI, p.Script)
	w.OptRefID(tagYNAM, p.PickUpSound)
	w.OptRefID(tagZNAM, p.DropSound)
	if p.HasData {
		w.F32(tagDATA, p.Weight)
	}
	if item := p.Item; item != nil {
		b := buf.AppendU32LE(nil, uint32(item.Value))
		b = buf.AppendU32LE(b, item.Flags)
		if item.Extended {
			b = buf.AppendU32LE(b, item.Withdrawal.Raw())
			b = buf.AppendF32LE(b, item.ChanceAddition)
			b = buf.AppendU32LE(b, item.Sound.Raw())
		}
		w.Raw(tagENIT, b)
	}
	for _, eff := range p.Effects {
		w.U32(tagEFID, eff.ID)
		if ep := eff.Params; ep != nil {
			var b []byte
			if !ep.Compact {
				b = append(b, ep.Code[:]...)
			}
			b = buf.AppendU32LE(b, ep.Magnitude)
			b = buf.AppendU32LE(b, ep.Area)
			b = buf.AppendU32LE(b, ep.Duration)
			if !ep.Compact {
				b = buf.AppendU32LE(b, ep.Range)
				b = buf.AppendU32LE(b, uint32(ep.ActorValue))
			}
			w.Raw(tagEFIT, b)
		}
		if se := eff.Script; se != nil {
			b := buf.AppendU32LE(nil, se.Script.Raw())
			if !se.Short {
				b = buf.AppendU32LE(b, se.School)
				b = append(b, se.VisualEffect[:]...)
				b = buf.AppendU32LE(b, se.Flags)
			}
			w.Raw(tagSCIT, b)
			w.OptLString(tagFULL, se.Name)
		}
	}
	return w.Err()
}
