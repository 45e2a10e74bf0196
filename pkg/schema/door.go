package schema

import (
	"io"

	"github.com/joshuapare/esmkit/pkg/types"
)

// LoadDoor decodes a DOOR body. EDID is required and must come first; the
// remaining subrecords are optional and may appear in any order. TNAM may
// repeat and is accumulated in input order.
func LoadDoor(it *SubrecordIterator) (types.Record, error) {
	d := &types.Door{Meta: it.Header().Meta()}

	sr, err := it.Expect(tagEDID)
	if err != nil {
		return nil, err
	}
	if d.EditorID, err = it.ZString(sr); err != nil {
		return nil, err
	}

	for {
		sr, err := it.Next()
		if err == io.EOF {
			return d, nil
		}
		if err != nil {
			return nil, err
		}
		switch sr.Tag {
		case tagFULL:
			d.FullName, err = it.LString(sr)
		case tagMODL:
			d.Model, err = it.ZString(sr)
		case tagMODB:
			d.BoundRadius, err = it.F32(sr)
		case tagSCRI:
			d.Script, err = it.RefID(sr)
		case tagSNAM:
			d.OpenSound, err = it.RefID(sr)
		case tagANAM:
			d.CloseSound, err = it.RefID(sr)
		case tagBNAM:
			d.LoopSound, err = it.RefID(sr)
		case tagFNAM:
			var f uint8
			f, err = it.U8(sr)
			d.DoorFlags = types.DoorFlags(f)
		case tagTNAM:
			var id types.ReferenceID
			if id, err = it.RefID(sr); err == nil {
				d.RandomTeleports = append(d.RandomTeleports, id)
			}
		}
		if err != nil {
			return nil, err
		}
	}
}

// EncodeDoor writes a DOOR body in canonical order.
func EncodeDoor(rec types.Record, w *SubrecordWriter) error {
	d, ok := rec.(*types.Door)
	if !ok {
		return wrongType(types.TagDoor, rec)
	}
	w.ZString(tagEDID, d.EditorID)
	w.OptLString(tagFULL, d.FullName)
	w.OptZString(tagMODL, d.Model)
	w.OptF32(tagMODB, d.BoundRadius)
	w.OptRefID(tagSCRI, d.Script)
	w.OptRefID(tagSNAM, d.OpenSound)
	w.OptRefID(tagANAM, d.CloseSound)
	w.OptRefID(tagBNAM, d.LoopSound)
	if d.DoorFlags != 0 {
		w.U8(tagFNAM, uint8(d.DoorFlags))
	}
	for _, id := range d.RandomTeleports {
		w.RefID(tagTNAM, id)
	}
	return w.Err()
}
