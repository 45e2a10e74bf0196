package schema

import (
	"io"

	"github.com/joshuapare/esmkit/pkg/types"
)

// LoadStatic decodes a STAT body.
func LoadStatic(it *SubrecordIterator) (types.Record, error) {
	s := &types.Static{Meta: it.Header().Meta()}

	sr, err := it.Expect(tagEDID)
	if err != nil {
		return nil, err
	}
	if s.EditorID, err = it.ZString(sr); err != nil {
		return nil, err
	}

	for {
		sr, err := it.Next()
		if err == io.EOF {
			return s, nil
		}
		if err != nil {
			return nil, err
		}
		switch sr.Tag {
		case tagMODL:
			s.Model, err = it.ZString(sr)
		case tagMODB:
			s.BoundRadius, err = it.F32(sr)
		}
		if err != nil {
			return nil, err
		}
	}
}

// EncodeStatic writes a STAT body.
func EncodeStatic(rec types.Record, w *SubrecordWriter) error {
	s, ok := rec.(*types.Static)
	if !ok {
		return wrongType(types.TagStatic, rec)
	}
	w.ZString(tagEDID, s.EditorID)
	w.OptZString(tagMODL, s.Model)
	w.OptF32(tagMODB, s.BoundRadius)
	return w.Err()
}
