package schema

import (
	"fmt"

	"github.com/joshuapare/esmkit/internal/format"
	"github.com/joshuapare/esmkit/pkg/types"
)

// LoadGlobal decodes a GLOB body: EDID, FNAM and FLTV, all required, in
// that order. Anything after FLTV is ignored.
func LoadGlobal(it *SubrecordIterator) (types.Record, error) {
	g := &types.Global{Meta: it.Header().Meta()}

	sr, err := it.Expect(tagEDID)
	if err != nil {
		return nil, err
	}
	if g.EditorID, err = it.ZString(sr); err != nil {
		return nil, err
	}

	if sr, err = it.Expect(tagFNAM); err != nil {
		return nil, err
	}
	if g.Type, err = it.U8(sr); err != nil {
		return nil, err
	}
	switch g.Type {
	case types.GlobalShort, types.GlobalLong, types.GlobalFloat:
	default:
		return nil, fieldErr(it, sr, fmt.Errorf("global type %q: %w", g.Type, format.ErrMissingField))
	}

	if sr, err = it.Expect(tagFLTV); err != nil {
		return nil, err
	}
	if g.Value, err = it.F32(sr); err != nil {
		return nil, err
	}
	return g, nil
}

// EncodeGlobal writes a GLOB body.
func EncodeGlobal(rec types.Record, w *SubrecordWriter) error {
	g, ok := rec.(*types.Global)
	if !ok {
		return wrongType(types.TagGlobal, rec)
	}
	w.ZString(tagEDID, g.EditorID)
	w.U8(tagFNAM, g.Type)
	w.F32(tagFLTV, g.Value)
	return w.Err()
}
