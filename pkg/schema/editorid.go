package schema

import "github.com/joshuapare/esmkit/pkg/types"

// EditorID returns the editor id of rec, or "" when it has none. Raw records
// are scanned for their EDID subrecord; a malformed body yields "".
func EditorID(rec types.Record) string {
	switch r := rec.(type) {
	case *types.Door:
		return r.EditorID
	case *types.Potion:
		return r.EditorID
	case *types.Static:
		return r.EditorID
	case *types.Global:
		return r.EditorID
	case *types.RawRecord:
		it := NewSubrecordIterator(types.RecordHeader{Type: r.Type}, r.Body, false)
		for {
			sr, err := it.Next()
			if err != nil {
				return ""
			}
			if sr.Tag == tagEDID {
				s, err := it.ZString(sr)
				if err != nil {
					return ""
				}
				return s
			}
		}
	}
	return ""
}
