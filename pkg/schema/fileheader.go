package schema

import (
	"io"

	"github.com/joshuapare/esmkit/internal/buf"
	"github.com/joshuapare/esmkit/pkg/types"
)

const (
	hedrSize       = 12
	masterDataSize = 8
)

// LoadFileHeader decodes the TES4 body. HEDR is required and comes first.
// Each MAST may be followed by a DATA carrying the master's size.
func LoadFileHeader(it *SubrecordIterator) (types.Record, error) {
	h := &types.FileHeader{Meta: it.Header().Meta()}

	sr, err := it.Expect(tagHEDR)
	if err != nil {
		return nil, err
	}
	if err := need(it, sr, hedrSize); err != nil {
		return nil, err
	}
	h.Version = buf.F32LE(sr.Data[0:])
	h.RecordCount = buf.I32LE(sr.Data[4:])
	h.NextObjectID = buf.U32LE(sr.Data[8:])

	for {
		sr, err := it.Next()
		if err == io.EOF {
			return h, nil
		}
		if err != nil {
			return nil, err
		}
		switch sr.Tag {
		case tagCNAM:
			h.Author, err = it.ZString(sr)
		case tagSNAM:
			h.Description, err = it.ZString(sr)
		case tagMAST:
			var name string
			if name, err = it.ZString(sr); err == nil {
				h.Masters = append(h.Masters, types.Master{Name: name})
			}
		case tagDATA:
			if len(h.Masters) == 0 {
				continue
			}
			if err = need(it, sr, masterDataSize); err == nil {
				h.Masters[len(h.Masters)-1].Size = buf.U64LE(sr.Data)
			}
		case tagONAM:
			for off := 0; off+4 <= len(sr.Data); off += 4 {
				h.Overrides = append(h.Overrides, types.RefIDFromRaw(buf.U32LE(sr.Data[off:])))
			}
		}
		if err != nil {
			return nil, err
		}
	}
}

// EncodeFileHeader writes the TES4 body.
func EncodeFileHeader(rec types.Record, w *SubrecordWriter) error {
	h, ok := rec.(*types.FileHeader)
	if !ok {
		return wrongType(types.TagFileHeader, rec)
	}
	hedr := buf.AppendF32LE(nil, h.Version)
	hedr = buf.AppendU32LE(hedr, uint32(h.RecordCount))
	hedr = buf.AppendU32LE(hedr, h.NextObjectID)
	w.Raw(tagHEDR, hedr)
	w.OptZString(tagCNAM, h.Author)
	w.OptZString(tagSNAM, h.Description)
	for _, m := range h.Masters {
		w.ZString(tagMAST, m.Name)
		w.Raw(tagDATA, buf.AppendU64LE(nil, m.Size))
	}
	if len(h.Overrides) > 0 {
		var onam []byte
		for _, id := range h.Overrides {
			onam = buf.AppendU32LE(onam, id.Raw())
		}
		w.Raw(tagONAM, onam)
	}
	return w.Err()
}
