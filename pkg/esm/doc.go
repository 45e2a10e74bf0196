/*
Package esm reads and writes TES4-family content files (.esm master and
.esp plugin files).

# Reading

A Reader walks a file as a flat stream of frames: group entry and exit,
decoded records, and records that were framed but not decoded (deleted,
ignored or malformed). The first frame is always the file header.

	r, err := esm.Open("Oblivion.esm", esm.Options{})
	if err != nil {
	    log.Fatal(err)
	}
	defer r.Close()

	for {
	    f, err := r.Next()
	    if err == io.EOF {
	        break
	    }
	    if err != nil {
	        log.Fatal(err) // group framing broke; the rest is unreadable
	    }
	    if door, ok := f.Record.(*esm.Door); ok {
	        fmt.Println(door.EditorID, f.Resolved)
	    }
	}

Records whose tag has no registered loader come back as *RawRecord with
their body intact. A record that fails to decode is skipped, reported in a
FrameSkipped frame and in the reader's Diagnostics, and reading continues
at the next record.

# Reference ids

Every record carries a ReferenceID whose FileIndex is the slot of its
defining file in the load order the file was saved with. Pass a RemapTable
in Options to translate the record's own id at the reader boundary, or call
ResolveRecord to rewrite every reference field of a decoded record:

	table, _ := loadorder.Mapping(saved, current)
	err := esm.ResolveRecord(door, table)

# Custom record types

Loaders are plain functions over a SubrecordIterator, registered in an
immutable schema.Registry:

	reg, err := schema.Default().With(schema.Entry{Tag: types.NewTag("LIGH"), Load: loadLight})
	r, err := esm.Open(path, esm.Options{Registry: reg})

# Writing

A Writer encodes records and groups back to the wire format:

	w, _ := esm.NewWriter(esm.WriterOptions{HeaderSize: 20})
	w.Record(header)
	w.BeginGroup(esm.GroupHeader{Label: types.TagDoor, Type: esm.GroupTop})
	w.Record(door)
	w.EndGroup()
	err := w.Commit(&esm.FileSink{Path: "Out.esp"})
*/
package esm
