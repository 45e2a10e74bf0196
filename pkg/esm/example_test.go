package esm_test

import (
	"fmt"
	"io"

	"github.com/joshuapare/esmkit/pkg/esm"
	"github.com/joshuapare/esmkit/pkg/types"
)

// Example writes a tiny plugin in memory and reads it back.
func Example() {
	w, err := esm.NewWriter(esm.WriterOptions{HeaderSize: 20})
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = w.Record(&esm.FileHeader{Version: 1.0, Author: "example"})
	_ = w.BeginGroup(esm.GroupHeader{Label: types.TagDoor, Type: esm.GroupTop})
	_ = w.Record(&esm.Door{Meta: esm.Meta{ID: esm.ReferenceID{Index: 5}}, EditorID: "Door01", FullName: types.Str("Gate")})
	_ = w.EndGroup()

	var sink esm.MemSink
	if err := w.Commit(&sink); err != nil {
		fmt.Println(err)
		return
	}

	r, err := esm.OpenBytes(sink.Buf, esm.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer r.Close()

	for {
		f, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Println(err)
			return
		}
		switch rec := f.Record.(type) {
		case *esm.FileHeader:
			fmt.Println("author:", rec.Author)
		case *esm.Door:
			fmt.Printf("door %s %q at depth %d\n", f.Resolved, rec.EditorID, f.Depth)
		}
	}
	// Output:
	// author: example
	// door 00000005 "Door01" at depth 1
}

// ExampleResolve shows remapping a reference id saved against another load
// order.
func ExampleResolve() {
	id := esm.ReferenceID{Index: 12, FileIndex: 3}

	got, err := esm.Resolve(id, esm.RemapTable{3: 1})
	fmt.Println(got, err)

	_, err = esm.Resolve(id, esm.RemapTable{})
	fmt.Println(err)
	// Output:
	// 0100000C <nil>
	// esm: reference 0300000C names content file 3
}
