package esm

import (
	"github.com/joshuapare/esmkit/internal/reader"
	"github.com/joshuapare/esmkit/internal/writer"
	"github.com/joshuapare/esmkit/pkg/schema"
)

// Options controls how content files are opened.
type Options struct {
	OpenOptions

	// Registry maps record tags to loaders. Nil selects schema.Default().
	Registry *schema.Registry
}

// Open maps the content file at path and decodes its file header.
// The caller must call Close when done.
//
// Example:
//
//	r, err := esm.Open("Oblivion.esm", esm.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	fmt.Println(r.Header().Author)
func Open(path string, opts Options) (*Reader, error) {
	return reader.Open(path, opts.OpenOptions, opts.Registry)
}

// OpenBytes reads a content file held in memory. buf must not be modified
// while the reader is in use.
func OpenBytes(buf []byte, opts Options) (*Reader, error) {
	return reader.OpenBytes(buf, opts.OpenOptions, opts.Registry)
}

// Writer assembles a content file; see writer.Builder.
type Writer = writer.Builder

// WriterOptions configures NewWriter.
type WriterOptions = writer.Options

// NewWriter returns an empty Writer.
//
// Example:
//
//	w, _ := esm.NewWriter(esm.WriterOptions{HeaderSize: 24})
//	w.Record(&esm.FileHeader{Version: 1.7, Author: "me"})
//	err := w.Commit(&esm.FileSink{Path: "Tiny.esp"})
func NewWriter(opts WriterOptions) (*Writer, error) {
	return writer.NewBuilder(opts)
}
