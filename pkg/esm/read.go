package esm

import (
	"context"
	"errors"
	"io"

	"github.com/joshuapare/esmkit/pkg/types"
)

// File is the decoded content of one content file.
type File struct {
	Path   string
	Header *FileHeader

	// Records holds every FrameRecord frame in file order, file header
	// included.
	Records []Frame

	// Skipped holds the deleted, ignored and malformed record frames.
	Skipped []Frame

	Diagnostics *DiagnosticReport
}

// ReadAll drains r. Group frames are dropped; records and skipped records
// are kept in file order. ctx is checked between frames.
func ReadAll(ctx context.Context, r *Reader) (*File, error) {
	out := &File{Header: r.Header()}
	for {
		f, err := r.NextContext(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			out.Diagnostics = r.Diagnostics()
			return out, err
		}
		switch f.Kind {
		case types.FrameRecord:
			out.Records = append(out.Records, f)
		case types.FrameSkipped:
			out.Skipped = append(out.Skipped, f)
		}
	}
	out.Diagnostics = r.Diagnostics()
	return out, nil
}

// ReadFile opens path and reads it whole.
func ReadFile(ctx context.Context, path string, opts Options) (*File, error) {
	r, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	f, err := ReadAll(ctx, r)
	if f != nil {
		f.Path = path
	}
	return f, err
}
