package reader

import (
	"errors"
	"sync"
	"time"

	"github.com/joshuapare/esmkit/pkg/types"
)

// diagnosticCollector accumulates diagnostics while a file is read. Unlike a
// strict decoder the reader never drops a record silently, so the collector
// is always present.
type diagnosticCollector struct {
	report *types.DiagnosticReport
	mu     sync.Mutex // Diagnostics may be called from another goroutine
}

func newDiagnosticCollector(size int64) *diagnosticCollector {
	report := types.NewDiagnosticReport()
	report.FileSize = size
	return &diagnosticCollector{report: report}
}

func (dc *diagnosticCollector) record(d types.Diagnostic) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.report.Add(d)
}

// getReport finalizes and returns the report.
func (dc *diagnosticCollector) getReport(elapsed time.Duration) *types.DiagnosticReport {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.report.ScanTime = elapsed
	dc.report.Finalize()
	return dc.report
}

func frameContext(f types.Frame, path string) *types.DiagContext {
	return &types.DiagContext{
		RecordType: f.Header.Type,
		RecordID:   f.Header.ID,
		GroupPath:  path,
	}
}

// skipped records a record that was framed but not decoded.
func (dc *diagnosticCollector) skipped(f types.Frame, path string) {
	d := types.Diagnostic{
		Severity:  types.SevInfo,
		Category:  types.DiagRecord,
		Offset:    uint64(f.Offset),
		Structure: f.Header.Type.String(),
		Issue:     "record " + f.Skip.String(),
		Context:   frameContext(f, path),
		Recovery:  &types.Recovery{Type: types.RecoverySkip, Description: "record not decoded"},
	}
	if f.Skip == types.SkipMalformed {
		d.Severity = types.SevError
		if types.IsKind(f.Err, types.ErrKindCorruptCompression) {
			d.Category = types.DiagCompression
		}
		if f.Err != nil {
			d.Issue = f.Err.Error()
		}
		d.Recovery.Description = "record skipped, reading resumes at its declared end"
	}
	dc.record(d)
}

// realigned records a loader that stopped short of the record end.
func (dc *diagnosticCollector) realigned(f types.Frame, consumed, size int, path string) {
	dc.record(types.Diagnostic{
		Severity:  types.SevWarning,
		Category:  types.DiagRecord,
		Offset:    uint64(f.Offset),
		Structure: f.Header.Type.String(),
		Issue:     "loader left body bytes unread",
		Expected:  size,
		Actual:    consumed,
		Context:   frameContext(f, path),
		Recovery:  &types.Recovery{Type: types.RecoveryRealign, Description: "cursor moved to declared record end"},
	})
}

// unresolved records a reference id whose file slot is not in the remap table.
func (dc *diagnosticCollector) unresolved(f types.Frame, path string) {
	dc.record(types.Diagnostic{
		Severity:  types.SevWarning,
		Category:  types.DiagReference,
		Offset:    uint64(f.Offset),
		Structure: f.Header.Type.String(),
		Issue:     "content file index not in remap table",
		Actual:    f.Header.ID.FileIndex,
		Context:   frameContext(f, path),
	})
}

// critical records the error that stopped the reader.
func (dc *diagnosticCollector) critical(off int64, err error, path string) {
	structure := "GRUP"
	var fe *types.FormatError
	if errors.As(err, &fe) && !fe.Tag.IsZero() {
		structure = fe.Tag.String()
	}
	dc.record(types.Diagnostic{
		Severity:  types.SevCritical,
		Category:  types.DiagFraming,
		Offset:    uint64(off),
		Structure: structure,
		Issue:     err.Error(),
		Context:   &types.DiagContext{GroupPath: path},
		Recovery:  &types.Recovery{Type: types.RecoveryAbort, Description: "remaining input not read"},
	})
}
