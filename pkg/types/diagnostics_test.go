package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *DiagnosticReport {
	r := NewDiagnosticReport()
	r.FilePath = "Plugin.esp"
	r.Add(Diagnostic{
		Severity: SevError, Category: DiagCompression, Offset: 0x80, Structure: "DOOR",
		Issue:    "corrupt compressed body",
		Context:  &DiagContext{RecordType: TagDoor, RecordID: ReferenceID{Index: 5}, GroupPath: "Top:DOOR"},
		Recovery: &Recovery{Type: RecoverySkip, Description: "record skipped"},
	})
	r.Add(Diagnostic{
		Severity: SevInfo, Category: DiagRecord, Offset: 0x40, Structure: "DOOR",
		Issue:    "record deleted",
		Recovery: &Recovery{Type: RecoverySkip},
	})
	r.Add(Diagnostic{
		Severity: SevWarning, Category: DiagRecord, Offset: 0x60, Structure: "GLOB",
		Issue: "loader left body bytes unread", Expected: 20, Actual: 14,
		Recovery: &Recovery{Type: RecoveryRealign},
	})
	r.Finalize()
	return r
}

func TestDiagnosticReportSummary(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, DiagSummary{Errors: 1, Warnings: 1, Info: 1, Skipped: 2, Realigned: 1}, r.Summary)
	assert.True(t, r.HasErrors())
	assert.False(t, r.HasCriticalIssues())
	assert.Len(t, r.ByStructure["DOOR"], 2)

	require.Len(t, r.ByOffset, 3)
	assert.Equal(t, uint64(0x40), r.ByOffset[0].Offset)
	assert.Equal(t, uint64(0x80), r.ByOffset[2].Offset)
}

func TestDiagnosticReportFormats(t *testing.T) {
	r := sampleReport()

	text := r.FormatText()
	assert.Contains(t, text, "Content File Diagnostic Report")
	assert.Contains(t, text, "Group:    Top:DOOR")

	compact := r.FormatTextCompact()
	assert.Contains(t, compact, "0x00000040")

	out, err := r.FormatJSON()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Plugin.esp", decoded["file_path"])
	diags := decoded["diagnostics"].([]any)
	first := diags[0].(map[string]any)
	assert.Equal(t, "ERROR", first["severity"])
	assert.Equal(t, "compression", first["category"])
}

func TestEmptyReport(t *testing.T) {
	r := NewDiagnosticReport()
	r.Finalize()
	assert.False(t, r.HasAnyIssues())
	assert.Contains(t, r.FormatText(), "No issues found.")
}
