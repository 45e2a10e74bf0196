package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// Diagnostics
// -----------------------------------------------------------------------------
//
// Every record the reader cannot hand to the caller as a decoded value is
// reported here: deleted and ignored records at info level, realigned and
// skipped records as warnings and errors, and the fatal framing error (if
// any) as critical. Nothing is dropped without an entry.

// Severity classifies how serious a diagnostic issue is.
type Severity int

const (
	SevInfo     Severity = iota // unusual but valid (deleted/ignored record)
	SevWarning                  // recovered without data loss (cursor realigned)
	SevError                    // a record was lost (skipped as malformed)
	SevCritical                 // framing broke; the rest of the file is unreadable
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	case SevCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the severity for JSON output.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// DiagCategory classifies the type of issue found.
type DiagCategory int

const (
	DiagFraming     DiagCategory = iota // group/record header accounting
	DiagRecord                          // subrecord grammar inside one record
	DiagCompression                     // compressed body problems
	DiagReference                       // reference id resolution
)

func (c DiagCategory) String() string {
	switch c {
	case DiagFraming:
		return "framing"
	case DiagRecord:
		return "record"
	case DiagCompression:
		return "compression"
	case DiagReference:
		return "reference"
	default:
		return "unknown"
	}
}

// MarshalText renders the category for JSON output.
func (c DiagCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// RecoveryType says what the reader did about an issue.
type RecoveryType int

const (
	RecoverySkip    RecoveryType = iota // record dropped, stream continues after it
	RecoveryRealign                     // cursor forced to the declared record end
	RecoveryRaw                         // id left unresolved
	RecoveryAbort                       // file read stopped
)

func (r RecoveryType) String() string {
	switch r {
	case RecoverySkip:
		return "skip"
	case RecoveryRealign:
		return "realign"
	case RecoveryRaw:
		return "raw"
	case RecoveryAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// MarshalText renders the recovery type for JSON output.
func (r RecoveryType) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Recovery describes the action taken.
type Recovery struct {
	Type        RecoveryType `json:"type"`
	Description string       `json:"description"`
}

// DiagContext locates an issue in the record hierarchy.
type DiagContext struct {
	RecordType Tag         `json:"record_type,omitempty"`
	RecordID   ReferenceID `json:"record_id,omitempty"`
	GroupPath  string      `json:"group_path,omitempty"` // e.g. "Top:CELL/InteriorCellBlock:block 0"
}

// Diagnostic is a single issue found while reading a file.
type Diagnostic struct {
	Severity Severity     `json:"severity"`
	Category DiagCategory `json:"category"`

	Offset    uint64 `json:"offset"`    // absolute byte offset of the frame
	Structure string `json:"structure"` // "GRUP", "TES4", record tag, or "EDID" etc.

	Issue    string      `json:"issue"`
	Expected interface{} `json:"expected,omitempty"`
	Actual   interface{} `json:"actual,omitempty"`

	Context  *DiagContext `json:"context,omitempty"`
	Recovery *Recovery    `json:"recovery,omitempty"`
}

// DiagnosticReport collects all diagnostics found while reading one file.
type DiagnosticReport struct {
	FilePath string        `json:"file_path,omitempty"`
	FileSize int64         `json:"file_size"`
	ScanTime time.Duration `json:"scan_time"`

	Diagnostics []Diagnostic `json:"diagnostics"`
	Summary     DiagSummary  `json:"summary"`

	BySeverity  map[Severity][]Diagnostic `json:"-"`
	ByStructure map[string][]Diagnostic   `json:"-"`
	ByOffset    []Diagnostic              `json:"-"`
}

// DiagSummary provides quick statistics.
type DiagSummary struct {
	Critical int `json:"critical"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`

	Skipped   int `json:"skipped"`
	Realigned int `json:"realigned"`
}

// NewDiagnosticReport creates an empty report.
func NewDiagnosticReport() *DiagnosticReport {
	return &DiagnosticReport{
		BySeverity:  make(map[Severity][]Diagnostic),
		ByStructure: make(map[string][]Diagnostic),
	}
}

// Add adds a diagnostic to the report and updates indices.
func (r *DiagnosticReport) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)

	switch d.Severity {
	case SevCritical:
		r.Summary.Critical++
	case SevError:
		r.Summary.Errors++
	case SevWarning:
		r.Summary.Warnings++
	case SevInfo:
		r.Summary.Info++
	}
	if d.Recovery != nil {
		switch d.Recovery.Type {
		case RecoverySkip:
			r.Summary.Skipped++
		case RecoveryRealign:
			r.Summary.Realigned++
		}
	}

	r.BySeverity[d.Severity] = append(r.BySeverity[d.Severity], d)
	r.ByStructure[d.Structure] = append(r.ByStructure[d.Structure], d)
}

// Finalize sorts diagnostics by offset and prepares for output.
func (r *DiagnosticReport) Finalize() {
	r.ByOffset = make([]Diagnostic, len(r.Diagnostics))
	copy(r.ByOffset, r.Diagnostics)
	sort.SliceStable(r.ByOffset, func(i, j int) bool {
		return r.ByOffset[i].Offset < r.ByOffset[j].Offset
	})
}

// HasCriticalIssues returns true if any critical issues were found.
func (r *DiagnosticReport) HasCriticalIssues() bool {
	return r.Summary.Critical > 0
}

// HasErrors returns true if any errors or critical issues were found.
func (r *DiagnosticReport) HasErrors() bool {
	return r.Summary.Critical > 0 || r.Summary.Errors > 0
}

// HasAnyIssues returns true if any issues were found (including warnings and info).
func (r *DiagnosticReport) HasAnyIssues() bool {
	return len(r.Diagnostics) > 0
}

// -----------------------------------------------------------------------------
// Output Formatters
// -----------------------------------------------------------------------------

// FormatJSON returns the report as formatted JSON (2-space indentation).
func (r *DiagnosticReport) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatText returns a human-readable text report.
func (r *DiagnosticReport) FormatText() string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 79) + "\n")
	b.WriteString("Content File Diagnostic Report\n")
	b.WriteString(strings.Repeat("=", 79) + "\n\n")

	if r.FilePath != "" {
		fmt.Fprintf(&b, "File:      %s\n", r.FilePath)
	}
	fmt.Fprintf(&b, "Size:      %d bytes\n", r.FileSize)
	fmt.Fprintf(&b, "Scan time: %v\n\n", r.ScanTime)

	b.WriteString("SUMMARY\n")
	b.WriteString(strings.Repeat("-", 79) + "\n")
	fmt.Fprintf(&b, "  Critical: %d\n", r.Summary.Critical)
	fmt.Fprintf(&b, "  Errors:   %d\n", r.Summary.Errors)
	fmt.Fprintf(&b, "  Warnings: %d\n", r.Summary.Warnings)
	fmt.Fprintf(&b, "  Info:     %d\n\n", r.Summary.Info)

	if len(r.Diagnostics) == 0 {
		b.WriteString("No issues found.\n")
		return b.String()
	}

	b.WriteString("DIAGNOSTICS\n")
	b.WriteString(strings.Repeat("-", 79) + "\n\n")

	for _, severity := range []Severity{SevCritical, SevError, SevWarning, SevInfo} {
		diags := r.BySeverity[severity]
		if len(diags) == 0 {
			continue
		}

		fmt.Fprintf(&b, "%s (%d)\n", severity, len(diags))
		b.WriteString(strings.Repeat("~", 79) + "\n")

		for i, d := range diags {
			fmt.Fprintf(&b, "\n%d. [%s/%s] at offset 0x%X\n", i+1, d.Structure, d.Category, d.Offset)
			fmt.Fprintf(&b, "   %s\n", d.Issue)
			if d.Expected != nil {
				fmt.Fprintf(&b, "   Expected: %v\n", d.Expected)
			}
			if d.Actual != nil {
				fmt.Fprintf(&b, "   Actual:   %v\n", d.Actual)
			}
			if d.Context != nil {
				if !d.Context.RecordType.IsZero() {
					fmt.Fprintf(&b, "   Record:   %s %s\n", d.Context.RecordType, d.Context.RecordID)
				}
				if d.Context.GroupPath != "" {
					fmt.Fprintf(&b, "   Group:    %s\n", d.Context.GroupPath)
				}
			}
			if d.Recovery != nil {
				fmt.Fprintf(&b, "   Action:   %s (%s)\n", d.Recovery.Type, d.Recovery.Description)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// FormatTextCompact returns a compact one-line-per-issue text format.
func (r *DiagnosticReport) FormatTextCompact() string {
	var b strings.Builder

	for _, d := range r.ByOffset {
		fmt.Fprintf(&b, "0x%08X [%s/%s/%s] %s\n",
			d.Offset, d.Severity, d.Structure, d.Category, d.Issue)
	}

	if len(r.Diagnostics) == 0 {
		b.WriteString("No issues found.\n")
	}

	return b.String()
}
