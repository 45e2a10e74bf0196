package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/esmkit/pkg/esm"
)

var (
	recordsType    string
	recordsLimit   int
	recordsSkipped bool
)

func init() {
	cmd := newRecordsCmd()
	cmd.Flags().StringVarP(&recordsType, "type", "t", "", "Only list records of this tag (e.g. DOOR)")
	cmd.Flags().IntVarP(&recordsLimit, "limit", "n", 0, "Stop after this many records (0 = all)")
	cmd.Flags().BoolVar(&recordsSkipped, "skipped", false, "Include deleted, ignored and malformed records")
	rootCmd.AddCommand(cmd)
}

func newRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records <file>",
		Short: "List records with their ids and editor ids",
		Long: `The records command walks a content file and lists every record with its
offset, tag, reference id, editor id and flags.

Example:
  esmctl records Oblivion.esm --type DOOR
  esmctl records Mine.esp --skipped --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecords(args)
		},
	}
	return cmd
}

// RecordRow is one line of the records listing.
type RecordRow struct {
	Offset   int64  `json:"offset"`
	Depth    int    `json:"depth"`
	Tag      string `json:"tag"`
	ID       string `json:"id"`
	EditorID string `json:"editor_id,omitempty"`
	Flags    string `json:"flags,omitempty"`
	Skipped  string `json:"skipped,omitempty"`
	Error    string `json:"error,omitempty"`
}

func runRecords(args []string) error {
	filter, err := tagFilter(recordsType)
	if err != nil {
		return err
	}
	f, err := readFile(args[0])
	if err != nil {
		return err
	}

	frames := f.Records
	if recordsSkipped {
		frames = mergeByOffset(f.Records, f.Skipped)
	}

	var rows []RecordRow
	for _, fr := range frames {
		if filter != nil && fr.Header.Type != *filter {
			continue
		}
		rows = append(rows, recordRow(fr))
		if recordsLimit > 0 && len(rows) >= recordsLimit {
			break
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	for _, row := range rows {
		line := fmt.Sprintf("0x%08X %s%s %s", row.Offset, strings.Repeat("  ", row.Depth), row.Tag, row.ID)
		if row.EditorID != "" {
			line += fmt.Sprintf(" %q", row.EditorID)
		}
		if row.Flags != "" {
			line += " [" + row.Flags + "]"
		}
		if row.Skipped != "" {
			line += " (" + row.Skipped + ")"
		}
		printInfo("%s\n", line)
	}
	printVerbose("%d record(s)\n", len(rows))
	return nil
}

func recordRow(fr esm.Frame) RecordRow {
	row := RecordRow{
		Offset: fr.Offset,
		Depth:  fr.Depth,
		Tag:    fr.Header.Type.String(),
		ID:     fr.Resolved.String(),
	}
	if fr.Header.Flags != 0 {
		row.Flags = fr.Header.Flags.String()
	}
	if fr.Kind == esm.FrameSkipped {
		row.Skipped = fr.Skip.String()
		if fr.Err != nil {
			row.Error = fr.Err.Error()
		}
		return row
	}
	row.EditorID = esm.EditorID(fr.Record)
	return row
}

// mergeByOffset interleaves two frame lists that are each in file order.
func mergeByOffset(a, b []esm.Frame) []esm.Frame {
	out := make([]esm.Frame, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Offset <= b[j].Offset {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// tagFilter parses a --type flag. An empty value means no filter.
func tagFilter(s string) (*esm.Tag, error) {
	if s == "" {
		return nil, nil
	}
	if len(s) != 4 {
		return nil, fmt.Errorf("record type %q must be four characters", s)
	}
	t := esm.NewTag(strings.ToUpper(s))
	return &t, nil
}
