package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/esmkit/pkg/esm"
)

var (
	dumpID   string
	dumpType string
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpID, "id", "", "Only dump the record with this hex reference id")
	cmd.Flags().StringVarP(&dumpType, "type", "t", "", "Only dump records of this tag (e.g. ALCH)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dump decoded records with all their fields",
		Long: `The dump command decodes a content file and prints every matching record
with all decoded fields. Records without a registered decoder are shown with
their header only.

Example:
  esmctl dump Oblivion.esm --type ALCH
  esmctl dump Oblivion.esm --id 0001F1A5
  esmctl dump Mine.esp --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

// DumpEntry is one dumped record.
type DumpEntry struct {
	Offset int64      `json:"offset"`
	Tag    string     `json:"tag"`
	ID     string     `json:"id"`
	Flags  string     `json:"flags,omitempty"`
	Record esm.Record `json:"record,omitempty"`
}

func runDump(args []string) error {
	filter, err := tagFilter(dumpType)
	if err != nil {
		return err
	}
	var want *esm.ReferenceID
	if dumpID != "" {
		id, err := parseRefID(dumpID)
		if err != nil {
			return err
		}
		want = &id
	}

	f, err := readFile(args[0])
	if err != nil {
		return err
	}

	var entries []DumpEntry
	for _, fr := range f.Records {
		if filter != nil && fr.Header.Type != *filter {
			continue
		}
		if want != nil && fr.Resolved != *want {
			continue
		}
		e := DumpEntry{
			Offset: fr.Offset,
			Tag:    fr.Header.Type.String(),
			ID:     fr.Resolved.String(),
			Record: fr.Record,
		}
		if fr.Header.Flags != 0 {
			e.Flags = fr.Header.Flags.String()
		}
		entries = append(entries, e)
	}
	if want != nil && len(entries) == 0 {
		return fmt.Errorf("no record with id %s", want)
	}

	if jsonOut {
		return printJSON(entries)
	}

	for _, e := range entries {
		printInfo("%s %s at 0x%08X", e.Tag, e.ID, e.Offset)
		if e.Flags != "" {
			printInfo(" [%s]", e.Flags)
		}
		printInfo("\n")
		if _, raw := e.Record.(*esm.RawRecord); raw {
			continue
		}
		body, err := json.MarshalIndent(e.Record, "  ", "  ")
		if err != nil {
			return fmt.Errorf("failed to format %s %s: %w", e.Tag, e.ID, err)
		}
		printInfo("  %s\n", body)
	}
	return nil
}

// parseRefID parses a hex reference id with or without a 0x prefix.
func parseRefID(s string) (esm.ReferenceID, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return esm.ReferenceID{}, fmt.Errorf("invalid reference id %q: %w", s, err)
	}
	return esm.RefIDFromRaw(uint32(v)), nil
}
