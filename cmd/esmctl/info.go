package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/esmkit/pkg/esm"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Validate a content file header and report basic metadata",
		Long: `The info command opens a content file, decodes its TES4 header and
displays the format version, author, masters and record flags.

Example:
  esmctl info Oblivion.esm
  esmctl info Mine.esp --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

// FileInfo is the info command's JSON shape.
type FileInfo struct {
	File        string       `json:"file"`
	Size        int64        `json:"size"`
	HeaderSize  int          `json:"header_size"`
	Flags       string       `json:"flags"`
	Master      bool         `json:"master"`
	Localized   bool         `json:"localized"`
	Version     float32      `json:"version"`
	RecordCount int32        `json:"record_count"`
	NextID      string       `json:"next_object_id"`
	Author      string       `json:"author,omitempty"`
	Description string       `json:"description,omitempty"`
	Masters     []esm.Master `json:"masters,omitempty"`
	Overrides   int          `json:"overrides"`
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Opening: %s\n", path)

	r, err := esm.Open(path, openOptions())
	if err != nil {
		return fmt.Errorf("failed to open content file: %w", err)
	}
	defer r.Close()

	h := r.Header()
	info := FileInfo{
		File:        path,
		Size:        r.Size(),
		HeaderSize:  r.HeaderSize(),
		Flags:       h.Flags.String(),
		Master:      h.IsMaster(),
		Localized:   h.Localized(),
		Version:     h.Version,
		RecordCount: h.RecordCount,
		NextID:      fmt.Sprintf("%08X", h.NextObjectID),
		Author:      h.Author,
		Description: h.Description,
		Masters:     h.Masters,
		Overrides:   len(h.Overrides),
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nContent File Information:\n")
	printInfo("  File: %s\n", path)
	if stat, err := os.Stat(path); err == nil {
		printInfo("  Size: %s\n", formatBytes(stat.Size()))
	}
	printInfo("  Header size: %d bytes\n", info.HeaderSize)
	printInfo("  Flags: %s\n", info.Flags)
	printInfo("  Version: %.2f\n", info.Version)
	printInfo("  Records: %s\n", formatNumber(int64(info.RecordCount)))
	printInfo("  Next object id: %s\n", info.NextID)
	if info.Author != "" {
		printInfo("  Author: %s\n", info.Author)
	}
	if info.Description != "" {
		printInfo("  Description: %s\n", info.Description)
	}
	if len(info.Masters) > 0 {
		printInfo("\nMasters:\n")
		for i, m := range info.Masters {
			printInfo("  [%02X] %s\n", i, m.Name)
		}
	}
	return nil
}
