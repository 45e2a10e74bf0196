package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/esmkit/pkg/esm"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Show detailed statistics",
		Long: `The stats command walks a content file and shows record counts per type,
group counts per group type, compression and skip totals and nesting depth.

Example:
  esmctl stats Oblivion.esm
  esmctl stats Mine.esp --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), args)
		},
	}
	return cmd
}

// FileStats is the stats command's JSON shape.
type FileStats struct {
	FilePath   string         `json:"file_path"`
	FileSize   int64          `json:"file_size"`
	HeaderSize int            `json:"header_size"`
	Records    int            `json:"records"`
	Groups     int            `json:"groups"`
	Compressed int            `json:"compressed"`
	MaxDepth   int            `json:"max_depth"`
	ByType     map[string]int `json:"by_type"`
	ByGroup    map[string]int `json:"by_group"`
	Skipped    map[string]int `json:"skipped"`
	Declared   int32          `json:"declared_records"`
}

func runStats(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path := args[0]

	printVerbose("Opening: %s\n", path)

	r, err := esm.Open(path, openOptions())
	if err != nil {
		return fmt.Errorf("failed to open content file: %w", err)
	}
	defer r.Close()

	stats := FileStats{
		FilePath:   path,
		FileSize:   r.Size(),
		HeaderSize: r.HeaderSize(),
		Declared:   r.Header().RecordCount,
		ByType:     make(map[string]int),
		ByGroup:    make(map[string]int),
		Skipped:    make(map[string]int),
	}
	for {
		f, err := r.NextContext(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		stats.MaxDepth = max(stats.MaxDepth, f.Depth)
		switch f.Kind {
		case esm.FrameGroup:
			stats.Groups++
			stats.ByGroup[f.Group.Type.String()]++
		case esm.FrameRecord, esm.FrameSkipped:
			stats.Records++
			stats.ByType[f.Header.Type.String()]++
			if f.Header.Compressed() {
				stats.Compressed++
			}
			if f.Kind == esm.FrameSkipped {
				stats.Skipped[f.Skip.String()]++
			}
		}
	}

	if jsonOut {
		return printJSON(stats)
	}

	printInfo("\nContent File Statistics: %s\n", path)
	printInfo("%s\n\n", strings.Repeat("=", 40))

	printInfo("File Information:\n")
	printInfo("  Size: %s (%s bytes)\n", formatBytes(stats.FileSize), formatNumber(stats.FileSize))
	printInfo("  Header size: %d bytes\n\n", stats.HeaderSize)

	printInfo("Structure:\n")
	printInfo("  Records: %s (header declares %s)\n", formatNumber(int64(stats.Records)), formatNumber(int64(stats.Declared)))
	printInfo("  Groups: %s\n", formatNumber(int64(stats.Groups)))
	printInfo("  Compressed: %s\n", formatNumber(int64(stats.Compressed)))
	printInfo("  Max depth: %d\n\n", stats.MaxDepth)

	printCounts("Records by Type", stats.ByType, stats.Records)
	printCounts("Groups by Type", stats.ByGroup, stats.Groups)
	printCounts("Skipped", stats.Skipped, stats.Records)
	return nil
}

// printCounts prints a count table sorted by count, largest first.
func printCounts(title string, counts map[string]int, total int) {
	if len(counts) == 0 {
		return
	}
	type entry struct {
		Name  string
		Count int
	}
	entries := make([]entry, 0, len(counts))
	for n, c := range counts {
		entries = append(entries, entry{n, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})

	printInfo("%s:\n", title)
	for _, e := range entries {
		percentage := float64(e.Count) * 100.0 / float64(total)
		printInfo("  %s: %s (%.1f%%)\n", e.Name, formatNumber(int64(e.Count)), percentage)
	}
	printInfo("\n")
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatNumber(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	// Add commas
	var result strings.Builder
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return result.String()
}
