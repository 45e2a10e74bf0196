package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/esmkit/pkg/esm"
)

var (
	diagFormat      string
	diagOutputFile  string
	diagShowSummary bool
)

// errCritical is returned when the walk stopped on a framing error.
var errCritical = errors.New("critical issues found")

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <file>",
	Short: "Run a diagnostic scan on a content file",
	Long: `Walks a content file end to end and reports everything the reader had to
work around:
  - Malformed records (truncated subrecords, missing required fields)
  - Corrupt compressed bodies
  - Records the decoder did not fully consume
  - Reference ids that do not resolve
  - Framing errors that stop the walk

Every issue carries its byte offset and the group path leading to it.`,
	Example: `  # Scan a file and show text report
  esmctl diagnose Mine.esp

  # Output JSON for programmatic analysis
  esmctl diagnose --format json Mine.esp

  # Compact format for grep
  esmctl diagnose --format compact Broken.esp

  # Save report to file
  esmctl diagnose --output report.txt Mine.esp`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiagnose(args)
	},
}

func init() {
	diagnoseCmd.Flags().StringVarP(&diagFormat, "format", "f", "text",
		"Output format: text, json, compact (text=human-readable, json=structured, compact=one-line-per-issue)")
	diagnoseCmd.Flags().StringVarP(&diagOutputFile, "output", "o", "",
		"Write report to file instead of stdout")
	diagnoseCmd.Flags().BoolVarP(&diagShowSummary, "summary", "s", false,
		"Show only summary (no detailed diagnostics)")

	rootCmd.AddCommand(diagnoseCmd)
}

func runDiagnose(args []string) error {
	path := args[0]

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("content file not found: %s", path)
	}

	printVerbose("Scanning: %s\n", path)

	f, walkErr := esm.ReadFile(context.Background(), path, openOptions())
	if f == nil {
		return fmt.Errorf("failed to open content file: %w", walkErr)
	}
	report := f.Diagnostics

	var output string
	switch diagFormat {
	case "json":
		jsonStr, err := report.FormatJSON()
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		output = jsonStr

	case "compact":
		output = report.FormatTextCompact()

	case "text":
		if diagShowSummary {
			output = formatSummaryOnly(report)
		} else {
			output = report.FormatText()
		}

	default:
		return fmt.Errorf("unknown format: %s (use: text, json, compact)", diagFormat)
	}

	if diagOutputFile != "" {
		if err := os.WriteFile(diagOutputFile, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		printInfo("Report written to: %s\n", diagOutputFile)
	} else {
		fmt.Print(output)
	}

	switch {
	case report.HasCriticalIssues():
		return fmt.Errorf("%w: %v", errCritical, walkErr)
	case report.HasErrors():
		printInfo("\nErrors found (malformed records were skipped)\n")
	case report.Summary.Warnings > 0:
		printInfo("\nWarnings found (non-critical)\n")
	default:
		printInfo("\nNo issues found\n")
	}
	return nil
}

func formatSummaryOnly(report *esm.DiagnosticReport) string {
	output := fmt.Sprintf("Diagnostic Summary for %s\n", report.FilePath)
	output += fmt.Sprintf("File size: %d bytes\n", report.FileSize)
	output += fmt.Sprintf("Scan time: %v\n\n", report.ScanTime)
	output += fmt.Sprintf("Critical:  %d\n", report.Summary.Critical)
	output += fmt.Sprintf("Errors:    %d\n", report.Summary.Errors)
	output += fmt.Sprintf("Warnings:  %d\n", report.Summary.Warnings)
	output += fmt.Sprintf("Info:      %d\n\n", report.Summary.Info)

	if report.Summary.Skipped > 0 || report.Summary.Realigned > 0 {
		output += fmt.Sprintf("Skipped:   %d\n", report.Summary.Skipped)
		output += fmt.Sprintf("Realigned: %d\n", report.Summary.Realigned)
	}
	return output
}
