package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/esmkit/pkg/esm"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	headerSize int
	strict     bool
)

var rootCmd = &cobra.Command{
	Use:   "esmctl",
	Short: "Inspect and decode TES4-family content files",
	Long: `esmctl is a tool for inspecting ESM/ESP/ESL content files. It walks the
group tree, decodes the record types it knows, reports malformed records and
resolves reference ids across a load order.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		IntVar(&headerSize, "header-size", 0, "Force 20 or 24 byte record headers (0 detects)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Use strict sanity limits")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// logger returns the stderr logger the library reports recoverable issues to.
func logger() *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openOptions builds reader options from the global flags.
func openOptions() esm.Options {
	limits := esm.DefaultLimits()
	if strict {
		limits = esm.StrictLimits()
	}
	return esm.Options{OpenOptions: esm.OpenOptions{
		HeaderSize: headerSize,
		Limits:     &limits,
		Logger:     logger(),
	}}
}

// readFile decodes a whole content file with the global options.
func readFile(path string) (*esm.File, error) {
	printVerbose("Reading: %s\n", path)
	f, err := esm.ReadFile(context.Background(), path, openOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return f, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
