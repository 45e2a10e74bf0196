package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/esmkit/pkg/esm"
	"github.com/joshuapare/esmkit/pkg/loadorder"
)

var (
	resolveMap     []string
	resolveOrder   string
	resolveSaved   []string
	resolveCurrent []string
)

func init() {
	cmd := newResolveCmd()
	cmd.Flags().StringSliceVarP(&resolveMap, "map", "m", nil, "Remap entry FROM:TO in hex file indices (repeatable)")
	cmd.Flags().StringVar(&resolveOrder, "order", "", "Build the table from a load-order file")
	cmd.Flags().StringSliceVar(&resolveSaved, "saved", nil, "Load order the ids were saved against")
	cmd.Flags().StringSliceVar(&resolveCurrent, "current", nil, "Current load order")
	rootCmd.AddCommand(cmd)
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <id>...",
		Short: "Resolve reference ids through a remap table",
		Long: `The resolve command rewrites reference ids from the load order a file was
saved against to the current one. The table comes from --map entries, from
--saved and --current name lists, or from a load-order file.

Example:
  esmctl resolve 0300000C --map 3:1
  esmctl resolve 0100ABCD --saved Oblivion.esm,Old.esp --current Oblivion.esm,Other.esp,Old.esp
  esmctl resolve 0100ABCD --order loadorder.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(args)
		},
	}
	return cmd
}

// Resolution is one resolved id.
type Resolution struct {
	ID       string `json:"id"`
	Resolved string `json:"resolved,omitempty"`
	Error    string `json:"error,omitempty"`
}

func runResolve(args []string) error {
	table, err := resolveTable()
	if err != nil {
		return err
	}
	printVerbose("Remap table: %v\n", table)

	out := make([]Resolution, 0, len(args))
	for _, a := range args {
		id, err := parseRefID(a)
		if err != nil {
			return err
		}
		res := Resolution{ID: id.String()}
		if got, err := esm.Resolve(id, table); err != nil {
			res.Error = err.Error()
		} else {
			res.Resolved = got.String()
		}
		out = append(out, res)
	}

	if jsonOut {
		return printJSON(out)
	}
	for _, res := range out {
		if res.Error != "" {
			printInfo("%s -> error: %s\n", res.ID, res.Error)
			continue
		}
		printInfo("%s -> %s\n", res.ID, res.Resolved)
	}
	return nil
}

func resolveTable() (esm.RemapTable, error) {
	switch {
	case resolveOrder != "":
		c, err := loadorder.Load(resolveOrder)
		if err != nil {
			return nil, err
		}
		return c.Table()
	case len(resolveSaved) > 0 || len(resolveCurrent) > 0:
		return loadorder.Mapping(resolveSaved, resolveCurrent)
	default:
		return parseMap(resolveMap)
	}
}

// parseMap parses FROM:TO entries given as hex file indices.
func parseMap(entries []string) (esm.RemapTable, error) {
	table := make(esm.RemapTable, len(entries))
	for _, e := range entries {
		from, to, ok := strings.Cut(e, ":")
		if !ok {
			return nil, fmt.Errorf("invalid map entry %q (want FROM:TO)", e)
		}
		f, err := strconv.ParseUint(from, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid map entry %q: %w", e, err)
		}
		t, err := strconv.ParseUint(to, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid map entry %q: %w", e, err)
		}
		table[uint8(f)] = uint8(t)
	}
	return table, nil
}
