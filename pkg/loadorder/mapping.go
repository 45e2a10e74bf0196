// Package loadorder builds remap tables between content-file load orders
// and reads load-order files.
package loadorder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joshuapare/esmkit/pkg/types"
)

// MaxFiles is the number of slots a reference id can address.
const MaxFiles = 256

// ErrSlotZeroMoved is returned when the file in slot 0 of the saved order is
// not also first in the current order. Slot 0 names the file being loaded and
// always resolves to itself, so it cannot be remapped.
var ErrSlotZeroMoved = errors.New("loadorder: slot 0 cannot move")

// Mapping returns the table that moves reference ids saved against the
// saved load order onto the current one. Slot i of saved maps to the
// position of the same file (compared case-insensitively) in current. Files
// missing from current are left out, so their ids fail to resolve with
// ErrUnmappedContentFile. The first file must be first in both orders.
func Mapping(saved, current []string) (types.RemapTable, error) {
	if len(saved) > MaxFiles || len(current) > MaxFiles {
		return nil, fmt.Errorf("loadorder: more than %d files", MaxFiles)
	}
	pos, err := index(current)
	if err != nil {
		return nil, fmt.Errorf("loadorder: current order: %w", err)
	}
	if _, err := index(saved); err != nil {
		return nil, fmt.Errorf("loadorder: saved order: %w", err)
	}
	if len(saved) > 0 {
		if p, ok := pos[key(saved[0])]; !ok || p != 0 {
			return nil, fmt.Errorf("%w: %s is not first in the current order", ErrSlotZeroMoved, saved[0])
		}
	}

	table := make(types.RemapTable, len(saved))
	for i, name := range saved {
		if to, ok := pos[key(name)]; ok {
			table[uint8(i)] = uint8(to)
		}
	}
	return table, nil
}

// ForFile returns the table for a single content file. The file itself is
// slot 0 and its masters take slots 1..n in the order its header lists
// them. Resolved ids keep the file at 0 and number the other loaded files
// from 1 in current order.
func ForFile(masters []string, self string, current []string) (types.RemapTable, error) {
	saved := make([]string, 0, len(masters)+1)
	saved = append(saved, self)
	saved = append(saved, masters...)

	others := make([]string, 0, len(current)+1)
	others = append(others, self)
	for _, name := range current {
		if key(name) != key(self) {
			others = append(others, name)
		}
	}
	return Mapping(saved, others)
}

// Missing returns the entries of saved that do not appear in current.
func Missing(saved, current []string) []string {
	pos, _ := index(current)
	var out []string
	for _, name := range saved {
		if _, ok := pos[key(name)]; !ok {
			out = append(out, name)
		}
	}
	return out
}

func index(order []string) (map[string]int, error) {
	pos := make(map[string]int, len(order))
	for i, name := range order {
		k := key(name)
		if k == "" {
			return nil, fmt.Errorf("empty file name at position %d", i)
		}
		if j, dup := pos[k]; dup {
			return nil, fmt.Errorf("%s listed at %d and %d", name, j, i)
		}
		pos[k] = i
	}
	return pos, nil
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }
