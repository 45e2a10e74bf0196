package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/joshuapare/esmkit/internal/format"
	"github.com/joshuapare/esmkit/internal/testutil"
	"github.com/joshuapare/esmkit/pkg/types"
)

// resetFlags restores every global and command flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut, strict = false, false, false, false
	headerSize = 0
	recordsType, recordsLimit, recordsSkipped = "", 0, false
	dumpID, dumpType = "", ""
	diagFormat, diagOutputFile, diagShowSummary = "text", "", false
	resolveMap, resolveOrder, resolveSaved, resolveCurrent = nil, "", nil, nil
	loadOrderWorkers = 0
	roundtripOut, roundtripLevel = "", 0
}

// testPlugin writes a small plugin with a door, a compressed potion, an
// unknown record, a deleted record and a malformed record, and returns its
// path.
func testPlugin(t *testing.T, name string) string {
	t.Helper()
	potion := testutil.Body(
		testutil.ZSub("EDID", "PotionCure"),
		testutil.Sub("DATA", []byte{0, 0, 0, 0x3F}),
	)
	npc := testutil.Body(testutil.ZSub("EDID", "Guard"), testutil.U32Sub("RNAM", 9))
	return testutil.NewFile(format.ShortHeaderSize).
		Record("TES4", types.FlagMaster, 0, testutil.FileHeaderBody(1.0, 5, "Oblivion.esm")).
		BeginTop("DOOR").
		Record("DOOR", 0, 0x01000005, testutil.DoorBody("Door01", "Gate")).
		Record("DOOR", types.FlagDeleted, 0x01000006, nil).
		Record("DOOR", 0, 0x01000007, testutil.ZSub("FULL", "No editor id")).
		EndGroup().
		BeginTop("ALCH").
		Compressed("ALCH", 0, 0x00000010, potion).
		EndGroup().
		BeginTop("NPC_").
		Record("NPC_", types.FlagPersistent, 0x01000042, npc).
		EndGroup().
		WriteTemp(t, name)
}

// brokenPlugin writes a plugin whose last group overruns the file.
func brokenPlugin(t *testing.T) string {
	t.Helper()
	data := testutil.NewPlugin(format.ShortHeaderSize, 0).
		BeginTop("DOOR").
		Record("DOOR", 0, 5, testutil.DoorBody("Door01", "Gate")).
		EndGroup().
		Bytes()
	data = data[:len(data)-4]
	path := t.TempDir() + "/Broken.esp"
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	out := <-done

	return string(out), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
