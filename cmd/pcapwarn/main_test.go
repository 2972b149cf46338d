package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pcapkit/internal/config"
	"pcapkit/internal/emit"
)

// runCLI executes a fresh command tree with an empty filter file so that
// nothing from the surrounding checkout leaks in.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(emit.DevModeEnv, "")
	t.Setenv(config.RulesEnv, "")

	cfgPath := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(cfgPath, []byte("color = \"off\"\n"), 0o600); err != nil {
		t.Fatalf("write %s: %v", config.FileName, err)
	}

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func TestEmitDeduplicatesRepeats(t *testing.T) {
	_, stderr, err := runCLI(t, "emit", "ProtocolWarning", "bad checksum {0}", "0x1f", "--repeat", "3")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	lines := nonEmptyLines(stderr)
	if len(lines) != 1 || lines[0] != "ProtocolWarning: bad checksum 0x1f" {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestEmitFilters(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want int
	}{
		{"always", []string{"--filter", "always:Base"}, 3},
		{"ignore ancestor", []string{"--filter", "ignore:VendorWarning"}, 0},
		{"no propagation", []string{"--filter", "ignore:VendorWarning:nopropagate"}, 1},
		{"default action", []string{"--default", "always"}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"emit", "VendorRequestWarning", "fetch failed", "--repeat", "3"}, tc.args...)
			_, stderr, err := runCLI(t, args...)
			if err != nil {
				t.Fatalf("emit: %v", err)
			}
			if got := len(nonEmptyLines(stderr)); got != tc.want {
				t.Fatalf("got %d warnings, want %d: %q", got, tc.want, stderr)
			}
		})
	}
}

func TestEmitFormattingFailureStillShows(t *testing.T) {
	_, stderr, err := runCLI(t, "emit", "FormatWarning", "length {0} exceeds {1}", "12")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.HasPrefix(stderr, "FormatWarning: length {0} exceeds {1} [format error:") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestEmitTagAndTrace(t *testing.T) {
	_, stderr, err := runCLI(t, "--show-location", "--trace=-", "--trace-format=text",
		"emit", "FileWarning", "truncated", "--at", "reader.go:42", "--repeat", "2")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(stderr, "reader.go:42: FileWarning: truncated\n") {
		t.Fatalf("missing warning in %q", stderr)
	}
	if !strings.Contains(stderr, "shown") || !strings.Contains(stderr, "duplicate") {
		t.Fatalf("missing trace events in %q", stderr)
	}
}

func TestTraceRingDumpedInBothMode(t *testing.T) {
	streamPath := filepath.Join(t.TempDir(), "decisions.ndjson")
	_, stderr, err := runCLI(t, "--trace="+streamPath, "--trace-mode=both", "--trace-format=text",
		"emit", "FileWarning", "truncated", "--repeat", "2")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.HasPrefix(stderr, "FileWarning: truncated\n") {
		t.Fatalf("stderr = %q", stderr)
	}
	if !strings.Contains(stderr, " shown ") || !strings.Contains(stderr, " duplicate ") {
		t.Fatalf("ring not dumped to stderr: %q", stderr)
	}
	data, err := os.ReadFile(streamPath)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if got := len(nonEmptyLines(string(data))); got != 2 {
		t.Fatalf("stream trace has %d events, want 2: %q", got, data)
	}
}

func TestEmitErrors(t *testing.T) {
	cases := [][]string{
		{"emit", "NoSuchWarning", "x"},
		{"emit", "FileWarning", "x", "--filter", "sometimes:FileWarning"},
		{"emit", "FileWarning", "x", "--default", "loud"},
		{"emit", "FileWarning", "x", "--repeat", "-1"},
		{"emit", "FileWarning"},
	}
	for _, args := range cases {
		if _, _, err := runCLI(t, args...); err == nil {
			t.Fatalf("%v: expected error", args)
		}
	}
}

func TestCheck(t *testing.T) {
	cases := []struct {
		cat, ancestor string
		want          string
	}{
		{"InvalidVendorWarning", "VendorWarning", "true"},
		{"vendor", "BaseWarning", "true"},
		{"VendorWarning", "InvalidVendorWarning", "false"},
		{"Engine", "Engine", "true"},
	}
	for _, tc := range cases {
		stdout, _, err := runCLI(t, "check", tc.cat, tc.ancestor)
		if err != nil {
			t.Fatalf("check %s %s: %v", tc.cat, tc.ancestor, err)
		}
		if !strings.HasSuffix(strings.TrimSpace(stdout), ": "+tc.want) {
			t.Fatalf("check %s %s = %q, want %s", tc.cat, tc.ancestor, stdout, tc.want)
		}
	}
}

func TestCategoriesFormats(t *testing.T) {
	stdout, _, err := runCLI(t, "categories")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if !strings.HasPrefix(stdout, "BaseWarning\n") || !strings.Contains(stdout, "│   ├─ InvalidVendorWarning\n") {
		t.Fatalf("tree output:\n%s", stdout)
	}

	stdout, _, err = runCLI(t, "categories", "Engine", "--format", "list")
	if err != nil {
		t.Fatalf("categories list: %v", err)
	}
	lines := nonEmptyLines(stdout)
	if len(lines) != 4 || !strings.HasPrefix(lines[0], "EngineWarning") {
		t.Fatalf("list output:\n%s", stdout)
	}

	stdout, _, err = runCLI(t, "categories", "vendor", "--format", "json")
	if err != nil {
		t.Fatalf("categories json: %v", err)
	}
	var got []categoryJSON
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 4 || got[0].Parent != "BaseWarning" || got[1].Parent != "VendorWarning" || got[1].Depth != 2 {
		t.Fatalf("json output: %+v", got)
	}

	if _, _, err := runCLI(t, "categories", "--format", "yaml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := runCLI(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var got versionPayload
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Tool != "pcapwarn" || got.Version == "" || got.Categories < 16 || got.GitCommit == "" {
		t.Fatalf("payload = %+v", got)
	}
}
