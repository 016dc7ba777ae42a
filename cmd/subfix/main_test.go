package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const compliantSRT = "1\n00:00:01,000 --> 00:00:03,000\n你好\n\n"

// 18 characters on one line; over the 16-character limit but by less
// than the three-character minimum remainder, so reflow leaves it whole.
const overlongSRT = "1\n00:00:01,000 --> 00:00:11,000\n今天的天气真的非常非常好我们出去玩吧\n\n"

// 23 characters on one line; far enough over the limit to break at the
// sentence boundary.
const breakableSRT = "1\n00:00:01,000 --> 00:00:11,000\n我们今天必须把这件事做完。然后再去吃饭休息一下\n\n"

func writeTestConfig(t *testing.T, base string) string {
	t.Helper()
	content := fmt.Sprintf(`[defaults]
language = "auto"
content_type = "adult"

[logging]
format = "json"
level = "error"

[history]
enabled = true
path = %q

[batch]
workers = 2
lock_file = %q
`, filepath.Join(base, "history.db"), filepath.Join(base, "batch.lock"))

	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestProcessCommandWritesOutput(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	input := filepath.Join(base, "episode.srt")
	if err := os.WriteFile(input, []byte(breakableSRT), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, _, err := runCLI(t, configPath, "process", input)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	requireContains(t, out, "Language: Chinese")
	requireContains(t, out, "Compliance: 100.0%")

	output := filepath.Join(base, "episode_processed.srt")
	requireContains(t, out, output)
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	// Broken at the sentence boundary; the second segment gains a
	// closing full stop from the punctuation fix.
	if !strings.Contains(string(data), "\n我们今天必须把这件事做完。\n然后再去吃饭休息一下。\n") {
		t.Fatalf("expected reflowed segments, got:\n%s", data)
	}
}

func TestProcessCommandKeepsShortOverflow(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	input := filepath.Join(base, "episode.srt")
	if err := os.WriteFile(input, []byte(overlongSRT), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, _, err := runCLI(t, configPath, "process", input, "--no-punct-fix")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	// Overflow below the minimum remainder is not broken; the line
	// survives and stays a character-limit violation.
	requireContains(t, out, "Compliance: 0.0%")

	data, err := os.ReadFile(filepath.Join(base, "episode_processed.srt"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "\n今天的天气真的非常非常好我们出去玩吧\n") {
		t.Fatalf("expected line to survive unbroken, got:\n%s", data)
	}
}

func TestProcessCommandHonorsOutputFlag(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	input := filepath.Join(base, "in.srt")
	if err := os.WriteFile(input, []byte(compliantSRT), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	target := filepath.Join(base, "custom.srt")

	if _, _, err := runCLI(t, configPath, "process", input, "--output", target); err != nil {
		t.Fatalf("process: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != compliantSRT {
		t.Fatalf("compliant file should round-trip unchanged, got:\n%s", data)
	}
}

func TestCheckCommandReportsViolations(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	input := filepath.Join(base, "episode.srt")
	if err := os.WriteFile(input, []byte(overlongSRT), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, _, err := runCLI(t, configPath, "check", input)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "Compliance: 0.0% (0/1 blocks)")
	requireContains(t, out, "character_limit")

	// Check never writes a processed copy.
	if _, err := os.Stat(filepath.Join(base, "episode_processed.srt")); !os.IsNotExist(err) {
		t.Fatalf("check must not write output, stat err = %v", err)
	}
}

func TestCheckCommandWritesViolationReport(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	input := filepath.Join(base, "episode.srt")
	if err := os.WriteFile(input, []byte(overlongSRT), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, _, err := runCLI(t, configPath, "check", input, "--violations")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	report := filepath.Join(base, "episode-violation.srt")
	requireContains(t, out, report)
	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	requireContains(t, string(data), "=== VIOLATION SUMMARY ===")
	requireContains(t, string(data), "# VIOLATIONS: character_limit")
}

func TestBatchCommandProcessesDirectory(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	dir := filepath.Join(base, "subs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"a.srt", "b.srt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(compliantSRT), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	out, _, err := runCLI(t, configPath, "batch", dir, "--check-only")
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	requireContains(t, out, "Processed 2 file(s), 0 failed")
	requireContains(t, out, "a.srt")
	requireContains(t, out, "b.srt")
}

func TestHistoryCommandShowsRecordedRuns(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	input := filepath.Join(base, "movie.srt")
	if err := os.WriteFile(input, []byte(compliantSRT), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if _, _, err := runCLI(t, configPath, "process", input); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, _, err := runCLI(t, configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "movie.srt")
	requireContains(t, out, "100.0%")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "subfix")
}
