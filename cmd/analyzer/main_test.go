// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// init re-execs this same test binary as the analyzer CLI when the child
// env var is set, exactly as original_source/main.c's single process is
// invoked: the scenarios below launch a real subprocess rather than
// calling run() in-process, because the logger/typewriter stages route
// their output through the process-wide internal/sink writer, whose
// bufio.Writer is bound to os.Stdout at package-init time — well before
// any in-process capture could swap that variable. A genuine child
// process, redirected via exec.Cmd.Stdout, sidesteps that entirely.
func init() {
	if os.Getenv("ANALYZER_TEST_CHILD") == "1" {
		os.Exit(run(os.Args[1:]))
	}
}

func runAnalyzer(t *testing.T, stdin string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(os.Args[0], args...)
	cmd.Env = append(os.Environ(), "ANALYZER_TEST_CHILD=1")
	cmd.Stdin = strings.NewReader(stdin)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	if err == nil {
		return outBuf.String(), errBuf.String(), 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return outBuf.String(), errBuf.String(), exitErr.ExitCode()
	}
	t.Fatalf("run analyzer: %v (stderr: %s)", err, errBuf.String())
	return "", "", -1
}

// TestScenario1UppercaseRotateLog covers spec.md §8 scenario 1.
func TestScenario1UppercaseRotateLog(t *testing.T) {
	out, _, code := runAnalyzer(t, "hello\n<END>\n", "20", "uppercaser", "rotator", "logger")
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if !strings.Contains(out, "[logger] OHELL\n") {
		t.Fatalf("stdout = %q, want it to contain %q", out, "[logger] OHELL\n")
	}
	if gotIdx, wantIdx := strings.Index(out, "Pipeline shutdown complete"), strings.Index(out, "[logger] OHELL"); gotIdx < wantIdx {
		t.Fatalf("stdout = %q, want the logger line before the shutdown message", out)
	}
}

// TestScenario2FlipLogOrdering covers spec.md §8 scenario 2.
func TestScenario2FlipLogOrdering(t *testing.T) {
	out, _, code := runAnalyzer(t, "abc\ndef\n<END>\n", "20", "flipper", "logger")
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	want := "[logger] cba\n[logger] fed\n"
	if !strings.Contains(out, want) {
		t.Fatalf("stdout = %q, want it to contain %q in order", out, want)
	}
}

// TestScenario3ExpandSingleByteIsPassthrough covers spec.md §8 scenario 3.
func TestScenario3ExpandSingleByteIsPassthrough(t *testing.T) {
	out, _, code := runAnalyzer(t, "a\n<END>\n", "20", "expander", "logger")
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if !strings.Contains(out, "[logger] a\n") {
		t.Fatalf("stdout = %q, want it to contain %q", out, "[logger] a\n")
	}
}

// TestScenario4DoubleUppercaseIsIdempotent covers spec.md §8 scenario 4.
func TestScenario4DoubleUppercaseIsIdempotent(t *testing.T) {
	out, _, code := runAnalyzer(t, "x\n<END>\n", "20", "uppercaser", "uppercaser", "logger")
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if !strings.Contains(out, "[logger] X\n") {
		t.Fatalf("stdout = %q, want it to contain %q", out, "[logger] X\n")
	}
}

// TestScenario5SentinelOnlyProducesNoLoggerLines covers spec.md §8 scenario 5.
func TestScenario5SentinelOnlyProducesNoLoggerLines(t *testing.T) {
	out, _, code := runAnalyzer(t, "<END>\n", "20", "uppercaser", "rotator", "logger")
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if strings.Contains(out, "[logger]") {
		t.Fatalf("stdout = %q, want no [logger] lines for a sentinel-only run", out)
	}
	if !strings.Contains(out, "Pipeline shutdown complete") {
		t.Fatalf("stdout = %q, want the shutdown message", out)
	}
}

// TestScenario6DuplicateStageNamesFailFast covers spec.md §8 scenario 6.
func TestScenario6DuplicateStageNamesFailFast(t *testing.T) {
	out, errOut, code := runAnalyzer(t, "<END>\n", "20", "logger", "logger")
	if code != 1 {
		t.Fatalf("exit code: got %d, want 1", code)
	}
	if !strings.Contains(errOut, "duplicate plugin name") {
		t.Fatalf("stderr = %q, want it to mention %q", errOut, "duplicate plugin name")
	}
	if strings.Contains(out, "[logger]") || strings.Contains(out, "Pipeline shutdown complete") {
		t.Fatalf("stdout = %q, want no pipeline output when load fails before any stage runs", out)
	}
}
