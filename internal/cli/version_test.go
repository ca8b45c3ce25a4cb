package cli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout runs fn and returns what it printed to stdout
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestVersionCmd_OutputsVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2024-01-01")

	output := captureStdout(t, func() {
		versionCmd.Run(versionCmd, []string{})
	})

	if !strings.Contains(output, "cyclefinder version 1.2.3") {
		t.Errorf("version output doesn't contain version line: %q", output)
	}
	if !strings.Contains(output, "abc123") {
		t.Errorf("version output doesn't contain commit: %q", output)
	}
	if !strings.Contains(output, "2024-01-01") {
		t.Errorf("version output doesn't contain date: %q", output)
	}
}

func TestVersionCmd_SkipsEmptyCommit(t *testing.T) {
	SetVersionInfo("1.0.0", "", "2024-01-01")

	output := captureStdout(t, func() {
		versionCmd.Run(versionCmd, []string{})
	})

	if strings.Contains(output, "commit:") {
		t.Errorf("version output contains commit when empty: %q", output)
	}
}

func TestVersionCmd_SkipsNoneCommit(t *testing.T) {
	SetVersionInfo("1.0.0", "none", "unknown")

	output := captureStdout(t, func() {
		versionCmd.Run(versionCmd, []string{})
	})

	if strings.Contains(output, "commit:") {
		t.Errorf("version output contains commit when 'none': %q", output)
	}
	if strings.Contains(output, "built:") {
		t.Errorf("version output contains built when 'unknown': %q", output)
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("v2.0.0", "def456", "2025-06-15")

	if versionStr != "v2.0.0" {
		t.Errorf("versionStr = %q, want %q", versionStr, "v2.0.0")
	}
	if commitStr != "def456" {
		t.Errorf("commitStr = %q, want %q", commitStr, "def456")
	}
	if dateStr != "2025-06-15" {
		t.Errorf("dateStr = %q, want %q", dateStr, "2025-06-15")
	}
}
