package tools

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestExists(t *testing.T) {
	if !Exists("ls") {
		t.Error("'ls' should exist")
	}
	if Exists("no-such-tool-abc123") {
		t.Error("bogus tool should not exist")
	}
}

func TestEditor_PrefersConfigured(t *testing.T) {
	// "ls" stands in for a configured editor that exists on PATH.
	cmd, err := Editor("ls", "/tmp/file.txt")
	if err != nil {
		t.Fatalf("Editor failed: %v", err)
	}
	if len(cmd.Args) != 2 || cmd.Args[1] != "/tmp/file.txt" {
		t.Errorf("unexpected args: %v", cmd.Args)
	}
}

func TestEditor_FallsBackToEnv(t *testing.T) {
	t.Setenv("EDITOR", "ls")
	cmd, err := Editor("definitely-missing-editor", "/tmp/f")
	if err != nil {
		t.Fatalf("Editor failed: %v", err)
	}
	if !strings.HasSuffix(cmd.Path, "ls") {
		t.Errorf("expected $EDITOR fallback, got %s", cmd.Path)
	}
}

func TestWrapExit(t *testing.T) {
	if WrapExit("fzf", nil) != nil {
		t.Error("nil error should pass through")
	}

	cause := errors.New("exit status 2")
	err := WrapExit("fzf", cause)
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ToolError, got %T", err)
	}
	if toolErr.Tool != "fzf" || !errors.Is(err, cause) {
		t.Errorf("wrapping lost information: %v", err)
	}
}

func TestSplitGrepResult(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"main.go:42:func main() {", "main.go"},
		{"/abs/path.txt:1:x", "/abs/path.txt"},
		{"noseparator", "noseparator"},
	}
	for _, tt := range tests {
		if got := SplitGrepResult(tt.in); got != tt.want {
			t.Errorf("SplitGrepResult(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPicker_ReadResult(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "pick")
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("/picked/path\n")
	f.Close()

	p := &Picker{resultFile: f.Name()}
	if got := p.ReadResult(); got != "/picked/path" {
		t.Errorf("ReadResult = %q", got)
	}
	if _, err := os.Stat(f.Name()); !os.IsNotExist(err) {
		t.Error("result file should be removed after read")
	}
}

func TestShellQuote(t *testing.T) {
	if got := shellQuote("/plain/dir"); got != "'/plain/dir'" {
		t.Errorf("shellQuote = %q", got)
	}
	quoted := shellQuote("it's here")
	if !strings.Contains(quoted, `'\''`) {
		t.Errorf("single quote not escaped: %q", quoted)
	}
}
