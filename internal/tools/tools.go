// Package tools builds the exec.Cmd values for external programs the UI
// suspends into: the editor, fzf and rg. Interactive pickers write their
// selection to a temp file because stdout belongs to the terminal while
// the picker runs.
package tools

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ToolError wraps a subprocess failure (launch failure or non-zero
// exit). It is surfaced as a transient notice, never fatal.
type ToolError struct {
	Tool string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// WrapExit converts the error from a finished subprocess into a
// ToolError, passing nil through.
func WrapExit(tool string, err error) error {
	if err == nil {
		return nil
	}
	return &ToolError{Tool: tool, Err: err}
}

// Exists reports whether a command is on PATH.
func Exists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Editor returns the command to edit path. Order: the configured
// editor, $EDITOR, then common fallbacks.
func Editor(configured, path string) (*exec.Cmd, error) {
	candidates := []string{}
	if configured != "" {
		candidates = append(candidates, configured)
	}
	if env := os.Getenv("EDITOR"); env != "" {
		candidates = append(candidates, env)
	}
	candidates = append(candidates, "nano", "vim", "vi")

	for _, editor := range candidates {
		if Exists(editor) {
			return exec.Command(editor, path), nil
		}
	}
	return nil, &ToolError{Tool: "editor", Err: fmt.Errorf("no editor found (set editor in config or $EDITOR)")}
}

// Picker is an interactive selection run under the terminal; after the
// process exits, ReadResult returns the picked path.
type Picker struct {
	Cmd        *exec.Cmd
	resultFile string
}

// ReadResult returns the selection, or "" if the user aborted. The temp
// file is removed either way.
func (p *Picker) ReadResult() string {
	defer os.Remove(p.resultFile)
	data, err := os.ReadFile(p.resultFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// FuzzyFinder builds a fzf file picker rooted at dir. Prefers fd for
// the candidate walk when available.
func FuzzyFinder(dir string, showHidden bool) (*Picker, error) {
	if !Exists("fzf") {
		return nil, &ToolError{Tool: "fzf", Err: fmt.Errorf("not found on PATH")}
	}

	out, err := resultFile()
	if err != nil {
		return nil, &ToolError{Tool: "fzf", Err: err}
	}

	var walk string
	if Exists("fd") {
		walk = fmt.Sprintf("fd --type f -E .git -E node_modules -E __pycache__ . %s", shellQuote(dir))
		if showHidden {
			walk = fmt.Sprintf("fd --type f --hidden -E .git -E node_modules -E __pycache__ . %s", shellQuote(dir))
		}
	} else {
		walk = fmt.Sprintf("find %s -type f 2>/dev/null", shellQuote(dir))
	}

	pipeline := fmt.Sprintf("%s | fzf --preview 'head -100 {}' > %s", walk, shellQuote(out))
	return &Picker{Cmd: exec.Command("sh", "-c", pipeline), resultFile: out}, nil
}

// GrepFinder builds an rg+fzf content picker rooted at dir. The result
// line has the form path:line:... and SplitGrepResult takes it apart.
func GrepFinder(dir string) (*Picker, error) {
	if !Exists("rg") {
		return nil, &ToolError{Tool: "rg", Err: fmt.Errorf("not found on PATH")}
	}
	if !Exists("fzf") {
		return nil, &ToolError{Tool: "fzf", Err: fmt.Errorf("not found on PATH")}
	}

	out, err := resultFile()
	if err != nil {
		return nil, &ToolError{Tool: "rg", Err: err}
	}

	pipeline := fmt.Sprintf(
		`rg -n --color=always "" %s 2>/dev/null | fzf --ansi --preview 'echo {} | cut -d: -f1 | xargs head -100' > %s`,
		shellQuote(dir), shellQuote(out))
	return &Picker{Cmd: exec.Command("sh", "-c", pipeline), resultFile: out}, nil
}

// SplitGrepResult extracts the file path from an rg match line.
func SplitGrepResult(line string) string {
	if idx := strings.Index(line, ":"); idx > 0 {
		return line[:idx]
	}
	return line
}

func resultFile() (string, error) {
	f, err := os.CreateTemp("", "lstime-pick-*")
	if err != nil {
		return "", err
	}
	f.Close()
	return f.Name(), nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
