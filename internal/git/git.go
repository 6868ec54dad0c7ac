// Package git supplies the passive repository indicator shown in the
// header. It shells out to git; a missing binary or non-repo directory
// simply yields empty results.
package git

import (
	"os/exec"
	"strings"
)

// Status describes the repository containing dir, if any.
type Status struct {
	Branch string
	Dirty  bool
}

// StatusFor returns the branch and dirtiness for dir. Outside a
// repository both fields are zero.
func StatusFor(dir string) Status {
	branch := Branch(dir)
	if branch == "" {
		return Status{}
	}

	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return Status{Branch: branch}
	}
	return Status{Branch: branch, Dirty: len(strings.TrimSpace(string(out))) > 0}
}

// Branch returns the current branch name, or "" outside a repository.
func Branch(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
