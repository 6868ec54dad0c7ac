package state

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
)

// LastDirPath returns the well-known handoff file the shell wrapper
// reads to cd into the final directory. Derived from the invoking user
// so concurrent users do not clobber each other.
func LastDirPath() string {
	name := os.Getenv("USER")
	if name == "" {
		if u, err := user.Current(); err == nil {
			name = u.Username
		}
	}
	if name == "" {
		name = "user"
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("lstime_lastdir_%s", name))
}

// WriteLastDir writes dir to the handoff file. The caller invokes this
// once, after the session has ended, with the value the session
// returned; nothing session-internal writes global state.
func WriteLastDir(dir string) error {
	return os.WriteFile(LastDirPath(), []byte(dir), 0o644)
}
