// Package fileops implements the mutating file operations behind the
// dual-panel manager: copy, move, rename, mkdir and delete. Deletes try
// the system trash first and only then remove permanently.
package fileops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// MoveToTrash moves a file or directory to the system trash.
func MoveToTrash(path string) error {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf(`tell application "Finder" to delete POSIX file "%s"`, path)
		return exec.Command("osascript", "-e", script).Run()

	default: // Linux and friends
		if commandExists("gio") {
			return exec.Command("gio", "trash", path).Run()
		}
		if commandExists("trash-put") {
			return exec.Command("trash-put", path).Run()
		}
		return fmt.Errorf("trash command not available (install trash-cli or gvfs)")
	}
}

// Delete removes a path, preferring the trash; a trash failure falls
// back to permanent removal.
func Delete(path string, isDir bool) error {
	if err := MoveToTrash(path); err == nil {
		return nil
	}
	if isDir {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// Rename renames within the same directory. The destination must not
// already exist.
func Rename(oldPath, newName string) error {
	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("%s already exists", newName)
	}
	return os.Rename(oldPath, newPath)
}

// CreateDir creates one directory under dir.
func CreateDir(dir, name string) error {
	return os.Mkdir(filepath.Join(dir, name), 0o755)
}

// Copy copies a file or directory tree from src into destination path dst.
func Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := checkDistinct(src, dst, info); err != nil {
		return err
	}
	if info.IsDir() {
		return copyDir(src, dst)
	}
	return copyFile(src, dst, info.Mode())
}

// checkDistinct refuses a copy whose destination is the source itself,
// the same inode through another path, or nested inside a source
// directory. Opening dst with O_TRUNC would otherwise destroy src.
func checkDistinct(src, dst string, info os.FileInfo) error {
	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return err
	}
	if srcAbs == dstAbs {
		return fmt.Errorf("%s: source and destination are the same", filepath.Base(src))
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return fmt.Errorf("%s: source and destination are the same", filepath.Base(src))
	}
	if info.IsDir() && strings.HasPrefix(dstAbs, srcAbs+string(filepath.Separator)) {
		return fmt.Errorf("cannot copy %s into itself", filepath.Base(src))
	}
	return nil
}

func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return err
	}

	children, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, child := range children {
		srcPath := filepath.Join(src, child.Name())
		dstPath := filepath.Join(dst, child.Name())
		if err := Copy(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

// Move renames src into dst, copying and deleting when the rename
// crosses devices.
func Move(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := checkDistinct(src, dst, info); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := Copy(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// CopyInto copies each source into destDir, keeping base names.
func CopyInto(sources []string, destDir string) error {
	for _, src := range sources {
		dst := filepath.Join(destDir, filepath.Base(src))
		if err := Copy(src, dst); err != nil {
			return FormatError(err, src, "copy")
		}
	}
	return nil
}

// MoveInto moves each source into destDir, keeping base names.
func MoveInto(sources []string, destDir string) error {
	for _, src := range sources {
		dst := filepath.Join(destDir, filepath.Base(src))
		if err := Move(src, dst); err != nil {
			return FormatError(err, src, "move")
		}
	}
	return nil
}

// FormatError shapes an operation failure into a message fit for the
// status bar. Returns nil for nil.
func FormatError(err error, path, op string) error {
	if err == nil {
		return nil
	}
	name := filepath.Base(path)
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("cannot %s %s: permission denied", op, name)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("cannot %s %s: no longer exists", op, name)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("cannot %s %s: already exists", op, name)
	default:
		return fmt.Errorf("cannot %s %s: %v", op, name, err)
	}
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
