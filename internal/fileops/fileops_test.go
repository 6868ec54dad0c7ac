package fileops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDir(t *testing.T) {
	tempDir := t.TempDir()

	if err := CreateDir(tempDir, "newdir"); err != nil {
		t.Fatalf("CreateDir failed: %v", err)
	}
	info, err := os.Stat(filepath.Join(tempDir, "newdir"))
	if err != nil || !info.IsDir() {
		t.Errorf("directory was not created: %v", err)
	}

	if err := CreateDir(tempDir, "newdir"); err == nil {
		t.Error("expected error creating existing directory")
	}
}

func TestRename(t *testing.T) {
	tempDir := t.TempDir()
	oldPath := filepath.Join(tempDir, "oldname.txt")
	os.WriteFile(oldPath, []byte("content"), 0o644)

	if err := Rename(oldPath, "newname.txt"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "newname.txt")); err != nil {
		t.Error("renamed file does not exist")
	}
	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("old file still exists after rename")
	}
}

func TestRename_RefusesExistingTarget(t *testing.T) {
	tempDir := t.TempDir()
	a := filepath.Join(tempDir, "a.txt")
	b := filepath.Join(tempDir, "b.txt")
	os.WriteFile(a, []byte("a"), 0o644)
	os.WriteFile(b, []byte("b"), 0o644)

	if err := Rename(a, "b.txt"); err == nil {
		t.Error("expected error renaming onto existing file")
	}
	if data, _ := os.ReadFile(b); string(data) != "b" {
		t.Error("existing target was clobbered")
	}
}

func TestCopy_File(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "src.txt")
	os.WriteFile(src, []byte("payload"), 0o600)

	dst := filepath.Join(tempDir, "dst.txt")
	if err := Copy(src, dst); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "payload" {
		t.Errorf("copied content mismatch: %q, %v", data, err)
	}
	info, _ := os.Stat(dst)
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestCopy_DirRecursive(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "src")
	os.MkdirAll(filepath.Join(src, "nested"), 0o755)
	os.WriteFile(filepath.Join(src, "top.txt"), []byte("1"), 0o644)
	os.WriteFile(filepath.Join(src, "nested", "deep.txt"), []byte("2"), 0o644)

	dst := filepath.Join(tempDir, "dst")
	if err := Copy(src, dst); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	for _, rel := range []string{"top.txt", filepath.Join("nested", "deep.txt")} {
		if _, err := os.Stat(filepath.Join(dst, rel)); err != nil {
			t.Errorf("%s was not copied: %v", rel, err)
		}
	}
}

func TestMove(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "src.txt")
	os.WriteFile(src, []byte("x"), 0o644)

	dst := filepath.Join(tempDir, "dst.txt")
	if err := Move(src, dst); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source still exists after move")
	}
	if _, err := os.Stat(dst); err != nil {
		t.Error("destination missing after move")
	}
}

func TestCopyInto_MoveInto(t *testing.T) {
	tempDir := t.TempDir()
	f1 := filepath.Join(tempDir, "f1")
	f2 := filepath.Join(tempDir, "f2")
	os.WriteFile(f1, []byte("1"), 0o644)
	os.WriteFile(f2, []byte("2"), 0o644)
	dest := filepath.Join(tempDir, "dest")
	os.Mkdir(dest, 0o755)

	if err := CopyInto([]string{f1, f2}, dest); err != nil {
		t.Fatalf("CopyInto failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "f1")); err != nil {
		t.Error("f1 not copied")
	}

	dest2 := filepath.Join(tempDir, "dest2")
	os.Mkdir(dest2, 0o755)
	if err := MoveInto([]string{f1}, dest2); err != nil {
		t.Fatalf("MoveInto failed: %v", err)
	}
	if _, err := os.Stat(f1); !os.IsNotExist(err) {
		t.Error("f1 still exists after MoveInto")
	}
}

func TestFormatError(t *testing.T) {
	if err := FormatError(nil, "/p", "copy"); err != nil {
		t.Error("FormatError should return nil for nil input")
	}

	err := FormatError(os.ErrPermission, "/some/file.txt", "delete")
	if err == nil || err.Error() != "cannot delete file.txt: permission denied" {
		t.Errorf("unexpected message: %v", err)
	}

	err = FormatError(os.ErrNotExist, "/some/file.txt", "move")
	if err == nil || err.Error() != "cannot move file.txt: no longer exists" {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestCommandExists(t *testing.T) {
	if !commandExists("ls") {
		t.Error("'ls' should exist")
	}
	if commandExists("definitely-not-a-real-command-xyz") {
		t.Error("bogus command should not exist")
	}
}

func TestCopyInto_RefusesSameFile(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "keep.txt")
	os.WriteFile(src, []byte("payload"), 0o644)

	// Destination directory contains the source, so dst == src.
	if err := CopyInto([]string{src}, tempDir); err == nil {
		t.Error("expected error copying file onto itself")
	}
	data, err := os.ReadFile(src)
	if err != nil || string(data) != "payload" {
		t.Errorf("source damaged by self-copy: %q, %v", data, err)
	}
}

func TestCopy_RefusesSameInode(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "orig.txt")
	os.WriteFile(src, []byte("payload"), 0o644)
	alias := filepath.Join(tempDir, "alias.txt")
	if err := os.Link(src, alias); err != nil {
		t.Skipf("hard links unavailable: %v", err)
	}

	if err := Copy(src, alias); err == nil {
		t.Error("expected error copying onto a hard link of the source")
	}
	if data, _ := os.ReadFile(src); string(data) != "payload" {
		t.Error("source damaged by copy onto its own inode")
	}
}

func TestCopy_RefusesDirIntoItself(t *testing.T) {
	tempDir := t.TempDir()
	dir := filepath.Join(tempDir, "tree")
	os.MkdirAll(filepath.Join(dir, "sub"), 0o755)
	os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0o644)

	if err := Copy(dir, filepath.Join(dir, "tree")); err == nil {
		t.Error("expected error copying directory into itself")
	}
	if err := CopyInto([]string{dir}, dir); err == nil {
		t.Error("expected error from CopyInto with dest inside source")
	}
	if _, err := os.Stat(filepath.Join(dir, "tree")); !os.IsNotExist(err) {
		t.Error("partial nested copy left behind")
	}
}

func TestMove_RefusesSameFile(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "keep.txt")
	os.WriteFile(src, []byte("payload"), 0o644)

	if err := MoveInto([]string{src}, tempDir); err == nil {
		t.Error("expected error moving file onto itself")
	}
	if data, _ := os.ReadFile(src); string(data) != "payload" {
		t.Error("source damaged by self-move")
	}
}
