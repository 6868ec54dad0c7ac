package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileIcon(t *testing.T) {
	if FileIcon("main.go") != "📝" {
		t.Error("code files should use the code glyph")
	}
	if FileIcon("photo.png") != "🖼" {
		t.Error("images should use the image glyph")
	}
	if FileIcon("mystery.xyz") != "📄" {
		t.Error("unknown extensions fall back to the plain glyph")
	}
}

func TestIsBinaryFile_ByExtension(t *testing.T) {
	if !IsBinaryFile("archive.zip") {
		t.Error("zip should be binary by extension")
	}
	if IsBinaryFile(filepath.Join(t.TempDir(), "missing.txt")) {
		t.Error("missing text file should not report binary")
	}
}

func TestIsBinaryFile_BySniffing(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "plain")
	os.WriteFile(text, []byte("hello\nworld\n"), 0o644)
	if IsBinaryFile(text) {
		t.Error("plain text misdetected as binary")
	}

	bin := filepath.Join(dir, "blob")
	os.WriteFile(bin, []byte{0x7f, 0x45, 0x4c, 0x46, 0x00, 0x01}, 0o644)
	if !IsBinaryFile(bin) {
		t.Error("NUL-containing file should be binary")
	}
}
