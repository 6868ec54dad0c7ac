package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// FileIcon returns a small glyph for the entry name shown in previews.
func FileIcon(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".go", ".py", ".rs", ".js", ".ts", ".c", ".cpp", ".h", ".java", ".rb", ".sh":
		return "📝"
	case ".md", ".txt", ".log", ".json", ".yaml", ".yml", ".toml":
		return "📄"
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico":
		return "🖼"
	case ".zip", ".tar", ".gz", ".xz", ".zst", ".7z":
		return "📦"
	case ".mp3", ".flac", ".ogg", ".wav", ".mp4", ".mkv", ".mov":
		return "🎬"
	default:
		return "📄"
	}
}

var binaryExts = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".ico": true, ".pdf": true, ".zip": true, ".tar": true, ".gz": true,
	".xz": true, ".zst": true, ".7z": true, ".mp3": true, ".flac": true,
	".ogg": true, ".wav": true, ".mp4": true, ".mkv": true, ".mov": true,
	".db": true, ".sqlite": true, ".o": true, ".a": true,
}

// IsBinaryFile guesses whether a file is binary, first by extension and
// then by sniffing the first bytes for NULs.
func IsBinaryFile(path string) bool {
	if binaryExts[strings.ToLower(filepath.Ext(path))] {
		return true
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return false
	}
	for _, b := range buf[:n] {
		if b == 0 {
			return true
		}
	}
	return false
}
