package listing

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
	if !mtime.IsZero() {
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
	return path
}

func names(l Listing) []string {
	out := make([]string, len(l))
	for i, e := range l {
		out[i] = e.Name
	}
	return out
}

func TestList_CountsNonHiddenChildren(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", time.Time{})
	writeFile(t, dir, "b.txt", time.Time{})
	writeFile(t, dir, ".hidden", time.Time{})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	l, err := List(dir, Options{})
	require.NoError(t, err)
	assert.Len(t, l, 3, "hidden entries must be omitted, not reported")

	l, err = List(dir, Options{ShowHidden: true})
	require.NoError(t, err)
	assert.Len(t, l, 4)
}

func TestList_SortsByModTimeDescending(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	writeFile(t, dir, "old.txt", base.Add(-10*time.Minute))
	writeFile(t, dir, "new.txt", base.Add(10*time.Minute))
	writeFile(t, dir, "mid.txt", base)

	l, err := List(dir, Options{SortBy: SortModified})
	require.NoError(t, err)
	assert.Equal(t, []string{"new.txt", "mid.txt", "old.txt"}, names(l))
}

func TestList_TieBreaksByNameCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Now().Add(-time.Hour).Truncate(time.Second)
	writeFile(t, dir, "b.txt", mtime)
	writeFile(t, dir, "a.txt", mtime)
	writeFile(t, dir, "C.txt", mtime)

	l, err := List(dir, Options{SortBy: SortModified})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "C.txt"}, names(l))
}

func TestList_OrderIsStableAcrossRelists(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Now().Add(-time.Hour).Truncate(time.Second)
	for _, name := range []string{"one", "two", "three", "four"} {
		writeFile(t, dir, name, mtime)
	}

	first, err := List(dir, Options{})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := List(dir, Options{})
		require.NoError(t, err)
		assert.Equal(t, names(first), names(again))
	}
}

func TestList_Reverse(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	writeFile(t, dir, "old.txt", base.Add(-10*time.Minute))
	writeFile(t, dir, "new.txt", base.Add(10*time.Minute))

	l, err := List(dir, Options{SortBy: SortModified, Reverse: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"old.txt", "new.txt"}, names(l))
}

func TestList_SortByName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "banana", time.Time{})
	writeFile(t, dir, "Apple", time.Time{})
	writeFile(t, dir, "cherry", time.Time{})

	l, err := List(dir, Options{SortBy: SortName})
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, names(l))
}

func TestList_SortBySize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big"), make([]byte, 100), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "small"), make([]byte, 1), 0o644))

	l, err := List(dir, Options{SortBy: SortSize})
	require.NoError(t, err)
	assert.Equal(t, []string{"big", "small"}, names(l))
}

func TestList_NotFound(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "nope"), Options{})
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestList_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.txt", time.Time{})

	_, err := List(path, Options{})
	assert.True(t, errors.Is(err, ErrNotDirectory), "got %v", err)
}

func TestList_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced here")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	_, err := List(locked, Options{})
	assert.True(t, errors.Is(err, ErrPermission), "got %v", err)
}

func TestList_Symlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link")))

	l, err := List(dir, Options{SortBy: SortName})
	require.NoError(t, err)
	require.Len(t, l, 2)

	idx := l.IndexOf("link")
	require.GreaterOrEqual(t, idx, 0)
	assert.True(t, l[idx].IsDir(), "symlink to dir behaves as dir")
	assert.Equal(t, target, l[idx].LinkTarget)
}

func TestList_BrokenSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling")))

	l, err := List(dir, Options{})
	require.NoError(t, err)
	require.Len(t, l, 1)
	assert.Equal(t, KindSymlink, l[0].Kind)
	assert.False(t, l[0].IsDir())
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want SortKey
	}{
		{"modified", SortModified},
		{"created", SortCreated},
		{"accessed", SortAccessed},
		{"size", SortSize},
		{"name", SortName},
		{"", SortModified},
		{"bogus", SortModified},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSortKey(tt.in), "input %q", tt.in)
	}
}

func TestIndexOf(t *testing.T) {
	l := Listing{{Name: "a"}, {Name: "b"}}
	assert.Equal(t, 1, l.IndexOf("b"))
	assert.Equal(t, -1, l.IndexOf("z"))
}
