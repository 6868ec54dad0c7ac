package listing

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Kind classifies a directory entry.
type Kind int

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
)

// SortKey selects which attribute a listing is ordered by.
type SortKey int

const (
	SortModified SortKey = iota
	SortCreated
	SortAccessed
	SortSize
	SortName
)

// ParseSortKey maps a config/CLI string to a SortKey. Unknown strings
// fall back to SortModified.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(s) {
	case "created":
		return SortCreated
	case "accessed":
		return SortAccessed
	case "size":
		return SortSize
	case "name":
		return SortName
	default:
		return SortModified
	}
}

func (k SortKey) String() string {
	switch k {
	case SortCreated:
		return "created"
	case SortAccessed:
		return "accessed"
	case SortSize:
		return "size"
	case SortName:
		return "name"
	default:
		return "modified"
	}
}

// Entry is an immutable snapshot of one directory child. It is recreated
// on every listing refresh and never updated in place.
type Entry struct {
	Name       string
	Path       string
	Kind       Kind
	Size       int64
	ModTime    time.Time
	CreateTime time.Time
	AccessTime time.Time
	LinkTarget string // resolved target for symlinks, empty otherwise
}

// IsDir reports whether the entry behaves as a directory. Symlinks count
// when their target is a directory.
func (e Entry) IsDir() bool { return e.Kind == KindDir }

// Options control which children appear and how they are ordered.
type Options struct {
	ShowHidden bool
	SortBy     SortKey
	Reverse    bool // oldest/smallest first when set
}

// Listing is the ordered snapshot of one directory. It is replaced
// wholesale on refresh; callers must not mutate it.
type Listing []Entry

// List reads dir and returns its children sorted per opts. Every call
// re-reads the directory; nothing is cached. Hidden entries are silently
// omitted unless opts.ShowHidden is set. Errors are classified so callers
// can match with errors.Is against ErrNotFound, ErrPermission and
// ErrNotDirectory.
func List(dir string, opts Options) (Listing, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, classify(err, dir)
	}
	if !info.IsDir() {
		return nil, notDirError(dir)
	}

	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, classify(err, dir)
	}

	entries := make(Listing, 0, len(children))
	for _, child := range children {
		name := child.Name()
		if !opts.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(dir, name)
		linfo, err := os.Lstat(path)
		if err != nil {
			// Raced with a delete; the child no longer exists.
			continue
		}

		entry := Entry{
			Name: name,
			Path: path,
		}

		if linfo.Mode()&os.ModeSymlink != 0 {
			entry.Kind = KindSymlink
			if target, err := os.Readlink(path); err == nil {
				if !filepath.IsAbs(target) {
					target = filepath.Join(dir, target)
				}
				entry.LinkTarget = target
			}
			// Stat follows the link; a broken link keeps the link's own info.
			if tinfo, err := os.Stat(path); err == nil {
				if tinfo.IsDir() {
					entry.Kind = KindDir
				}
				fillTimes(&entry, tinfo)
			} else {
				fillTimes(&entry, linfo)
			}
		} else {
			if linfo.IsDir() {
				entry.Kind = KindDir
			}
			fillTimes(&entry, linfo)
		}

		entries = append(entries, entry)
	}

	sortEntries(entries, opts)
	return entries, nil
}

func fillTimes(e *Entry, info os.FileInfo) {
	e.Size = info.Size()
	e.ModTime = info.ModTime()
	e.CreateTime, e.AccessTime = statTimes(info)
	if e.CreateTime.IsZero() {
		e.CreateTime = e.ModTime
	}
	if e.AccessTime.IsZero() {
		e.AccessTime = e.ModTime
	}
}

// sortEntries orders entries by the chosen key, newest/largest first
// unless reversed. Ties always fall back to case-insensitive name
// ascending regardless of direction, so equal-key runs are deterministic.
func sortEntries(entries Listing, opts Options) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		var less, equal bool
		switch opts.SortBy {
		case SortName:
			return nameLess(a.Name, b.Name) != opts.Reverse
		case SortSize:
			less, equal = a.Size > b.Size, a.Size == b.Size
		case SortCreated:
			less, equal = a.CreateTime.After(b.CreateTime), a.CreateTime.Equal(b.CreateTime)
		case SortAccessed:
			less, equal = a.AccessTime.After(b.AccessTime), a.AccessTime.Equal(b.AccessTime)
		default:
			less, equal = a.ModTime.After(b.ModTime), a.ModTime.Equal(b.ModTime)
		}

		if equal {
			return nameLess(a.Name, b.Name)
		}
		if opts.Reverse {
			return !less
		}
		return less
	})
}

// nameLess compares case-insensitively, falling back to byte order when
// the folded names are identical so ordering is total.
func nameLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// IndexOf returns the position of the entry with the given name, or -1.
func (l Listing) IndexOf(name string) int {
	for i, e := range l {
		if e.Name == name {
			return i
		}
	}
	return -1
}
