package listing

import (
	"time"

	"github.com/dustin/go-humanize"
)

// RelativeTime renders a timestamp as "3 days ago" style text.
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// FileSize renders a byte count compactly ("4.2 MB"). Directories are
// conventionally shown as "-" by callers.
func FileSize(n int64) string {
	return humanize.Bytes(uint64(n))
}

// TimeFor returns the entry timestamp matching the sort key; size and
// name sorts display the modification time.
func (e Entry) TimeFor(key SortKey) time.Time {
	switch key {
	case SortCreated:
		return e.CreateTime
	case SortAccessed:
		return e.AccessTime
	default:
		return e.ModTime
	}
}
