//go:build darwin

package listing

import (
	"os"
	"syscall"
	"time"
)

// statTimes extracts creation and access times from the raw stat.
// Darwin stores true birth time in Birthtimespec.
func statTimes(info os.FileInfo) (created, accessed time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, time.Time{}
	}
	created = time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec)
	accessed = time.Unix(stat.Atimespec.Sec, stat.Atimespec.Nsec)
	return created, accessed
}
