//go:build linux

package listing

import (
	"os"
	"syscall"
	"time"
)

// statTimes extracts creation and access times from the raw stat. Linux
// exposes no birth time through syscall.Stat_t, so ctime (status change)
// stands in for creation.
func statTimes(info os.FileInfo) (created, accessed time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, time.Time{}
	}
	created = time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec)
	accessed = time.Unix(stat.Atim.Sec, stat.Atim.Nsec)
	return created, accessed
}
