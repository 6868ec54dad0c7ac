//go:build !linux && !darwin

package listing

import (
	"os"
	"time"
)

// statTimes on platforms without a known Stat_t layout; List falls back
// to the modification time for both.
func statTimes(info os.FileInfo) (created, accessed time.Time) {
	return time.Time{}, time.Time{}
}
