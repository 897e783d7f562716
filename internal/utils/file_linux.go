//go:build linux

package utils

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// CreatedTime returns the birth time reported by statx, or the modification
// time on filesystems that do not record one.
func CreatedTime(path string, info fs.FileInfo) time.Time {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err != nil {
		return info.ModTime()
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return info.ModTime()
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
