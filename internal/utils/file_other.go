//go:build !windows && !linux

package utils

import (
	"io/fs"
	"time"
)

// CreatedTime falls back to the modification time where no portable birth
// time is available.
func CreatedTime(path string, info fs.FileInfo) time.Time {
	return info.ModTime()
}
