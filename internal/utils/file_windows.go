//go:build windows

package utils

import (
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/windows"
)

// IsHiddenFile checks if a file is hidden on Windows systems, either through
// the hidden attribute or a leading dot.
func IsHiddenFile(path string) bool {
	if name := filepath.Base(path); strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	pointer, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attributes, err := windows.GetFileAttributes(pointer)
	if err != nil {
		return false
	}
	return attributes&windows.FILE_ATTRIBUTE_HIDDEN != 0
}

// CreatedTime returns the file creation time recorded by NTFS.
func CreatedTime(path string, info fs.FileInfo) time.Time {
	if data, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, data.CreationTime.Nanoseconds())
	}
	return info.ModTime()
}
