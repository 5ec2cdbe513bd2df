package scanner

import (
	"os"
	"syscall"
	"time"
)

func hasHiddenAttr(_ string, info os.FileInfo) bool {
	attr, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return false
	}
	return attr.FileAttributes&syscall.FILE_ATTRIBUTE_HIDDEN != 0
}

func creationTime(_ string, info os.FileInfo) time.Time {
	attr, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(0, attr.CreationTime.Nanoseconds())
}
