//go:build !darwin && !linux && !windows

package scanner

import (
	"os"
	"time"
)

func hasHiddenAttr(string, os.FileInfo) bool {
	return false
}

func creationTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
