package scanner

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

func hasHiddenAttr(_ string, info os.FileInfo) bool {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	return st.Flags&unix.UF_HIDDEN != 0
}

func creationTime(_ string, info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
}
