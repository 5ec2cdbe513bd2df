package scanner

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// linux 没有隐藏属性，只有点前缀
func hasHiddenAttr(string, os.FileInfo) bool {
	return false
}

// creationTime 文件系统支持时使用 statx 的 btime，否则回退到修改时间
func creationTime(path string, info os.FileInfo) time.Time {
	// 非真实文件系统（如内存文件系统）没有 Stat_t
	if _, ok := info.Sys().(*syscall.Stat_t); !ok {
		return info.ModTime()
	}

	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx); err != nil {
		return info.ModTime()
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return info.ModTime()
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
