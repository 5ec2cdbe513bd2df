//go:build unix

package volume

import (
	"os"
	"syscall"

	"github.com/moyu-x/photo-importer/internal"
)

// 与挂载根目录不在同一设备上的卷视为可移动介质
func mediaTypeOf(root, vol os.FileInfo) internal.MediaType {
	rs, ok := root.Sys().(*syscall.Stat_t)
	if !ok {
		return internal.MediaUnknown
	}
	vs, ok := vol.Sys().(*syscall.Stat_t)
	if !ok {
		return internal.MediaUnknown
	}
	if rs.Dev != vs.Dev {
		return internal.MediaRemovable
	}
	return internal.MediaFixed
}
