package volume

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/photo-importer/internal"
	"github.com/moyu-x/photo-importer/pkg/logger"
)

// Discoverer 列出挂载根目录下的存储卷
type Discoverer struct {
	Fs    afero.Fs
	Roots []string
}

func NewDiscoverer(fs afero.Fs, roots []string) *Discoverer {
	return &Discoverer{Fs: fs, Roots: roots}
}

// Volumes 返回所有根目录下的子目录，不存在的根目录直接跳过
func (d *Discoverer) Volumes() ([]internal.Volume, error) {
	var vols []internal.Volume

	for _, root := range d.Roots {
		rootInfo, err := d.Fs.Stat(root)
		if err != nil || !rootInfo.IsDir() {
			logger.Get().Debug().Msgf("挂载目录不可用: %s", root)
			continue
		}

		entries, err := afero.ReadDir(d.Fs, root)
		if err != nil {
			logger.Get().Warn().Err(err).Msgf("读取挂载目录失败: %s", root)
			continue
		}

		for _, entry := range entries {
			path := filepath.Join(root, entry.Name())

			// macOS 的 /Volumes/Macintosh HD 是指向 / 的符号链接，不是挂载点
			if d.isSymlink(path, entry) {
				logger.Get().Debug().Msgf("跳过符号链接: %s", path)
				continue
			}

			info, err := d.Fs.Stat(path)
			if err != nil || !info.IsDir() {
				continue
			}

			_, readErr := afero.ReadDir(d.Fs, path)
			vols = append(vols, internal.Volume{
				Path:      path,
				Label:     entry.Name(),
				MediaType: mediaTypeOf(rootInfo, info),
				Ready:     readErr == nil,
			})
		}
	}

	logger.Get().Debug().Msgf("发现 %d 个存储卷", len(vols))
	return vols, nil
}

func (d *Discoverer) isSymlink(path string, entry os.FileInfo) bool {
	if entry.Mode()&os.ModeSymlink != 0 {
		return true
	}
	if lst, ok := d.Fs.(afero.Lstater); ok {
		if info, _, err := lst.LstatIfPossible(path); err == nil {
			return info.Mode()&os.ModeSymlink != 0
		}
	}
	return false
}

// Explicit 根据用户指定的路径构造存储卷
func Explicit(fs afero.Fs, path string) internal.Volume {
	vol := internal.Volume{
		Path:      filepath.Clean(path),
		Label:     filepath.Base(path),
		MediaType: internal.MediaUnknown,
	}
	if info, err := fs.Stat(path); err == nil && info.IsDir() {
		vol.Ready = true
	}
	return vol
}

// Filter 保留已就绪、介质类型可接受且路径前缀匹配的存储卷
func Filter(vols []internal.Volume, prefix string, accepted []internal.MediaType) []internal.Volume {
	var out []internal.Volume
	for _, v := range vols {
		if !v.Ready {
			continue
		}
		if !strings.HasPrefix(v.Path, prefix) {
			continue
		}
		if !acceptsMedia(accepted, v.MediaType) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// 无法判断介质类型时按固定磁盘处理
func acceptsMedia(accepted []internal.MediaType, mt internal.MediaType) bool {
	if mt == internal.MediaUnknown {
		mt = internal.MediaFixed
	}
	for _, a := range accepted {
		if a == mt {
			return true
		}
	}
	return false
}


// Static 固定的存储卷列表
type Static []internal.Volume

func (s Static) Volumes() ([]internal.Volume, error) {
	return s, nil
}
