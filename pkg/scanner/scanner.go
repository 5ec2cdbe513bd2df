package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/photo-importer/internal"
	"github.com/moyu-x/photo-importer/pkg/logger"
)

// Scanner 递归列出根目录下的可见图片文件
type Scanner struct {
	Fs            afero.Fs
	Extensions    map[string]bool // 小写，带点
	MountBoundary string          // 向上检查隐藏目录时的终止目录名
}

func NewScanner(fs afero.Fs, extensions []string, mountBoundary string) *Scanner {
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}

	return &Scanner{
		Fs:            fs,
		Extensions:    exts,
		MountBoundary: mountBoundary,
	}
}

// Scan 遍历 root，返回所有符合条件的图片
// 遍历出错时整体失败，不返回部分结果
func (s *Scanner) Scan(root string) ([]internal.ImageFile, error) {
	logger.Get().Debug().Msgf("扫描目录: %s", root)

	// 目录路径 -> 是否处于隐藏状态（自身或祖先隐藏）
	hiddenDirs := make(map[string]bool)
	hiddenDirs[filepath.Dir(root)] = s.ancestorHidden(filepath.Dir(root))

	var files []internal.ImageFile

	err := afero.Walk(s.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			hiddenDirs[path] = s.dirHidden(path, info, hiddenDirs[filepath.Dir(path)])
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		if !s.IsImage(info.Name()) {
			return nil
		}

		if isHidden(path, info) || hiddenDirs[filepath.Dir(path)] {
			logger.Get().Debug().Msgf("跳过隐藏文件: %s", path)
			return nil
		}

		files = append(files, internal.ImageFile{
			Path:      path,
			Name:      info.Name(),
			Ext:       filepath.Ext(info.Name()),
			Size:      info.Size(),
			CreatedAt: creationTime(path, info).UTC(),
		})
		return nil
	})

	if err != nil {
		logger.Get().Error().Err(err).Msgf("扫描目录失败: %s", root)
		return nil, fmt.Errorf("%w: %s: %v", internal.ErrScan, root, err)
	}

	logger.Get().Debug().Msgf("扫描完成: %s，共 %d 张图片", root, len(files))
	return files, nil
}

// IsImage 按扩展名（不区分大小写）判断是否为图片
func (s *Scanner) IsImage(name string) bool {
	return s.Extensions[strings.ToLower(filepath.Ext(name))]
}

// dirHidden 目录名等于挂载边界时不再继承上层的隐藏状态
func (s *Scanner) dirHidden(path string, info os.FileInfo, parentHidden bool) bool {
	if info.Name() == s.MountBoundary {
		return false
	}
	return parentHidden || isHidden(path, info)
}

// ancestorHidden 从 dir 向上检查，直到挂载边界或文件系统根
func (s *Scanner) ancestorHidden(dir string) bool {
	for {
		name := filepath.Base(dir)
		if name == s.MountBoundary {
			return false
		}

		if info, err := s.Fs.Stat(dir); err == nil && isHidden(dir, info) {
			return true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// isHidden 以点开头的名称或带有系统隐藏属性的文件
func isHidden(path string, info os.FileInfo) bool {
	name := info.Name()
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	return hasHiddenAttr(path, info)
}
