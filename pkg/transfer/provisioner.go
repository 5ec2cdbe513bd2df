package transfer

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/moyu-x/photo-importer/internal"
	"github.com/moyu-x/photo-importer/pkg/logger"
)

// Provisioner 确保目标文件夹存在
type Provisioner struct {
	Fs afero.Fs
}

func NewProvisioner(fs afero.Fs) *Provisioner {
	return &Provisioner{Fs: fs}
}

// Ensure 文件夹已存在或创建成功时返回 nil，created 表示本次是否新建
func (p *Provisioner) Ensure(folder string) (created bool, err error) {
	exists, err := afero.DirExists(p.Fs, folder)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", internal.ErrFolderCreation, folder, err)
	}
	if exists {
		return false, nil
	}

	if err := p.Fs.MkdirAll(folder, 0755); err != nil {
		logger.Get().Error().Err(err).Str("path", folder).Msg("无法创建文件夹")
		return false, fmt.Errorf("%w: %s: %v", internal.ErrFolderCreation, folder, err)
	}

	// 同名文件占用路径时 MkdirAll 在部分文件系统上不报错
	if exists, err := afero.DirExists(p.Fs, folder); err != nil || !exists {
		logger.Get().Error().Str("path", folder).Msg("路径已被文件占用")
		return false, fmt.Errorf("%w: %s: 不是目录", internal.ErrFolderCreation, folder)
	}

	logger.Get().Debug().Str("path", folder).Msg("已创建文件夹")
	return true, nil
}
