package transfer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/photo-importer/internal"
	"github.com/moyu-x/photo-importer/pkg/logger"
)

// 复制时使用的临时文件后缀
const partialSuffix = ".partial"

// Transferer 把文件移动到目标文件夹，移动失败时改为复制
type Transferer struct {
	Fs afero.Fs
}

func NewTransferer(fs afero.Fs) *Transferer {
	return &Transferer{Fs: fs}
}

// Transfer 以原文件名放入 folder
// 移动失败时复制，源文件保留在原处；复制失败时目标位置不留下任何文件
func (t *Transferer) Transfer(file internal.ImageFile, folder string) internal.TransferResult {
	dst := filepath.Join(folder, file.Name)
	result := internal.TransferResult{File: file, Destination: dst}

	exists, err := afero.Exists(t.Fs, dst)
	if err != nil || exists {
		if err == nil {
			err = internal.ErrDestinationExists
		}
		logger.Get().Error().Err(err).Str("file", file.Path).Str("destination", dst).Msg("无法导入文件")
		result.Outcome = internal.OutcomeFailed
		result.Reason = err.Error()
		return result
	}

	logger.Get().Debug().Msgf("移动 %s -> %s", file.Path, dst)

	moveErr := t.Fs.Rename(file.Path, dst)
	if moveErr == nil {
		logger.Get().Debug().Str("file", file.Name).Str("destination", dst).Msg("已移动")
		result.Outcome = internal.OutcomeMoved
		return result
	}

	moveErr = fmt.Errorf("%w: %v", internal.ErrMoveFailed, moveErr)
	logger.Get().Debug().Err(moveErr).Str("file", file.Path).Msg("移动失败，尝试复制")

	if err := t.copyFile(file.Path, dst); err != nil {
		err = fmt.Errorf("%w: %v", internal.ErrCopyFailed, err)
		logger.Get().Error().Err(err).Str("file", file.Path).Msg("无法从 SD 卡复制文件")
		result.Outcome = internal.OutcomeFailed
		result.Reason = errors.Join(moveErr, err).Error()
		return result
	}

	logger.Get().Debug().Str("file", file.Name).Str("destination", dst).Str("reason", moveErr.Error()).Msg("已改为复制，源文件保留")
	result.Outcome = internal.OutcomeCopied
	result.Reason = moveErr.Error()
	return result
}

// copyFile 先写入同目录下的隐藏临时文件，同步后再重命名为目标文件
func (t *Transferer) copyFile(src, dst string) (err error) {
	tmp := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+partialSuffix)

	in, err := t.Fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := t.Fs.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = t.Fs.Remove(tmp)
		}
	}()

	_, copyErr := io.Copy(out, in)
	syncErr := out.Sync()
	closeErr := out.Close()

	if copyErr != nil {
		return copyErr
	}
	if syncErr != nil {
		return syncErr
	}
	if closeErr != nil {
		return closeErr
	}

	_ = t.Fs.Chmod(tmp, info.Mode().Perm())
	_ = t.Fs.Chtimes(tmp, info.ModTime(), info.ModTime())

	// 目标在复制期间出现时不覆盖
	if exists, _ := afero.Exists(t.Fs, dst); exists {
		return internal.ErrDestinationExists
	}

	if err := t.Fs.Rename(tmp, dst); err != nil {
		return fmt.Errorf("重命名临时文件: %w", err)
	}
	return nil
}
