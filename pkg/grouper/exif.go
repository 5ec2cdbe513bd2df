package grouper

import (
	"errors"
	"io"
	"time"

	"github.com/h2non/filetype"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"

	"github.com/moyu-x/photo-importer/internal"
	"github.com/moyu-x/photo-importer/pkg/logger"
)

// 文件类型检测所需的头部大小
const headerSize = 261

var errNotJPEG = errors.New("不是 JPEG 文件")

// ExifDate 读取 JPEG 的 EXIF DateTimeOriginal，读取失败时回退到文件创建时间
type ExifDate struct {
	Fs afero.Fs
}

func (e ExifDate) CaptureDate(f internal.ImageFile) time.Time {
	t, err := e.readExif(f.Path)
	if err != nil {
		logger.Get().Debug().Err(err).Msgf("读取 EXIF 失败，使用创建时间: %s", f.Path)
		return f.CreatedAt
	}
	return t
}

func (e ExifDate) readExif(path string) (time.Time, error) {
	file, err := e.Fs.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer file.Close()

	head := make([]byte, headerSize)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return time.Time{}, err
	}
	if !filetype.Is(head[:n], "jpg") {
		return time.Time{}, errNotJPEG
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return time.Time{}, err
	}

	x, err := exif.Decode(file)
	if err != nil {
		return time.Time{}, err
	}

	t, err := x.DateTime()
	if err != nil {
		return time.Time{}, err
	}

	// EXIF 时间是相机本地时间，保留其日历日
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

// DateSourceFor 根据配置名称返回日期来源
func DateSourceFor(name string, fs afero.Fs) DateSource {
	if name == "exif" {
		return ExifDate{Fs: fs}
	}
	return CreatedDate{}
}
