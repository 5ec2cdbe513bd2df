package transfer

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/afero"
)

var errInjected = errors.New("injected failure")

// faultFs 在指定路径上注入文件系统错误
type faultFs struct {
	afero.Fs
	failRenameFrom string // 源路径以此前缀开头时 Rename 失败
	failCreate     string // 以此前缀开头的路径无法创建
	failWrite      string // 以此前缀开头的文件写入一个字节后失败
	failMkdir      string
}

func (f *faultFs) Rename(oldname, newname string) error {
	if f.failRenameFrom != "" && strings.HasPrefix(oldname, f.failRenameFrom) {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: errInjected}
	}
	return f.Fs.Rename(oldname, newname)
}

func (f *faultFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&os.O_CREATE != 0 && f.failCreate != "" && strings.HasPrefix(name, f.failCreate) {
		return nil, &os.PathError{Op: "open", Path: name, Err: errInjected}
	}
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	if f.failWrite != "" && strings.HasPrefix(name, f.failWrite) {
		return &failingFile{File: file}, nil
	}
	return file, nil
}

func (f *faultFs) MkdirAll(path string, perm os.FileMode) error {
	if f.failMkdir != "" && strings.HasPrefix(path, f.failMkdir) {
		return &os.PathError{Op: "mkdir", Path: path, Err: errInjected}
	}
	return f.Fs.MkdirAll(path, perm)
}

type failingFile struct {
	afero.File
}

func (f *failingFile) Write(p []byte) (int, error) {
	if len(p) > 0 {
		if _, err := f.File.Write(p[:1]); err != nil {
			return 0, err
		}
	}
	return 1, errInjected
}
