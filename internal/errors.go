package internal

import "errors"

var (
	ErrNoVolumeFound         = errors.New("未找到 SD 卡")
	ErrVolumeSelectionFailed = errors.New("无法选择存储卷")
	ErrScan                  = errors.New("扫描目录失败")
	ErrFolderCreation        = errors.New("创建文件夹失败")
	ErrMoveFailed            = errors.New("移动文件失败")
	ErrCopyFailed            = errors.New("复制文件失败")
	ErrDestinationExists     = errors.New("目标文件已存在")
)
