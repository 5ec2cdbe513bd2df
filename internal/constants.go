package internal

import "time"

const (
	// 图库默认根目录
	DefaultLibraryRoot = "~/Pictures"

	// 日期文件夹名称格式（UTC）
	DefaultFolderFormat = "SD Card Import 02-Jan-2006"

	// 相机存储卡上的图片目录
	DefaultImageDir = "DCIM"

	// 导入日志数据库默认路径
	DefaultJournalPath = "~/.photo-importer/journal.db"

	// 致命错误后退出前的等待时间
	DefaultExitDelay = 6 * time.Second
)

// 默认支持的图片扩展名
var DefaultExtensions = []string{".jpg", ".jpeg", ".png"}
