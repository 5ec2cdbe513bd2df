package grouper

import (
	"sort"
	"time"

	"github.com/moyu-x/photo-importer/internal"
	"github.com/moyu-x/photo-importer/pkg/logger"
)

// DateSource 提供图片的拍摄日期
type DateSource interface {
	CaptureDate(f internal.ImageFile) time.Time
}

// CreatedDate 使用扫描时记录的文件创建时间
type CreatedDate struct{}

func (CreatedDate) CaptureDate(f internal.ImageFile) time.Time {
	return f.CreatedAt
}

// Grouper 按拍摄日期（UTC 日历日）把图片分组
type Grouper struct {
	Format string
	Dates  DateSource
}

func NewGrouper(format string, dates DateSource) *Grouper {
	if format == "" {
		format = internal.DefaultFolderFormat
	}
	if dates == nil {
		dates = CreatedDate{}
	}
	return &Grouper{Format: format, Dates: dates}
}

// Key 返回图片所属的日期文件夹名，同一天的图片得到相同的键
func (g *Grouper) Key(f internal.ImageFile) string {
	return g.Dates.CaptureDate(f).UTC().Format(g.Format)
}

// Group 按日期键分组，不会产生空分组
func (g *Grouper) Group(files []internal.ImageFile) map[string][]internal.ImageFile {
	groups := make(map[string][]internal.ImageFile)
	for _, f := range files {
		key := g.Key(f)
		groups[key] = append(groups[key], f)
	}

	logger.Get().Debug().Msgf("分组完成: %d 个文件，%d 个分组", len(files), len(groups))
	return groups
}

// SortedKeys 返回排序后的分组键，保证处理顺序稳定
func SortedKeys(groups map[string][]internal.ImageFile) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
