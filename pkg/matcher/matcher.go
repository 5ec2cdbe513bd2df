package matcher

import (
	"strings"
	"unicode/utf8"

	"github.com/moyu-x/photo-importer/internal"
)

// NameKey 文件名比较键：忽略大小写的名称加上原始名称长度
// 两个文件名仅在 Folded 与 Length 都相等时视为相同
type NameKey struct {
	Folded string
	Length int
}

// KeyOf 计算文件名的比较键
func KeyOf(name string) NameKey {
	return NameKey{
		Folded: strings.ToLower(name),
		Length: utf8.RuneCountInString(name),
	}
}

// SameName 判断两个文件名是否按导入规则相同
func SameName(a, b string) bool {
	return KeyOf(a) == KeyOf(b)
}

// Diff 返回 source 中在 destination 里找不到同名文件的图片
// 只比较文件名，不比较大小、内容和时间
func Diff(source, destination []internal.ImageFile) []internal.ImageFile {
	existing := make(map[NameKey]struct{}, len(destination))
	for _, f := range destination {
		existing[KeyOf(f.Name)] = struct{}{}
	}

	newFiles := make([]internal.ImageFile, 0, len(source))
	for _, f := range source {
		if _, ok := existing[KeyOf(f.Name)]; ok {
			continue
		}
		newFiles = append(newFiles, f)
	}

	return newFiles
}
