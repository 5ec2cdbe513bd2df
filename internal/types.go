package internal

import (
	"bytes"
	"fmt"
	"time"
)

// 介质类型
type MediaType string

const (
	MediaRemovable MediaType = "removable"
	MediaFixed     MediaType = "fixed"
	MediaUnknown   MediaType = "unknown"
)

// 挂载的存储卷
type Volume struct {
	Path      string
	Label     string
	MediaType MediaType
	Ready     bool
}

func (v Volume) String() string {
	return fmt.Sprintf("%s (%s)", v.Label, v.Path)
}

// 扫描时获取的图片文件快照
type ImageFile struct {
	Path      string
	Name      string
	Ext       string
	Size      int64
	CreatedAt time.Time // UTC
}

// 传输结果
type TransferOutcome string

const (
	OutcomeMoved   TransferOutcome = "moved"
	OutcomeCopied  TransferOutcome = "copied"
	OutcomeFailed  TransferOutcome = "failed"
	OutcomeSkipped TransferOutcome = "skipped"
)

// 单个文件的传输结果
type TransferResult struct {
	File        ImageFile
	Destination string
	Outcome     TransferOutcome
	Reason      string
}

// 导入统计
type ImportStats struct {
	RunID          string
	Volume         Volume
	LibraryRoot    string
	ImagesFound    int
	LibraryImages  int
	NewImages      int
	Groups         int
	FoldersCreated int
	Moved          int
	Copied         int
	Failed         int
	SkippedGroups  int
	DryRun         bool
	Results        []TransferResult
	StartTime      time.Time
	EndTime        time.Time
}

// Record 累加一个传输结果
func (s *ImportStats) Record(r TransferResult) {
	switch r.Outcome {
	case OutcomeMoved:
		s.Moved++
	case OutcomeCopied:
		s.Copied++
	case OutcomeFailed, OutcomeSkipped:
		s.Failed++
	}
	s.Results = append(s.Results, r)
}

func (s *ImportStats) String() string {
	var buf bytes.Buffer

	buf.WriteString("========== 导入统计 ==========\n")
	buf.WriteString(fmt.Sprintf("存储卷: %s\n", s.Volume.Path))
	buf.WriteString(fmt.Sprintf("SD 卡图片数: %d\n", s.ImagesFound))
	buf.WriteString(fmt.Sprintf("图库已有图片: %d\n", s.LibraryImages))
	buf.WriteString(fmt.Sprintf("新图片: %d\n", s.NewImages))
	buf.WriteString(fmt.Sprintf("日期分组: %d\n", s.Groups))
	if s.DryRun {
		buf.WriteString("预览模式: 未修改任何文件\n")
	} else {
		buf.WriteString(fmt.Sprintf("新建文件夹: %d\n", s.FoldersCreated))
		buf.WriteString(fmt.Sprintf("已移动: %d\n", s.Moved))
		buf.WriteString(fmt.Sprintf("已复制: %d\n", s.Copied))
		buf.WriteString(fmt.Sprintf("失败: %d\n", s.Failed))
		if s.SkippedGroups > 0 {
			buf.WriteString(fmt.Sprintf("跳过的分组: %d\n", s.SkippedGroups))
		}
	}
	if !s.EndTime.IsZero() {
		buf.WriteString(fmt.Sprintf("耗时: %v\n", s.EndTime.Sub(s.StartTime).Round(time.Millisecond)))
	}

	buf.WriteString("============================")

	return buf.String()
}
