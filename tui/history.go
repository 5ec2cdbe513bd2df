package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/moyu-x/photo-importer/pkg/database"
)

// RenderRuns 以表格形式输出导入记录
func RenderRuns(runs []database.ImportRun) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(separatorStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("时间", "存储卷", "新图片", "移动", "复制", "失败", "状态")

	for _, r := range runs {
		status := "完成"
		if r.FinishedAt == nil {
			status = "未完成"
		}
		t.Row(
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.VolumePath,
			strconv.Itoa(r.NewImages),
			strconv.Itoa(r.Moved),
			strconv.Itoa(r.Copied),
			strconv.Itoa(r.Failed),
			status,
		)
	}

	return t.Render()
}
