package tui

import (
	"strings"
)

func (m model) View() string {
	if m.chosen != nil || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.list.View() + "\n")
	b.WriteString(hintStyle.Render("↑/↓ 移动  Enter 确认  Esc 取消"))

	return docStyle.Render(b.String())
}
