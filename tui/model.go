package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/photo-importer/internal"
)

type volumeItem struct {
	vol internal.Volume
}

func (i volumeItem) Title() string       { return i.vol.Label }
func (i volumeItem) Description() string { return fmt.Sprintf("%s · %s", i.vol.Path, i.vol.MediaType) }
func (i volumeItem) FilterValue() string { return i.vol.Label }

type model struct {
	list      list.Model
	chosen    *internal.Volume
	cancelled bool
}

func newModel(candidates []internal.Volume) model {
	items := make([]list.Item, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, volumeItem{vol: c})
	}

	l := list.New(items, list.NewDefaultDelegate(), 60, 20)
	l.Title = "发现多个存储卷，请选择 SD 卡"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.TitleBar = titleStyle

	return model{list: l}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) result() (internal.Volume, error) {
	if m.chosen == nil {
		return internal.Volume{}, errCancelled
	}
	return *m.chosen, nil
}
