package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/photo-importer/internal"
	"github.com/moyu-x/photo-importer/pkg/logger"
)

var errCancelled = errors.New("用户取消选择")

// Selector 在终端列表中选择存储卷
type Selector struct {
	Options []tea.ProgramOption
}

func NewSelector() *Selector {
	return &Selector{Options: []tea.ProgramOption{tea.WithAltScreen()}}
}

func (s *Selector) Choose(candidates []internal.Volume) (internal.Volume, error) {
	logger.Get().Debug().Msgf("启动存储卷选择界面，候选 %d 个", len(candidates))

	p := tea.NewProgram(newModel(candidates), s.Options...)
	final, err := p.Run()
	if err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
		return internal.Volume{}, err
	}

	return final.(model).result()
}
