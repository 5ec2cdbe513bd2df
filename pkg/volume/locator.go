package volume

import (
	"fmt"

	"github.com/moyu-x/photo-importer/internal"
	"github.com/moyu-x/photo-importer/pkg/logger"
)

// Selector 在多个候选卷中选出一个
type Selector interface {
	Choose(candidates []internal.Volume) (internal.Volume, error)
}

type Locator struct {
	Selector Selector
}

func NewLocator(selector Selector) *Locator {
	return &Locator{Selector: selector}
}

// Locate 从候选卷中确定唯一的源卷
func (l *Locator) Locate(candidates []internal.Volume) (internal.Volume, error) {
	switch len(candidates) {
	case 0:
		return internal.Volume{}, internal.ErrNoVolumeFound
	case 1:
		logger.Get().Info().Msgf("使用存储卷: %s", candidates[0].Path)
		return candidates[0], nil
	}

	if l.Selector == nil {
		return internal.Volume{}, fmt.Errorf("%w: 发现 %d 个存储卷但没有选择方式", internal.ErrVolumeSelectionFailed, len(candidates))
	}

	chosen, err := l.Selector.Choose(candidates)
	if err != nil {
		return internal.Volume{}, fmt.Errorf("%w: %v", internal.ErrVolumeSelectionFailed, err)
	}

	for _, c := range candidates {
		if c.Path == chosen.Path {
			logger.Get().Info().Msgf("已选择存储卷: %s", c.Path)
			return c, nil
		}
	}

	return internal.Volume{}, fmt.Errorf("%w: %s 不在候选列表中", internal.ErrVolumeSelectionFailed, chosen.Path)
}
