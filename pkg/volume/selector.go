package volume

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/moyu-x/photo-importer/internal"
)

var errNoMatch = errors.New("没有匹配的存储卷")

// FirstSelector 总是选择第一个候选卷
type FirstSelector struct{}

func (FirstSelector) Choose(candidates []internal.Volume) (internal.Volume, error) {
	if len(candidates) == 0 {
		return internal.Volume{}, errNoMatch
	}
	return candidates[0], nil
}

// LabelSelector 按卷标选择，不区分大小写
type LabelSelector struct {
	Label string
}

func (s LabelSelector) Choose(candidates []internal.Volume) (internal.Volume, error) {
	for _, c := range candidates {
		if strings.EqualFold(c.Label, s.Label) {
			return c, nil
		}
	}
	return internal.Volume{}, fmt.Errorf("%w: %s", errNoMatch, s.Label)
}

// PromptSelector 在终端列出候选卷，读取用户输入的序号、卷标或路径
type PromptSelector struct {
	In  io.Reader
	Out io.Writer
}

func (s PromptSelector) Choose(candidates []internal.Volume) (internal.Volume, error) {
	fmt.Fprintln(s.Out, "发现多个存储卷:")
	for i, c := range candidates {
		fmt.Fprintf(s.Out, "  [%d] %s\n", i+1, c)
	}
	fmt.Fprintf(s.Out, "请选择 SD 卡 (1-%d): ", len(candidates))

	line, err := bufio.NewReader(s.In).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return internal.Volume{}, fmt.Errorf("读取输入失败: %w", err)
	}
	answer := strings.TrimSpace(line)

	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(candidates) {
			return internal.Volume{}, fmt.Errorf("%w: 序号 %d 超出范围", errNoMatch, n)
		}
		return candidates[n-1], nil
	}

	for _, c := range candidates {
		if answer == c.Path || strings.EqualFold(answer, c.Label) {
			return c, nil
		}
	}

	return internal.Volume{}, fmt.Errorf("%w: %q", errNoMatch, answer)
}
