package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/moyu-x/photo-importer/internal"
)

// Bar 在终端显示导入进度
type Bar struct {
	Out io.Writer
	bar *progressbar.ProgressBar
}

func NewBar(out io.Writer) *Bar {
	return &Bar{Out: out}
}

func (b *Bar) Start(total int) {
	if total <= 0 {
		return
	}
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.Out),
		progressbar.OptionSetDescription("导入图片"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
	)
}

func (b *Bar) Advance(internal.TransferResult) {
	if b.bar == nil {
		return
	}
	b.bar.Add(1)
}

func (b *Bar) Finish() {
	if b.bar == nil {
		return
	}
	b.bar.Finish()
	io.WriteString(b.Out, "\n")
}
