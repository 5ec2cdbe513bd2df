package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/moyu-x/photo-importer/internal"
	"github.com/moyu-x/photo-importer/pkg/grouper"
	"github.com/moyu-x/photo-importer/pkg/logger"
	"github.com/moyu-x/photo-importer/pkg/matcher"
	"github.com/moyu-x/photo-importer/pkg/scanner"
	"github.com/moyu-x/photo-importer/pkg/transfer"
	"github.com/moyu-x/photo-importer/pkg/volume"
)

// VolumeSource 提供当前挂载的存储卷
type VolumeSource interface {
	Volumes() ([]internal.Volume, error)
}

// Recorder 记录导入过程，错误只记日志不影响导入
type Recorder interface {
	BeginRun(stats *internal.ImportStats) error
	RecordTransfer(runID string, r internal.TransferResult) error
	FinishRun(stats *internal.ImportStats) error
}

// Progress 接收传输进度
type Progress interface {
	Start(total int)
	Advance(r internal.TransferResult)
	Finish()
}

type Importer struct {
	Volumes     VolumeSource
	Locator     *volume.Locator
	Scanner     *scanner.Scanner
	Grouper     *grouper.Grouper
	Provisioner *transfer.Provisioner
	Transferer  *transfer.Transferer

	LibraryRoot string
	ImageDir    string
	MountPrefix string
	MediaTypes  []internal.MediaType
	DryRun      bool

	Recorder Recorder
	Progress Progress

	log zerolog.Logger
}

// Run 执行一次完整导入
// 只有定位存储卷和扫描目录的错误会中止导入
func (imp *Importer) Run() (*internal.ImportStats, error) {
	stats := &internal.ImportStats{
		RunID:       uuid.NewString(),
		LibraryRoot: imp.LibraryRoot,
		DryRun:      imp.DryRun,
		StartTime:   time.Now(),
	}
	imp.log = logger.Get().With().Str("run_id", stats.RunID).Logger()

	vol, err := imp.locate()
	if err != nil {
		return nil, err
	}
	stats.Volume = vol

	source := filepath.Join(vol.Path, imp.ImageDir)
	imp.log.Info().Msgf("扫描 SD 卡 %s 中的图片...", source)

	sourceFiles, err := imp.Scanner.Scan(source)
	if err != nil {
		return nil, err
	}
	stats.ImagesFound = len(sourceFiles)

	imp.log.Info().Msgf("SD 卡上共 %d 张图片，正在读取图库 %s...", len(sourceFiles), imp.LibraryRoot)

	libraryFiles, err := imp.scanLibrary()
	if err != nil {
		return nil, err
	}
	stats.LibraryImages = len(libraryFiles)

	newFiles := matcher.Diff(sourceFiles, libraryFiles)
	stats.NewImages = len(newFiles)

	groups := imp.Grouper.Group(newFiles)
	stats.Groups = len(groups)

	imp.log.Info().Msgf("准备导入 %d 张新图片到 %d 个文件夹", len(newFiles), len(groups))

	if imp.DryRun {
		imp.plan(groups)
		stats.EndTime = time.Now()
		return stats, nil
	}

	imp.begin(stats)
	if imp.Progress != nil {
		imp.Progress.Start(len(newFiles))
	}

	for _, key := range grouper.SortedKeys(groups) {
		imp.importGroup(stats, key, groups[key])
	}

	if imp.Progress != nil {
		imp.Progress.Finish()
	}
	stats.EndTime = time.Now()
	imp.finish(stats)

	imp.log.Info().
		Int("moved", stats.Moved).
		Int("copied", stats.Copied).
		Int("failed", stats.Failed).
		Msg("导入完成")

	return stats, nil
}

func (imp *Importer) locate() (internal.Volume, error) {
	vols, err := imp.Volumes.Volumes()
	if err != nil {
		return internal.Volume{}, fmt.Errorf("%w: %v", internal.ErrNoVolumeFound, err)
	}

	candidates := volume.Filter(vols, imp.MountPrefix, imp.MediaTypes)
	imp.log.Debug().Msgf("候选存储卷: %d/%d", len(candidates), len(vols))

	return imp.Locator.Locate(candidates)
}

// 图库目录不存在时视为空图库
func (imp *Importer) scanLibrary() ([]internal.ImageFile, error) {
	if _, err := imp.Scanner.Fs.Stat(imp.LibraryRoot); os.IsNotExist(err) {
		imp.log.Warn().Msgf("图库目录不存在，将在导入时创建: %s", imp.LibraryRoot)
		return nil, nil
	}
	return imp.Scanner.Scan(imp.LibraryRoot)
}

func (imp *Importer) importGroup(stats *internal.ImportStats, key string, files []internal.ImageFile) {
	sortByPath(files)
	folder := filepath.Join(imp.LibraryRoot, key)

	created, err := imp.Provisioner.Ensure(folder)
	if err != nil {
		imp.log.Error().Err(err).Msgf("无法创建文件夹，跳过 %d 个文件: %s", len(files), folder)
		stats.SkippedGroups++
		for _, f := range files {
			imp.record(stats, internal.TransferResult{
				File:        f,
				Destination: filepath.Join(folder, f.Name),
				Outcome:     internal.OutcomeSkipped,
				Reason:      err.Error(),
			})
		}
		return
	}
	if created {
		stats.FoldersCreated++
	}

	for _, f := range files {
		imp.record(stats, imp.Transferer.Transfer(f, folder))
	}
}

func (imp *Importer) record(stats *internal.ImportStats, r internal.TransferResult) {
	stats.Record(r)
	if imp.Progress != nil {
		imp.Progress.Advance(r)
	}
	if imp.Recorder != nil {
		if err := imp.Recorder.RecordTransfer(stats.RunID, r); err != nil {
			imp.log.Warn().Err(err).Msg("写入导入记录失败")
		}
	}
}

// plan 预览模式下只输出导入计划
func (imp *Importer) plan(groups map[string][]internal.ImageFile) {
	for _, key := range grouper.SortedKeys(groups) {
		files := groups[key]
		sortByPath(files)
		folder := filepath.Join(imp.LibraryRoot, key)
		imp.log.Info().Msgf("[预览] %s: %d 个文件", folder, len(files))
		for _, f := range files {
			imp.log.Info().Msgf("[预览]   %s -> %s", f.Path, filepath.Join(folder, f.Name))
		}
	}
}

func (imp *Importer) begin(stats *internal.ImportStats) {
	if imp.Recorder == nil {
		return
	}
	if err := imp.Recorder.BeginRun(stats); err != nil {
		imp.log.Warn().Err(err).Msg("写入导入记录失败")
	}
}

func (imp *Importer) finish(stats *internal.ImportStats) {
	if imp.Recorder == nil {
		return
	}
	if err := imp.Recorder.FinishRun(stats); err != nil {
		imp.log.Warn().Err(err).Msg("写入导入记录失败")
	}
}

func sortByPath(files []internal.ImageFile) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
}
