package app

import (
	"os"

	"github.com/spf13/afero"

	"github.com/moyu-x/photo-importer/internal"
	"github.com/moyu-x/photo-importer/pkg/config"
	"github.com/moyu-x/photo-importer/pkg/database"
	"github.com/moyu-x/photo-importer/pkg/grouper"
	"github.com/moyu-x/photo-importer/pkg/importer"
	"github.com/moyu-x/photo-importer/pkg/logger"
	"github.com/moyu-x/photo-importer/pkg/progress"
	"github.com/moyu-x/photo-importer/pkg/scanner"
	"github.com/moyu-x/photo-importer/pkg/transfer"
	"github.com/moyu-x/photo-importer/pkg/volume"
	"github.com/moyu-x/photo-importer/tui"
)

type ImportOptions struct {
	Library     string
	Volume      string
	Interactive bool
	DryRun      bool
	Verbose     bool
	LogFile     string
}

func RunImport(cfg *config.Config, opts *ImportOptions) (*internal.ImportStats, error) {
	logLevel := cfg.Logging.Level
	if opts.Verbose {
		logLevel = "debug"
	}
	logFile := cfg.Logging.File
	if opts.LogFile != "" {
		logFile = opts.LogFile
	}

	if err := logger.Init(logLevel, logFile); err != nil {
		return nil, err
	}

	logger.Get().Info().Msg("开始导入照片，正在查找 SD 卡...")

	imp, err := NewImporter(afero.NewOsFs(), cfg, opts)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		logger.Get().Info().Msg("=== 预览模式，不会实际修改文件 ===")
	} else {
		if !opts.Verbose {
			imp.Progress = progress.NewBar(os.Stderr)
		}
		if cfg.Journal.Enabled {
			db, err := database.NewDatabase(cfg.Journal.Path)
			if err != nil {
				logger.Get().Warn().Err(err).Msg("无法打开导入日志，本次导入不做记录")
			} else {
				defer db.Close()
				imp.Recorder = db
			}
		}
	}

	return imp.Run()
}

// NewImporter 按配置组装导入流程，命令行参数优先于配置文件
func NewImporter(fs afero.Fs, cfg *config.Config, opts *ImportOptions) (*importer.Importer, error) {
	libraryRoot := cfg.Library.Root
	if opts.Library != "" {
		root, err := config.ExpandPath(opts.Library)
		if err != nil {
			return nil, err
		}
		libraryRoot = root
	}

	imp := &importer.Importer{
		Volumes:     volume.NewDiscoverer(fs, cfg.Volumes.Roots),
		Scanner:     scanner.NewScanner(fs, cfg.Scanner.Extensions, cfg.Scanner.MountBoundary),
		Grouper:     grouper.NewGrouper(cfg.Library.FolderFormat, grouper.DateSourceFor(cfg.Dates.Source, fs)),
		Provisioner: transfer.NewProvisioner(fs),
		Transferer:  transfer.NewTransferer(fs),
		LibraryRoot: libraryRoot,
		ImageDir:    cfg.Volumes.ImageDir,
		MountPrefix: cfg.Volumes.Prefix,
		MediaTypes:  cfg.MediaTypes(),
		DryRun:      opts.DryRun,
	}

	var selector volume.Selector = volume.PromptSelector{In: os.Stdin, Out: os.Stdout}
	if opts.Interactive {
		selector = tui.NewSelector()
	}
	imp.Locator = volume.NewLocator(selector)

	if opts.Volume == "" && len(cfg.Volumes.Roots) == 0 {
		logger.Get().Warn().Msg("未配置挂载目录 volumes.roots，请在配置文件中设置或使用 --volume 指定 SD 卡")
	}

	// 指定存储卷时跳过自动发现和过滤
	if opts.Volume != "" {
		path, err := config.ExpandPath(opts.Volume)
		if err != nil {
			return nil, err
		}
		imp.Volumes = volume.Static{volume.Explicit(fs, path)}
		imp.MountPrefix = ""
		imp.MediaTypes = []internal.MediaType{internal.MediaRemovable, internal.MediaFixed}
	}

	logger.Get().Info().Msgf("图库目录: %s", imp.LibraryRoot)
	logger.Get().Debug().Msgf("挂载目录: %v，日期来源: %s", cfg.Volumes.Roots, cfg.Dates.Source)

	return imp, nil
}
