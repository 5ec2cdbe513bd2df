package database

import (
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/moyu-x/photo-importer/internal"
	"github.com/moyu-x/photo-importer/pkg/config"
	"github.com/moyu-x/photo-importer/pkg/logger"
)

// ImportRun 一次导入的汇总
type ImportRun struct {
	ID             int64  `gorm:"primaryKey"`
	RunID          string `gorm:"uniqueIndex;not null"`
	VolumePath     string `gorm:"not null"`
	VolumeLabel    string
	LibraryRoot    string `gorm:"not null"`
	ImagesFound    int
	NewImages      int
	FoldersCreated int
	Moved          int
	Copied         int
	Failed         int
	SkippedGroups  int
	StartedAt      time.Time `gorm:"not null"`
	FinishedAt     *time.Time
}

func (ImportRun) TableName() string {
	return "import_runs"
}

// TransferRecord 单个文件的传输结果
type TransferRecord struct {
	ID          int64  `gorm:"primaryKey"`
	RunID       string `gorm:"index;not null"`
	Source      string `gorm:"not null"`
	Destination string
	Outcome     string `gorm:"not null"`
	Reason      string
	CreatedAt   time.Time
}

func (TransferRecord) TableName() string {
	return "transfers"
}

// Database 导入日志，不参与去重判断
type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	expandedPath, err := config.ExpandPath(dbPath)
	if err != nil {
		logger.Get().Error().Err(err).Msg("扩展数据库路径失败")
		return nil, err
	}

	logger.Get().Debug().Msgf("打开导入日志，路径: %s", expandedPath)

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		logger.Get().Error().Err(err).Msgf("创建数据库目录失败: %s", filepath.Dir(expandedPath))
		return nil, err
	}

	dsn := expandedPath + "?_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("打开数据库连接失败")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Get().Error().Err(err).Msg("获取数据库连接失败")
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&ImportRun{}, &TransferRecord{}); err != nil {
		logger.Get().Error().Err(err).Msg("创建数据库表失败")
		return nil, err
	}

	return &Database{db: db}, nil
}

func (d *Database) BeginRun(stats *internal.ImportStats) error {
	run := &ImportRun{
		RunID:       stats.RunID,
		VolumePath:  stats.Volume.Path,
		VolumeLabel: stats.Volume.Label,
		LibraryRoot: stats.LibraryRoot,
		ImagesFound: stats.ImagesFound,
		NewImages:   stats.NewImages,
		StartedAt:   stats.StartTime,
	}
	if err := d.db.Create(run).Error; err != nil {
		logger.Get().Error().Err(err).Msgf("写入导入记录失败: %s", stats.RunID)
		return err
	}
	return nil
}

func (d *Database) RecordTransfer(runID string, r internal.TransferResult) error {
	rec := &TransferRecord{
		RunID:       runID,
		Source:      r.File.Path,
		Destination: r.Destination,
		Outcome:     string(r.Outcome),
		Reason:      r.Reason,
	}
	return d.db.Create(rec).Error
}

// FinishRun 写入最终计数
func (d *Database) FinishRun(stats *internal.ImportStats) error {
	finished := stats.EndTime
	if finished.IsZero() {
		finished = time.Now()
	}

	return d.db.Model(&ImportRun{}).
		Where("run_id = ?", stats.RunID).
		Updates(map[string]interface{}{
			"images_found":    stats.ImagesFound,
			"new_images":      stats.NewImages,
			"folders_created": stats.FoldersCreated,
			"moved":           stats.Moved,
			"copied":          stats.Copied,
			"failed":          stats.Failed,
			"skipped_groups":  stats.SkippedGroups,
			"finished_at":     finished,
		}).Error
}

// RecentRuns 按开始时间倒序返回最近的导入
func (d *Database) RecentRuns(limit int) ([]ImportRun, error) {
	var runs []ImportRun
	q := d.db.Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (d *Database) Transfers(runID string) ([]TransferRecord, error) {
	var recs []TransferRecord
	if err := d.db.Where("run_id = ?", runID).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		logger.Get().Error().Err(err).Msg("获取数据库连接失败")
		return err
	}
	return sqlDB.Close()
}
